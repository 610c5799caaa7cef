package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// Deposit is the outcome of sizing a deposit against current reserves.
type Deposit struct {
	AmountA uint64
	AmountB uint64
	Shares  uint64
}

// CalculateInitialShares returns the LP shares minted for the first deposit:
// the integer geometric mean floor(sqrt(amountA * amountB)).
func CalculateInitialShares(amountA, amountB uint64) (uint64, error) {
	if amountA == 0 || amountB == 0 {
		return 0, types.ErrInvalidAmount.Wrap("initial amounts must be positive")
	}
	shares, err := SqrtProduct(amountA, amountB)
	if err != nil {
		return 0, types.ErrInvalidAmount.Wrap(err.Error())
	}
	return shares, nil
}

// CalculateDeposit sizes a deposit at the current reserve ratio. Whichever
// desired amount is in excess is trimmed to the optimal counterpart, the
// trimmed side is checked against its minimum, and shares are the smaller of
// the two ratio-implied amounts.
func CalculateDeposit(stats types.PoolStats, amountADesired, amountBDesired, amountAMin, amountBMin uint64) (Deposit, error) {
	if amountADesired == 0 || amountBDesired == 0 {
		return Deposit{}, types.ErrInvalidAmount.Wrap("desired amounts must be positive")
	}
	if stats.ReserveA == 0 || stats.ReserveB == 0 {
		return Deposit{}, types.ErrInsufficientLiquidity.Wrap("pool reserves are empty")
	}

	optimalB, err := SafeMulDivUint64(amountADesired, stats.ReserveB, stats.ReserveA)
	if err != nil {
		return Deposit{}, types.ErrInvalidAmount.Wrapf("optimal amount B: %v", err)
	}

	var amountA, amountB uint64
	if amountBDesired >= optimalB {
		if optimalB < amountBMin {
			return Deposit{}, types.ErrSlippageExceeded.Wrapf("amount B %d below minimum %d", optimalB, amountBMin)
		}
		amountA, amountB = amountADesired, optimalB
	} else {
		optimalA, err := SafeMulDivUint64(amountBDesired, stats.ReserveA, stats.ReserveB)
		if err != nil {
			return Deposit{}, types.ErrInvalidAmount.Wrapf("optimal amount A: %v", err)
		}
		if optimalA < amountAMin {
			return Deposit{}, types.ErrSlippageExceeded.Wrapf("amount A %d below minimum %d", optimalA, amountAMin)
		}
		amountA, amountB = optimalA, amountBDesired
	}

	sharesA, err := SafeMulDivUint64(amountA, stats.LPSupply, stats.ReserveA)
	if err != nil {
		return Deposit{}, types.ErrInvalidAmount.Wrapf("shares from amount A: %v", err)
	}
	sharesB, err := SafeMulDivUint64(amountB, stats.LPSupply, stats.ReserveB)
	if err != nil {
		return Deposit{}, types.ErrInvalidAmount.Wrapf("shares from amount B: %v", err)
	}

	return Deposit{AmountA: amountA, AmountB: amountB, Shares: min(sharesA, sharesB)}, nil
}

// CalculateWithdrawal returns the pro-rata reserves redeemed by lpAmount shares.
func CalculateWithdrawal(stats types.PoolStats, lpAmount uint64) (amountA, amountB uint64, err error) {
	if lpAmount == 0 {
		return 0, 0, types.ErrInvalidAmount.Wrap("lp amount must be positive")
	}
	if stats.LPSupply == 0 {
		return 0, 0, types.ErrInsufficientLiquidity.Wrap("pool has no lp supply")
	}
	if lpAmount > stats.LPSupply {
		return 0, 0, types.ErrInsufficientFunds.Wrapf("lp amount %d exceeds supply %d", lpAmount, stats.LPSupply)
	}

	amountA, err = SafeMulDivUint64(lpAmount, stats.ReserveA, stats.LPSupply)
	if err != nil {
		return 0, 0, types.ErrInvalidAmount.Wrapf("withdrawal amount A: %v", err)
	}
	amountB, err = SafeMulDivUint64(lpAmount, stats.ReserveB, stats.LPSupply)
	if err != nil {
		return 0, 0, types.ErrInvalidAmount.Wrapf("withdrawal amount B: %v", err)
	}
	return amountA, amountB, nil
}

// AddInitialLiquidity seeds an empty pool and mints the geometric mean of the
// deposit as LP shares to the provider.
func (k Keeper) AddInitialLiquidity(ctx context.Context, provider types.Ref, id types.PoolID, accounts types.LiquidityAccounts, amountA, amountB uint64) (uint64, error) {
	if amountA == 0 || amountB == 0 {
		return 0, types.ErrInvalidAmount.Wrap("initial amounts must be positive")
	}

	var shares uint64
	err := k.withPool(ctx, id, func(ctx sdk.Context, pool *types.PoolState) error {
		if err := k.checkLiquidityAccounts(ctx, pool, accounts); err != nil {
			return err
		}

		stats, err := k.reserves(ctx, pool)
		if err != nil {
			return fmt.Errorf("AddInitialLiquidity: %w", err)
		}
		if stats.LPSupply != 0 {
			return types.ErrInvalidSwapPool.Wrapf("pool %s already has %d lp shares outstanding", id, stats.LPSupply)
		}

		shares, err = CalculateInitialShares(amountA, amountB)
		if err != nil {
			return err
		}

		if err := k.requireBalance(ctx, accounts.TokenA, amountA); err != nil {
			return err
		}
		if err := k.requireBalance(ctx, accounts.TokenB, amountB); err != nil {
			return err
		}
		signer, err := k.custodySigner(pool)
		if err != nil {
			return fmt.Errorf("AddInitialLiquidity: %w", err)
		}

		if err := k.ledger.Transfer(ctx, provider, accounts.TokenA, pool.VaultA, amountA); err != nil {
			return fmt.Errorf("AddInitialLiquidity: transfer token A: %w", err)
		}
		if err := k.ledger.Transfer(ctx, provider, accounts.TokenB, pool.VaultB, amountB); err != nil {
			return fmt.Errorf("AddInitialLiquidity: transfer token B: %w", err)
		}
		if err := k.ledger.Mint(ctx, signer, pool.LPMint, accounts.LP, shares); err != nil {
			return fmt.Errorf("AddInitialLiquidity: mint lp shares: %w", err)
		}

		emitLiquidityEvent(ctx, types.EventTypeLiquidityAdded, id, provider, amountA, amountB, shares)
		return nil
	})
	if err != nil {
		return 0, err
	}

	k.recordLiquidity(id, true, amountA, amountB)
	return shares, nil
}

// AddLiquidity deposits into a funded pool at the current reserve ratio and
// returns the accepted amounts and minted shares.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	provider types.Ref,
	id types.PoolID,
	accounts types.LiquidityAccounts,
	amountADesired, amountBDesired, amountAMin, amountBMin uint64,
) (Deposit, error) {
	var deposit Deposit
	err := k.withPool(ctx, id, func(ctx sdk.Context, pool *types.PoolState) error {
		if err := k.requireActive(pool); err != nil {
			return err
		}
		if amountADesired == 0 || amountBDesired == 0 {
			return types.ErrInvalidAmount.Wrap("desired amounts must be positive")
		}
		if err := k.checkLiquidityAccounts(ctx, pool, accounts); err != nil {
			return err
		}

		stats, err := k.reserves(ctx, pool)
		if err != nil {
			return fmt.Errorf("AddLiquidity: %w", err)
		}

		deposit, err = CalculateDeposit(stats, amountADesired, amountBDesired, amountAMin, amountBMin)
		if err != nil {
			return err
		}
		if deposit.Shares == 0 {
			return types.ErrInsufficientLiquidity.Wrap("deposit too small to mint any lp shares")
		}

		if err := k.requireBalance(ctx, accounts.TokenA, deposit.AmountA); err != nil {
			return err
		}
		if err := k.requireBalance(ctx, accounts.TokenB, deposit.AmountB); err != nil {
			return err
		}
		signer, err := k.custodySigner(pool)
		if err != nil {
			return fmt.Errorf("AddLiquidity: %w", err)
		}

		if deposit.AmountA > 0 {
			if err := k.ledger.Transfer(ctx, provider, accounts.TokenA, pool.VaultA, deposit.AmountA); err != nil {
				return fmt.Errorf("AddLiquidity: transfer token A: %w", err)
			}
		}
		if deposit.AmountB > 0 {
			if err := k.ledger.Transfer(ctx, provider, accounts.TokenB, pool.VaultB, deposit.AmountB); err != nil {
				return fmt.Errorf("AddLiquidity: transfer token B: %w", err)
			}
		}
		if err := k.ledger.Mint(ctx, signer, pool.LPMint, accounts.LP, deposit.Shares); err != nil {
			return fmt.Errorf("AddLiquidity: mint lp shares: %w", err)
		}

		emitLiquidityEvent(ctx, types.EventTypeLiquidityAdded, id, provider, deposit.AmountA, deposit.AmountB, deposit.Shares)
		return nil
	})
	if err != nil {
		return Deposit{}, err
	}

	k.recordLiquidity(id, true, deposit.AmountA, deposit.AmountB)
	return deposit, nil
}

// RemoveLiquidity burns lpAmount shares from the provider and pays out the
// pro-rata reserves from the vaults.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	provider types.Ref,
	id types.PoolID,
	accounts types.LiquidityAccounts,
	lpAmount, amountAMin, amountBMin uint64,
) (amountA, amountB uint64, err error) {
	err = k.withPool(ctx, id, func(ctx sdk.Context, pool *types.PoolState) error {
		if err := k.requireActive(pool); err != nil {
			return err
		}
		if lpAmount == 0 {
			return types.ErrInvalidAmount.Wrap("lp amount must be positive")
		}
		if err := k.checkLiquidityAccounts(ctx, pool, accounts); err != nil {
			return err
		}

		stats, err := k.reserves(ctx, pool)
		if err != nil {
			return fmt.Errorf("RemoveLiquidity: %w", err)
		}

		amountA, amountB, err = CalculateWithdrawal(stats, lpAmount)
		if err != nil {
			return err
		}
		if amountA < amountAMin {
			return types.ErrSlippageExceeded.Wrapf("amount A %d below minimum %d", amountA, amountAMin)
		}
		if amountB < amountBMin {
			return types.ErrSlippageExceeded.Wrapf("amount B %d below minimum %d", amountB, amountBMin)
		}

		if err := k.requireBalance(ctx, accounts.LP, lpAmount); err != nil {
			return err
		}
		signer, err := k.custodySigner(pool)
		if err != nil {
			return fmt.Errorf("RemoveLiquidity: %w", err)
		}

		if err := k.ledger.Burn(ctx, provider, pool.LPMint, accounts.LP, lpAmount); err != nil {
			return fmt.Errorf("RemoveLiquidity: burn lp shares: %w", err)
		}
		if amountA > 0 {
			if err := k.ledger.Transfer(ctx, signer, pool.VaultA, accounts.TokenA, amountA); err != nil {
				return fmt.Errorf("RemoveLiquidity: transfer token A: %w", err)
			}
		}
		if amountB > 0 {
			if err := k.ledger.Transfer(ctx, signer, pool.VaultB, accounts.TokenB, amountB); err != nil {
				return fmt.Errorf("RemoveLiquidity: transfer token B: %w", err)
			}
		}

		emitLiquidityEvent(ctx, types.EventTypeLiquidityRemoved, id, provider, amountA, amountB, lpAmount)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	k.recordLiquidity(id, false, amountA, amountB)
	return amountA, amountB, nil
}

// checkLiquidityAccounts verifies the provider's accounts hold the pool's assets.
func (k Keeper) checkLiquidityAccounts(ctx context.Context, pool *types.PoolState, accounts types.LiquidityAccounts) error {
	if err := accounts.Validate(); err != nil {
		return err
	}
	if err := k.requireAsset(ctx, accounts.TokenA, pool.AssetA, "token A"); err != nil {
		return err
	}
	if err := k.requireAsset(ctx, accounts.TokenB, pool.AssetB, "token B"); err != nil {
		return err
	}
	return k.requireAsset(ctx, accounts.LP, pool.LPMint, "lp")
}

func emitLiquidityEvent(ctx sdk.Context, eventType string, id types.PoolID, provider types.Ref, amountA, amountB, shares uint64) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyPool, id.String()),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAmountA, fmt.Sprintf("%d", amountA)),
			sdk.NewAttribute(types.AttributeKeyAmountB, fmt.Sprintf("%d", amountB)),
			sdk.NewAttribute(types.AttributeKeyShares, fmt.Sprintf("%d", shares)),
		),
	)
}
