package keeper

import (
	"context"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// Read-only analytics over current pool state. Nothing here writes to the
// store or the ledger, and paused pools stay queryable.

// GetPoolStats returns the live reserves and LP supply of a pool.
func (k Keeper) GetPoolStats(ctx context.Context, id types.PoolID) (types.PoolStats, error) {
	pool, err := k.GetPool(ctx, id)
	if err != nil {
		return types.PoolStats{}, err
	}
	stats, err := k.reserves(ctx, pool)
	if err != nil {
		return types.PoolStats{}, types.ErrCalculationFailure.Wrap(err.Error())
	}
	return stats, nil
}

// GetPrice returns the price of asset in units of the pool's other asset,
// scaled by PriceScale.
func (k Keeper) GetPrice(ctx context.Context, id types.PoolID, asset types.Ref) (uint64, error) {
	pool, err := k.GetPool(ctx, id)
	if err != nil {
		return 0, err
	}
	stats, err := k.reserves(ctx, pool)
	if err != nil {
		return 0, types.ErrCalculationFailure.Wrap(err.Error())
	}

	var this, other uint64
	switch {
	case pool.IsAssetA(asset):
		this, other = stats.ReserveA, stats.ReserveB
	case pool.IsAssetB(asset):
		this, other = stats.ReserveB, stats.ReserveA
	default:
		return 0, types.ErrInvalidToken.Wrapf("asset %s is not traded by pool %s", asset, id)
	}
	return PriceOf(this, other)
}

// PriceOf computes other * PriceScale / this.
func PriceOf(thisReserve, otherReserve uint64) (uint64, error) {
	if thisReserve == 0 {
		return 0, types.ErrInsufficientLiquidity.Wrap("reserve is empty")
	}
	price, err := SafeMulDivUint64(otherReserve, types.PriceScale, thisReserve)
	if err != nil {
		return 0, types.ErrCalculationFailure.Wrapf("price: %v", err)
	}
	return price, nil
}

// SimulateSwap prices a swap against current reserves without moving assets
// or accruing fees, and returns the net output.
func (k Keeper) SimulateSwap(ctx context.Context, id types.PoolID, amountIn uint64, direction types.Direction) (uint64, error) {
	quote, err := k.QuoteSwap(ctx, id, amountIn, direction)
	if err != nil {
		return 0, err
	}
	return quote.NetOut, nil
}

// QuoteSwap is SimulateSwap returning the full price breakdown.
func (k Keeper) QuoteSwap(ctx context.Context, id types.PoolID, amountIn uint64, direction types.Direction) (SwapQuote, error) {
	if amountIn == 0 {
		return SwapQuote{}, types.ErrInvalidAmount.Wrap("amount in must be positive")
	}
	pool, err := k.GetPool(ctx, id)
	if err != nil {
		return SwapQuote{}, err
	}
	leg, err := resolveLeg(pool, direction)
	if err != nil {
		return SwapQuote{}, err
	}

	inputReserve, err := k.ledger.BalanceOf(ctx, leg.vaultIn)
	if err != nil {
		return SwapQuote{}, types.ErrCalculationFailure.Wrapf("read input vault: %v", err)
	}
	outputReserve, err := k.ledger.BalanceOf(ctx, leg.vaultOut)
	if err != nil {
		return SwapQuote{}, types.ErrCalculationFailure.Wrapf("read output vault: %v", err)
	}
	if inputReserve == 0 || outputReserve == 0 {
		return SwapQuote{}, types.ErrInsufficientLiquidity.Wrapf("pool %s has reserves (%d, %d)", id, inputReserve, outputReserve)
	}

	quote, err := CalculateSwap(inputReserve, outputReserve, amountIn, pool.FeeRateBps)
	if err != nil {
		return SwapQuote{}, types.ErrCalculationFailure.Wrap(err.Error())
	}
	return quote, nil
}

// GetUserShare reports the fraction of the pool held by an LP account and the
// reserves it would redeem for.
func (k Keeper) GetUserShare(ctx context.Context, id types.PoolID, lpAccount types.Ref) (types.UserShare, error) {
	pool, err := k.GetPool(ctx, id)
	if err != nil {
		return types.UserShare{}, err
	}
	if err := k.requireAsset(ctx, lpAccount, pool.LPMint, "lp"); err != nil {
		return types.UserShare{}, err
	}
	balance, err := k.ledger.BalanceOf(ctx, lpAccount)
	if err != nil {
		return types.UserShare{}, types.ErrCalculationFailure.Wrapf("read lp balance: %v", err)
	}
	stats, err := k.reserves(ctx, pool)
	if err != nil {
		return types.UserShare{}, types.ErrCalculationFailure.Wrap(err.Error())
	}
	return UserShareOf(stats, balance)
}

// UserShareOf splits a pool snapshot for an LP balance. Every field is zero
// when the pool has no LP supply.
func UserShareOf(stats types.PoolStats, lpBalance uint64) (types.UserShare, error) {
	if stats.LPSupply == 0 {
		return types.UserShare{}, nil
	}
	share, err := SafeMulDivUint64(lpBalance, types.ShareScale, stats.LPSupply)
	if err != nil {
		return types.UserShare{}, types.ErrCalculationFailure.Wrapf("share: %v", err)
	}
	tokenA, err := SafeMulDivUint64(lpBalance, stats.ReserveA, stats.LPSupply)
	if err != nil {
		return types.UserShare{}, types.ErrCalculationFailure.Wrapf("token A share: %v", err)
	}
	tokenB, err := SafeMulDivUint64(lpBalance, stats.ReserveB, stats.LPSupply)
	if err != nil {
		return types.UserShare{}, types.ErrCalculationFailure.Wrapf("token B share: %v", err)
	}
	return types.UserShare{ShareScaled: share, TokenA: tokenA, TokenB: tokenB}, nil
}
