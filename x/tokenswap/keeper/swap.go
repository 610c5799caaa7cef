package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// SwapQuote is the full breakdown of a constant-product trade.
type SwapQuote struct {
	AmountIn         uint64 `json:"amount_in"`
	NewInputReserve  uint64 `json:"new_input_reserve"`
	NewOutputReserve uint64 `json:"new_output_reserve"`
	GrossOut         uint64 `json:"gross_out"`
	Fee              uint64 `json:"fee"`
	NetOut           uint64 `json:"net_out"`
}

// CalculateSwap prices a trade on the constant-product curve with the fee
// taken from the output:
//
//	newIn  = in + amountIn
//	newOut = in * out / newIn
//	gross  = out - newOut
//	fee    = gross * feeRateBps / 10000
//	net    = gross - fee
//
// Every step is checked; any overflow, underflow or division edge fails with
// ErrInvalidAmount.
func CalculateSwap(inputReserve, outputReserve, amountIn, feeRateBps uint64) (SwapQuote, error) {
	if amountIn == 0 {
		return SwapQuote{}, types.ErrInvalidAmount.Wrap("amount in must be positive")
	}
	if feeRateBps > types.MaxFeeRateBps {
		return SwapQuote{}, types.ErrFeeTooHigh.Wrapf("fee rate %d bps exceeds maximum %d", feeRateBps, types.MaxFeeRateBps)
	}

	newInput, err := SafeAddUint64(inputReserve, amountIn)
	if err != nil {
		return SwapQuote{}, types.ErrInvalidAmount.Wrapf("new input reserve: %v", err)
	}
	newOutput, err := SafeMulDivUint64(inputReserve, outputReserve, newInput)
	if err != nil {
		return SwapQuote{}, types.ErrInvalidAmount.Wrapf("new output reserve: %v", err)
	}
	gross, err := SafeSubUint64(outputReserve, newOutput)
	if err != nil {
		return SwapQuote{}, types.ErrInvalidAmount.Wrapf("gross output: %v", err)
	}
	fee, err := SafeMulDivUint64(gross, feeRateBps, types.FeeRateDenominator)
	if err != nil {
		return SwapQuote{}, types.ErrInvalidAmount.Wrapf("fee: %v", err)
	}
	net, err := SafeSubUint64(gross, fee)
	if err != nil {
		return SwapQuote{}, types.ErrInvalidAmount.Wrapf("net output: %v", err)
	}

	return SwapQuote{
		AmountIn:         amountIn,
		NewInputReserve:  newInput,
		NewOutputReserve: newOutput,
		GrossOut:         gross,
		Fee:              fee,
		NetOut:           net,
	}, nil
}

// swapLeg is one resolved direction of a pool: which side is sold and which is bought.
type swapLeg struct {
	direction types.Direction
	assetIn   types.Ref
	assetOut  types.Ref
	vaultIn   types.Ref
	vaultOut  types.Ref
}

func resolveLeg(pool *types.PoolState, direction types.Direction) (swapLeg, error) {
	switch direction {
	case types.AToB:
		return swapLeg{direction, pool.AssetA, pool.AssetB, pool.VaultA, pool.VaultB}, nil
	case types.BToA:
		return swapLeg{direction, pool.AssetB, pool.AssetA, pool.VaultB, pool.VaultA}, nil
	default:
		return swapLeg{}, types.ErrInvalidToken.Wrapf("unknown swap direction %s", direction)
	}
}

// directionOf matches a trader's source account against the pool's assets.
func (k Keeper) directionOf(ctx context.Context, pool *types.PoolState, source types.Ref) (types.Direction, error) {
	asset, err := k.ledger.AssetOf(ctx, source)
	if err != nil {
		return 0, types.ErrInvalidToken.Wrapf("source account %s: %v", source, err)
	}
	switch {
	case pool.IsAssetA(asset):
		return types.AToB, nil
	case pool.IsAssetB(asset):
		return types.BToA, nil
	default:
		return 0, types.ErrInvalidToken.Wrapf("asset %s is not traded by pool %s", asset, pool.ID())
	}
}

// Swap sells amountIn of the source account's asset for the pool's other asset,
// paying the net output into destination. The fee stays in the output vault
// and is credited to that side's accumulated fee counter.
func (k Keeper) Swap(ctx context.Context, trader types.Ref, id types.PoolID, source, destination types.Ref, amountIn, minAmountOut uint64) (uint64, error) {
	var (
		quote SwapQuote
		leg   swapLeg
	)
	err := k.withPool(ctx, id, func(ctx sdk.Context, pool *types.PoolState) error {
		if err := k.requireActive(pool); err != nil {
			return err
		}
		if amountIn == 0 {
			return types.ErrInvalidAmount.Wrap("amount in must be positive")
		}

		direction, err := k.directionOf(ctx, pool, source)
		if err != nil {
			return err
		}
		leg, err = resolveLeg(pool, direction)
		if err != nil {
			return err
		}
		if err := k.requireAsset(ctx, destination, leg.assetOut, "destination"); err != nil {
			return err
		}

		inputReserve, err := k.ledger.BalanceOf(ctx, leg.vaultIn)
		if err != nil {
			return fmt.Errorf("Swap: read input vault: %w", err)
		}
		outputReserve, err := k.ledger.BalanceOf(ctx, leg.vaultOut)
		if err != nil {
			return fmt.Errorf("Swap: read output vault: %w", err)
		}
		if inputReserve == 0 || outputReserve == 0 {
			return types.ErrInsufficientLiquidity.Wrapf("pool %s has reserves (%d, %d)", id, inputReserve, outputReserve)
		}

		quote, err = CalculateSwap(inputReserve, outputReserve, amountIn, pool.FeeRateBps)
		if err != nil {
			return err
		}

		if err := creditFee(pool, direction, quote.Fee); err != nil {
			return err
		}

		if quote.NetOut < minAmountOut {
			return types.ErrSlippageExceeded.Wrapf("output %d below minimum %d", quote.NetOut, minAmountOut)
		}

		if err := k.requireBalance(ctx, source, amountIn); err != nil {
			return err
		}
		signer, err := k.custodySigner(pool)
		if err != nil {
			return fmt.Errorf("Swap: %w", err)
		}

		k.SetPool(ctx, pool)

		if err := k.ledger.Transfer(ctx, trader, source, leg.vaultIn, amountIn); err != nil {
			return fmt.Errorf("Swap: transfer input: %w", err)
		}
		if quote.NetOut > 0 {
			if err := k.ledger.Transfer(ctx, signer, leg.vaultOut, destination, quote.NetOut); err != nil {
				return fmt.Errorf("Swap: transfer output: %w", err)
			}
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyPool, id.String()),
				sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
				sdk.NewAttribute(types.AttributeKeyAssetIn, leg.assetIn.String()),
				sdk.NewAttribute(types.AttributeKeyAssetOut, leg.assetOut.String()),
				sdk.NewAttribute(types.AttributeKeyAmountIn, fmt.Sprintf("%d", amountIn)),
				sdk.NewAttribute(types.AttributeKeyAmountOut, fmt.Sprintf("%d", quote.NetOut)),
				sdk.NewAttribute(types.AttributeKeyFee, fmt.Sprintf("%d", quote.Fee)),
			),
		)
		return nil
	})
	if err != nil {
		k.recordSwapFailure(id, err)
		return 0, err
	}

	k.recordSwap(id, leg.direction, quote)
	return quote.NetOut, nil
}
