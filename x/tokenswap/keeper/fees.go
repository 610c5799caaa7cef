package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// creditFee adds a swap fee to the counter of the asset the trader bought.
func creditFee(pool *types.PoolState, direction types.Direction, fee uint64) error {
	var err error
	switch direction {
	case types.AToB:
		pool.AccumulatedFeeB, err = SafeAddUint64(pool.AccumulatedFeeB, fee)
	case types.BToA:
		pool.AccumulatedFeeA, err = SafeAddUint64(pool.AccumulatedFeeA, fee)
	default:
		return types.ErrInvalidToken.Wrapf("unknown swap direction %s", direction)
	}
	if err != nil {
		return types.ErrInvalidAmount.Wrapf("accumulate fee: %v", err)
	}
	return nil
}

// GetAccumulatedFees returns the uncollected fees of a pool.
func (k Keeper) GetAccumulatedFees(ctx context.Context, id types.PoolID) (feeA, feeB uint64, err error) {
	pool, err := k.GetPool(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	return pool.AccumulatedFeeA, pool.AccumulatedFeeB, nil
}

// CollectFees pays both accumulated fee counters to the admin's receiving
// accounts and zeroes them. The reset and the payouts share one cache scope,
// so a failed payout leaves the counters untouched. Assets with nothing
// accrued are skipped.
func (k Keeper) CollectFees(ctx context.Context, caller types.Ref, id types.PoolID, receiverA, receiverB types.Ref) (feeA, feeB uint64, err error) {
	err = k.withPool(ctx, id, func(ctx sdk.Context, pool *types.PoolState) error {
		if err := requireAdmin(pool, caller); err != nil {
			return err
		}

		feeA, feeB = pool.AccumulatedFeeA, pool.AccumulatedFeeB

		if feeA > 0 {
			if err := k.requireAsset(ctx, receiverA, pool.AssetA, "fee receiver A"); err != nil {
				return err
			}
		}
		if feeB > 0 {
			if err := k.requireAsset(ctx, receiverB, pool.AssetB, "fee receiver B"); err != nil {
				return err
			}
		}
		signer, err := k.custodySigner(pool)
		if err != nil {
			return fmt.Errorf("CollectFees: %w", err)
		}

		pool.AccumulatedFeeA = 0
		pool.AccumulatedFeeB = 0
		k.SetPool(ctx, pool)

		if feeA > 0 {
			if err := k.ledger.Transfer(ctx, signer, pool.VaultA, receiverA, feeA); err != nil {
				return fmt.Errorf("CollectFees: transfer fee A: %w", err)
			}
		}
		if feeB > 0 {
			if err := k.ledger.Transfer(ctx, signer, pool.VaultB, receiverB, feeB); err != nil {
				return fmt.Errorf("CollectFees: transfer fee B: %w", err)
			}
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeFeesCollected,
				sdk.NewAttribute(types.AttributeKeyPool, id.String()),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, fmt.Sprintf("%d", feeA)),
				sdk.NewAttribute(types.AttributeKeyAmountB, fmt.Sprintf("%d", feeB)),
			),
		)
		return nil
	})
	if err != nil {
		k.Logger(ctx).Error("fee collection failed", "pool", id.String(), "error", err)
		return 0, 0, err
	}

	if k.metrics != nil {
		k.metrics.FeesCollected.WithLabelValues(id.String(), "a").Add(float64(feeA))
		k.metrics.FeesCollected.WithLabelValues(id.String(), "b").Add(float64(feeB))
	}
	return feeA, feeB, nil
}
