package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

func requireAdmin(pool *types.PoolState, caller types.Ref) error {
	if caller.IsEmpty() || caller != pool.Admin {
		return types.ErrUnauthorized.Wrapf("%s is not the admin of pool %s", caller, pool.ID())
	}
	return nil
}

// IsPaused reports whether a pool is paused.
func (k Keeper) IsPaused(ctx context.Context, id types.PoolID) (bool, error) {
	pool, err := k.GetPool(ctx, id)
	if err != nil {
		return false, err
	}
	return pool.Paused, nil
}

// SetPaused moves a pool between Active and Paused. Setting the current value
// again is allowed and only re-emits the event.
func (k Keeper) SetPaused(ctx context.Context, caller types.Ref, id types.PoolID, paused bool) error {
	err := k.withPool(ctx, id, func(ctx sdk.Context, pool *types.PoolState) error {
		if err := requireAdmin(pool, caller); err != nil {
			return err
		}

		pool.Paused = paused
		k.SetPool(ctx, pool)

		eventType := types.EventTypePoolResumed
		if paused {
			eventType = types.EventTypePoolPaused
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				eventType,
				sdk.NewAttribute(types.AttributeKeyPool, id.String()),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
			),
		)
		return nil
	})
	if err != nil {
		return err
	}

	k.Logger(ctx).Info("pool pause flag set", "pool", id.String(), "paused", paused, "height", sdk.UnwrapSDKContext(ctx).BlockHeight())
	k.recordAdminAction("set_paused")
	return nil
}

// UpdateFeeRate changes the swap fee charged by a pool.
func (k Keeper) UpdateFeeRate(ctx context.Context, caller types.Ref, id types.PoolID, feeRateBps uint64) error {
	var previous uint64
	err := k.withPool(ctx, id, func(ctx sdk.Context, pool *types.PoolState) error {
		if err := requireAdmin(pool, caller); err != nil {
			return err
		}
		if feeRateBps > types.MaxFeeRateBps {
			return types.ErrFeeTooHigh.Wrapf("fee rate %d bps exceeds maximum %d", feeRateBps, types.MaxFeeRateBps)
		}

		previous = pool.FeeRateBps
		pool.FeeRateBps = feeRateBps
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeFeeRateUpdated,
				sdk.NewAttribute(types.AttributeKeyPool, id.String()),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
				sdk.NewAttribute(types.AttributeKeyFeeRate, fmt.Sprintf("%d", feeRateBps)),
			),
		)
		return nil
	})
	if err != nil {
		return err
	}

	k.Logger(ctx).Info("pool fee rate updated", "pool", id.String(), "from_bps", previous, "to_bps", feeRateBps)
	k.recordAdminAction("update_fee_rate")
	return nil
}

// TransferAdmin hands pool administration to newAdmin.
func (k Keeper) TransferAdmin(ctx context.Context, caller types.Ref, id types.PoolID, newAdmin types.Ref) error {
	err := k.withPool(ctx, id, func(ctx sdk.Context, pool *types.PoolState) error {
		if err := requireAdmin(pool, caller); err != nil {
			return err
		}
		if newAdmin.IsEmpty() {
			return types.ErrInvalidSwapPool.Wrap("new admin cannot be empty")
		}

		pool.Admin = newAdmin
		k.SetPool(ctx, pool)

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeAdminTransferred,
				sdk.NewAttribute(types.AttributeKeyPool, id.String()),
				sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
				sdk.NewAttribute(types.AttributeKeyAdmin, newAdmin.String()),
			),
		)
		return nil
	})
	if err != nil {
		return err
	}

	k.Logger(ctx).Info("pool admin transferred", "pool", id.String(), "admin", newAdmin.String())
	k.recordAdminAction("transfer_admin")
	return nil
}
