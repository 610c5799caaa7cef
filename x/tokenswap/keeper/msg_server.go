package keeper

import (
	"context"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// MsgServer applies tokenswap messages. Callers are assumed to be
// authenticated by the host before a message reaches it.
type MsgServer struct {
	Keeper
}

// NewMsgServerImpl returns a MsgServer backed by k.
func NewMsgServerImpl(k Keeper) MsgServer {
	return MsgServer{Keeper: k}
}

// InitializePool handles MsgInitializePool.
func (ms MsgServer) InitializePool(ctx context.Context, msg *types.MsgInitializePool) (*types.MsgInitializePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	pool, err := ms.Keeper.InitializePool(ctx, msg.Creator, msg.AssetA, msg.AssetB, msg.Salt, msg.FeeRateBps)
	if err != nil {
		return nil, err
	}
	return &types.MsgInitializePoolResponse{Pool: *pool}, nil
}

// AddInitialLiquidity handles MsgAddInitialLiquidity.
func (ms MsgServer) AddInitialLiquidity(ctx context.Context, msg *types.MsgAddInitialLiquidity) (*types.MsgLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	shares, err := ms.Keeper.AddInitialLiquidity(ctx, msg.Provider, msg.Pool, msg.Accounts, msg.AmountA, msg.AmountB)
	if err != nil {
		return nil, err
	}
	return &types.MsgLiquidityResponse{AmountA: msg.AmountA, AmountB: msg.AmountB, Shares: shares}, nil
}

// AddLiquidity handles MsgAddLiquidity.
func (ms MsgServer) AddLiquidity(ctx context.Context, msg *types.MsgAddLiquidity) (*types.MsgLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	deposit, err := ms.Keeper.AddLiquidity(ctx, msg.Provider, msg.Pool, msg.Accounts,
		msg.AmountADesired, msg.AmountBDesired, msg.AmountAMin, msg.AmountBMin)
	if err != nil {
		return nil, err
	}
	return &types.MsgLiquidityResponse{AmountA: deposit.AmountA, AmountB: deposit.AmountB, Shares: deposit.Shares}, nil
}

// RemoveLiquidity handles MsgRemoveLiquidity.
func (ms MsgServer) RemoveLiquidity(ctx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	amountA, amountB, err := ms.Keeper.RemoveLiquidity(ctx, msg.Provider, msg.Pool, msg.Accounts,
		msg.LPAmount, msg.AmountAMin, msg.AmountBMin)
	if err != nil {
		return nil, err
	}
	return &types.MsgLiquidityResponse{AmountA: amountA, AmountB: amountB, Shares: msg.LPAmount}, nil
}

// Swap handles MsgSwap.
func (ms MsgServer) Swap(ctx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	out, err := ms.Keeper.Swap(ctx, msg.Trader, msg.Pool, msg.Source, msg.Destination, msg.AmountIn, msg.MinAmountOut)
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{AmountOut: out}, nil
}

// CollectFees handles MsgCollectFees.
func (ms MsgServer) CollectFees(ctx context.Context, msg *types.MsgCollectFees) (*types.MsgCollectFeesResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	feeA, feeB, err := ms.Keeper.CollectFees(ctx, msg.Caller, msg.Pool, msg.ReceiverA, msg.ReceiverB)
	if err != nil {
		return nil, err
	}
	return &types.MsgCollectFeesResponse{FeeA: feeA, FeeB: feeB}, nil
}

// SetPaused handles MsgSetPaused.
func (ms MsgServer) SetPaused(ctx context.Context, msg *types.MsgSetPaused) (*types.MsgAdminResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.Keeper.SetPaused(ctx, msg.Caller, msg.Pool, msg.Paused); err != nil {
		return nil, err
	}
	return &types.MsgAdminResponse{}, nil
}

// UpdateFeeRate handles MsgUpdateFeeRate.
func (ms MsgServer) UpdateFeeRate(ctx context.Context, msg *types.MsgUpdateFeeRate) (*types.MsgAdminResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.Keeper.UpdateFeeRate(ctx, msg.Caller, msg.Pool, msg.FeeRateBps); err != nil {
		return nil, err
	}
	return &types.MsgAdminResponse{}, nil
}

// TransferAdmin handles MsgTransferAdmin.
func (ms MsgServer) TransferAdmin(ctx context.Context, msg *types.MsgTransferAdmin) (*types.MsgAdminResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := ms.Keeper.TransferAdmin(ctx, msg.Caller, msg.Pool, msg.NewAdmin); err != nil {
		return nil, err
	}
	return &types.MsgAdminResponse{}, nil
}
