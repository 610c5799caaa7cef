package types

import (
	"context"

	"github.com/cosmos/cosmos-sdk/types/query"
)

// QueryServer is the read surface of the tokenswap module.
type QueryServer interface {
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	Pools(context.Context, *QueryPoolsRequest) (*QueryPoolsResponse, error)
	PoolStats(context.Context, *QueryPoolStatsRequest) (*QueryPoolStatsResponse, error)
	Price(context.Context, *QueryPriceRequest) (*QueryPriceResponse, error)
	SimulateSwap(context.Context, *QuerySimulateSwapRequest) (*QuerySimulateSwapResponse, error)
	UserShare(context.Context, *QueryUserShareRequest) (*QueryUserShareResponse, error)
	AccumulatedFees(context.Context, *QueryAccumulatedFeesRequest) (*QueryAccumulatedFeesResponse, error)
}

type QueryPoolRequest struct {
	Pool PoolID `json:"pool"`
}

type QueryPoolResponse struct {
	Pool PoolState `json:"pool"`
}

type QueryPoolsRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryPoolsResponse struct {
	Pools      []PoolState         `json:"pools"`
	Pagination *query.PageResponse `json:"pagination,omitempty"`
}

type QueryPoolStatsRequest struct {
	Pool PoolID `json:"pool"`
}

type QueryPoolStatsResponse struct {
	Stats PoolStats `json:"stats"`
}

// QueryPriceRequest asks for the price of Asset in units of the pool's other
// asset, scaled by PriceScale.
type QueryPriceRequest struct {
	Pool  PoolID `json:"pool"`
	Asset Ref    `json:"asset"`
}

type QueryPriceResponse struct {
	Price uint64 `json:"price"`
}

type QuerySimulateSwapRequest struct {
	Pool      PoolID    `json:"pool"`
	AmountIn  uint64    `json:"amount_in"`
	Direction Direction `json:"direction"`
}

// QuerySimulateSwapResponse breaks down a simulated trade. AmountOut is net
// of Fee.
type QuerySimulateSwapResponse struct {
	AmountOut uint64 `json:"amount_out"`
	GrossOut  uint64 `json:"gross_out"`
	Fee       uint64 `json:"fee"`
}

type QueryUserShareRequest struct {
	Pool      PoolID `json:"pool"`
	LPAccount Ref    `json:"lp_account"`
}

type QueryUserShareResponse struct {
	Share UserShare `json:"share"`
}

type QueryAccumulatedFeesRequest struct {
	Pool PoolID `json:"pool"`
}

type QueryAccumulatedFeesResponse struct {
	FeeA uint64 `json:"fee_a"`
	FeeB uint64 `json:"fee_b"`
}
