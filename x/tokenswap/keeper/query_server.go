package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/store/prefix"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

type queryServer struct {
	Keeper
}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 1000
)

// NewQueryServerImpl returns an implementation of the tokenswap QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Pool returns a specific pool record
func (qs queryServer) Pool(ctx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPool(ctx, req.Pool)
	if err != nil {
		return nil, err
	}
	return &types.QueryPoolResponse{Pool: *pool}, nil
}

// Pools returns pool records in key order with pagination
func (qs queryServer) Pools(ctx context.Context, req *types.QueryPoolsRequest) (*types.QueryPoolsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	page := req.Pagination
	if page == nil {
		page = &query.PageRequest{Limit: defaultPaginationLimit}
	} else {
		copied := *page
		page = &copied
		if page.Limit == 0 {
			page.Limit = defaultPaginationLimit
		}
		if page.Limit > maxPaginationLimit {
			page.Limit = maxPaginationLimit
		}
	}

	store := prefix.NewStore(qs.Keeper.getStore(ctx), types.PoolKeyPrefix)
	var pools []types.PoolState
	pageRes, err := query.Paginate(store, page, func(_, value []byte) error {
		var pool types.PoolState
		if err := pool.Unmarshal(value); err != nil {
			return err
		}
		pools = append(pools, pool)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Pools: paginate: %w", err)
	}

	return &types.QueryPoolsResponse{Pools: pools, Pagination: pageRes}, nil
}

// PoolStats returns live reserves and LP supply
func (qs queryServer) PoolStats(ctx context.Context, req *types.QueryPoolStatsRequest) (*types.QueryPoolStatsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	stats, err := qs.Keeper.GetPoolStats(ctx, req.Pool)
	if err != nil {
		return nil, err
	}
	return &types.QueryPoolStatsResponse{Stats: stats}, nil
}

// Price returns the scaled price of an asset
func (qs queryServer) Price(ctx context.Context, req *types.QueryPriceRequest) (*types.QueryPriceResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	price, err := qs.Keeper.GetPrice(ctx, req.Pool, req.Asset)
	if err != nil {
		return nil, err
	}
	return &types.QueryPriceResponse{Price: price}, nil
}

// SimulateSwap prices a trade without executing it
func (qs queryServer) SimulateSwap(ctx context.Context, req *types.QuerySimulateSwapRequest) (*types.QuerySimulateSwapResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	quote, err := qs.Keeper.QuoteSwap(ctx, req.Pool, req.AmountIn, req.Direction)
	if err != nil {
		return nil, err
	}
	return &types.QuerySimulateSwapResponse{
		AmountOut: quote.NetOut,
		GrossOut:  quote.GrossOut,
		Fee:       quote.Fee,
	}, nil
}

// UserShare returns an LP account's share of a pool
func (qs queryServer) UserShare(ctx context.Context, req *types.QueryUserShareRequest) (*types.QueryUserShareResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	share, err := qs.Keeper.GetUserShare(ctx, req.Pool, req.LPAccount)
	if err != nil {
		return nil, err
	}
	return &types.QueryUserShareResponse{Share: share}, nil
}

// AccumulatedFees returns the fees accrued since the last collection
func (qs queryServer) AccumulatedFees(ctx context.Context, req *types.QueryAccumulatedFeesRequest) (*types.QueryAccumulatedFeesResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	feeA, feeB, err := qs.Keeper.GetAccumulatedFees(ctx, req.Pool)
	if err != nil {
		return nil, err
	}
	return &types.QueryAccumulatedFeesResponse{FeeA: feeA, FeeB: feeB}, nil
}
