package keeper_test

import (
	"testing"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/tokenswap/testutil/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

func TestQueryServer_Reads(t *testing.T) {
	k, ctx, l := keepertest.TokenswapKeeper(t)
	qs := keeper.NewQueryServerImpl(k)
	tp := keepertest.CreateFundedPool(t, k, ctx, l, 30, 10000, 10000)

	poolResp, err := qs.Pool(ctx, &types.QueryPoolRequest{Pool: tp.ID})
	require.NoError(t, err)
	require.Equal(t, *tp.Pool, poolResp.Pool)

	statsResp, err := qs.PoolStats(ctx, &types.QueryPoolStatsRequest{Pool: tp.ID})
	require.NoError(t, err)
	require.Equal(t, types.PoolStats{ReserveA: 10000, ReserveB: 10000, LPSupply: 10000}, statsResp.Stats)

	priceResp, err := qs.Price(ctx, &types.QueryPriceRequest{Pool: tp.ID, Asset: tp.Pool.AssetA})
	require.NoError(t, err)
	require.Equal(t, types.PriceScale, priceResp.Price)

	simResp, err := qs.SimulateSwap(ctx, &types.QuerySimulateSwapRequest{Pool: tp.ID, AmountIn: 1000, Direction: types.AToB})
	require.NoError(t, err)
	require.Equal(t, types.QuerySimulateSwapResponse{AmountOut: 908, GrossOut: 910, Fee: 2}, *simResp)

	shareResp, err := qs.UserShare(ctx, &types.QueryUserShareRequest{Pool: tp.ID, LPAccount: tp.Accounts.LP})
	require.NoError(t, err)
	require.Equal(t, types.UserShare{ShareScaled: types.ShareScale, TokenA: 10000, TokenB: 10000}, shareResp.Share)

	trader := newTrader(t, l, ctx, tp.Pool, "trader", 1000, 0)
	_, err = k.Swap(ctx, trader.owner, tp.ID, trader.a, trader.b, 1000, 0)
	require.NoError(t, err)
	feesResp, err := qs.AccumulatedFees(ctx, &types.QueryAccumulatedFeesRequest{Pool: tp.ID})
	require.NoError(t, err)
	require.Equal(t, types.QueryAccumulatedFeesResponse{FeeA: 0, FeeB: 2}, *feesResp)
}

func TestQueryServer_Errors(t *testing.T) {
	k, ctx, _ := keepertest.TokenswapKeeper(t)
	qs := keeper.NewQueryServerImpl(k)

	_, err := qs.Pool(ctx, nil)
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)
	_, err = qs.Pools(ctx, nil)
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)
	_, err = qs.SimulateSwap(ctx, nil)
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)

	missing := types.NewPoolID(types.NamedRef("a"), types.NamedRef("b"), 0)
	_, err = qs.Pool(ctx, &types.QueryPoolRequest{Pool: missing})
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = qs.PoolStats(ctx, &types.QueryPoolStatsRequest{Pool: missing})
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = qs.AccumulatedFees(ctx, &types.QueryAccumulatedFeesRequest{Pool: missing})
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestQueryServer_PoolsPagination(t *testing.T) {
	k, ctx, l := keepertest.TokenswapKeeper(t)
	qs := keeper.NewQueryServerImpl(k)
	assetA := keepertest.RegisterTestAsset(t, l, ctx, "asset-a")
	assetB := keepertest.RegisterTestAsset(t, l, ctx, "asset-b")
	for salt := uint8(0); salt < 3; salt++ {
		_, err := k.InitializePool(ctx, types.NamedRef("creator"), assetA, assetB, salt, 30)
		require.NoError(t, err)
	}

	all, err := qs.Pools(ctx, &types.QueryPoolsRequest{})
	require.NoError(t, err)
	require.Len(t, all.Pools, 3)

	first, err := qs.Pools(ctx, &types.QueryPoolsRequest{Pagination: &query.PageRequest{Limit: 2, CountTotal: true}})
	require.NoError(t, err)
	require.Len(t, first.Pools, 2)
	require.Equal(t, uint64(3), first.Pagination.Total)
	require.NotEmpty(t, first.Pagination.NextKey)

	rest, err := qs.Pools(ctx, &types.QueryPoolsRequest{Pagination: &query.PageRequest{Key: first.Pagination.NextKey, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, rest.Pools, 1)
	require.Empty(t, rest.Pagination.NextKey)

	seen := map[types.PoolID]bool{}
	for _, p := range append(first.Pools, rest.Pools...) {
		seen[p.ID()] = true
	}
	require.Len(t, seen, 3)
}
