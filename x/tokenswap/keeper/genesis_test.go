package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/tokenswap/testutil/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

func TestGenesis_DefaultExportsEmpty(t *testing.T) {
	k, ctx, _ := keepertest.TokenswapKeeper(t)

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Equal(t, types.DefaultGenesis(), exported)
}

func TestGenesis_RoundTrip(t *testing.T) {
	k, ctx, l := keepertest.TokenswapKeeper(t)
	tp := keepertest.CreateFundedPool(t, k, ctx, l, 30, 10000, 10000)
	trader := newTrader(t, l, ctx, tp.Pool, "trader", 1000, 0)
	_, err := k.Swap(ctx, trader.owner, tp.ID, trader.a, trader.b, 1000, 0)
	require.NoError(t, err)
	require.NoError(t, k.SetPaused(ctx, tp.Admin, tp.ID, true))

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Len(t, exported.Pools, 1)
	require.True(t, exported.Pools[0].Paused)
	require.Equal(t, uint64(2), exported.Pools[0].AccumulatedFeeB)

	k2, ctx2, _ := keepertest.TokenswapKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))

	reexported, err := k2.ExportGenesis(ctx2)
	require.NoError(t, err)
	require.Equal(t, exported, reexported)
	require.Equal(t, uint64(1), k2.GetPoolCount(ctx2))
}

func TestGenesis_Rejections(t *testing.T) {
	k, ctx, l := keepertest.TokenswapKeeper(t)
	tp := keepertest.CreateTestPool(t, k, ctx, l, 30, 0, 0)
	pool := *tp.Pool

	k2, ctx2, _ := keepertest.TokenswapKeeper(t)

	duplicate := types.GenesisState{Pools: []types.PoolState{pool, pool}}
	require.ErrorIs(t, k2.InitGenesis(ctx2, duplicate), types.ErrPoolAlreadyExists)

	forged := pool
	forged.Authority = types.NamedRef("forged")
	require.ErrorIs(t, k2.InitGenesis(ctx2, types.GenesisState{Pools: []types.PoolState{forged}}), types.ErrInvalidSwapPool)

	reseeded := pool
	reseeded.DerivationSeed++
	require.ErrorIs(t, k2.InitGenesis(ctx2, types.GenesisState{Pools: []types.PoolState{reseeded}}), types.ErrInvalidSwapPool)

	tooExpensive := pool
	tooExpensive.FeeRateBps = types.MaxFeeRateBps + 1
	require.ErrorIs(t, k2.InitGenesis(ctx2, types.GenesisState{Pools: []types.PoolState{tooExpensive}}), types.ErrFeeTooHigh)
}
