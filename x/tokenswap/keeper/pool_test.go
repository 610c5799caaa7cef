package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/tokenswap/testutil/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/ledger"
	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

func TestInitializePool(t *testing.T) {
	k, ctx, l := keepertest.TokenswapKeeper(t)
	assetA := keepertest.RegisterTestAsset(t, l, ctx, "asset-a")
	assetB := keepertest.RegisterTestAsset(t, l, ctx, "asset-b")
	creator := types.NamedRef("creator")

	pool, err := k.InitializePool(ctx, creator, assetA, assetB, 3, 30)
	require.NoError(t, err)
	require.NoError(t, pool.Validate())

	require.Equal(t, assetA, pool.AssetA)
	require.Equal(t, assetB, pool.AssetB)
	require.Equal(t, creator, pool.Admin)
	require.Equal(t, uint64(30), pool.FeeRateBps)
	require.Equal(t, uint8(3), pool.DerivationSeed)
	require.Equal(t, uint8(3), pool.Salt)
	require.False(t, pool.Paused)
	require.Zero(t, pool.AccumulatedFeeA)
	require.Zero(t, pool.AccumulatedFeeB)

	authority, seed, err := keeper.ModuleCustody{}.Derive(pool.ID())
	require.NoError(t, err)
	require.Equal(t, authority, pool.Authority)
	require.Equal(t, uint8(3), seed)

	vaultA, err := l.GetAccount(ctx, pool.VaultA)
	require.NoError(t, err)
	require.Equal(t, ledger.Account{Ref: pool.VaultA, Owner: authority, Asset: assetA}, vaultA)
	vaultB, err := l.GetAccount(ctx, pool.VaultB)
	require.NoError(t, err)
	require.Equal(t, ledger.Account{Ref: pool.VaultB, Owner: authority, Asset: assetB}, vaultB)
	mint, err := l.GetAsset(ctx, pool.LPMint)
	require.NoError(t, err)
	require.Equal(t, ledger.Asset{Ref: pool.LPMint, MintAuthority: authority}, mint)

	stored, err := k.GetPool(ctx, pool.ID())
	require.NoError(t, err)
	require.Equal(t, pool, stored)
	require.Equal(t, uint64(1), k.GetPoolCount(ctx))
	require.True(t, hasEvent(ctx, types.EventTypePoolInitialized))
}

func TestInitializePool_Rejections(t *testing.T) {
	k, ctx, l := keepertest.TokenswapKeeper(t)
	assetA := keepertest.RegisterTestAsset(t, l, ctx, "asset-a")
	assetB := keepertest.RegisterTestAsset(t, l, ctx, "asset-b")
	creator := types.NamedRef("creator")

	_, err := k.InitializePool(ctx, creator, assetA, assetB, 0, types.MaxFeeRateBps+1)
	require.ErrorIs(t, err, types.ErrFeeTooHigh)

	_, err = k.InitializePool(ctx, types.Ref{}, assetA, assetB, 0, 30)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = k.InitializePool(ctx, creator, assetA, assetA, 0, 30)
	require.ErrorIs(t, err, types.ErrInvalidToken)

	_, err = k.InitializePool(ctx, creator, types.Ref{}, assetB, 0, 30)
	require.ErrorIs(t, err, types.ErrInvalidToken)

	// An asset unknown to the ledger cannot get a vault; nothing is stored.
	_, err = k.InitializePool(ctx, creator, assetA, types.NamedRef("unregistered"), 0, 30)
	require.ErrorIs(t, err, ledger.ErrUnknownAsset)

	require.Zero(t, k.GetPoolCount(ctx))
	pools, err := k.GetAllPools(ctx)
	require.NoError(t, err)
	require.Empty(t, pools)
}

func TestInitializePool_MaxFeeAccepted(t *testing.T) {
	k, ctx, l := keepertest.TokenswapKeeper(t)
	assetA := keepertest.RegisterTestAsset(t, l, ctx, "asset-a")
	assetB := keepertest.RegisterTestAsset(t, l, ctx, "asset-b")

	pool, err := k.InitializePool(ctx, types.NamedRef("creator"), assetA, assetB, 0, types.MaxFeeRateBps)
	require.NoError(t, err)
	require.Equal(t, types.MaxFeeRateBps, pool.FeeRateBps)
}

func TestInitializePool_SaltSeparatesPools(t *testing.T) {
	k, ctx, l := keepertest.TokenswapKeeper(t)
	assetA := keepertest.RegisterTestAsset(t, l, ctx, "asset-a")
	assetB := keepertest.RegisterTestAsset(t, l, ctx, "asset-b")
	creator := types.NamedRef("creator")

	first, err := k.InitializePool(ctx, creator, assetA, assetB, 0, 30)
	require.NoError(t, err)

	_, err = k.InitializePool(ctx, creator, assetA, assetB, 0, 50)
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)

	second, err := k.InitializePool(ctx, creator, assetA, assetB, 1, 50)
	require.NoError(t, err)
	require.NotEqual(t, first.Authority, second.Authority)
	require.NotEqual(t, first.VaultA, second.VaultA)
	require.NotEqual(t, first.LPMint, second.LPMint)

	// The reversed pair is a distinct pool.
	_, err = k.InitializePool(ctx, creator, assetB, assetA, 0, 30)
	require.NoError(t, err)

	require.Equal(t, uint64(3), k.GetPoolCount(ctx))
	pools, err := k.GetAllPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 3)
}

// fixedSeedCustody derives module custody identities but reports a seed that
// has nothing to do with the requested salt.
type fixedSeedCustody struct {
	keeper.ModuleCustody
}

func (c fixedSeedCustody) Derive(id types.PoolID) (types.Ref, uint8, error) {
	authority, _, err := c.ModuleCustody.Derive(id)
	return authority, 255, err
}

func TestInitializePool_SeedDiffersFromSalt(t *testing.T) {
	k, ctx, l := keepertest.TokenswapKeeperWithCustody(t, fixedSeedCustody{})
	assetA := keepertest.RegisterTestAsset(t, l, ctx, "asset-a")
	assetB := keepertest.RegisterTestAsset(t, l, ctx, "asset-b")
	creator := types.NamedRef("creator")

	pool, err := k.InitializePool(ctx, creator, assetA, assetB, 0, 30)
	require.NoError(t, err)
	require.Equal(t, uint8(255), pool.DerivationSeed)
	require.Equal(t, uint8(0), pool.Salt)

	id := types.NewPoolID(assetA, assetB, 0)
	require.Equal(t, id, pool.ID())
	stored, err := k.GetPool(ctx, id)
	require.NoError(t, err)
	require.Equal(t, pool, stored)

	_, err = k.GetPool(ctx, types.NewPoolID(assetA, assetB, 255))
	require.ErrorIs(t, err, types.ErrPoolNotFound)

	_, err = k.InitializePool(ctx, creator, assetA, assetB, 0, 30)
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)

	// A pool at the salt equal to the first pool's seed keeps its own record.
	other, err := k.InitializePool(ctx, creator, assetA, assetB, 255, 50)
	require.NoError(t, err)
	require.Equal(t, uint8(255), other.Salt)

	stored, err = k.GetPool(ctx, id)
	require.NoError(t, err)
	require.Equal(t, uint64(30), stored.FeeRateBps)
	require.Equal(t, uint64(2), k.GetPoolCount(ctx))

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	k2, ctx2, _ := keepertest.TokenswapKeeperWithCustody(t, fixedSeedCustody{})
	require.NoError(t, k2.InitGenesis(ctx2, *exported))
	restored, err := k2.GetPool(ctx2, id)
	require.NoError(t, err)
	require.Equal(t, pool, restored)
}

func TestGetPool_NotFound(t *testing.T) {
	k, ctx, _ := keepertest.TokenswapKeeper(t)

	id := types.NewPoolID(types.NamedRef("a"), types.NamedRef("b"), 0)
	_, err := k.GetPool(ctx, id)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	require.False(t, k.HasPool(ctx, id))
}

func TestModuleCustody(t *testing.T) {
	id := types.NewPoolID(types.NamedRef("a"), types.NamedRef("b"), 9)

	authority, seed, err := keeper.ModuleCustody{}.Derive(id)
	require.NoError(t, err)
	require.False(t, authority.IsEmpty())
	require.Equal(t, uint8(9), seed)

	again, _, err := keeper.ModuleCustody{}.Derive(id)
	require.NoError(t, err)
	require.Equal(t, authority, again)

	capability, err := keeper.ModuleCustody{}.SignAs(id)
	require.NoError(t, err)
	require.Equal(t, authority, capability.Signer())

	_, _, err = keeper.ModuleCustody{}.Derive(types.NewPoolID(id.AssetA, id.AssetA, 0))
	require.ErrorIs(t, err, types.ErrInvalidToken)
}
