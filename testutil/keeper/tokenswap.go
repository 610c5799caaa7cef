package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/tokenswap/x/tokenswap/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/ledger"
	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// TestMintAuthority mints every asset registered through RegisterTestAsset.
var TestMintAuthority = types.NamedRef("test-mint-authority")

// TokenswapKeeper creates a tokenswap keeper over an in-memory multistore with
// the store-backed ledger mounted next to it.
func TokenswapKeeper(t testing.TB) (keeper.Keeper, sdk.Context, ledger.StoreLedger) {
	return TokenswapKeeperWithLedger(t, nil)
}

// TokenswapKeeperWithLedger is TokenswapKeeper with the ledger seen by the
// keeper passed through wrap first, so tests can inject ledger faults.
func TokenswapKeeperWithLedger(t testing.TB, wrap func(types.TokenLedger) types.TokenLedger) (keeper.Keeper, sdk.Context, ledger.StoreLedger) {
	return newTokenswapKeeper(t, wrap, keeper.ModuleCustody{})
}

// TokenswapKeeperWithCustody is TokenswapKeeper with a caller-supplied custody authority.
func TokenswapKeeperWithCustody(t testing.TB, custody types.CustodyAuthority) (keeper.Keeper, sdk.Context, ledger.StoreLedger) {
	return newTokenswapKeeper(t, nil, custody)
}

func newTokenswapKeeper(t testing.TB, wrap func(types.TokenLedger) types.TokenLedger, custody types.CustodyAuthority) (keeper.Keeper, sdk.Context, ledger.StoreLedger) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ledgerKey := storetypes.NewKVStoreKey(types.LedgerStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	l := ledger.NewStoreLedger(ledgerKey)
	var tl types.TokenLedger = l
	if wrap != nil {
		tl = wrap(l)
	}

	k := keeper.NewKeeper(storeKey, tl, custody)
	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, ctx, l
}

// RegisterTestAsset registers a named asset minted by TestMintAuthority.
func RegisterTestAsset(t testing.TB, l ledger.StoreLedger, ctx sdk.Context, name string) types.Ref {
	asset := types.NamedRef(name)
	require.NoError(t, l.RegisterAsset(ctx, asset, TestMintAuthority))
	return asset
}

// FundAccount opens an account of asset for owner and mints amount into it.
func FundAccount(t testing.TB, l ledger.StoreLedger, ctx sdk.Context, owner, asset types.Ref, amount uint64) types.Ref {
	account, err := l.CreateAccount(ctx, owner, asset)
	require.NoError(t, err)
	if amount > 0 {
		require.NoError(t, l.Mint(ctx, TestMintAuthority, asset, account, amount))
	}
	return account
}

// TestPool is an initialized pool together with the identities used to set it up.
type TestPool struct {
	ID       types.PoolID
	Pool     *types.PoolState
	Admin    types.Ref
	Provider types.Ref
	Accounts types.LiquidityAccounts
}

// CreateTestPool registers two fresh assets and initializes a pool over them.
// The provider is funded with fundA and fundB and given an empty LP account.
func CreateTestPool(t testing.TB, k keeper.Keeper, ctx sdk.Context, l ledger.StoreLedger, feeRateBps, fundA, fundB uint64) TestPool {
	assetA := RegisterTestAsset(t, l, ctx, "asset-a")
	assetB := RegisterTestAsset(t, l, ctx, "asset-b")
	admin := types.NamedRef("admin")
	provider := types.NamedRef("provider")

	pool, err := k.InitializePool(ctx, admin, assetA, assetB, 0, feeRateBps)
	require.NoError(t, err)

	return TestPool{
		ID:       pool.ID(),
		Pool:     pool,
		Admin:    admin,
		Provider: provider,
		Accounts: types.LiquidityAccounts{
			TokenA: FundAccount(t, l, ctx, provider, assetA, fundA),
			TokenB: FundAccount(t, l, ctx, provider, assetB, fundB),
			LP:     FundAccount(t, l, ctx, provider, pool.LPMint, 0),
		},
	}
}

// CreateFundedPool is CreateTestPool followed by an initial deposit of
// (amountA, amountB) from the provider's funds.
func CreateFundedPool(t testing.TB, k keeper.Keeper, ctx sdk.Context, l ledger.StoreLedger, feeRateBps, amountA, amountB uint64) TestPool {
	tp := CreateTestPool(t, k, ctx, l, feeRateBps, amountA, amountB)
	_, err := k.AddInitialLiquidity(ctx, tp.Provider, tp.ID, tp.Accounts, amountA, amountB)
	require.NoError(t, err)
	return tp
}
