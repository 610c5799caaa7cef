package ledger_test

import (
	"math"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/tokenswap/x/tokenswap/ledger"
	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

func setupLedger(t *testing.T) (ledger.StoreLedger, sdk.Context) {
	key := storetypes.NewKVStoreKey(types.LedgerStoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	return ledger.NewStoreLedger(key), ctx
}

var (
	minter = types.NamedRef("minter")
	alice  = types.NamedRef("alice")
	bob    = types.NamedRef("bob")
)

func TestCreateAssetAndAccount(t *testing.T) {
	l, ctx := setupLedger(t)

	asset, err := l.CreateAsset(ctx, minter)
	require.NoError(t, err)
	other, err := l.CreateAsset(ctx, minter)
	require.NoError(t, err)
	require.NotEqual(t, asset, other)

	account, err := l.CreateAccount(ctx, alice, asset)
	require.NoError(t, err)

	got, err := l.AssetOf(ctx, account)
	require.NoError(t, err)
	require.Equal(t, asset, got)

	_, err = l.CreateAccount(ctx, alice, types.NamedRef("missing"))
	require.ErrorIs(t, err, ledger.ErrUnknownAsset)

	_, err = l.CreateAsset(ctx, types.Ref{})
	require.ErrorIs(t, err, ledger.ErrInvalidRef)
}

func TestRefsAreDeterministic(t *testing.T) {
	l1, ctx1 := setupLedger(t)
	l2, ctx2 := setupLedger(t)

	a1, err := l1.CreateAsset(ctx1, minter)
	require.NoError(t, err)
	a2, err := l2.CreateAsset(ctx2, minter)
	require.NoError(t, err)
	require.Equal(t, a1, a2)
}

func TestRegisterAsset(t *testing.T) {
	l, ctx := setupLedger(t)
	usdc := types.NamedRef("usdc")

	require.NoError(t, l.RegisterAsset(ctx, usdc, minter))
	require.ErrorIs(t, l.RegisterAsset(ctx, usdc, minter), ledger.ErrAssetExists)
	require.ErrorIs(t, l.RegisterAsset(ctx, types.Ref{}, minter), ledger.ErrInvalidRef)

	asset, err := l.GetAsset(ctx, usdc)
	require.NoError(t, err)
	require.Equal(t, ledger.Asset{Ref: usdc, MintAuthority: minter}, asset)
}

func TestMintAndBurn(t *testing.T) {
	l, ctx := setupLedger(t)
	asset, err := l.CreateAsset(ctx, minter)
	require.NoError(t, err)
	account, err := l.CreateAccount(ctx, alice, asset)
	require.NoError(t, err)

	require.ErrorIs(t, l.Mint(ctx, alice, asset, account, 10), ledger.ErrNotMintAuthority)
	require.NoError(t, l.Mint(ctx, minter, asset, account, 100))

	supply, err := l.SupplyOf(ctx, asset)
	require.NoError(t, err)
	require.Equal(t, uint64(100), supply)

	require.ErrorIs(t, l.Mint(ctx, minter, asset, account, math.MaxUint64), ledger.ErrOverflow)

	require.ErrorIs(t, l.Burn(ctx, bob, asset, account, 10), ledger.ErrNotOwner)
	require.ErrorIs(t, l.Burn(ctx, alice, asset, account, 101), ledger.ErrInsufficientBalance)
	require.NoError(t, l.Burn(ctx, alice, asset, account, 40))

	bal, err := l.BalanceOf(ctx, account)
	require.NoError(t, err)
	require.Equal(t, uint64(60), bal)
	supply, err = l.SupplyOf(ctx, asset)
	require.NoError(t, err)
	require.Equal(t, uint64(60), supply)

	other, err := l.CreateAsset(ctx, minter)
	require.NoError(t, err)
	require.ErrorIs(t, l.Mint(ctx, minter, other, account, 1), ledger.ErrAssetMismatch)
	require.ErrorIs(t, l.Burn(ctx, alice, other, account, 1), ledger.ErrAssetMismatch)
}

func TestTransfer(t *testing.T) {
	l, ctx := setupLedger(t)
	asset, err := l.CreateAsset(ctx, minter)
	require.NoError(t, err)
	from, err := l.CreateAccount(ctx, alice, asset)
	require.NoError(t, err)
	to, err := l.CreateAccount(ctx, bob, asset)
	require.NoError(t, err)
	require.NoError(t, l.Mint(ctx, minter, asset, from, 100))

	require.ErrorIs(t, l.Transfer(ctx, bob, from, to, 10), ledger.ErrNotOwner)
	require.ErrorIs(t, l.Transfer(ctx, alice, from, to, 101), ledger.ErrInsufficientBalance)
	require.ErrorIs(t, l.Transfer(ctx, alice, from, types.NamedRef("nowhere"), 1), ledger.ErrUnknownAccount)

	require.NoError(t, l.Transfer(ctx, alice, from, to, 30))
	require.NoError(t, l.Transfer(ctx, alice, from, from, 70))

	fromBal, err := l.BalanceOf(ctx, from)
	require.NoError(t, err)
	toBal, err := l.BalanceOf(ctx, to)
	require.NoError(t, err)
	require.Equal(t, uint64(70), fromBal)
	require.Equal(t, uint64(30), toBal)

	otherAsset, err := l.CreateAsset(ctx, minter)
	require.NoError(t, err)
	foreign, err := l.CreateAccount(ctx, bob, otherAsset)
	require.NoError(t, err)
	require.ErrorIs(t, l.Transfer(ctx, alice, from, foreign, 1), ledger.ErrAssetMismatch)
}

func TestIterateAccounts(t *testing.T) {
	l, ctx := setupLedger(t)
	asset, err := l.CreateAsset(ctx, minter)
	require.NoError(t, err)
	for _, owner := range []types.Ref{alice, bob, alice} {
		_, err := l.CreateAccount(ctx, owner, asset)
		require.NoError(t, err)
	}

	var owners []types.Ref
	require.NoError(t, l.IterateAccounts(ctx, func(a ledger.Account) bool {
		owners = append(owners, a.Owner)
		return false
	}))
	require.Len(t, owners, 3)

	count := 0
	require.NoError(t, l.IterateAccounts(ctx, func(ledger.Account) bool {
		count++
		return true
	}))
	require.Equal(t, 1, count)
}
