package keeper_test

import (
	"context"
	"errors"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/tokenswap/testutil/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/ledger"
	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

var errLedgerDown = errors.New("ledger unavailable")

// faultyLedger fails every transfer into failTo.
type faultyLedger struct {
	types.TokenLedger
	failTo types.Ref
}

func (f *faultyLedger) Transfer(ctx context.Context, signer, from, to types.Ref, amount uint64) error {
	if !f.failTo.IsEmpty() && to == f.failTo {
		return errLedgerDown
	}
	return f.TokenLedger.Transfer(ctx, signer, from, to, amount)
}

func faultyKeeper(t *testing.T) (keeper.Keeper, sdk.Context, ledger.StoreLedger, *faultyLedger) {
	fl := &faultyLedger{}
	k, ctx, l := keepertest.TokenswapKeeperWithLedger(t, func(inner types.TokenLedger) types.TokenLedger {
		fl.TokenLedger = inner
		return fl
	})
	return k, ctx, l, fl
}

type traderAccounts struct {
	owner types.Ref
	a, b  types.Ref
}

func newTrader(t *testing.T, l ledger.StoreLedger, ctx sdk.Context, pool *types.PoolState, name string, fundA, fundB uint64) traderAccounts {
	owner := types.NamedRef(name)
	return traderAccounts{
		owner: owner,
		a:     keepertest.FundAccount(t, l, ctx, owner, pool.AssetA, fundA),
		b:     keepertest.FundAccount(t, l, ctx, owner, pool.AssetB, fundB),
	}
}

func newProvider(t *testing.T, l ledger.StoreLedger, ctx sdk.Context, pool *types.PoolState, name string, fundA, fundB uint64) (types.Ref, types.LiquidityAccounts) {
	owner := types.NamedRef(name)
	return owner, types.LiquidityAccounts{
		TokenA: keepertest.FundAccount(t, l, ctx, owner, pool.AssetA, fundA),
		TokenB: keepertest.FundAccount(t, l, ctx, owner, pool.AssetB, fundB),
		LP:     keepertest.FundAccount(t, l, ctx, owner, pool.LPMint, 0),
	}
}

func balanceOf(t *testing.T, l ledger.StoreLedger, ctx sdk.Context, account types.Ref) uint64 {
	t.Helper()
	bal, err := l.BalanceOf(ctx, account)
	require.NoError(t, err)
	return bal
}

// stateSnapshot captures everything an operation could touch.
type stateSnapshot struct {
	pool     []byte
	accounts []ledger.Account
	lpSupply uint64
	events   int
}

func snapshot(t *testing.T, k keeper.Keeper, l ledger.StoreLedger, ctx sdk.Context, id types.PoolID) stateSnapshot {
	t.Helper()
	pool, err := k.GetPool(ctx, id)
	require.NoError(t, err)

	var accounts []ledger.Account
	require.NoError(t, l.IterateAccounts(ctx, func(a ledger.Account) bool {
		accounts = append(accounts, a)
		return false
	}))
	supply, err := l.SupplyOf(ctx, pool.LPMint)
	require.NoError(t, err)

	return stateSnapshot{
		pool:     pool.Marshal(),
		accounts: accounts,
		lpSupply: supply,
		events:   len(ctx.EventManager().Events()),
	}
}

func hasEvent(ctx sdk.Context, eventType string) bool {
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type == eventType {
			return true
		}
	}
	return false
}
