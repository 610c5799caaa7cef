package keeper_test

import (
	"math/big"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"pgregory.net/rapid"

	keepertest "github.com/paw-chain/tokenswap/testutil/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/ledger"
	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

func TestSafeMulDivMatchesBigInt(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Uint64().Draw(t, "a")
		b := rapid.Uint64().Draw(t, "b")
		c := rapid.Uint64Min(1).Draw(t, "c")

		want := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
		want.Quo(want, new(big.Int).SetUint64(c))

		got, err := keeper.SafeMulDivUint64(a, b, c)
		if !want.IsUint64() {
			if err == nil {
				t.Fatalf("expected overflow for %d*%d/%d", a, b, c)
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want.Uint64() {
			t.Fatalf("got %d, want %s", got, want)
		}
	})
}

func TestSqrtProductIsFloorRoot(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Uint64().Draw(t, "a")
		b := rapid.Uint64().Draw(t, "b")

		root, err := keeper.SqrtProduct(a, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		product := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
		r := new(big.Int).SetUint64(root)
		next := new(big.Int).Add(r, big.NewInt(1))
		if new(big.Int).Mul(r, r).Cmp(product) > 0 {
			t.Fatalf("root %d too large for %s", root, product)
		}
		if new(big.Int).Mul(next, next).Cmp(product) <= 0 {
			t.Fatalf("root %d too small for %s", root, product)
		}
	})
}

func TestCalculateSwapBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.Uint64Range(1, 1<<40).Draw(t, "inputReserve")
		out := rapid.Uint64Range(1, 1<<40).Draw(t, "outputReserve")
		amount := rapid.Uint64Range(1, 1<<40).Draw(t, "amountIn")
		fee := rapid.Uint64Range(0, types.MaxFeeRateBps).Draw(t, "feeRateBps")

		q, err := keeper.CalculateSwap(in, out, amount, fee)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.NetOut > q.GrossOut || q.GrossOut > out {
			t.Fatalf("net %d gross %d out %d", q.NetOut, q.GrossOut, out)
		}
		if q.Fee+q.NetOut != q.GrossOut {
			t.Fatalf("fee %d + net %d != gross %d", q.Fee, q.NetOut, q.GrossOut)
		}
		if q.Fee != q.GrossOut*fee/types.FeeRateDenominator {
			t.Fatalf("fee %d does not match rate %d on %d", q.Fee, fee, q.GrossOut)
		}
		if q.NewInputReserve != in+amount {
			t.Fatalf("new input reserve %d", q.NewInputReserve)
		}
	})
}

func TestDepositNeverOverpaysShares(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stats := types.PoolStats{
			ReserveA: rapid.Uint64Range(1, 1<<30).Draw(t, "reserveA"),
			ReserveB: rapid.Uint64Range(1, 1<<30).Draw(t, "reserveB"),
			LPSupply: rapid.Uint64Range(1, 1<<30).Draw(t, "supply"),
		}
		aDesired := rapid.Uint64Range(1, 1<<30).Draw(t, "aDesired")
		bDesired := rapid.Uint64Range(1, 1<<30).Draw(t, "bDesired")

		d, err := keeper.CalculateDeposit(stats, aDesired, bDesired, 0, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.AmountA > aDesired || d.AmountB > bDesired {
			t.Fatalf("deposit (%d, %d) exceeds desired (%d, %d)", d.AmountA, d.AmountB, aDesired, bDesired)
		}

		// shares / supply must not exceed either contributed fraction.
		shares := new(big.Int).SetUint64(d.Shares)
		lhsA := new(big.Int).Mul(shares, new(big.Int).SetUint64(stats.ReserveA))
		rhsA := new(big.Int).Mul(new(big.Int).SetUint64(d.AmountA), new(big.Int).SetUint64(stats.LPSupply))
		lhsB := new(big.Int).Mul(shares, new(big.Int).SetUint64(stats.ReserveB))
		rhsB := new(big.Int).Mul(new(big.Int).SetUint64(d.AmountB), new(big.Int).SetUint64(stats.LPSupply))
		if lhsA.Cmp(rhsA) > 0 || lhsB.Cmp(rhsB) > 0 {
			t.Fatalf("deposit %+v overpays shares against %+v", d, stats)
		}
	})
}

func TestWithdrawalWithinReserves(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stats := types.PoolStats{
			ReserveA: rapid.Uint64().Draw(t, "reserveA"),
			ReserveB: rapid.Uint64().Draw(t, "reserveB"),
			LPSupply: rapid.Uint64Min(1).Draw(t, "supply"),
		}
		lp := rapid.Uint64Range(1, stats.LPSupply).Draw(t, "lp")

		a, b, err := keeper.CalculateWithdrawal(stats, lp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a > stats.ReserveA || b > stats.ReserveB {
			t.Fatalf("withdrawal (%d, %d) exceeds reserves %+v", a, b, stats)
		}
		if lp == stats.LPSupply && (a != stats.ReserveA || b != stats.ReserveB) {
			t.Fatalf("full withdrawal (%d, %d) does not drain %+v", a, b, stats)
		}
	})
}

func sumBalances(t *rapid.T, l ledger.StoreLedger, ctx sdk.Context, asset types.Ref) uint64 {
	var sum uint64
	if err := l.IterateAccounts(ctx, func(a ledger.Account) bool {
		if a.Asset == asset {
			sum += a.Balance
		}
		return false
	}); err != nil {
		t.Fatalf("iterate accounts: %v", err)
	}
	return sum
}

func TestRandomOperationsPreserveInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k, ctx, l := keepertest.TokenswapKeeper(t)
		fee := rapid.Uint64Range(0, types.MaxFeeRateBps).Draw(rt, "fee")
		tp := keepertest.CreateFundedPool(t, k, ctx, l, fee, 1_000_000, 1_000_000)
		trader := newTrader(t, l, ctx, tp.Pool, "trader", 1_000_000, 1_000_000)
		provider, accounts := newProvider(t, l, ctx, tp.Pool, "second", 1_000_000, 1_000_000)
		treasury := newTrader(t, l, ctx, tp.Pool, "treasury", 0, 0)

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			amount := rapid.Uint64Range(1, 300_000).Draw(rt, "amount")

			// Individual operations may be rejected; a rejection must leave
			// nothing behind, which the checks below rely on.
			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				_, _ = k.Swap(ctx, trader.owner, tp.ID, trader.a, trader.b, amount, 0)
			case 1:
				_, _ = k.Swap(ctx, trader.owner, tp.ID, trader.b, trader.a, amount, 0)
			case 2:
				_, _ = k.AddLiquidity(ctx, provider, tp.ID, accounts, amount, amount, 0, 0)
			case 3:
				bal, err := l.BalanceOf(ctx, accounts.LP)
				if err != nil {
					rt.Fatalf("lp balance: %v", err)
				}
				if bal > 0 {
					_, _, _ = k.RemoveLiquidity(ctx, provider, tp.ID, accounts, min(amount, bal), 0, 0)
				}
			case 4:
				_, _, _ = k.CollectFees(ctx, tp.Admin, tp.ID, treasury.a, treasury.b)
			}

			if msg, broken := keeper.AllInvariants(k)(ctx); broken {
				rt.Fatalf("invariant broken after step %d: %s", i, msg)
			}
			for _, asset := range []types.Ref{tp.Pool.AssetA, tp.Pool.AssetB, tp.Pool.LPMint} {
				supply, err := l.SupplyOf(ctx, asset)
				if err != nil {
					rt.Fatalf("supply: %v", err)
				}
				if held := sumBalances(rt, l, ctx, asset); held != supply {
					rt.Fatalf("asset %s: accounts hold %d, supply is %d", asset, held, supply)
				}
			}
		}
	})
}
