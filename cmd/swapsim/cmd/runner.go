package cmd

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/paw-chain/tokenswap/x/tokenswap"
	"github.com/paw-chain/tokenswap/x/tokenswap/keeper"
	"github.com/paw-chain/tokenswap/x/tokenswap/ledger"
	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// simMintAuthority mints every scenario asset.
var simMintAuthority = types.NamedRef("swapsim-mint-authority")

// StepResult is the outcome of one replayed step.
type StepResult struct {
	Index     int    `json:"index"`
	Op        string `json:"op"`
	Pool      string `json:"pool"`
	Actor     string `json:"actor,omitempty"`
	AmountA   uint64 `json:"amount_a,omitempty"`
	AmountB   uint64 `json:"amount_b,omitempty"`
	Shares    uint64 `json:"shares,omitempty"`
	AmountOut uint64 `json:"amount_out,omitempty"`
	Error     string `json:"error,omitempty"`
}

// PoolReport is the final state of one scenario pool.
type PoolReport struct {
	Name            string          `json:"name"`
	ID              string          `json:"id"`
	Stats           types.PoolStats `json:"stats"`
	PriceA          uint64          `json:"price_a,omitempty"`
	FeeRateBps      uint64          `json:"fee_rate_bps"`
	Paused          bool            `json:"paused"`
	AccumulatedFeeA uint64          `json:"accumulated_fee_a"`
	AccumulatedFeeB uint64          `json:"accumulated_fee_b"`
}

// Report is everything a run produces.
type Report struct {
	RunID    string         `json:"run_id"`
	Steps    []StepResult   `json:"steps"`
	Pools    []PoolReport   `json:"pools"`
	Balances []ActorBalance `json:"balances"`
}

// ActorBalance is one actor's holding of one asset at the end of a run.
type ActorBalance struct {
	Actor   string `json:"actor"`
	Asset   string `json:"asset"`
	Balance uint64 `json:"balance"`
}

// invariantRoutes collects the invariants a module registers.
type invariantRoutes struct {
	names  []string
	checks []sdk.Invariant
}

func (r *invariantRoutes) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.names = append(r.names, moduleName+"/"+route)
	r.checks = append(r.checks, invar)
}

// assert runs every registered invariant and fails on the first broken one.
func (r *invariantRoutes) assert(ctx sdk.Context) error {
	for i, check := range r.checks {
		if msg, broken := check(ctx); broken {
			return fmt.Errorf("invariant %s broken: %s", r.names[i], msg)
		}
	}
	return nil
}

type accountKey struct {
	actor string
	asset types.Ref
}

// Runner replays a scenario against a fresh in-memory store.
type Runner struct {
	ctx        sdk.Context
	msgs       keeper.MsgServer
	queries    types.QueryServer
	invariants *invariantRoutes
	ledger     ledger.StoreLedger
	logger     log.Logger

	assets   map[string]types.Ref
	pools    map[string]*types.PoolState
	accounts map[accountKey]types.Ref
}

// NewRunner mounts the tokenswap and ledger stores on an in-memory multistore
// and wires the module around a keeper that records metrics on reg. A nil reg
// leaves the keeper on the default registry.
func NewRunner(logger log.Logger, reg prometheus.Registerer) (*Runner, error) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ledgerKey := storetypes.NewKVStoreKey(types.LedgerStoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load in-memory store: %w", err)
	}

	l := ledger.NewStoreLedger(ledgerKey)
	k := keeper.NewKeeper(storeKey, l, keeper.ModuleCustody{})
	if reg != nil {
		k = k.WithMetrics(keeper.NewSwapMetricsWith(reg))
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{ChainID: "swapsim", Height: 1}, false, logger)
	am := tokenswap.NewAppModule(k)
	genesis := am.DefaultGenesis(nil)
	if err := am.ValidateGenesis(nil, nil, genesis); err != nil {
		return nil, err
	}
	am.InitGenesis(ctx, nil, genesis)

	invariants := &invariantRoutes{}
	am.RegisterInvariants(invariants)

	return &Runner{
		ctx:        ctx,
		msgs:       am.MsgServer(),
		queries:    am.QueryServer(),
		invariants: invariants,
		ledger:     l,
		logger:     logger.With("component", "swapsim"),
		assets:     make(map[string]types.Ref),
		pools:      make(map[string]*types.PoolState),
		accounts:   make(map[accountKey]types.Ref),
	}, nil
}

// Run replays s and returns the report. A step that fails without a matching
// expect_error, or that succeeds when an error was expected, aborts the run.
func (r *Runner) Run(s *Scenario) (*Report, error) {
	report := &Report{RunID: uuid.New().String()}
	logger := r.logger.With("run_id", report.RunID)

	if err := r.setup(s); err != nil {
		return nil, err
	}
	logger.Info("scenario loaded", "assets", len(s.Assets), "pools", len(s.Pools), "steps", len(s.Steps))

	for i, step := range s.Steps {
		res, err := r.apply(step)
		res.Index, res.Op, res.Pool, res.Actor = i, step.Op, step.Pool, step.Actor
		if err != nil {
			res.Error = err.Error()
		}
		report.Steps = append(report.Steps, res)

		if ierr := r.invariants.assert(r.ctx); ierr != nil {
			return report, fmt.Errorf("step %d (%s): %w", i, step.Op, ierr)
		}

		switch {
		case step.ExpectError == "" && err != nil:
			return report, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		case step.ExpectError != "" && err == nil:
			return report, fmt.Errorf("step %d (%s): expected error containing %q", i, step.Op, step.ExpectError)
		case step.ExpectError != "" && !strings.Contains(err.Error(), step.ExpectError):
			return report, fmt.Errorf("step %d (%s): error %q does not contain %q", i, step.Op, err, step.ExpectError)
		}
		logger.Debug("step applied", "index", i, "op", step.Op, "pool", step.Pool, "error", res.Error)
	}

	pools, err := r.poolReports(s)
	if err != nil {
		return report, err
	}
	report.Pools = pools
	report.Balances = r.balances(s)

	logger.Info("scenario complete", "steps", len(report.Steps))
	return report, nil
}

func (r *Runner) setup(s *Scenario) error {
	for _, name := range s.Assets {
		ref := types.NamedRef("asset/" + name)
		if err := r.ledger.RegisterAsset(r.ctx, ref, simMintAuthority); err != nil {
			return fmt.Errorf("register asset %s: %w", name, err)
		}
		r.assets[name] = ref
	}

	for actor, funds := range s.Actors {
		for asset, amount := range funds {
			account, err := r.account(actor, r.assets[asset])
			if err != nil {
				return err
			}
			if err := r.ledger.Mint(r.ctx, simMintAuthority, r.assets[asset], account, amount); err != nil {
				return fmt.Errorf("fund %s with %d %s: %w", actor, amount, asset, err)
			}
		}
	}

	for _, p := range s.Pools {
		resp, err := r.msgs.InitializePool(r.ctx, &types.MsgInitializePool{
			Creator:    actorRef(p.Admin),
			AssetA:     r.assets[p.AssetA],
			AssetB:     r.assets[p.AssetB],
			Salt:       p.Salt,
			FeeRateBps: p.FeeRateBps,
		})
		if err != nil {
			return fmt.Errorf("initialize pool %s: %w", p.Name, err)
		}
		r.pools[p.Name] = &resp.Pool
	}
	return nil
}

func actorRef(name string) types.Ref {
	return types.NamedRef("actor/" + name)
}

// account returns the actor's account for asset, opening it on first use.
func (r *Runner) account(actor string, asset types.Ref) (types.Ref, error) {
	key := accountKey{actor: actor, asset: asset}
	if ref, ok := r.accounts[key]; ok {
		return ref, nil
	}
	ref, err := r.ledger.CreateAccount(r.ctx, actorRef(actor), asset)
	if err != nil {
		return types.Ref{}, fmt.Errorf("open %s account for %s: %w", asset, actor, err)
	}
	r.accounts[key] = ref
	return ref, nil
}

func (r *Runner) liquidityAccounts(actor string, pool *types.PoolState) (types.LiquidityAccounts, error) {
	var (
		accounts types.LiquidityAccounts
		err      error
	)
	if accounts.TokenA, err = r.account(actor, pool.AssetA); err != nil {
		return accounts, err
	}
	if accounts.TokenB, err = r.account(actor, pool.AssetB); err != nil {
		return accounts, err
	}
	accounts.LP, err = r.account(actor, pool.LPMint)
	return accounts, err
}

func (r *Runner) apply(step Step) (StepResult, error) {
	var res StepResult
	pool := r.pools[step.Pool]
	id := pool.ID()
	caller := actorRef(step.Actor)

	switch step.Op {
	case OpAddInitialLiquidity:
		accounts, err := r.liquidityAccounts(step.Actor, pool)
		if err != nil {
			return res, err
		}
		resp, err := r.msgs.AddInitialLiquidity(r.ctx, &types.MsgAddInitialLiquidity{
			Provider: caller, Pool: id, Accounts: accounts, AmountA: step.AmountA, AmountB: step.AmountB,
		})
		return liquidityResult(resp), err

	case OpAddLiquidity:
		accounts, err := r.liquidityAccounts(step.Actor, pool)
		if err != nil {
			return res, err
		}
		resp, err := r.msgs.AddLiquidity(r.ctx, &types.MsgAddLiquidity{
			Provider: caller, Pool: id, Accounts: accounts,
			AmountADesired: step.AmountA, AmountBDesired: step.AmountB,
			AmountAMin: step.MinA, AmountBMin: step.MinB,
		})
		return liquidityResult(resp), err

	case OpRemoveLiquidity:
		accounts, err := r.liquidityAccounts(step.Actor, pool)
		if err != nil {
			return res, err
		}
		resp, err := r.msgs.RemoveLiquidity(r.ctx, &types.MsgRemoveLiquidity{
			Provider: caller, Pool: id, Accounts: accounts,
			LPAmount: step.LPAmount, AmountAMin: step.MinA, AmountBMin: step.MinB,
		})
		return liquidityResult(resp), err

	case OpSwap:
		direction, err := types.ParseDirection(step.Direction)
		if err != nil {
			return res, err
		}
		assetIn, assetOut := pool.AssetA, pool.AssetB
		if direction == types.BToA {
			assetIn, assetOut = assetOut, assetIn
		}
		source, err := r.account(step.Actor, assetIn)
		if err != nil {
			return res, err
		}
		destination, err := r.account(step.Actor, assetOut)
		if err != nil {
			return res, err
		}
		resp, err := r.msgs.Swap(r.ctx, &types.MsgSwap{
			Trader: caller, Pool: id, Source: source, Destination: destination,
			AmountIn: step.AmountIn, MinAmountOut: step.MinOut,
		})
		if err != nil {
			return res, err
		}
		res.AmountOut = resp.AmountOut
		return res, nil

	case OpSimulate:
		direction, err := types.ParseDirection(step.Direction)
		if err != nil {
			return res, err
		}
		resp, err := r.queries.SimulateSwap(r.ctx, &types.QuerySimulateSwapRequest{Pool: id, AmountIn: step.AmountIn, Direction: direction})
		if err != nil {
			return res, err
		}
		res.AmountOut = resp.AmountOut
		return res, nil

	case OpCollectFees:
		receiverA, err := r.account(step.Actor, pool.AssetA)
		if err != nil {
			return res, err
		}
		receiverB, err := r.account(step.Actor, pool.AssetB)
		if err != nil {
			return res, err
		}
		resp, err := r.msgs.CollectFees(r.ctx, &types.MsgCollectFees{Caller: caller, Pool: id, ReceiverA: receiverA, ReceiverB: receiverB})
		if err != nil {
			return res, err
		}
		res.AmountA, res.AmountB = resp.FeeA, resp.FeeB
		return res, nil

	case OpPause, OpResume:
		_, err := r.msgs.SetPaused(r.ctx, &types.MsgSetPaused{Caller: caller, Pool: id, Paused: step.Op == OpPause})
		return res, err

	case OpSetFee:
		_, err := r.msgs.UpdateFeeRate(r.ctx, &types.MsgUpdateFeeRate{Caller: caller, Pool: id, FeeRateBps: step.FeeRateBps})
		return res, err

	case OpTransferAdmin:
		_, err := r.msgs.TransferAdmin(r.ctx, &types.MsgTransferAdmin{Caller: caller, Pool: id, NewAdmin: actorRef(step.NewAdmin)})
		return res, err

	default:
		return res, fmt.Errorf("unknown op %q", step.Op)
	}
}

func liquidityResult(resp *types.MsgLiquidityResponse) StepResult {
	if resp == nil {
		return StepResult{}
	}
	return StepResult{AmountA: resp.AmountA, AmountB: resp.AmountB, Shares: resp.Shares}
}

func (r *Runner) poolReports(s *Scenario) ([]PoolReport, error) {
	reports := make([]PoolReport, 0, len(s.Pools))
	for _, ps := range s.Pools {
		id := r.pools[ps.Name].ID()
		poolResp, err := r.queries.Pool(r.ctx, &types.QueryPoolRequest{Pool: id})
		if err != nil {
			return nil, err
		}
		pool := poolResp.Pool
		statsResp, err := r.queries.PoolStats(r.ctx, &types.QueryPoolStatsRequest{Pool: id})
		if err != nil {
			return nil, err
		}
		report := PoolReport{
			Name:            ps.Name,
			ID:              id.String(),
			Stats:           statsResp.Stats,
			FeeRateBps:      pool.FeeRateBps,
			Paused:          pool.Paused,
			AccumulatedFeeA: pool.AccumulatedFeeA,
			AccumulatedFeeB: pool.AccumulatedFeeB,
		}
		// An empty pool has no price; leave it unset.
		if price, err := r.queries.Price(r.ctx, &types.QueryPriceRequest{Pool: id, Asset: pool.AssetA}); err == nil {
			report.PriceA = price.Price
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *Runner) balances(s *Scenario) []ActorBalance {
	names := make(map[types.Ref]string, len(r.assets))
	for name, ref := range r.assets {
		names[ref] = name
	}
	for _, ps := range s.Pools {
		names[r.pools[ps.Name].LPMint] = ps.Name + "/lp"
	}

	var out []ActorBalance
	for key, account := range r.accounts {
		bal, err := r.ledger.BalanceOf(r.ctx, account)
		if err != nil {
			continue
		}
		out = append(out, ActorBalance{Actor: key.actor, Asset: names[key.asset], Balance: bal})
	}
	sortBalances(out)
	return out
}

func sortBalances(b []ActorBalance) {
	slices.SortFunc(b, func(x, y ActorBalance) int {
		if c := cmp.Compare(x.Actor, y.Actor); c != 0 {
			return c
		}
		return cmp.Compare(x.Asset, y.Asset)
	})
}
