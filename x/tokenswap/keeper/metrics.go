package keeper

import (
	"sync"

	errorsmod "cosmossdk.io/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// SwapMetrics holds the Prometheus metrics for the tokenswap module
type SwapMetrics struct {
	// Swap metrics
	SwapsTotal   *prometheus.CounterVec
	SwapVolume   *prometheus.CounterVec
	FeesAccrued  *prometheus.CounterVec
	SwapFailures *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec

	// Pool metrics
	PoolsInitialized prometheus.Counter
	FeesCollected    *prometheus.CounterVec
	AdminActions     *prometheus.CounterVec
}

var (
	swapMetricsOnce sync.Once
	swapMetrics     *SwapMetrics
)

// NewSwapMetrics creates and registers the module metrics on the default
// registry (singleton pattern)
func NewSwapMetrics() *SwapMetrics {
	swapMetricsOnce.Do(func() {
		swapMetrics = NewSwapMetricsWith(prometheus.DefaultRegisterer)
	})
	return swapMetrics
}

// NewSwapMetricsWith registers a fresh metrics set on reg.
func NewSwapMetricsWith(reg prometheus.Registerer) *SwapMetrics {
	factory := promauto.With(reg)
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "paw",
				Subsystem: types.ModuleName,
				Name:      name,
				Help:      help,
			},
			labels,
		)
	}

	return &SwapMetrics{
		SwapsTotal:       counterVec("swaps_total", "Total number of swaps executed", "pool", "direction"),
		SwapVolume:       counterVec("swap_volume_total", "Total swap input volume in base units", "pool", "direction"),
		FeesAccrued:      counterVec("fees_accrued_total", "Total swap fees accrued to fee counters", "pool", "direction"),
		SwapFailures:     counterVec("swap_failures_total", "Total number of rejected swaps", "pool", "reason"),
		LiquidityAdded:   counterVec("liquidity_added_total", "Total liquidity added to pools", "pool", "side"),
		LiquidityRemoved: counterVec("liquidity_removed_total", "Total liquidity removed from pools", "pool", "side"),
		PoolsInitialized: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "paw",
				Subsystem: types.ModuleName,
				Name:      "pools_initialized_total",
				Help:      "Total number of pools initialized",
			},
		),
		FeesCollected: counterVec("fees_collected_total", "Total accrued fees paid out to admins", "pool", "side"),
		AdminActions:  counterVec("admin_actions_total", "Total admin guard operations", "action"),
	}
}

func (k Keeper) recordSwap(id types.PoolID, direction types.Direction, quote SwapQuote) {
	if k.metrics == nil {
		return
	}
	pool, dir := id.String(), direction.String()
	k.metrics.SwapsTotal.WithLabelValues(pool, dir).Inc()
	k.metrics.SwapVolume.WithLabelValues(pool, dir).Add(float64(quote.AmountIn))
	k.metrics.FeesAccrued.WithLabelValues(pool, dir).Add(float64(quote.Fee))
}

func (k Keeper) recordSwapFailure(id types.PoolID, err error) {
	if k.metrics == nil {
		return
	}
	k.metrics.SwapFailures.WithLabelValues(id.String(), failureReason(err)).Inc()
}

func (k Keeper) recordLiquidity(id types.PoolID, added bool, amountA, amountB uint64) {
	if k.metrics == nil {
		return
	}
	vec := k.metrics.LiquidityRemoved
	if added {
		vec = k.metrics.LiquidityAdded
	}
	vec.WithLabelValues(id.String(), "a").Add(float64(amountA))
	vec.WithLabelValues(id.String(), "b").Add(float64(amountB))
}

func (k Keeper) recordAdminAction(action string) {
	if k.metrics == nil {
		return
	}
	k.metrics.AdminActions.WithLabelValues(action).Inc()
}

// failureReason maps a module error onto a bounded label value.
func failureReason(err error) string {
	for _, sentinel := range []struct {
		reason string
		err    error
	}{
		{"paused", types.ErrPoolPaused},
		{"slippage", types.ErrSlippageExceeded},
		{"invalid_token", types.ErrInvalidToken},
		{"invalid_amount", types.ErrInvalidAmount},
		{"insufficient_funds", types.ErrInsufficientFunds},
		{"insufficient_liquidity", types.ErrInsufficientLiquidity},
		{"not_found", types.ErrPoolNotFound},
	} {
		if errorsmod.IsOf(err, sentinel.err) {
			return sentinel.reason
		}
	}
	return "other"
}
