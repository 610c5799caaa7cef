package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// Keeper of the tokenswap store
type Keeper struct {
	storeKey storetypes.StoreKey
	ledger   types.TokenLedger
	custody  types.CustodyAuthority
	metrics  *SwapMetrics
	scopes   *scopeSet
}

// NewKeeper creates a new tokenswap Keeper instance. A nil custody authority
// falls back to the module-derived ModuleCustody. Metrics go to the default
// Prometheus registry unless replaced with WithMetrics.
func NewKeeper(
	key storetypes.StoreKey,
	ledger types.TokenLedger,
	custody types.CustodyAuthority,
) Keeper {
	if custody == nil {
		custody = ModuleCustody{}
	}
	return Keeper{
		storeKey: key,
		ledger:   ledger,
		custody:  custody,
		metrics:  NewSwapMetrics(),
		scopes:   newScopeSet(),
	}
}

// WithMetrics returns a copy of the keeper that records Prometheus metrics.
func (k Keeper) WithMetrics(m *SwapMetrics) Keeper {
	k.metrics = m
	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// getStore returns the KVStore for the tokenswap module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}
