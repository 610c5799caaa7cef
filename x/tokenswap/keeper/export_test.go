package keeper

import (
	"context"

	storetypes "cosmossdk.io/store/types"
)

// StoreForTest exposes the module store so tests can plant malformed records.
func (k Keeper) StoreForTest(ctx context.Context) storetypes.KVStore {
	return k.getStore(ctx)
}

// ScopeCountForTest reports how many pool scopes are currently tracked.
func (k Keeper) ScopeCountForTest() int {
	return k.scopes.len()
}
