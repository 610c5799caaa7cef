package keeper

import (
	"bytes"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// RegisterInvariants registers all tokenswap invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-records", PoolRecordsInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-count", PoolCountInvariant(k))
}

// AllInvariants runs all invariants of the tokenswap module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolRecordsInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return PoolCountInvariant(k)(ctx)
	}
}

// PoolRecordsInvariant checks that every stored record decodes, validates and
// is stored under the key derived from its own asset pair and salt.
func PoolRecordsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
		defer iterator.Close()

		for ; iterator.Valid(); iterator.Next() {
			var pool types.PoolState
			if err := pool.Unmarshal(iterator.Value()); err != nil {
				count++
				msg += fmt.Sprintf("key %X: %v\n", iterator.Key(), err)
				continue
			}
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pool %s: %v\n", pool.ID(), err)
			}
			if !bytes.Equal(iterator.Key(), types.PoolKey(pool.ID())) {
				count++
				msg += fmt.Sprintf("pool %s stored under foreign key %X\n", pool.ID(), iterator.Key())
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-records",
			fmt.Sprintf("found %d malformed pool records\n%s", count, msg),
		), broken
	}
}

// PoolCountInvariant checks that the pool counter matches the stored records.
func PoolCountInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var stored uint64
		err := k.IteratePools(ctx, func(types.PoolState) bool {
			stored++
			return false
		})
		counter := k.GetPoolCount(ctx)

		broken := err != nil || stored != counter
		return sdk.FormatInvariant(
			types.ModuleName, "pool-count",
			fmt.Sprintf("pool counter %d, stored records %d, iteration error %v\n", counter, stored, err),
		), broken
	}
}
