package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// InitGenesis loads pool records from genesis. Ledger balances are owned by
// the host and are not part of this module's genesis.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: invalid genesis state: %w", err)
	}

	for i := range genState.Pools {
		pool := genState.Pools[i]
		authority, seed, err := k.custody.Derive(pool.ID())
		if err != nil {
			return fmt.Errorf("InitGenesis: derive custody for pool %s: %w", pool.ID(), err)
		}
		if authority != pool.Authority {
			return types.ErrInvalidSwapPool.Wrapf("pool %s authority %s does not match derived %s", pool.ID(), pool.Authority, authority)
		}
		if seed != pool.DerivationSeed {
			return types.ErrInvalidSwapPool.Wrapf("pool %s derivation seed %d does not match derived %d", pool.ID(), pool.DerivationSeed, seed)
		}
		k.SetPool(ctx, &pool)
	}
	k.SetPoolCount(ctx, uint64(len(genState.Pools)))
	return nil
}

// ExportGenesis returns the module's exported genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: %w", err)
	}
	if pools == nil {
		pools = []types.PoolState{}
	}
	return &types.GenesisState{Pools: pools}, nil
}
