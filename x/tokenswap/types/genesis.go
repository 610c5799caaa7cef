package types

import (
	"fmt"
)

// GenesisState is the tokenswap module's genesis state.
type GenesisState struct {
	Pools []PoolState `json:"pools"`
}

// DefaultGenesis returns the default genesis state: no pools.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Pools: []PoolState{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	seen := make(map[PoolID]struct{}, len(gs.Pools))
	for i, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("pool %d: %w", i, err)
		}
		id := pool.ID()
		if _, ok := seen[id]; ok {
			return ErrPoolAlreadyExists.Wrapf("duplicate pool %s in genesis", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
