package keeper

import (
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

var _ types.CustodyAuthority = ModuleCustody{}

// ModuleCustody derives pool custody identities as module sub-accounts keyed by
// the pool's asset pair and salt. The derived identity has no private key;
// only the module can sign as it.
type ModuleCustody struct{}

// Derive returns the custody identity of a pool and the seed byte it was
// derived with.
func (ModuleCustody) Derive(id types.PoolID) (types.Ref, uint8, error) {
	if err := id.Validate(); err != nil {
		return types.Ref{}, 0, err
	}
	bz := address.Module(types.ModuleName,
		[]byte(types.CustodySeed),
		id.AssetA[:],
		id.AssetB[:],
		[]byte{id.Salt},
	)
	ref, err := types.RefFromBytes(bz)
	if err != nil {
		return types.Ref{}, 0, err
	}
	return ref, id.Salt, nil
}

// SignAs grants the capability to authorize ledger effects as the pool's custody identity.
func (c ModuleCustody) SignAs(id types.PoolID) (types.Capability, error) {
	ref, _, err := c.Derive(id)
	if err != nil {
		return nil, err
	}
	return custodyCapability{signer: ref}, nil
}

type custodyCapability struct {
	signer types.Ref
}

func (c custodyCapability) Signer() types.Ref { return c.signer }
