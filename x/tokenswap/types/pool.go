package types

import (
	"encoding/binary"
	"fmt"
)

// poolStateVersion tags the persisted layout so it can evolve without
// silently misreading old records.
const poolStateVersion byte = 2

// PoolStateSize is the encoded size of a PoolState: version byte, eight refs,
// fee rate, derivation seed, salt, paused flag and both fee counters.
const PoolStateSize = 1 + 8*RefLength + 8 + 1 + 1 + 1 + 8 + 8

// PoolState is the persistent record of one pool. Reserves and LP supply are
// never cached here; they are read from the ledger through the vault and mint refs.
//
// Salt is the caller-chosen part of the pool id. DerivationSeed is whatever the
// custody authority reported when deriving Authority and may differ from it.
type PoolState struct {
	AssetA          Ref    `json:"asset_a"`
	AssetB          Ref    `json:"asset_b"`
	VaultA          Ref    `json:"vault_a"`
	VaultB          Ref    `json:"vault_b"`
	LPMint          Ref    `json:"lp_mint"`
	Authority       Ref    `json:"authority"`
	FeeRateBps      uint64 `json:"fee_rate_bps"`
	DerivationSeed  uint8  `json:"derivation_seed"`
	Salt            uint8  `json:"salt"`
	Paused          bool   `json:"paused"`
	Admin           Ref    `json:"admin"`
	AccumulatedFeeA uint64 `json:"accumulated_fee_a"`
	AccumulatedFeeB uint64 `json:"accumulated_fee_b"`
}

// ID returns the key the pool is stored under.
func (p PoolState) ID() PoolID {
	return PoolID{AssetA: p.AssetA, AssetB: p.AssetB, Salt: p.Salt}
}

// Validate checks the static well-formedness of the record.
func (p PoolState) Validate() error {
	if err := p.ID().Validate(); err != nil {
		return err
	}
	if p.FeeRateBps > MaxFeeRateBps {
		return ErrFeeTooHigh.Wrapf("fee rate %d bps exceeds maximum %d", p.FeeRateBps, MaxFeeRateBps)
	}
	refs := []struct {
		name string
		ref  Ref
	}{
		{"vault_a", p.VaultA},
		{"vault_b", p.VaultB},
		{"lp_mint", p.LPMint},
		{"authority", p.Authority},
		{"admin", p.Admin},
	}
	for _, r := range refs {
		if r.ref.IsEmpty() {
			return ErrInvalidSwapPool.Wrapf("%s cannot be empty", r.name)
		}
	}
	if p.VaultA == p.VaultB {
		return ErrInvalidSwapPool.Wrap("vaults must be distinct")
	}
	return nil
}

// IsAssetA reports whether asset is the pool's first asset.
func (p PoolState) IsAssetA(asset Ref) bool { return asset == p.AssetA }

// IsAssetB reports whether asset is the pool's second asset.
func (p PoolState) IsAssetB(asset Ref) bool { return asset == p.AssetB }

// Marshal encodes the record into its fixed-size layout.
func (p PoolState) Marshal() []byte {
	bz := make([]byte, PoolStateSize)
	bz[0] = poolStateVersion
	off := 1
	for _, r := range []Ref{p.AssetA, p.AssetB, p.VaultA, p.VaultB, p.LPMint, p.Authority} {
		off += copy(bz[off:], r[:])
	}
	binary.BigEndian.PutUint64(bz[off:], p.FeeRateBps)
	off += 8
	bz[off] = p.DerivationSeed
	off++
	bz[off] = p.Salt
	off++
	if p.Paused {
		bz[off] = 1
	}
	off++
	off += copy(bz[off:], p.Admin[:])
	binary.BigEndian.PutUint64(bz[off:], p.AccumulatedFeeA)
	off += 8
	binary.BigEndian.PutUint64(bz[off:], p.AccumulatedFeeB)
	return bz
}

// Unmarshal decodes a record produced by Marshal.
func (p *PoolState) Unmarshal(bz []byte) error {
	if len(bz) != PoolStateSize {
		return ErrInvalidSwapPool.Wrapf("pool record has length %d, expected %d", len(bz), PoolStateSize)
	}
	if bz[0] != poolStateVersion {
		return ErrInvalidSwapPool.Wrapf("unknown pool record version %d", bz[0])
	}
	off := 1
	for _, r := range []*Ref{&p.AssetA, &p.AssetB, &p.VaultA, &p.VaultB, &p.LPMint, &p.Authority} {
		off += copy(r[:], bz[off:off+RefLength])
	}
	p.FeeRateBps = binary.BigEndian.Uint64(bz[off:])
	off += 8
	p.DerivationSeed = bz[off]
	off++
	p.Salt = bz[off]
	off++
	switch bz[off] {
	case 0:
		p.Paused = false
	case 1:
		p.Paused = true
	default:
		return ErrInvalidSwapPool.Wrapf("invalid paused flag %d", bz[off])
	}
	off++
	off += copy(p.Admin[:], bz[off:off+RefLength])
	p.AccumulatedFeeA = binary.BigEndian.Uint64(bz[off:])
	off += 8
	p.AccumulatedFeeB = binary.BigEndian.Uint64(bz[off:])
	return nil
}

func (p PoolState) String() string {
	return fmt.Sprintf("pool %s: fee=%dbps paused=%t admin=%s fees=(%d,%d)",
		p.ID(), p.FeeRateBps, p.Paused, p.Admin, p.AccumulatedFeeA, p.AccumulatedFeeB)
}

// Direction selects which asset is sold in a simulated swap.
type Direction uint8

const (
	// AToB sells asset A for asset B.
	AToB Direction = iota
	// BToA sells asset B for asset A.
	BToA
)

func (d Direction) String() string {
	switch d {
	case AToB:
		return "a_to_b"
	case BToA:
		return "b_to_a"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ParseDirection accepts the String forms of a direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "a_to_b", "a-to-b", "ab":
		return AToB, nil
	case "b_to_a", "b-to-a", "ba":
		return BToA, nil
	default:
		return 0, ErrInvalidToken.Wrapf("unknown swap direction %q", s)
	}
}

// PoolStats is the reserves and LP supply snapshot returned by GetPoolStats.
type PoolStats struct {
	ReserveA uint64 `json:"reserve_a"`
	ReserveB uint64 `json:"reserve_b"`
	LPSupply uint64 `json:"lp_supply"`
}

// UserShare is a provider's proportional claim on the pool.
// ShareScaled is the provider's fraction of LP supply scaled by ShareScale.
type UserShare struct {
	ShareScaled uint64 `json:"share_scaled"`
	TokenA      uint64 `json:"token_a"`
	TokenB      uint64 `json:"token_b"`
}
