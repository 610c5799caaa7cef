package types

import (
	"encoding/hex"
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/address"
)

// RefLength is the fixed width of every identity stored in a pool record.
const RefLength = 32

// Ref is an opaque, fixed-size identity: an asset id, a ledger account, a mint
// or a caller. The zero value is the empty ref.
type Ref [RefLength]byte

// NamedRef deterministically derives a ref from a human readable name.
func NamedRef(name string) Ref {
	var r Ref
	copy(r[:], address.Hash(ModuleName, []byte(name)))
	return r
}

// RefFromBytes copies bz into a ref. bz must be exactly RefLength bytes.
func RefFromBytes(bz []byte) (Ref, error) {
	var r Ref
	if len(bz) != RefLength {
		return r, fmt.Errorf("invalid ref length: expected %d, got %d", RefLength, len(bz))
	}
	copy(r[:], bz)
	return r, nil
}

// ParseRef decodes the hex form produced by String.
func ParseRef(s string) (Ref, error) {
	bz, err := hex.DecodeString(s)
	if err != nil {
		return Ref{}, fmt.Errorf("invalid ref %q: %w", s, err)
	}
	return RefFromBytes(bz)
}

// IsEmpty reports whether r is the zero ref.
func (r Ref) IsEmpty() bool {
	return r == Ref{}
}

func (r Ref) String() string {
	return hex.EncodeToString(r[:])
}

// MarshalText implements encoding.TextMarshaler so refs render as hex in JSON.
func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Ref) UnmarshalText(text []byte) error {
	parsed, err := ParseRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// PoolID addresses a pool in the keyed store. Several pools may share an asset
// pair as long as their salts differ.
type PoolID struct {
	AssetA Ref   `json:"asset_a"`
	AssetB Ref   `json:"asset_b"`
	Salt   uint8 `json:"salt"`
}

// NewPoolID builds a pool id.
func NewPoolID(assetA, assetB Ref, salt uint8) PoolID {
	return PoolID{AssetA: assetA, AssetB: assetB, Salt: salt}
}

// Validate checks that the pool id names two distinct, non-empty assets.
func (id PoolID) Validate() error {
	if id.AssetA.IsEmpty() || id.AssetB.IsEmpty() {
		return ErrInvalidToken.Wrap("asset ids cannot be empty")
	}
	if id.AssetA == id.AssetB {
		return ErrInvalidToken.Wrap("cannot create pool with identical assets")
	}
	return nil
}

func (id PoolID) String() string {
	return fmt.Sprintf("%s/%s/%d", id.AssetA, id.AssetB, id.Salt)
}
