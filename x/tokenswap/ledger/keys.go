package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// Store layout
var (
	AccountKeyPrefix = []byte{0x01} // account ref -> owner | asset | balance
	AssetKeyPrefix   = []byte{0x02} // asset ref -> mint authority | supply
	NonceKey         = []byte{0x03} // counter feeding new refs
)

const (
	accountRecordSize = 2*types.RefLength + 8
	assetRecordSize   = types.RefLength + 8
)

// Account is one balance-holding ledger account.
type Account struct {
	Ref     types.Ref `json:"ref"`
	Owner   types.Ref `json:"owner"`
	Asset   types.Ref `json:"asset"`
	Balance uint64    `json:"balance"`
}

// Asset is a fungible asset and its supply.
type Asset struct {
	Ref           types.Ref `json:"ref"`
	MintAuthority types.Ref `json:"mint_authority"`
	Supply        uint64    `json:"supply"`
}

func (a Account) marshal() []byte {
	bz := make([]byte, accountRecordSize)
	off := copy(bz, a.Owner[:])
	off += copy(bz[off:], a.Asset[:])
	binary.BigEndian.PutUint64(bz[off:], a.Balance)
	return bz
}

func unmarshalAccount(ref types.Ref, bz []byte) (Account, error) {
	if len(bz) != accountRecordSize {
		return Account{}, fmt.Errorf("account %s: record has length %d, expected %d", ref, len(bz), accountRecordSize)
	}
	a := Account{Ref: ref}
	off := copy(a.Owner[:], bz)
	off += copy(a.Asset[:], bz[off:])
	a.Balance = binary.BigEndian.Uint64(bz[off:])
	return a, nil
}

func (a Asset) marshal() []byte {
	bz := make([]byte, assetRecordSize)
	off := copy(bz, a.MintAuthority[:])
	binary.BigEndian.PutUint64(bz[off:], a.Supply)
	return bz
}

func unmarshalAsset(ref types.Ref, bz []byte) (Asset, error) {
	if len(bz) != assetRecordSize {
		return Asset{}, fmt.Errorf("asset %s: record has length %d, expected %d", ref, len(bz), assetRecordSize)
	}
	a := Asset{Ref: ref}
	off := copy(a.MintAuthority[:], bz)
	a.Supply = binary.BigEndian.Uint64(bz[off:])
	return a, nil
}

// deriveRef hashes a record kind and a nonce into a fresh ref.
func deriveRef(kind string, nonce uint64) types.Ref {
	key := make([]byte, len(kind)+8)
	copy(key, kind)
	binary.BigEndian.PutUint64(key[len(kind):], nonce)

	var r types.Ref
	copy(r[:], address.Hash(Codespace, key))
	return r
}
