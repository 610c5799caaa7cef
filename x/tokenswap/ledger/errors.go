package ledger

import (
	"cosmossdk.io/errors"
)

// Codespace is the error namespace of the reference ledger.
const Codespace = "tokenledger"

// Ledger sentinel errors
var (
	ErrUnknownAccount      = errors.Register(Codespace, 2, "unknown account")
	ErrUnknownAsset        = errors.Register(Codespace, 3, "unknown asset")
	ErrAssetMismatch       = errors.Register(Codespace, 4, "asset mismatch")
	ErrInsufficientBalance = errors.Register(Codespace, 5, "insufficient balance")
	ErrNotOwner            = errors.Register(Codespace, 6, "signer does not own account")
	ErrNotMintAuthority    = errors.Register(Codespace, 7, "signer is not the mint authority")
	ErrOverflow            = errors.Register(Codespace, 8, "amount overflow")
	ErrAssetExists         = errors.Register(Codespace, 9, "asset already registered")
	ErrInvalidRef          = errors.Register(Codespace, 10, "invalid ref")
)
