package types

import (
	"context"
)

// TokenLedger is the host ledger that owns balances, supplies and account
// ownership. Every mutating call names the identity that authorizes it: the
// authenticated caller for funds leaving a user account, or the pool custody
// capability's signer for funds leaving pool custody.
type TokenLedger interface {
	// Transfer moves amount from one account to another account of the same asset.
	Transfer(ctx context.Context, signer, from, to Ref, amount uint64) error
	// Mint creates amount units of asset into account to. signer must be the mint authority.
	Mint(ctx context.Context, signer, asset, to Ref, amount uint64) error
	// Burn destroys amount units of asset held by account from.
	Burn(ctx context.Context, signer, asset, from Ref, amount uint64) error
	// BalanceOf returns the balance held by an account.
	BalanceOf(ctx context.Context, account Ref) (uint64, error)
	// SupplyOf returns the total supply of an asset.
	SupplyOf(ctx context.Context, asset Ref) (uint64, error)
	// AssetOf returns the asset an account holds.
	AssetOf(ctx context.Context, account Ref) (Ref, error)
	// CreateAccount opens an empty account for asset owned by owner.
	CreateAccount(ctx context.Context, owner, asset Ref) (Ref, error)
	// CreateAsset registers a new fungible asset whose mint authority is mintAuthority.
	CreateAsset(ctx context.Context, mintAuthority Ref) (Ref, error)
}

// Capability is the opaque right to act as a pool's custody identity.
type Capability interface {
	Signer() Ref
}

// CustodyAuthority derives a pool's custody identity and grants the capability
// to sign as it. The core never handles key material.
type CustodyAuthority interface {
	Derive(id PoolID) (authority Ref, seed uint8, err error)
	SignAs(id PoolID) (Capability, error)
}
