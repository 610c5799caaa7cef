// Package ledger is a KV-store backed token ledger. It holds per-account
// balances and per-asset supplies and enforces signer checks on every
// mutation. The tokenswap keeper uses it through types.TokenLedger; hosts with
// their own ledger can substitute any implementation of that interface.
package ledger

import (
	"context"
	"encoding/binary"

	storeprefix "cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

var _ types.TokenLedger = StoreLedger{}

// StoreLedger keeps ledger records under its own store key.
type StoreLedger struct {
	storeKey storetypes.StoreKey
}

// NewStoreLedger returns a ledger persisted under key.
func NewStoreLedger(key storetypes.StoreKey) StoreLedger {
	return StoreLedger{storeKey: key}
}

func (l StoreLedger) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(l.storeKey)
}

func (l StoreLedger) accountStore(ctx context.Context) storetypes.KVStore {
	return storeprefix.NewStore(l.getStore(ctx), AccountKeyPrefix)
}

func (l StoreLedger) assetStore(ctx context.Context) storetypes.KVStore {
	return storeprefix.NewStore(l.getStore(ctx), AssetKeyPrefix)
}

func (l StoreLedger) nextRef(ctx context.Context, kind string) types.Ref {
	store := l.getStore(ctx)
	var nonce uint64
	if bz := store.Get(NonceKey); bz != nil {
		nonce = binary.BigEndian.Uint64(bz)
	}
	nonce++
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, nonce)
	store.Set(NonceKey, bz)
	return deriveRef(kind, nonce)
}

// GetAccount loads an account record.
func (l StoreLedger) GetAccount(ctx context.Context, ref types.Ref) (Account, error) {
	bz := l.accountStore(ctx).Get(ref[:])
	if bz == nil {
		return Account{}, ErrUnknownAccount.Wrapf("account %s", ref)
	}
	return unmarshalAccount(ref, bz)
}

func (l StoreLedger) setAccount(ctx context.Context, a Account) {
	l.accountStore(ctx).Set(a.Ref[:], a.marshal())
}

// GetAsset loads an asset record.
func (l StoreLedger) GetAsset(ctx context.Context, ref types.Ref) (Asset, error) {
	bz := l.assetStore(ctx).Get(ref[:])
	if bz == nil {
		return Asset{}, ErrUnknownAsset.Wrapf("asset %s", ref)
	}
	return unmarshalAsset(ref, bz)
}

func (l StoreLedger) setAsset(ctx context.Context, a Asset) {
	l.assetStore(ctx).Set(a.Ref[:], a.marshal())
}

// RegisterAsset records an externally named asset, such as one created with
// types.NamedRef, under the given mint authority.
func (l StoreLedger) RegisterAsset(ctx context.Context, asset, mintAuthority types.Ref) error {
	if asset.IsEmpty() || mintAuthority.IsEmpty() {
		return ErrInvalidRef.Wrap("asset and mint authority cannot be empty")
	}
	if l.assetStore(ctx).Has(asset[:]) {
		return ErrAssetExists.Wrapf("asset %s", asset)
	}
	l.setAsset(ctx, Asset{Ref: asset, MintAuthority: mintAuthority})
	return nil
}

// CreateAsset registers a new asset with a ledger-assigned ref.
func (l StoreLedger) CreateAsset(ctx context.Context, mintAuthority types.Ref) (types.Ref, error) {
	if mintAuthority.IsEmpty() {
		return types.Ref{}, ErrInvalidRef.Wrap("mint authority cannot be empty")
	}
	ref := l.nextRef(ctx, "asset")
	l.setAsset(ctx, Asset{Ref: ref, MintAuthority: mintAuthority})
	return ref, nil
}

// CreateAccount opens an empty account for asset owned by owner.
func (l StoreLedger) CreateAccount(ctx context.Context, owner, asset types.Ref) (types.Ref, error) {
	if owner.IsEmpty() {
		return types.Ref{}, ErrInvalidRef.Wrap("owner cannot be empty")
	}
	if _, err := l.GetAsset(ctx, asset); err != nil {
		return types.Ref{}, err
	}
	ref := l.nextRef(ctx, "account")
	l.setAccount(ctx, Account{Ref: ref, Owner: owner, Asset: asset})
	return ref, nil
}

// Transfer moves amount between two accounts of the same asset. signer must own from.
func (l StoreLedger) Transfer(ctx context.Context, signer, from, to types.Ref, amount uint64) error {
	src, err := l.GetAccount(ctx, from)
	if err != nil {
		return err
	}
	dst, err := l.GetAccount(ctx, to)
	if err != nil {
		return err
	}
	if src.Owner != signer {
		return ErrNotOwner.Wrapf("%s does not own %s", signer, from)
	}
	if src.Asset != dst.Asset {
		return ErrAssetMismatch.Wrapf("cannot move %s into an account of %s", src.Asset, dst.Asset)
	}
	if src.Balance < amount {
		return ErrInsufficientBalance.Wrapf("account %s has %d, need %d", from, src.Balance, amount)
	}
	if from == to {
		return nil
	}
	if dst.Balance > ^uint64(0)-amount {
		return ErrOverflow.Wrapf("balance of %s", to)
	}

	src.Balance -= amount
	dst.Balance += amount
	l.setAccount(ctx, src)
	l.setAccount(ctx, dst)
	return nil
}

// Mint creates amount units of asset in account to. signer must be the mint authority.
func (l StoreLedger) Mint(ctx context.Context, signer, asset, to types.Ref, amount uint64) error {
	a, err := l.GetAsset(ctx, asset)
	if err != nil {
		return err
	}
	if a.MintAuthority != signer {
		return ErrNotMintAuthority.Wrapf("%s cannot mint %s", signer, asset)
	}
	dst, err := l.GetAccount(ctx, to)
	if err != nil {
		return err
	}
	if dst.Asset != asset {
		return ErrAssetMismatch.Wrapf("cannot mint %s into an account of %s", asset, dst.Asset)
	}
	if a.Supply > ^uint64(0)-amount || dst.Balance > ^uint64(0)-amount {
		return ErrOverflow.Wrapf("minting %d of %s", amount, asset)
	}

	a.Supply += amount
	dst.Balance += amount
	l.setAsset(ctx, a)
	l.setAccount(ctx, dst)
	return nil
}

// Burn destroys amount units of asset held by from. signer must own from.
func (l StoreLedger) Burn(ctx context.Context, signer, asset, from types.Ref, amount uint64) error {
	a, err := l.GetAsset(ctx, asset)
	if err != nil {
		return err
	}
	src, err := l.GetAccount(ctx, from)
	if err != nil {
		return err
	}
	if src.Owner != signer {
		return ErrNotOwner.Wrapf("%s does not own %s", signer, from)
	}
	if src.Asset != asset {
		return ErrAssetMismatch.Wrapf("account %s holds %s, not %s", from, src.Asset, asset)
	}
	if src.Balance < amount {
		return ErrInsufficientBalance.Wrapf("account %s has %d, need %d", from, src.Balance, amount)
	}
	if a.Supply < amount {
		return ErrInsufficientBalance.Wrapf("supply of %s is %d, burning %d", asset, a.Supply, amount)
	}

	a.Supply -= amount
	src.Balance -= amount
	l.setAsset(ctx, a)
	l.setAccount(ctx, src)
	return nil
}

// BalanceOf returns the balance of an account.
func (l StoreLedger) BalanceOf(ctx context.Context, account types.Ref) (uint64, error) {
	a, err := l.GetAccount(ctx, account)
	if err != nil {
		return 0, err
	}
	return a.Balance, nil
}

// SupplyOf returns the total supply of an asset.
func (l StoreLedger) SupplyOf(ctx context.Context, asset types.Ref) (uint64, error) {
	a, err := l.GetAsset(ctx, asset)
	if err != nil {
		return 0, err
	}
	return a.Supply, nil
}

// AssetOf returns the asset an account holds.
func (l StoreLedger) AssetOf(ctx context.Context, account types.Ref) (types.Ref, error) {
	a, err := l.GetAccount(ctx, account)
	if err != nil {
		return types.Ref{}, err
	}
	return a.Asset, nil
}

// IterateAccounts walks every account in key order.
func (l StoreLedger) IterateAccounts(ctx context.Context, cb func(Account) (stop bool)) error {
	iterator := l.accountStore(ctx).Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		ref, err := types.RefFromBytes(iterator.Key())
		if err != nil {
			return err
		}
		account, err := unmarshalAccount(ref, iterator.Value())
		if err != nil {
			return err
		}
		if cb(account) {
			break
		}
	}
	return nil
}
