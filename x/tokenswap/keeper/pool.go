package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// GetPoolCount returns the number of pools ever initialized.
func (k Keeper) GetPoolCount(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PoolCountKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// SetPoolCount sets the pool counter.
func (k Keeper) SetPoolCount(ctx context.Context, count uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, count)
	k.getStore(ctx).Set(types.PoolCountKey, bz)
}

// InitializePool creates the pool record for (assetA, assetB, salt). The vaults
// and LP mint are opened on the ledger under the pool's custody authority.
// No assets move. The creator becomes the pool admin.
func (k Keeper) InitializePool(ctx context.Context, creator, assetA, assetB types.Ref, salt uint8, feeRateBps uint64) (*types.PoolState, error) {
	if feeRateBps > types.MaxFeeRateBps {
		return nil, types.ErrFeeTooHigh.Wrapf("fee rate %d bps exceeds maximum %d", feeRateBps, types.MaxFeeRateBps)
	}
	if creator.IsEmpty() {
		return nil, types.ErrUnauthorized.Wrap("creator cannot be empty")
	}

	id := types.NewPoolID(assetA, assetB, salt)
	if err := id.Validate(); err != nil {
		return nil, err
	}

	release := k.scopes.acquire(id)
	defer release()

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if k.HasPool(sdkCtx, id) {
		return nil, types.ErrPoolAlreadyExists.Wrapf("pool %s already exists", id)
	}

	authority, seed, err := k.custody.Derive(id)
	if err != nil {
		return nil, fmt.Errorf("InitializePool: derive custody authority: %w", err)
	}

	cacheCtx, write := sdkCtx.CacheContext()

	vaultA, err := k.ledger.CreateAccount(cacheCtx, authority, assetA)
	if err != nil {
		return nil, fmt.Errorf("InitializePool: create vault A: %w", err)
	}
	vaultB, err := k.ledger.CreateAccount(cacheCtx, authority, assetB)
	if err != nil {
		return nil, fmt.Errorf("InitializePool: create vault B: %w", err)
	}
	lpMint, err := k.ledger.CreateAsset(cacheCtx, authority)
	if err != nil {
		return nil, fmt.Errorf("InitializePool: create lp mint: %w", err)
	}

	pool := &types.PoolState{
		AssetA:         assetA,
		AssetB:         assetB,
		VaultA:         vaultA,
		VaultB:         vaultB,
		LPMint:         lpMint,
		Authority:      authority,
		FeeRateBps:     feeRateBps,
		DerivationSeed: seed,
		Salt:           salt,
		Paused:         false,
		Admin:          creator,
	}
	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("InitializePool: validate pool state: %w", err)
	}

	k.SetPool(cacheCtx, pool)
	k.SetPoolCount(cacheCtx, k.GetPoolCount(cacheCtx)+1)

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolInitialized,
			sdk.NewAttribute(types.AttributeKeyPool, id.String()),
			sdk.NewAttribute(types.AttributeKeyAdmin, creator.String()),
			sdk.NewAttribute(types.AttributeKeyAuthority, authority.String()),
			sdk.NewAttribute(types.AttributeKeyFeeRate, fmt.Sprintf("%d", feeRateBps)),
		),
	)

	write()

	k.Logger(ctx).Info("pool initialized", "pool", id.String(), "fee_rate_bps", feeRateBps)
	if k.metrics != nil {
		k.metrics.PoolsInitialized.Inc()
	}

	return pool, nil
}

// GetPool retrieves a pool by id.
// Returns ErrPoolNotFound if the pool does not exist.
func (k Keeper) GetPool(ctx context.Context, id types.PoolID) (*types.PoolState, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(id))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool %s not found", id)
	}

	var pool types.PoolState
	if err := pool.Unmarshal(bz); err != nil {
		return nil, fmt.Errorf("GetPool: unmarshal pool %s: %w", id, err)
	}
	return &pool, nil
}

// HasPool reports whether a pool record exists.
func (k Keeper) HasPool(ctx context.Context, id types.PoolID) bool {
	return k.getStore(ctx).Has(types.PoolKey(id))
}

// SetPool saves a pool to the store
func (k Keeper) SetPool(ctx context.Context, pool *types.PoolState) {
	k.getStore(ctx).Set(types.PoolKey(pool.ID()), pool.Marshal())
}

// IteratePools iterates over all pools in key order.
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.PoolState) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.PoolState
		if err := pool.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("IteratePools: unmarshal pool: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every pool record.
func (k Keeper) GetAllPools(ctx context.Context) ([]types.PoolState, error) {
	var pools []types.PoolState
	err := k.IteratePools(ctx, func(pool types.PoolState) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// reserves reads the live vault balances and LP supply from the ledger.
func (k Keeper) reserves(ctx context.Context, pool *types.PoolState) (types.PoolStats, error) {
	reserveA, err := k.ledger.BalanceOf(ctx, pool.VaultA)
	if err != nil {
		return types.PoolStats{}, fmt.Errorf("read vault A balance: %w", err)
	}
	reserveB, err := k.ledger.BalanceOf(ctx, pool.VaultB)
	if err != nil {
		return types.PoolStats{}, fmt.Errorf("read vault B balance: %w", err)
	}
	supply, err := k.ledger.SupplyOf(ctx, pool.LPMint)
	if err != nil {
		return types.PoolStats{}, fmt.Errorf("read lp supply: %w", err)
	}
	return types.PoolStats{ReserveA: reserveA, ReserveB: reserveB, LPSupply: supply}, nil
}

// requireAsset checks that a caller-supplied account holds the expected asset.
func (k Keeper) requireAsset(ctx context.Context, account, asset types.Ref, role string) error {
	got, err := k.ledger.AssetOf(ctx, account)
	if err != nil {
		return types.ErrInvalidToken.Wrapf("%s account %s: %v", role, account, err)
	}
	if got != asset {
		return types.ErrInvalidToken.Wrapf("%s account %s holds %s, expected %s", role, account, got, asset)
	}
	return nil
}

// requireBalance checks that an account can cover amount before any effect is issued.
func (k Keeper) requireBalance(ctx context.Context, account types.Ref, amount uint64) error {
	balance, err := k.ledger.BalanceOf(ctx, account)
	if err != nil {
		return fmt.Errorf("read balance of %s: %w", account, err)
	}
	if balance < amount {
		return types.ErrInsufficientFunds.Wrapf("account %s has %d, need %d", account, balance, amount)
	}
	return nil
}

// custodySigner obtains the pool custody capability and returns its signer.
func (k Keeper) custodySigner(pool *types.PoolState) (types.Ref, error) {
	capability, err := k.custody.SignAs(pool.ID())
	if err != nil {
		return types.Ref{}, fmt.Errorf("sign as custody: %w", err)
	}
	if capability.Signer() != pool.Authority {
		return types.Ref{}, types.ErrInvalidSwapPool.Wrapf("custody signer %s does not match pool authority %s", capability.Signer(), pool.Authority)
	}
	return capability.Signer(), nil
}

func (k Keeper) requireActive(pool *types.PoolState) error {
	if pool.Paused {
		return types.ErrPoolPaused.Wrapf("pool %s is paused", pool.ID())
	}
	return nil
}
