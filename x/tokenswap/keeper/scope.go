package keeper

import (
	"context"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/tokenswap/x/tokenswap/types"
)

// scopeSet hands out one exclusive lock per pool. An entry lives only while
// some caller holds or waits for it.
type scopeSet struct {
	mu    sync.Mutex
	locks map[types.PoolID]*scope
}

type scope struct {
	sync.Mutex
	refs int
}

func newScopeSet() *scopeSet {
	return &scopeSet{locks: make(map[types.PoolID]*scope)}
}

// acquire blocks until the caller holds the pool's scope and returns the release func.
func (s *scopeSet) acquire(id types.PoolID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &scope{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// len reports how many pools currently have a live scope entry.
func (s *scopeSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

// withPool runs fn with exclusive access to one pool. fn sees a cached view of
// the store; everything it writes, ledger effects included, is committed only
// when it returns nil. On error the cache is dropped and nothing is observable.
func (k Keeper) withPool(ctx context.Context, id types.PoolID, fn func(ctx sdk.Context, pool *types.PoolState) error) error {
	release := k.scopes.acquire(id)
	defer release()

	cacheCtx, write := sdk.UnwrapSDKContext(ctx).CacheContext()

	pool, err := k.GetPool(cacheCtx, id)
	if err != nil {
		return err
	}
	if err := fn(cacheCtx, pool); err != nil {
		return err
	}

	write()
	return nil
}
