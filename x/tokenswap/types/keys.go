package types

const (
	// ModuleName defines the module name
	ModuleName = "tokenswap"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// LedgerStoreKey is the store key used by the reference token ledger
	LedgerStoreKey = "tokenledger"

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

const (
	// MaxFeeRateBps caps the swap fee at 10%.
	MaxFeeRateBps uint64 = 1000

	// FeeRateDenominator converts basis points into a fraction.
	FeeRateDenominator uint64 = 10_000

	// PriceScale is the fixed-point scale of GetPrice results.
	PriceScale uint64 = 1_000_000

	// ShareScale is the fixed-point scale of the share fraction returned by GetUserShare.
	ShareScale uint64 = 1_000_000

	// CustodySeed is the domain separator for pool custody derivation.
	CustodySeed = "pool_authority"
)

// Store key prefixes
var (
	PoolKeyPrefix = []byte{0x01} // prefix for pool records
	PoolCountKey  = []byte{0x02} // key for number of pools
)

// PoolKey returns the store key for a pool record.
func PoolKey(id PoolID) []byte {
	key := make([]byte, 0, len(PoolKeyPrefix)+2*RefLength+1)
	key = append(key, PoolKeyPrefix...)
	key = append(key, id.AssetA[:]...)
	key = append(key, id.AssetB[:]...)
	return append(key, id.Salt)
}
