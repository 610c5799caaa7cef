package types

// Event types for the tokenswap module
const (
	EventTypePoolInitialized  = "pool_initialized"
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeSwap             = "swap"
	EventTypeFeesCollected    = "fees_collected"
	EventTypePoolPaused       = "pool_paused"
	EventTypePoolResumed      = "pool_resumed"
	EventTypeFeeRateUpdated   = "fee_rate_updated"
	EventTypeAdminTransferred = "admin_transferred"
)

// Event attribute keys
const (
	AttributeKeyPool      = "pool"
	AttributeKeyCaller    = "caller"
	AttributeKeyProvider  = "provider"
	AttributeKeyTrader    = "trader"
	AttributeKeyAssetIn   = "asset_in"
	AttributeKeyAssetOut  = "asset_out"
	AttributeKeyAmountA   = "amount_a"
	AttributeKeyAmountB   = "amount_b"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyFee       = "fee"
	AttributeKeyFeeRate   = "fee_rate_bps"
	AttributeKeyShares    = "shares"
	AttributeKeyAdmin     = "admin"
	AttributeKeyAuthority = "authority"
)
