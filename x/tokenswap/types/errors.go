package types

import (
	"cosmossdk.io/errors"
)

// tokenswap module sentinel errors
var (
	ErrInvalidToken          = errors.Register(ModuleName, 2, "invalid token provided")
	ErrInvalidAmount         = errors.Register(ModuleName, 3, "invalid amount provided")
	ErrInsufficientFunds     = errors.Register(ModuleName, 4, "insufficient funds")
	ErrInvalidSwapPool       = errors.Register(ModuleName, 5, "invalid swap pool")
	ErrUnauthorized          = errors.Register(ModuleName, 6, "unauthorized")
	ErrSlippageExceeded      = errors.Register(ModuleName, 7, "slippage exceeded")
	ErrFeeTooHigh            = errors.Register(ModuleName, 8, "fee too high")
	ErrPoolPaused            = errors.Register(ModuleName, 9, "pool paused")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 10, "insufficient liquidity")
	ErrCalculationFailure    = errors.Register(ModuleName, 11, "calculation failure")
	ErrPoolNotFound          = errors.Register(ModuleName, 12, "pool not found")
	ErrPoolAlreadyExists     = errors.Register(ModuleName, 13, "pool already exists")
)
