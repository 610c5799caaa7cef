package types

// LiquidityAccounts are the provider-owned ledger accounts a liquidity
// operation debits and credits.
type LiquidityAccounts struct {
	TokenA Ref `json:"token_a"`
	TokenB Ref `json:"token_b"`
	LP     Ref `json:"lp"`
}

// Validate checks that every account is set.
func (a LiquidityAccounts) Validate() error {
	if a.TokenA.IsEmpty() || a.TokenB.IsEmpty() || a.LP.IsEmpty() {
		return ErrInvalidToken.Wrap("provider accounts cannot be empty")
	}
	return nil
}

func validateCaller(role string, r Ref) error {
	if r.IsEmpty() {
		return ErrUnauthorized.Wrapf("%s cannot be empty", role)
	}
	return nil
}

// MsgInitializePool creates a pool for an asset pair.
type MsgInitializePool struct {
	Creator    Ref    `json:"creator"`
	AssetA     Ref    `json:"asset_a"`
	AssetB     Ref    `json:"asset_b"`
	Salt       uint8  `json:"salt"`
	FeeRateBps uint64 `json:"fee_rate_bps"`
}

// ValidateBasic performs stateless checks.
func (msg MsgInitializePool) ValidateBasic() error {
	if err := validateCaller("creator", msg.Creator); err != nil {
		return err
	}
	if err := NewPoolID(msg.AssetA, msg.AssetB, msg.Salt).Validate(); err != nil {
		return err
	}
	if msg.FeeRateBps > MaxFeeRateBps {
		return ErrFeeTooHigh.Wrapf("fee rate %d bps exceeds maximum %d", msg.FeeRateBps, MaxFeeRateBps)
	}
	return nil
}

// MsgAddInitialLiquidity seeds an empty pool.
type MsgAddInitialLiquidity struct {
	Provider Ref               `json:"provider"`
	Pool     PoolID            `json:"pool"`
	Accounts LiquidityAccounts `json:"accounts"`
	AmountA  uint64            `json:"amount_a"`
	AmountB  uint64            `json:"amount_b"`
}

// ValidateBasic performs stateless checks.
func (msg MsgAddInitialLiquidity) ValidateBasic() error {
	if err := validateCaller("provider", msg.Provider); err != nil {
		return err
	}
	if err := msg.Pool.Validate(); err != nil {
		return err
	}
	if err := msg.Accounts.Validate(); err != nil {
		return err
	}
	if msg.AmountA == 0 || msg.AmountB == 0 {
		return ErrInvalidAmount.Wrap("initial amounts must be positive")
	}
	return nil
}

// MsgAddLiquidity deposits into a funded pool at the current ratio.
type MsgAddLiquidity struct {
	Provider       Ref               `json:"provider"`
	Pool           PoolID            `json:"pool"`
	Accounts       LiquidityAccounts `json:"accounts"`
	AmountADesired uint64            `json:"amount_a_desired"`
	AmountBDesired uint64            `json:"amount_b_desired"`
	AmountAMin     uint64            `json:"amount_a_min"`
	AmountBMin     uint64            `json:"amount_b_min"`
}

// ValidateBasic performs stateless checks. Zero amounts are left to the
// keeper, which reports a paused pool first.
func (msg MsgAddLiquidity) ValidateBasic() error {
	if err := validateCaller("provider", msg.Provider); err != nil {
		return err
	}
	if err := msg.Pool.Validate(); err != nil {
		return err
	}
	if err := msg.Accounts.Validate(); err != nil {
		return err
	}
	return nil
}

// MsgRemoveLiquidity redeems LP shares for a pro-rata slice of reserves.
type MsgRemoveLiquidity struct {
	Provider   Ref               `json:"provider"`
	Pool       PoolID            `json:"pool"`
	Accounts   LiquidityAccounts `json:"accounts"`
	LPAmount   uint64            `json:"lp_amount"`
	AmountAMin uint64            `json:"amount_a_min"`
	AmountBMin uint64            `json:"amount_b_min"`
}

// ValidateBasic performs stateless checks. A zero lp amount is left to the
// keeper, which reports a paused pool first.
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if err := validateCaller("provider", msg.Provider); err != nil {
		return err
	}
	if err := msg.Pool.Validate(); err != nil {
		return err
	}
	if err := msg.Accounts.Validate(); err != nil {
		return err
	}
	return nil
}

// MsgSwap sells AmountIn of the source account's asset for the other pool asset.
type MsgSwap struct {
	Trader       Ref    `json:"trader"`
	Pool         PoolID `json:"pool"`
	Source       Ref    `json:"source"`
	Destination  Ref    `json:"destination"`
	AmountIn     uint64 `json:"amount_in"`
	MinAmountOut uint64 `json:"min_amount_out"`
}

// ValidateBasic performs stateless checks. A zero amount in is left to the
// keeper, which reports a paused pool first.
func (msg MsgSwap) ValidateBasic() error {
	if err := validateCaller("trader", msg.Trader); err != nil {
		return err
	}
	if err := msg.Pool.Validate(); err != nil {
		return err
	}
	if msg.Source.IsEmpty() || msg.Destination.IsEmpty() {
		return ErrInvalidToken.Wrap("trader accounts cannot be empty")
	}
	if msg.Source == msg.Destination {
		return ErrInvalidToken.Wrap("source and destination must differ")
	}
	return nil
}

// MsgCollectFees pays accrued fees to the admin's receiving accounts.
type MsgCollectFees struct {
	Caller    Ref    `json:"caller"`
	Pool      PoolID `json:"pool"`
	ReceiverA Ref    `json:"receiver_a"`
	ReceiverB Ref    `json:"receiver_b"`
}

// ValidateBasic performs stateless checks.
func (msg MsgCollectFees) ValidateBasic() error {
	if err := validateCaller("caller", msg.Caller); err != nil {
		return err
	}
	if err := msg.Pool.Validate(); err != nil {
		return err
	}
	if msg.ReceiverA.IsEmpty() || msg.ReceiverB.IsEmpty() {
		return ErrInvalidToken.Wrap("receiving accounts cannot be empty")
	}
	return nil
}

// MsgSetPaused toggles the pool's pause flag.
type MsgSetPaused struct {
	Caller Ref    `json:"caller"`
	Pool   PoolID `json:"pool"`
	Paused bool   `json:"paused"`
}

// ValidateBasic performs stateless checks.
func (msg MsgSetPaused) ValidateBasic() error {
	if err := validateCaller("caller", msg.Caller); err != nil {
		return err
	}
	return msg.Pool.Validate()
}

// MsgUpdateFeeRate changes the pool's swap fee.
type MsgUpdateFeeRate struct {
	Caller     Ref    `json:"caller"`
	Pool       PoolID `json:"pool"`
	FeeRateBps uint64 `json:"fee_rate_bps"`
}

// ValidateBasic performs stateless checks.
func (msg MsgUpdateFeeRate) ValidateBasic() error {
	if err := validateCaller("caller", msg.Caller); err != nil {
		return err
	}
	if err := msg.Pool.Validate(); err != nil {
		return err
	}
	if msg.FeeRateBps > MaxFeeRateBps {
		return ErrFeeTooHigh.Wrapf("fee rate %d bps exceeds maximum %d", msg.FeeRateBps, MaxFeeRateBps)
	}
	return nil
}

// MsgTransferAdmin hands pool administration to another identity.
type MsgTransferAdmin struct {
	Caller   Ref    `json:"caller"`
	Pool     PoolID `json:"pool"`
	NewAdmin Ref    `json:"new_admin"`
}

// ValidateBasic performs stateless checks.
func (msg MsgTransferAdmin) ValidateBasic() error {
	if err := validateCaller("caller", msg.Caller); err != nil {
		return err
	}
	if err := msg.Pool.Validate(); err != nil {
		return err
	}
	if msg.NewAdmin.IsEmpty() {
		return ErrInvalidSwapPool.Wrap("new admin cannot be empty")
	}
	return nil
}

// MsgInitializePoolResponse returns the created record.
type MsgInitializePoolResponse struct {
	Pool PoolState `json:"pool"`
}

// MsgLiquidityResponse reports the amounts moved and shares minted or burned.
type MsgLiquidityResponse struct {
	AmountA uint64 `json:"amount_a"`
	AmountB uint64 `json:"amount_b"`
	Shares  uint64 `json:"shares"`
}

// MsgSwapResponse reports the net amount paid to the trader.
type MsgSwapResponse struct {
	AmountOut uint64 `json:"amount_out"`
}

// MsgCollectFeesResponse reports the fees paid out.
type MsgCollectFeesResponse struct {
	FeeA uint64 `json:"fee_a"`
	FeeB uint64 `json:"fee_b"`
}

// MsgAdminResponse is returned by the admin guard operations.
type MsgAdminResponse struct{}
