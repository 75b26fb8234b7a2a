package model

// SwapExecutionConfig is the execution configuration consumed by the
// settlement contract. Built right before encoding, never mutated.
// Invariant: IsNativeToken == true exactly when ToToken is the zero
// address.
//
// MinAmountOut accepts a decimal string, hex string, integer scalar or
// big.Int; the encoder coerces it to uint256.
type SwapExecutionConfig struct {
	DexAggregator  string      `json:"dexAggregator"`
	ApproveAddress string      `json:"approveAddress"`
	SwapCalldata   string      `json:"swapCalldata"`
	ToToken        string      `json:"toToken"`
	MinAmountOut   interface{} `json:"minAmountOut"`
	IsNativeToken  bool        `json:"isNativeToken"`
}
