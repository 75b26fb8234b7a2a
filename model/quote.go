package model

// QuoteRequest fully determines one quote lookup. Two requests with
// equal fields are the same request.
type QuoteRequest struct {
	ChainId     int    `json:"chainId"`
	TokenIn     string `json:"tokenIn"`
	TokenOut    string `json:"tokenOut"`
	AmountRawIn string `json:"amountRawIn"`
}

// Route is one candidate execution path returned by the aggregator.
type Route struct {
	DexName string `json:"dexName,omitempty"`
	Percent string `json:"percent,omitempty"`
	Router  string `json:"router,omitempty"`
}

// Quote is the canonical, normalized form of one upstream quote
// payload. Every field but Routes and Raw is optional; absent fields
// stay empty rather than failing normalization.
type Quote struct {
	RawAmountIn        string  `json:"rawAmountIn,omitempty"`
	RawAmountOut       string  `json:"rawAmountOut,omitempty"`
	TradeFeeUSD        string  `json:"tradeFeeUSD,omitempty"`
	EstimateGasFee     string  `json:"estimateGasFee,omitempty"`
	PriceImpactPercent string  `json:"priceImpactPercent,omitempty"`
	Routes             []Route `json:"routes"`
	Price              float64 `json:"price,omitempty"`
	HasPrice           bool    `json:"-"`

	// ToTokenDecimals is the output token precision as reported by
	// the upstream response, -1 when it did not report one.
	ToTokenDecimals int32 `json:"-"`

	// Raw keeps the chosen upstream payload for debugging.
	Raw []byte `json:"-"`
}

// ApproveTx is the normalized approve-transaction endpoint response.
type ApproveTx struct {
	ApproveAddress string `json:"approveAddress"`
	Calldata       string `json:"data"`
	GasLimit       string `json:"gasLimit,omitempty"`
	GasPrice       string `json:"gasPrice,omitempty"`
}

// SwapTx is the executable swap call built by the aggregator.
type SwapTx struct {
	AggregatorAddress string `json:"aggregatorAddress"`
	Calldata          string `json:"data"`
}
