package model

// TokenRef is the minimal addressing/precision snapshot the quote flow
// needs about a token. Decimals falls back to 18 when unknown.
type TokenRef struct {
	Address  string `json:"address"`
	Decimals int32  `json:"decimals"`
}

const DefaultDecimals int32 = 18

// EffectiveDecimals returns the token's decimals, or 18 when the
// caller never learned them (zero value with empty address aside).
func (t TokenRef) EffectiveDecimals() int32 {
	if t.Decimals <= 0 {
		return DefaultDecimals
	}
	return t.Decimals
}

// Token is one entry of the aggregator token list.
type Token struct {
	ChainId  string `json:"chainId,omitempty"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals,omitempty"`
	LogoURI  string `json:"logoURI,omitempty"`
}
