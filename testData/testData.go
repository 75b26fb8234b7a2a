// Package testData holds canned upstream payloads shared by tests.
package testData

// QuoteSingle is a plain single-object quote response.
var QuoteSingle = []byte(`{
  "code": "0",
  "data": {
    "fromTokenAmount": "1000000000000000000",
    "toTokenAmount": "2500000000",
    "tradeFee": "1.25",
    "estimateGasFee": "210000",
    "priceImpactPercent": "0.12",
    "price": "2500.5",
    "toToken": {"decimal": "6"},
    "dexRouterList": [
      {
        "router": "0x1111111111111111111111111111111111111111",
        "dexProtocol": {"dexName": "Uniswap V3", "percent": "100"}
      }
    ]
  }
}`)

// QuoteCompareArray is the multi-candidate shape: an array of route
// quotes where the biggest toTokenAmount wins.
var QuoteCompareArray = []byte(`{
  "code": "0",
  "data": [
    {"toTokenAmount": "100", "tradeFee": "0.10"},
    {"toTokenAmount": "200", "tradeFee": "0.20"},
    {"toTokenAmount": "150", "tradeFee": "0.15"}
  ]
}`)

// QuoteCompareTie has two equal candidates; the first listed must win.
var QuoteCompareTie = []byte(`{
  "code": "0",
  "data": [
    {"toTokenAmount": "150", "tradeFee": "first"},
    {"toTokenAmount": "150", "tradeFee": "second"}
  ]
}`)

// QuoteFallbackFields has no top-level amounts; everything hides in
// the quoteCompareList.
var QuoteFallbackFields = []byte(`{
  "code": "0",
  "data": {
    "quoteCompareList": [
      {"amountOut": "123456", "tradeFee": "0.42", "priceImpactPercent": "1.5"}
    ]
  }
}`)

// QuoteErrorCode is an explicit upstream error.
var QuoteErrorCode = []byte(`{"code": "50011", "msg": "insufficient liquidity"}`)

// TokensMixedNaming carries both field-naming conventions plus one
// entry missing address and symbol that must be dropped.
var TokensMixedNaming = []byte(`{
  "code": "0",
  "data": [
    {"address": "0xaaa0000000000000000000000000000000000001", "symbol": "AAA", "name": "Token A", "decimals": 18, "logoURI": "https://example.com/a.png"},
    {"tokenContractAddress": "0xbbb0000000000000000000000000000000000002", "tokenSymbol": "BBB", "tokenName": "Token B", "decimals": "6", "tokenLogoUrl": "https://example.com/b.png"},
    {"name": "nameless"}
  ]
}`)

// ApproveOK is a successful approve-transaction response.
var ApproveOK = []byte(`{
  "code": "0",
  "data": [
    {
      "dexContractAddress": "0xccc0000000000000000000000000000000000003",
      "data": "0x095ea7b3000000000000000000000000",
      "gasLimit": "60000",
      "gasPrice": "12000000000"
    }
  ]
}`)
