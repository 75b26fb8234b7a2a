package api

import (
	"math/big"
	"strconv"

	"github.com/hellodex/swapkit/model"
	"github.com/tidwall/gjson"
)

// successCode is the aggregator's success sentinel for `code` and
// `error_code` alike.
const successCode = "0"

// ParseQuotePayload extracts the canonical quote from a raw proxy
// response body. ok is false when the payload carries a non-success
// code; malformed sub-fields degrade field by field and never fail the
// whole parse.
func ParseQuotePayload(body []byte) (quote *model.Quote, ok bool) {
	if len(body) == 0 {
		return nil, false
	}

	code := gjson.GetBytes(body, "code")
	if !code.Exists() {
		code = gjson.GetBytes(body, "error_code")
	}
	if code.Exists() && code.String() != successCode {
		return nil, false
	}

	raw := gjson.GetBytes(body, "data")
	if !raw.Exists() {
		raw = gjson.ParseBytes(body)
	}

	data := raw
	if raw.IsArray() {
		data = pickBest(raw.Array())
		if !data.Exists() {
			return nil, false
		}
	}

	out := &model.Quote{
		Routes:          []model.Route{},
		ToTokenDecimals: -1,
		Raw:             []byte(data.Raw),
	}

	if v := data.Get("fromTokenAmount"); v.Type == gjson.String {
		out.RawAmountIn = v.String()
	}
	if v := data.Get("toTokenAmount"); v.Type == gjson.String && isUnsignedInt(v.String()) {
		out.RawAmountOut = v.String()
	}

	// Some deployments bury the numbers inside the route-comparison
	// list instead of the top level.
	firstCompare := data.Get("quoteCompareList.0")
	if out.RawAmountOut == "" {
		if v := firstCompare.Get("amountOut"); v.Type == gjson.String && isUnsignedInt(v.String()) {
			out.RawAmountOut = v.String()
		}
	}

	if v := data.Get("tradeFee"); v.Type == gjson.String {
		out.TradeFeeUSD = v.String()
	} else if v := firstCompare.Get("tradeFee"); v.Type == gjson.String {
		out.TradeFeeUSD = v.String()
	}

	if v := data.Get("estimateGasFee"); v.Type == gjson.String {
		out.EstimateGasFee = v.String()
	} else if v := firstCompare.Get("estimateGasFee"); v.Type == gjson.String {
		out.EstimateGasFee = v.String()
	}

	if v := data.Get("priceImpactPercent"); v.Type == gjson.String {
		out.PriceImpactPercent = v.String()
	} else if v := firstCompare.Get("priceImpactPercent"); v.Type == gjson.String {
		out.PriceImpactPercent = v.String()
	}

	for _, r := range data.Get("dexRouterList").Array() {
		route := model.Route{
			Router: r.Get("router").String(),
		}
		if v := r.Get("dexProtocol.dexName"); v.Exists() {
			route.DexName = v.String()
		} else {
			route.DexName = r.Get("dexName").String()
		}
		if v := r.Get("dexProtocol.percent"); v.Exists() {
			route.Percent = v.String()
		} else {
			route.Percent = r.Get("percent").String()
		}
		out.Routes = append(out.Routes, route)
	}

	switch v := data.Get("price"); v.Type {
	case gjson.Number:
		out.Price = v.Float()
		out.HasPrice = true
	case gjson.String:
		if p, err := strconv.ParseFloat(v.String(), 64); err == nil {
			out.Price = p
			out.HasPrice = true
		}
	}

	if v := data.Get("toToken.decimal"); v.Exists() {
		if d, err := strconv.ParseInt(v.String(), 10, 32); err == nil && d >= 0 {
			out.ToTokenDecimals = int32(d)
		}
	}

	return out, true
}

// pickBest selects the candidate with the numerically largest
// toTokenAmount. Amounts compare as integers, never as strings;
// unparsable amounts rank as zero but stay eligible. Ties keep the
// first-encountered candidate.
func pickBest(candidates []gjson.Result) gjson.Result {
	if len(candidates) == 0 {
		return gjson.Result{}
	}

	best := candidates[0]
	bestAmount := outAmount(best)
	for _, c := range candidates[1:] {
		if a := outAmount(c); a.Cmp(bestAmount) > 0 {
			best = c
			bestAmount = a
		}
	}

	return best
}

func outAmount(c gjson.Result) *big.Int {
	n, ok := new(big.Int).SetString(c.Get("toTokenAmount").String(), 10)
	if !ok || n.Sign() < 0 {
		return big.NewInt(0)
	}
	return n
}

func isUnsignedInt(s string) bool {
	n, ok := new(big.Int).SetString(s, 10)
	return ok && n.Sign() >= 0
}
