package api

import (
	"errors"
	"net/url"

	"github.com/hellodex/swapkit/model"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// ErrSwapTxUnavailable means the aggregator did not return an
// executable transaction for the requested swap.
var ErrSwapTxUnavailable = errors.New("swap_tx_unavailable")

// BuildSwapTx asks the aggregator to build executable swap calldata
// for an exact-input swap.
func BuildSwapTx(chainIndex int, fromToken, toToken, amountRaw, slippagePercent, userAddress string) (*model.SwapTx, error) {
	qs := url.Values{}
	qs.Set("chainIndex", cast.ToString(chainIndex))
	qs.Set("fromTokenAddress", fromToken)
	qs.Set("toTokenAddress", toToken)
	qs.Set("amount", amountRaw)
	qs.Set("userWalletAddress", userAddress)
	qs.Set("swapMode", "exactIn")
	if slippagePercent != "" {
		qs.Set("slippagePercent", slippagePercent)
	}

	body, err := proxyGet(SwapPath, qs)
	if err != nil {
		if errors.Is(err, ErrUpstreamStatus) {
			return nil, ErrSwapTxUnavailable
		}
		log.Error().Err(err).Send()
		return nil, err
	}

	tx := gjson.GetBytes(body, "data.0.tx")
	to := tx.Get("to").String()
	calldata := tx.Get("data")
	if to == "" || calldata.Type != gjson.String {
		return nil, ErrSwapTxUnavailable
	}

	return &model.SwapTx{
		AggregatorAddress: to,
		Calldata:          calldata.String(),
	}, nil
}
