package api

import (
	"errors"
	"net/url"

	"github.com/hellodex/swapkit/model"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// ErrApproveUnavailable means the aggregator could not produce an
// approve transaction for the token (error code, or the response is
// missing the contract address or calldata).
var ErrApproveUnavailable = errors.New("approve_unavailable")

// GetApproveTx fetches the calldata that approves approveAmount atomic
// units of the token to the aggregator's spender contract.
func GetApproveTx(chainIndex int, tokenAddress, approveAmount string) (*model.ApproveTx, error) {
	qs := url.Values{}
	qs.Set("chainIndex", cast.ToString(chainIndex))
	qs.Set("tokenContractAddress", tokenAddress)
	qs.Set("approveAmount", approveAmount)

	body, err := proxyGet(ApprovePath, qs)
	if err != nil {
		if errors.Is(err, ErrUpstreamStatus) {
			return nil, ErrApproveUnavailable
		}
		log.Error().Err(err).Send()
		return nil, err
	}

	if code := gjson.GetBytes(body, "code"); code.Exists() && code.String() != successCode {
		return nil, ErrApproveUnavailable
	}

	approveData := gjson.GetBytes(body, "data.0")
	address := approveData.Get("dexContractAddress").String()
	calldata := approveData.Get("data")
	if address == "" || calldata.Type != gjson.String {
		return nil, ErrApproveUnavailable
	}

	return &model.ApproveTx{
		ApproveAddress: address,
		Calldata:       calldata.String(),
		GasLimit:       approveData.Get("gasLimit").String(),
		GasPrice:       approveData.Get("gasPrice").String(),
	}, nil
}
