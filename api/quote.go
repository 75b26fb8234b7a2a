package api

import (
	"errors"
	"net/url"

	"github.com/hellodex/swapkit/logger"
	"github.com/hellodex/swapkit/model"
	"github.com/hellodex/swapkit/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

var (
	// ErrQuoteUnavailable means the aggregator explicitly reported no
	// usable route (error code or non-success status).
	ErrQuoteUnavailable = errors.New("quote_unavailable")
	// ErrQuoteFailed means transport failed or the response could not
	// be processed at all.
	ErrQuoteFailed = errors.New("quote_failed")
)

// GetQuote asks the aggregator for an exact-input quote and returns
// the normalized result.
func GetQuote(req model.QuoteRequest) (*model.Quote, error) {
	qs := url.Values{}
	qs.Set("chainIndex", cast.ToString(req.ChainId))
	qs.Set("fromTokenAddress", req.TokenIn)
	qs.Set("toTokenAddress", req.TokenOut)
	qs.Set("amount", req.AmountRawIn)
	qs.Set("swapMode", "exactIn")

	body, err := proxyGet(QuotePath, qs)
	if err != nil {
		if errors.Is(err, ErrUpstreamStatus) {
			return nil, ErrQuoteUnavailable
		}
		log.Error().Err(err).Func(logger.WithCategory(logger.CategoryQuote)).Send()
		return nil, ErrQuoteFailed
	}

	if util.IsDebug() {
		log.Debug().Func(func(e *zerolog.Event) {
			logger.WithQuoteCategory(e).RawJSON("quote result", body).Send()
		})
	}

	quote, ok := ParseQuotePayload(body)
	if !ok {
		return nil, ErrQuoteUnavailable
	}

	return quote, nil
}
