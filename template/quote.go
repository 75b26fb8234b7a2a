package template

import (
	"errors"

	"github.com/flosch/pongo2/v6"
	"github.com/hellodex/swapkit/model"
	"github.com/hellodex/swapkit/util"
	"github.com/rs/zerolog/log"
)

// formatNumber filter
var _ = func() interface{} {
	pongo2.RegisterFilter("formatNumber", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(util.FormatNumber(in.String())), nil
	})
	return nil
}()

// formatPer filter
var _ = func() interface{} {
	pongo2.RegisterFilter("formatPer", func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(util.FormatPercentage(in.String())), nil
	})
	return nil
}()

var ErrRender = errors.New("failed to render quote summary")

var quoteSummaryTemplate = `Swap quote ({{ fromSymbol }} -> {{ toSymbol }})
--you pay: {{ amountIn }} {{ fromSymbol }}
--you receive: {{ toAmount | formatNumber }} {{ toSymbol }}
{% if quote.TradeFeeUSD %}--trade fee: ${{ quote.TradeFeeUSD | formatNumber }}
{% endif %}{% if quote.EstimateGasFee %}--est. gas fee: {{ quote.EstimateGasFee }}
{% endif %}{% if quote.PriceImpactPercent %}--price impact: {{ quote.PriceImpactPercent | formatPer }}
{% endif %}{% if quote.Routes %}--routes:{% for r in quote.Routes %}
----{{ r.DexName }} {{ r.Percent }}%{% endfor %}{% endif %}`

// RenderQuoteSummary renders a human-readable summary of a settled
// quote for the CLI.
func RenderQuoteSummary(fromSymbol, toSymbol, amountIn, toAmount string, quote *model.Quote) (string, error) {
	tpl, err := pongo2.FromString(quoteSummaryTemplate)
	if err != nil {
		log.Error().Err(err).Send()
		return "", ErrRender
	}

	out, err := tpl.Execute(pongo2.Context{
		"fromSymbol": fromSymbol,
		"toSymbol":   toSymbol,
		"amountIn":   amountIn,
		"toAmount":   toAmount,
		"quote":      quote,
	})
	if err != nil {
		log.Error().Err(err).Send()
		return "", ErrRender
	}

	return out, nil
}
