package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/hellodex/swapkit/api"
	"github.com/hellodex/swapkit/config"
	"github.com/hellodex/swapkit/encoder"
	"github.com/hellodex/swapkit/model"
	"github.com/hellodex/swapkit/quote"
	"github.com/hellodex/swapkit/template"
	"github.com/hellodex/swapkit/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	chain := flag.Int("chain", 1, "EVM chain id (sent upstream as chainIndex)")
	from := flag.String("from", "", "input token address")
	to := flag.String("to", "", "output token address (zero address for native)")
	amount := flag.String("amount", "", "human-readable input amount")
	user := flag.String("user", "", "wallet address, required with -encode")
	encode := flag.Bool("encode", false, "build swap calldata and print the encoded swap config")
	flag.Parse()

	if *from == "" || *to == "" || *amount == "" {
		flag.Usage()
		os.Exit(1)
	}
	if err := util.CheckValidAddress(*from); err != nil {
		fmt.Fprintf(os.Stderr, "-from: %v\n", err)
		os.Exit(1)
	}
	if err := util.CheckValidAddress(*to); err != nil {
		fmt.Fprintf(os.Stderr, "-to: %v\n", err)
		os.Exit(1)
	}
	if d, err := decimal.NewFromString(*amount); err != nil || d.Sign() <= 0 {
		fmt.Fprintln(os.Stderr, "-amount must be a positive number")
		os.Exit(1)
	}

	fromToken, toToken := resolveTokens(*chain, *from, *to)

	orch := quote.NewDefault()
	defer orch.Stop()

	done := make(chan quote.Snapshot, 1)
	// Idle snapshots are transient here (the debounced amount has not
	// settled yet), only a settle or failure ends the wait.
	unsubscribe := orch.Subscribe(func(s quote.Snapshot) {
		if s.State == quote.StateSettled || s.State == quote.StateFailed {
			select {
			case done <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	orch.SetInputs(quote.Inputs{
		ChainId:   *chain,
		FromToken: model.TokenRef{Address: fromToken.Address, Decimals: fromToken.Decimals},
		ToToken:   model.TokenRef{Address: toToken.Address, Decimals: toToken.Decimals},
		AmountIn:  *amount,
		Enabled:   true,
	})

	var snap quote.Snapshot
	select {
	case snap = <-done:
	case <-time.After(60 * time.Second):
		fmt.Fprintln(os.Stderr, "timed out waiting for quote")
		os.Exit(1)
	}

	if snap.State != quote.StateSettled {
		fmt.Fprintf(os.Stderr, "no quote: %v\n", snap.Err)
		os.Exit(1)
	}

	summary, err := template.RenderQuoteSummary(fromToken.Symbol, toToken.Symbol, *amount, snap.ToAmount, snap.Quote)
	if err != nil {
		log.Error().Err(err).Send()
		os.Exit(1)
	}
	fmt.Println(summary)

	if *encode {
		if *user == "" {
			fmt.Fprintln(os.Stderr, "-encode requires -user")
			os.Exit(1)
		}
		if err := encodeSwap(*chain, fromToken, toToken, *user, snap.Quote); err != nil {
			fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
			os.Exit(1)
		}
	}
}

// resolveTokens fills symbols and decimals from the aggregator token
// list, falling back to bare addresses with default precision.
func resolveTokens(chain int, from, to string) (model.Token, model.Token) {
	fromToken := model.Token{Address: from, Symbol: shortAddr(from), Decimals: model.DefaultDecimals}
	toToken := model.Token{Address: to, Symbol: shortAddr(to), Decimals: model.DefaultDecimals}

	tokens, err := api.GetTokens(chain, 0)
	if err != nil {
		log.Warn().Err(err).Msg("token list unavailable, using defaults")
		return fromToken, toToken
	}

	for _, t := range tokens {
		if strings.EqualFold(t.Address, from) {
			fromToken = t
		}
		if strings.EqualFold(t.Address, to) {
			toToken = t
		}
	}

	return fromToken, toToken
}

func encodeSwap(chain int, fromToken, toToken model.Token, user string, q *model.Quote) error {
	amountRaw := q.RawAmountIn
	if amountRaw == "" {
		return errors.New("quote carries no raw input amount")
	}

	slippage := config.YmlConfig.Swap.SlippagePercent

	swapTx, err := api.BuildSwapTx(chain, fromToken.Address, toToken.Address, amountRaw, slippage, user)
	if err != nil {
		return err
	}

	approve, err := api.GetApproveTx(chain, fromToken.Address, amountRaw)
	if err != nil {
		return err
	}

	minOut, err := minAmountOut(q.RawAmountOut, slippage)
	if err != nil {
		return err
	}

	payload, err := encoder.EncodeSwapConfig(model.SwapExecutionConfig{
		DexAggregator:  swapTx.AggregatorAddress,
		ApproveAddress: approve.ApproveAddress,
		SwapCalldata:   swapTx.Calldata,
		ToToken:        toToken.Address,
		MinAmountOut:   minOut,
		IsNativeToken:  util.IsNativeCoin(toToken.Address),
	})
	if err != nil {
		return err
	}

	fmt.Println("swap config:", hexutil.Encode(payload))
	return nil
}

// minAmountOut applies the slippage tolerance to the quoted raw
// output, floored to whole atomic units.
func minAmountOut(rawOut, slippagePercent string) (string, error) {
	out, err := decimal.NewFromString(rawOut)
	if err != nil {
		return "", fmt.Errorf("quote carries no raw output amount: %v", err)
	}
	slip, err := decimal.NewFromString(slippagePercent)
	if err != nil {
		return "", fmt.Errorf("invalid slippage: %v", err)
	}

	factor := decimal.NewFromInt(100).Sub(slip).Div(decimal.NewFromInt(100))
	return out.Mul(factor).Floor().BigInt().String(), nil
}

func shortAddr(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "…" + address[len(address)-4:]
}
