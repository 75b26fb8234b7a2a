package api

import (
	"context"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/hellodex/swapkit/config"
	"github.com/hellodex/swapkit/logger"
	"github.com/hellodex/swapkit/model"
	"github.com/hellodex/swapkit/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// GetTokens returns the aggregator token list for a chain, cached for
// the configured TTL. limit <= 0 means the full list; the cap is a
// client-side slice, never sent upstream.
func GetTokens(chainIndex int, limit int) ([]model.Token, error) {
	if cached, has := store.Get(chainIndex, store.TokenList); has {
		if tokens, ok := cached.([]model.Token); ok {
			return capTokens(tokens, limit), nil
		}
		store.Delete(chainIndex, store.TokenList)
	}

	operation := func() ([]model.Token, error) {
		return fetchTokens(chainIndex)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 10 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tokens, err := backoff.Retry(ctx, operation, backoff.WithMaxTries(3), backoff.WithBackOff(b))
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(config.YmlConfig.Swap.TokenCacheMin) * time.Minute
	store.Set(chainIndex, store.TokenList, tokens, ttl)

	return capTokens(tokens, limit), nil
}

func fetchTokens(chainIndex int) ([]model.Token, error) {
	qs := url.Values{}
	qs.Set("chainIndex", cast.ToString(chainIndex))

	body, err := proxyGet(TokensPath, qs)
	if err != nil {
		logger.WithTokenCategory(log.Error().Err(err)).Send()
		return nil, err
	}

	code := gjson.GetBytes(body, "code")
	if !code.Exists() {
		code = gjson.GetBytes(body, "error_code")
	}
	if code.Exists() && code.String() != successCode {
		// no list for this chain, callers fall back to local tokens
		return []model.Token{}, nil
	}

	data := gjson.GetBytes(body, "data").Array()

	// The list arrives in one of two field-naming conventions; entries
	// missing both address variants or both symbol variants are dropped.
	tokens := lo.FilterMap(data, func(t gjson.Result, _ int) (model.Token, bool) {
		address := firstString(t, "address", "tokenContractAddress")
		symbol := firstString(t, "symbol", "tokenSymbol")
		name := firstString(t, "name", "tokenName")
		if name == "" {
			name = symbol
		}

		token := model.Token{
			ChainId:  t.Get("chainId").String(),
			Address:  address,
			Symbol:   symbol,
			Name:     name,
			Decimals: int32(t.Get("decimals").Int()),
			LogoURI:  firstString(t, "logoURI", "tokenLogoUrl"),
		}

		return token, address != "" && symbol != ""
	})

	return tokens, nil
}

func capTokens(tokens []model.Token, limit int) []model.Token {
	if limit > 0 && len(tokens) > limit {
		return tokens[:limit]
	}
	return tokens
}

func firstString(t gjson.Result, keys ...string) string {
	for _, key := range keys {
		if v := t.Get(key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
