package api

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/duke-git/lancet/v2/convertor"
	"github.com/duke-git/lancet/v2/cryptor"
	"github.com/duke-git/lancet/v2/netutil"
	"github.com/hellodex/swapkit/config"
	"github.com/hellodex/swapkit/logger"
	"github.com/hellodex/swapkit/util"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

// Upstream aggregator paths, forwarded verbatim by the proxy.
const (
	QuotePath   = "/api/v6/dex/aggregator/quote"
	TokensPath  = "/api/v6/dex/aggregator/all-tokens"
	ApprovePath = "/api/v6/dex/aggregator/approve-transaction"
	SwapPath    = "/api/v6/dex/aggregator/swap"
)

// ErrUpstreamStatus marks a non-2xx proxy response. Callers map it to
// their own unavailable condition.
var ErrUpstreamStatus = errors.New("upstream returned non-success status")

func BuildBasicUrl() string {
	return config.YmlConfig.Env.ApiEndpoint
}

func signAppInfo(ts string) string {
	params := config.YmlConfig.App.Appid + ts + config.YmlConfig.App.Ver + config.YmlConfig.App.Appkey
	return cryptor.Sha256(params)
}

func makeHeader() http.Header {
	ts := time.Now().UnixMilli()
	sign := signAppInfo(convertor.ToString(ts))

	header := http.Header{}
	header.Add("Accept", "application/json")
	header.Add("Sign", sign)
	header.Add("Ts", cast.ToString(ts))
	header.Add("Ver", config.YmlConfig.App.Ver)
	header.Add("App-Id", config.YmlConfig.App.Appid)

	return header
}

// proxyGet issues a GET through the signing proxy. The upstream path
// travels as the `path` query parameter; everything else is forwarded.
func proxyGet(path string, qs url.Values) ([]byte, error) {
	qs.Set("path", path)

	req := &netutil.HttpRequest{
		RawURL:  BuildBasicUrl() + "?" + qs.Encode(),
		Method:  "GET",
		Headers: makeHeader(),
	}

	client := netutil.NewHttpClient()
	resp, err := client.SendRequest(req)
	if err != nil {
		log.Error().Err(err).Str("path", path).Send()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUpstreamStatus
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if util.IsDebug() {
		logger.NewStdLog(path, qs.Encode(), body)
	}

	return body, nil
}
