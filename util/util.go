package util

import (
	"errors"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hellodex/swapkit/config"
)

var ErrInvalidAddress = errors.New("invalid token address")

func IsDebug() bool {
	return os.Getenv("DEBUG") == "true" || config.YmlConfig.Env.Debug == "true"
}

// IsZeroAddress reports whether address is the EVM zero address (or
// empty, which callers treat the same way).
func IsZeroAddress(address string) bool {
	if address == "" {
		return true
	}
	if !common.IsHexAddress(address) {
		return false
	}
	return common.HexToAddress(address) == (common.Address{})
}

// IsNativeCoin reports whether address stands for the chain's native
// coin, conventionally the zero address in aggregator responses.
func IsNativeCoin(address string) bool {
	return IsZeroAddress(address)
}

func CheckValidAddress(address string) error {
	if IsNativeCoin(address) {
		return nil
	}
	if !common.IsHexAddress(address) {
		return ErrInvalidAddress
	}
	return nil
}

// NormalizeHex lower-cases a hex string and guarantees the 0x prefix.
func NormalizeHex(s string) string {
	s = strings.ToLower(s)
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return s
}
