// Package encoder validates and serializes a swap execution
// configuration into the ABI tuple the settlement contract decodes.
package encoder

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/hellodex/swapkit/model"
	"github.com/hellodex/swapkit/util"
	"github.com/spf13/cast"
)

var (
	ErrZeroDexAggregator     = errors.New("dexAggregator address cannot be zero")
	ErrInvalidDexAggregator  = errors.New("dexAggregator is not a valid address")
	ErrZeroApproveAddress    = errors.New("approveAddress cannot be zero")
	ErrInvalidApproveAddress = errors.New("approveAddress is not a valid address")
	ErrInvalidCalldata       = errors.New("swapCalldata must be at least 4 bytes (function selector)")
	ErrNativeTokenToToken    = errors.New("isNativeToken and toToken zero-address state must match")
	ErrBadMinAmountOut       = errors.New("minAmountOut is not a valid uint256")
)

// selector floor: 0x prefix plus 4 bytes of hex
const minCalldataHexLen = 2 + 8

// struct SwapConfig {
//   address dexAggregator;
//   address approveAddress;
//   bytes   swapCalldata;
//   address toToken;
//   uint256 minAmountOut;
//   bool    isNativeToken;
// }
var swapConfigArgs = func() abi.Arguments {
	t, err := abi.NewType("tuple", "", []abi.ArgumentMarshaling{
		{Name: "dexAggregator", Type: "address"},
		{Name: "approveAddress", Type: "address"},
		{Name: "swapCalldata", Type: "bytes"},
		{Name: "toToken", Type: "address"},
		{Name: "minAmountOut", Type: "uint256"},
		{Name: "isNativeToken", Type: "bool"},
	})
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Type: t}}
}()

type packedSwapConfig struct {
	DexAggregator  common.Address
	ApproveAddress common.Address
	SwapCalldata   []byte
	ToToken        common.Address
	MinAmountOut   *big.Int
	IsNativeToken  bool
}

// EncodeSwapConfig validates config and packs it as a single ABI
// tuple. Validation runs in a fixed order and fails before any bytes
// are produced; identical input always yields byte-identical output.
func EncodeSwapConfig(config model.SwapExecutionConfig) ([]byte, error) {
	if util.IsZeroAddress(config.DexAggregator) {
		return nil, ErrZeroDexAggregator
	}
	if !common.IsHexAddress(config.DexAggregator) {
		return nil, ErrInvalidDexAggregator
	}

	if util.IsZeroAddress(config.ApproveAddress) {
		return nil, ErrZeroApproveAddress
	}
	if !common.IsHexAddress(config.ApproveAddress) {
		return nil, ErrInvalidApproveAddress
	}

	calldataHex := util.NormalizeHex(config.SwapCalldata)
	if config.SwapCalldata == "" || len(calldataHex) < minCalldataHexLen {
		return nil, ErrInvalidCalldata
	}
	calldata, err := hexutil.Decode(calldataHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCalldata, err)
	}

	// Coupled invariant: native output must use the zero address and
	// only then.
	toTokenIsZero := util.IsZeroAddress(config.ToToken)
	if config.IsNativeToken != toTokenIsZero {
		return nil, ErrNativeTokenToToken
	}
	if !toTokenIsZero && !common.IsHexAddress(config.ToToken) {
		return nil, ErrNativeTokenToToken
	}

	minAmountOut, err := coerceUint256(config.MinAmountOut)
	if err != nil {
		return nil, err
	}

	return swapConfigArgs.Pack(packedSwapConfig{
		DexAggregator:  common.HexToAddress(config.DexAggregator),
		ApproveAddress: common.HexToAddress(config.ApproveAddress),
		SwapCalldata:   calldata,
		ToToken:        common.HexToAddress(config.ToToken),
		MinAmountOut:   minAmountOut,
		IsNativeToken:  config.IsNativeToken,
	})
}

// DecodeSwapConfig unpacks bytes produced by EncodeSwapConfig back
// into the execution configuration.
func DecodeSwapConfig(data []byte) (model.SwapExecutionConfig, error) {
	var out model.SwapExecutionConfig

	values, err := swapConfigArgs.Unpack(data)
	if err != nil {
		return out, err
	}

	decoded := *abi.ConvertType(values[0], new(packedSwapConfig)).(*packedSwapConfig)

	out.DexAggregator = decoded.DexAggregator.Hex()
	out.ApproveAddress = decoded.ApproveAddress.Hex()
	out.SwapCalldata = hexutil.Encode(decoded.SwapCalldata)
	out.ToToken = decoded.ToToken.Hex()
	out.MinAmountOut = decoded.MinAmountOut
	out.IsNativeToken = decoded.IsNativeToken

	return out, nil
}

func coerceUint256(v interface{}) (*big.Int, error) {
	var n *big.Int

	switch x := v.(type) {
	case nil:
		return nil, ErrBadMinAmountOut
	case *big.Int:
		if x == nil {
			return nil, ErrBadMinAmountOut
		}
		n = new(big.Int).Set(x)
	case big.Int:
		n = new(big.Int).Set(&x)
	case string:
		s := strings.TrimSpace(x)
		var ok bool
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			n, ok = new(big.Int).SetString(s[2:], 16)
		} else {
			n, ok = new(big.Int).SetString(s, 10)
		}
		if !ok {
			return nil, ErrBadMinAmountOut
		}
	default:
		u, err := cast.ToUint64E(v)
		if err != nil {
			return nil, ErrBadMinAmountOut
		}
		n = new(big.Int).SetUint64(u)
	}

	if n.Sign() < 0 || n.BitLen() > 256 {
		return nil, ErrBadMinAmountOut
	}

	return n, nil
}
