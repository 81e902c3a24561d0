package bitcoin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
)

const (
	rpcCodeInvalidAddressOrKey btcjson.RPCErrorCode = -5
	rpcCodeInvalidParameter    btcjson.RPCErrorCode = -8
	rpcCodeInWarmup            btcjson.RPCErrorCode = -28
)

// classify maps an error returned by the node client onto the chain error taxonomy.
func classify(operation string, err error) error {
	if err == nil {
		return nil
	}

	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case rpcCodeInvalidAddressOrKey, rpcCodeInvalidParameter:
			return fmt.Errorf("%s: %w: %w", operation, chain.ErrNotFound, err)
		case rpcCodeInWarmup:
			return fmt.Errorf("%s: %w: %w", operation, chain.ErrNodeUnavailable, err)
		default:
			return fmt.Errorf("%s: %w: %w", operation, chain.ErrMalformedResponse, err)
		}
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%s: %w: %w", operation, chain.ErrMalformedResponse, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%s: %w: %w", operation, chain.ErrTimeout, err)
		}
		return fmt.Errorf("%s: %w: %w", operation, chain.ErrNodeUnavailable, err)
	}

	if errors.Is(err, rpcclient.ErrClientShutdown) ||
		errors.Is(err, rpcclient.ErrClientNotConnected) ||
		errors.Is(err, rpcclient.ErrClientDisconnect) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%s: %w: %w", operation, chain.ErrNodeUnavailable, err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") {
		return fmt.Errorf("%s: %w: %w", operation, chain.ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", operation, chain.ErrNodeUnavailable, err)
}
