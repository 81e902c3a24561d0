package chain

import "errors"

var (
	// ErrNodeUnavailable reports a connection failure to the node. Transient.
	ErrNodeUnavailable = errors.New("node unavailable")
	// ErrTimeout reports an RPC call exceeding its deadline. Transient.
	ErrTimeout = errors.New("rpc timeout")
	// ErrNotFound reports a block, transaction or record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMalformedResponse reports a node payload that cannot be decoded.
	ErrMalformedResponse = errors.New("malformed node response")
	// ErrDecode reports a block whose transactions cannot be decoded.
	ErrDecode = errors.New("decode block")
	// ErrChainLinkage reports a block that does not extend the stored tip.
	ErrChainLinkage = errors.New("chain linkage mismatch")
	// ErrDeepReorg reports a reorganization deeper than the configured bound.
	ErrDeepReorg = errors.New("reorg exceeds maximum depth")
	// ErrStorageUnavailable reports a failing persistent store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// IsTransient reports whether err may succeed when the same call is retried.
func IsTransient(err error) bool {
	return errors.Is(err, ErrNodeUnavailable) || errors.Is(err, ErrTimeout)
}
