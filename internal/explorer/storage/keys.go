package storage

import (
	"encoding/binary"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

// Key prefixes partition the keyspace the way column families would.
const (
	prefixBlocks         = "blk:"
	prefixBlocksByHeight = "bht:"
	prefixBlockTxs       = "btx:"
	prefixTransactions   = "txn:"
	prefixInputs         = "vin:"
	prefixOutputs        = "vot:"
	prefixSpends         = "spt:"
	prefixAddresses      = "adr:"
	prefixAddressHistory = "aht:"
	keyCursor            = "syn:cursor"
)

func blockKey(hash string) []byte {
	return append([]byte(prefixBlocks), hash...)
}

func heightKey(height int64) []byte {
	return binary.BigEndian.AppendUint64([]byte(prefixBlocksByHeight), uint64(height))
}

func heightFromKey(key []byte) int64 {
	return int64(binary.BigEndian.Uint64(key[len(prefixBlocksByHeight):]))
}

func blockTxPrefix(height int64) []byte {
	return binary.BigEndian.AppendUint64([]byte(prefixBlockTxs), uint64(height))
}

func blockTxKey(height int64, position uint32) []byte {
	return binary.BigEndian.AppendUint32(blockTxPrefix(height), position)
}

func txKey(txid string) []byte {
	return append([]byte(prefixTransactions), txid...)
}

func inputPrefix(txid string) []byte {
	return append([]byte(prefixInputs), txid...)
}

func inputKey(txid string, index uint32) []byte {
	return binary.BigEndian.AppendUint32(inputPrefix(txid), index)
}

func outputPrefix(txid string) []byte {
	return append([]byte(prefixOutputs), txid...)
}

func outputKey(txid string, index uint32) []byte {
	return binary.BigEndian.AppendUint32(outputPrefix(txid), index)
}

func spendKey(op model.OutPoint) []byte {
	key := append([]byte(prefixSpends), op.TxID...)
	return binary.BigEndian.AppendUint32(key, op.Index)
}

func addressKey(address string) []byte {
	return append([]byte(prefixAddresses), address...)
}

// addressHistoryPrefix ends with a separator no address encoding uses, so one
// address never prefixes another.
func addressHistoryPrefix(address string) []byte {
	key := append([]byte(prefixAddressHistory), address...)
	return append(key, '/')
}

func addressHistoryKey(address string, height int64, position uint32) []byte {
	key := binary.BigEndian.AppendUint64(addressHistoryPrefix(address), uint64(height))
	return binary.BigEndian.AppendUint32(key, position)
}

// prefixUpperBound returns the smallest key greater than every key with prefix.
func prefixUpperBound(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	upper := make([]byte, len(prefix))
	copy(upper, prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] < 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}
