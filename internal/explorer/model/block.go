// Package model defines the persisted domain model of the explorer index.
package model

import "time"

// Block represents a canonical block persisted by the storage writer.
type Block struct {
	Network          Network   `json:"network"`
	Height           int64     `json:"height"`
	Hash             string    `json:"hash"`
	PreviousHash     string    `json:"previous_hash"`
	MerkleRoot       string    `json:"merkle_root"`
	Timestamp        time.Time `json:"timestamp"`
	Version          int32     `json:"version"`
	Bits             uint32    `json:"bits"`
	Nonce            uint32    `json:"nonce"`
	Difficulty       float64   `json:"difficulty"`
	Size             uint32    `json:"size"`
	Weight           uint32    `json:"weight"`
	TXCount          uint32    `json:"tx_count"`
	TotalFees        uint64    `json:"total_fees"`
	TotalOutputValue uint64    `json:"total_output_value"`
	// Reward is the coinbase output total (subsidy plus collected fees).
	Reward         uint64 `json:"reward"`
	PartialFeeData bool   `json:"partial_fee_data"`
}
