package model

// ScriptType classifies an output script by standard template.
type ScriptType string

const (
	ScriptP2PKH    ScriptType = "P2PKH"
	ScriptP2SH     ScriptType = "P2SH"
	ScriptP2WPKH   ScriptType = "P2WPKH"
	ScriptP2WSH    ScriptType = "P2WSH"
	ScriptOPReturn ScriptType = "OP_RETURN"
	ScriptOther    ScriptType = "OTHER"
)

// Transaction is owned by exactly one block.
type Transaction struct {
	TxID        string `json:"txid"`
	BlockHash   string `json:"block_hash"`
	BlockHeight int64  `json:"block_height"`
	// Position is the index of the transaction inside its block.
	Position    uint32 `json:"position"`
	Version     uint32 `json:"version"`
	LockTime    uint32 `json:"lock_time"`
	Size        uint32 `json:"size"`
	VSize       uint32 `json:"vsize"`
	Weight      uint32 `json:"weight"`
	IsCoinbase  bool   `json:"is_coinbase"`
	InputCount  uint32 `json:"input_count"`
	OutputCount uint32 `json:"output_count"`
	TotalInput  uint64 `json:"total_input"`
	TotalOutput uint64 `json:"total_output"`
	Fee         uint64 `json:"fee"`
	// FeeKnown is false when at least one input could not be resolved.
	FeeKnown bool `json:"fee_known"`
}

// OutPoint references an output of a previous transaction.
type OutPoint struct {
	TxID  string `json:"txid"`
	Index uint32 `json:"index"`
}

// TransactionInput belongs to exactly one transaction.
type TransactionInput struct {
	TxID         string   `json:"txid"`
	Index        uint32   `json:"index"`
	IsCoinbase   bool     `json:"is_coinbase"`
	PrevOut      OutPoint `json:"prev_out"`
	ScriptSigHex string   `json:"script_sig_hex"`
	Sequence     uint32   `json:"sequence"`
	Witness      []string `json:"witness,omitempty"`
	Resolved     bool     `json:"resolved"`
	Value        uint64   `json:"value"`
	Address      string   `json:"address,omitempty"`
	BlockHeight  int64    `json:"block_height"`
}

// TransactionOutput belongs to exactly one transaction.
type TransactionOutput struct {
	TxID        string     `json:"txid"`
	Index       uint32     `json:"index"`
	Value       uint64     `json:"value"`
	ScriptHex   string     `json:"script_hex"`
	ScriptAsm   string     `json:"script_asm,omitempty"`
	ScriptType  ScriptType `json:"script_type"`
	Address     string     `json:"address,omitempty"`
	BlockHeight int64      `json:"block_height"`
	IsCoinbase  bool       `json:"is_coinbase"`
}

// OutPoint returns the reference other inputs use to spend this output.
func (o TransactionOutput) OutPoint() OutPoint {
	return OutPoint{TxID: o.TxID, Index: o.Index}
}
