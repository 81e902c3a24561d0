package query

// BlockTransaction is one row of the block detail transaction list.
type BlockTransaction struct {
	Hash   string `json:"hash"`
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
	Fee    string `json:"fee"`
	Time   string `json:"time"`
}

// BlockDetail is the block page payload.
type BlockDetail struct {
	Hash              string             `json:"hash"`
	Height            string             `json:"height"`
	Timestamp         string             `json:"timestamp"`
	Size              string             `json:"size"`
	Difficulty        string             `json:"difficulty"`
	Nonce             string             `json:"nonce"`
	TransactionCount  string             `json:"transactionCount"`
	Transactions      []BlockTransaction `json:"transactions"`
	Version           string             `json:"version"`
	PreviousBlockHash string             `json:"previousBlockHash"`
	MerkleRoot        string             `json:"merkleRoot"`
	Target            string             `json:"target"`
	BlockReward       string             `json:"blockReward"`
	TotalFees         string             `json:"totalFees"`
	TotalOutput       string             `json:"totalOutput"`
	// PartialFeeData is set when some fees in the block could not be computed.
	PartialFeeData bool    `json:"partialFeeData"`
	PrevBlock      *string `json:"prevBlock"`
	NextBlock      *string `json:"nextBlock"`
}

// BlockSummary is one row of the block list.
type BlockSummary struct {
	Hash         string `json:"hash"`
	Height       string `json:"height"`
	Size         string `json:"size"`
	Transactions string `json:"transactions"`
	Reward       string `json:"reward"`
	Time         string `json:"time"`
	Ago          string `json:"ago"`
}

// BlocksResponse is one page of the block list, newest first.
type BlocksResponse struct {
	Data        []BlockSummary `json:"data"`
	TotalPages  int64          `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	TotalBlocks int64          `json:"totalBlocks"`
	PageSize    int            `json:"pageSize"`
}

type TransactionInput struct {
	Index          int    `json:"index"`
	PreviousTxHash string `json:"previousTxHash"`
	OutputIndex    string `json:"outputIndex"`
	ScriptSig      string `json:"scriptSig"`
	Sequence       string `json:"sequence"`
	Address        string `json:"address"`
	Value          string `json:"value"`
}

type TransactionOutput struct {
	Index        int    `json:"index"`
	Value        string `json:"value"`
	ScriptPubKey string `json:"scriptPubKey"`
	Address      string `json:"address"`
	Type         string `json:"type"`
	Spent        bool   `json:"spent"`
	SpentBy      string `json:"spentBy,omitempty"`
}

// TransactionDetail is the transaction page payload.
type TransactionDetail struct {
	Hash          string              `json:"hash"`
	Status        string              `json:"status"`
	BlockHash     string              `json:"blockHash"`
	BlockHeight   int64               `json:"blockHeight"`
	Timestamp     string              `json:"timestamp"`
	Size          string              `json:"size"`
	Version       uint32              `json:"version"`
	LockTime      uint32              `json:"lockTime"`
	InputCount    uint32              `json:"inputCount"`
	OutputCount   uint32              `json:"outputCount"`
	TotalInput    string              `json:"totalInput"`
	TotalOutput   string              `json:"totalOutput"`
	Fee           string              `json:"fee"`
	FeeRate       string              `json:"feeRate"`
	Inputs        []TransactionInput  `json:"inputs"`
	Outputs       []TransactionOutput `json:"outputs"`
	Confirmations int64               `json:"confirmations"`
	Weight        uint32              `json:"weight"`
	VirtualSize   uint32              `json:"virtualSize"`
}

// AddressTransaction is one history row of an address.
type AddressTransaction struct {
	Hash          string `json:"hash"`
	BlockHeight   int64  `json:"blockHeight"`
	Received      string `json:"received"`
	Sent          string `json:"sent"`
	Confirmations int64  `json:"confirmations"`
}

// AddressInfo is the balance and transaction history of an address.
type AddressInfo struct {
	Address          string               `json:"address"`
	Balance          string               `json:"balance"`
	TotalReceived    string               `json:"totalReceived"`
	TotalSent        string               `json:"totalSent"`
	TransactionCount uint64               `json:"transactionCount"`
	Transactions     []AddressTransaction `json:"transactions"`
	CurrentPage      int                  `json:"currentPage"`
	TotalPages       int64                `json:"totalPages"`
}

// ChainInfo summarizes node and index progress.
type ChainInfo struct {
	Chain         string `json:"chain"`
	BlockHeight   int64  `json:"blockHeight"`
	IndexedHeight int64  `json:"indexedHeight"`
	Headers       int64  `json:"headers"`
	BestBlockHash string `json:"bestBlockHash"`
	Difficulty    string `json:"difficulty"`
	MedianTime    string `json:"medianTime"`
}

type FeeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// EstimatedWaitTime holds the lowest fee rate, in sat/vB, that still fits in the
// next block and within the next hour of blocks.
type EstimatedWaitTime struct {
	NextBlock float64 `json:"nextBlock"`
	Hour      float64 `json:"hour"`
}

type FeeBucket struct {
	FeeRange   string  `json:"feeRange"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

type SizeBucket struct {
	SizeRange  string  `json:"sizeRange"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type AgeBucket struct {
	AgeRange   string  `json:"ageRange"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MempoolTransaction is one row of a fee tier list. Age is in minutes.
type MempoolTransaction struct {
	Hash    string  `json:"hash"`
	Fee     string  `json:"fee"`
	FeeRate float64 `json:"feeRate"`
	Size    int64   `json:"size"`
	Age     int64   `json:"age"`
}

// MempoolTransactionLists splits the mempool by how soon it is likely to confirm.
type MempoolTransactionLists struct {
	HighFee   []MempoolTransaction `json:"highFee"`
	MediumFee []MempoolTransaction `json:"mediumFee"`
	LowFee    []MempoolTransaction `json:"lowFee"`
}

// MempoolSummary is the mempool page payload.
type MempoolSummary struct {
	TransactionCount  int                     `json:"transactionCount"`
	TotalSize         int64                   `json:"totalSize"`
	TotalFees         string                  `json:"totalFees"`
	FeeRange          FeeRange                `json:"feeRange"`
	EstimatedWaitTime EstimatedWaitTime       `json:"estimatedWaitTime"`
	FeeDistribution   []FeeBucket             `json:"feeDistribution"`
	SizeDistribution  []SizeBucket            `json:"sizeDistribution"`
	AgeDistribution   []AgeBucket             `json:"ageDistribution"`
	TransactionLists  MempoolTransactionLists `json:"transactionLists"`
}
