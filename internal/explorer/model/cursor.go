package model

// CursorState is the indexing state of the chain cursor.
type CursorState string

const (
	CursorIdle          CursorState = "idle"
	CursorFetching      CursorState = "fetching"
	CursorProcessing    CursorState = "processing"
	CursorReorgRecovery CursorState = "reorg_recovery"
	CursorError         CursorState = "error"
)

// GenesisNotIndexed is the cursor height before the first block is written.
const GenesisNotIndexed int64 = -1

// Cursor is the persisted indexing progress.
type Cursor struct {
	Height int64       `json:"height"`
	Hash   string      `json:"hash"`
	State  CursorState `json:"state"`
}
