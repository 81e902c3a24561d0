package model

// AddressSummary aggregates the canonical activity of one address.
type AddressSummary struct {
	Address  string `json:"address"`
	Received uint64 `json:"received"`
	Sent     uint64 `json:"sent"`
	TxCount  uint64 `json:"tx_count"`
}

// Balance is the confirmed balance in satoshis.
func (s AddressSummary) Balance() uint64 {
	if s.Sent > s.Received {
		return 0
	}
	return s.Received - s.Sent
}

// AddressTransaction is one history row of an address.
type AddressTransaction struct {
	TxID        string `json:"txid"`
	BlockHeight int64  `json:"block_height"`
	Position    uint32 `json:"position"`
	Received    uint64 `json:"received"`
	Sent        uint64 `json:"sent"`
}
