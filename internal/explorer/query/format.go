package query

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// BlocksPageSize is the number of blocks per list page.
	BlocksPageSize = 15
	// AddressPageSize is the number of history rows per address page.
	AddressPageSize = 25

	blockRewardSentinel = "N/A - Block Reward"
	notAvailable        = "N/A"
	statusConfirmed     = "Confirmed"
	statusUnconfirmed   = "Unconfirmed"

	timeLayout      = "01. 02. 2006 - 15:04:05"
	timestampLayout = timeLayout + " UTC"
)

// ErrInvalidArgument reports a malformed block id, page or identifier.
var ErrInvalidArgument = errors.New("invalid argument")

var printer = message.NewPrinter(language.English)

// FormatBTC renders satoshis as a fixed eight-decimal BTC amount.
func FormatBTC(sats uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(sats), -8).StringFixed(8) + " BTC"
}

func formatBytes(n uint32) string {
	return printer.Sprintf("%d bytes", n)
}

func formatCount[T ~int | ~int64 | ~uint32 | ~uint64](n T) string {
	return printer.Sprintf("%d", n)
}

func formatDifficulty(d float64) string {
	return printer.Sprintf("%.2f", d)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func formatFeeRate(fee uint64, vsize uint32) string {
	if vsize == 0 {
		return "0.00 sat/byte"
	}
	return fmt.Sprintf("%.2f sat/byte", float64(fee)/float64(vsize))
}

// formatTarget expands compact difficulty bits into the 256-bit target.
func formatTarget(bits uint32) string {
	return fmt.Sprintf("%064x", blockchain.CompactToBig(bits))
}

func formatAgo(now, t time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return ago(int64(d/time.Second), "second")
	case d < time.Hour:
		return ago(int64(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return ago(int64(d/time.Hour), "hour")
	default:
		return ago(int64(d/(24*time.Hour)), "day")
	}
}

func ago(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// confirmations counts the containing block as the first confirmation.
func confirmations(tip, height int64) int64 {
	if height < 0 || tip < height {
		return 0
	}
	return tip - height + 1
}

func totalPages(total int64, pageSize int) int64 {
	if total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}

// blockID is a parsed block identifier: a height or a hash.
type blockID struct {
	height int64
	hash   string
}

func (id blockID) isHeight() bool {
	return id.hash == ""
}

func parseBlockID(id string) (blockID, error) {
	if id == "" {
		return blockID{}, fmt.Errorf("%w: empty block id", ErrInvalidArgument)
	}
	if len(id) == chainhash.MaxHashStringSize {
		if err := validateHash(id); err != nil {
			return blockID{}, err
		}
		return blockID{hash: id}, nil
	}
	if height, err := strconv.ParseInt(id, 10, 64); err == nil {
		if height < 0 {
			return blockID{}, fmt.Errorf("%w: negative height %d", ErrInvalidArgument, height)
		}
		return blockID{height: height}, nil
	}
	return blockID{}, fmt.Errorf("%w: %q is neither a height nor a block hash", ErrInvalidArgument, id)
}

func validateHash(hash string) error {
	if len(hash) != chainhash.MaxHashStringSize {
		return fmt.Errorf("%w: %q is not a 64 character hash", ErrInvalidArgument, hash)
	}
	if _, err := chainhash.NewHashFromStr(hash); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidArgument, hash, err)
	}
	return nil
}

func validatePage(page int) error {
	if page < 1 {
		return fmt.Errorf("%w: page %d", ErrInvalidArgument, page)
	}
	return nil
}
