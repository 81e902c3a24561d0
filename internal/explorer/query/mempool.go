package query

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
)

const (
	blockVSize      = 1_000_000
	blocksPerHour   = 6
	mempoolListSize = 50

	feeBucketCount  = 12
	sizeBucketWidth = 250
	sizeBucketCount = 7
	ageBucketWidth  = 10 * time.Minute
	ageBucketCount  = 7
)

var feeBucketColors = [feeBucketCount]string{
	"#ef4444", "#f97316", "#eab308", "#84cc16", "#22c55e", "#10b981",
	"#06b6d4", "#3b82f6", "#6366f1", "#8b5cf6", "#a855f7", "#ec4899",
}

// buildMempoolSummary shapes the node mempool into the page payload. Fee tiers
// fill blocks greedily by fee rate: what fits in the next block is high, what
// fits within an hour of blocks is medium, the rest is low.
func buildMempoolSummary(summary *chain.MempoolSummary, now time.Time) *MempoolSummary {
	entries := slices.Clone(summary.Entries)
	slices.SortStableFunc(entries, func(a, b chain.MempoolEntry) int {
		return cmp.Compare(b.FeeRate(), a.FeeRate())
	})

	view := &MempoolSummary{
		TransactionCount: summary.TransactionCount,
		TotalSize:        summary.TotalVSize,
		TotalFees:        FormatBTC(summary.TotalFees),
		FeeRange:         FeeRange{Min: summary.MinFeeRate, Max: summary.MaxFeeRate},
		FeeDistribution:  make([]FeeBucket, feeBucketCount),
		SizeDistribution: make([]SizeBucket, sizeBucketCount),
		AgeDistribution:  make([]AgeBucket, ageBucketCount),
		TransactionLists: MempoolTransactionLists{
			HighFee:   []MempoolTransaction{},
			MediumFee: []MempoolTransaction{},
			LowFee:    []MempoolTransaction{},
		},
	}

	var (
		feeCounts  [feeBucketCount]int
		sizeCounts [sizeBucketCount]int
		ageCounts  [ageBucketCount]int
		filled     int64
	)
	for _, e := range entries {
		age := max(now.Sub(e.Time), 0)
		feeCounts[feeBucket(e.FeeRate())]++
		sizeCounts[sizeBucket(e.VSize)]++
		ageCounts[ageBucket(age)]++

		filled += e.VSize
		row := MempoolTransaction{
			Hash:    e.TxID,
			Fee:     FormatBTC(e.Fee),
			FeeRate: math.Round(e.FeeRate()*100) / 100,
			Size:    e.VSize,
			Age:     int64(age / time.Minute),
		}
		lists := &view.TransactionLists
		switch {
		case filled <= blockVSize:
			view.EstimatedWaitTime.NextBlock = row.FeeRate
			view.EstimatedWaitTime.Hour = row.FeeRate
			lists.HighFee = appendCapped(lists.HighFee, row)
		case filled <= blocksPerHour*blockVSize:
			view.EstimatedWaitTime.Hour = row.FeeRate
			lists.MediumFee = appendCapped(lists.MediumFee, row)
		default:
			lists.LowFee = appendCapped(lists.LowFee, row)
		}
	}

	total := len(entries)
	for i := 0; i < feeBucketCount; i++ {
		view.FeeDistribution[i] = FeeBucket{
			FeeRange:   bucketLabel(i, 1, feeBucketCount, 1),
			Count:      feeCounts[i],
			Percentage: percentage(feeCounts[i], total),
			Color:      feeBucketColors[i],
		}
	}
	for i := 0; i < sizeBucketCount; i++ {
		view.SizeDistribution[i] = SizeBucket{
			SizeRange:  bucketLabel(i, sizeBucketWidth, sizeBucketCount, 0),
			Count:      sizeCounts[i],
			Percentage: percentage(sizeCounts[i], total),
		}
	}
	for i := 0; i < ageBucketCount; i++ {
		view.AgeDistribution[i] = AgeBucket{
			AgeRange:   bucketLabel(i, int(ageBucketWidth/time.Minute), ageBucketCount, 0),
			Count:      ageCounts[i],
			Percentage: percentage(ageCounts[i], total),
		}
	}
	return view
}

// feeBucket maps a sat/vB rate to [1,2), [2,3) ... [12,inf). Rates below 1
// share the first bucket.
func feeBucket(rate float64) int {
	return clampBucket(int64(math.Floor(rate))-1, feeBucketCount)
}

func sizeBucket(vsize int64) int {
	return clampBucket(vsize/sizeBucketWidth, sizeBucketCount)
}

func ageBucket(age time.Duration) int {
	return clampBucket(int64(age/ageBucketWidth), ageBucketCount)
}

// clampBucket folds out-of-range indexes into the first and last bucket.
func clampBucket(i int64, n int) int {
	if i < 0 {
		return 0
	}
	if i >= int64(n) {
		return n - 1
	}
	return int(i)
}

// bucketLabel renders "lo-hi" for bucket i, or "lo+" for the open last bucket.
func bucketLabel(i, width, n, offset int) string {
	lo := offset + i*width
	if i == n-1 {
		return fmt.Sprintf("%d+", lo)
	}
	return fmt.Sprintf("%d-%d", lo, lo+width)
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)*1000/float64(total)) / 10
}

func appendCapped(rows []MempoolTransaction, row MempoolTransaction) []MempoolTransaction {
	if len(rows) >= mempoolListSize {
		return rows
	}
	return append(rows, row)
}
