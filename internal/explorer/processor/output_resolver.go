package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

// OutputResolver fills input values and addresses from the outputs they spend.
// Outputs created earlier in the same block are used first; the rest are fetched
// from storage in a single lookup.
type OutputResolver struct {
	lookup  OutputLookup
	metrics Metrics
}

// NewOutputResolver constructs an OutputResolver.
func NewOutputResolver(lookup OutputLookup, metrics Metrics) *OutputResolver {
	return &OutputResolver{
		lookup:  lookup,
		metrics: metrics,
	}
}

// Resolve marks every input it can resolve. Unresolvable inputs stay unresolved; only a
// lookup failure is an error.
func (r *OutputResolver) Resolve(ctx context.Context, txs []decodedTx) (err error) {
	inBlock := make(map[model.OutPoint]model.TransactionOutput)
	missing := make([]model.OutPoint, 0)
	seen := make(map[model.OutPoint]struct{})

	for i := range txs {
		for j := range txs[i].inputs {
			in := &txs[i].inputs[j]
			if in.IsCoinbase {
				continue
			}
			if out, ok := inBlock[in.PrevOut]; ok {
				resolveInput(in, out)
				continue
			}
			if _, dup := seen[in.PrevOut]; !dup {
				seen[in.PrevOut] = struct{}{}
				missing = append(missing, in.PrevOut)
			}
		}
		// Outputs become visible only to later transactions.
		for _, out := range txs[i].outputs {
			inBlock[out.OutPoint()] = out
		}
	}

	if len(missing) == 0 {
		return nil
	}

	started := time.Now()
	defer func() {
		r.metrics.ObserveResolveInputs(err, len(missing), started)
	}()

	stored, err := r.lookup.Outputs(ctx, missing)
	if err != nil {
		return fmt.Errorf("lookup %d previous outputs: %w", len(missing), err)
	}
	for i := range txs {
		for j := range txs[i].inputs {
			in := &txs[i].inputs[j]
			if in.IsCoinbase || in.Resolved {
				continue
			}
			if out, ok := stored[in.PrevOut]; ok {
				resolveInput(in, out)
			}
		}
	}
	return nil
}

func resolveInput(in *model.TransactionInput, out model.TransactionOutput) {
	in.Resolved = true
	in.Value = out.Value
	in.Address = out.Address
}
