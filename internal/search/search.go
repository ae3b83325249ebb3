package search

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Source is one external book catalog. Implementations may return partial
// results alongside an error; the aggregator keeps whatever arrived.
type Source interface {
	// Name identifies the source for logging.
	Name() string
	// Search fetches and normalizes candidates for the classified query.
	Search(ctx context.Context, query Query) ([]Book, error)
}

// Aggregator fans a query out to every source, merges the results and
// ranks them. It holds no per-query state; a single Aggregator is safe
// for concurrent use.
type Aggregator struct {
	sources []Source
}

// NewAggregator creates an Aggregator over the given sources.
func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// Search runs the full pipeline: classify, fetch from all sources in
// parallel, merge, dedupe, score, sort and filter. It never fails; a total
// outage of every source yields an empty list.
func (a *Aggregator) Search(ctx context.Context, raw string) []Book {
	query := Classify(raw)

	slog.Debug("Starting aggregated search",
		"query", raw,
		"isbn", query.Kind == KindISBN,
		"sources", len(a.sources),
	)

	// One worker per source. Results land in per-source slots so the
	// merge order is stable regardless of completion order. A failing
	// source contributes whatever it managed to collect.
	perSource := make([][]Book, len(a.sources))

	var group errgroup.Group
	group.SetLimit(len(a.sources))
	for i, src := range a.sources {
		group.Go(func() error {
			books, err := src.Search(ctx, query)
			if err != nil {
				slog.Warn("Source search failed", "source", src.Name(), "error", err)
			}
			perSource[i] = books
			return nil
		})
	}
	// Workers always return nil; the group is only a barrier.
	_ = group.Wait()

	var merged []Book
	for i, books := range perSource {
		slog.Debug("Source finished", "source", a.sources[i].Name(), "results", len(books))
		merged = append(merged, books...)
	}

	results := Rank(raw, Dedupe(merged))

	slog.Info("Search finished",
		"query", raw,
		"candidates", len(merged),
		"results", len(results),
	)
	return results
}
