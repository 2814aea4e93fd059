// Package search coordinates source adapters into a single deduplicated
// result set.
package search

import (
	"context"
	"fmt"

	"github.com/jonesrussell/ukdirectory/internal/domain"
	"github.com/jonesrussell/ukdirectory/internal/logger"
	"github.com/jonesrussell/ukdirectory/internal/scraper"
)

// DefaultSources are the directories searched when a request does not name
// any. The pair covers the broadest listing overlap at the lowest fetch cost.
var DefaultSources = []string{"yell", "freeindex"}

// Orchestrator runs a search across a set of source adapters sequentially
// and merges their results. Sequential execution keeps the per-directory
// politeness delays meaningful.
type Orchestrator struct {
	adapters map[string]scraper.Adapter
	log      logger.Interface
}

// NewOrchestrator builds an orchestrator over the given adapters, indexed by
// their keys.
func NewOrchestrator(adapters []scraper.Adapter, log logger.Interface) *Orchestrator {
	if log == nil {
		log = logger.NewNop()
	}

	indexed := make(map[string]scraper.Adapter, len(adapters))
	for _, a := range adapters {
		indexed[a.Key()] = a
	}

	return &Orchestrator{adapters: indexed, log: log}
}

// Search runs the named sources in order and returns the deduplicated union
// of their listings. Unknown sources are skipped. A failing source never
// fails the search; its results are simply absent.
func (o *Orchestrator) Search(
	ctx context.Context,
	query, location string,
	sources []string,
	maxPages int,
) []*domain.Listing {
	if len(sources) == 0 {
		sources = DefaultSources
	}

	var all []*domain.Listing
	for _, key := range sources {
		adapter, ok := o.adapters[key]
		if !ok {
			o.log.Warn("unknown source requested", "source", key)
			continue
		}

		o.log.Info("searching source",
			"source", adapter.Source(),
			"query", query,
			"location", location,
			"max_pages", maxPages,
		)

		listings, err := o.runAdapter(ctx, adapter, query, location, maxPages)
		if err != nil {
			o.log.Error("source search failed",
				"source", adapter.Source(),
				"error", err.Error(),
			)
			continue
		}

		o.log.Info("source search complete",
			"source", adapter.Source(),
			"listings", len(listings),
		)

		all = append(all, listings...)
	}

	return Deduplicate(all)
}

// runAdapter isolates one source: a panicking adapter is converted to an
// error so the remaining sources still run.
func (o *Orchestrator) runAdapter(
	ctx context.Context,
	adapter scraper.Adapter,
	query, location string,
	maxPages int,
) (listings []*domain.Listing, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source panicked: %v", r)
		}
	}()

	return adapter.Search(ctx, query, location, maxPages)
}

// Deduplicate removes listings whose normalized names collide, keeping the
// first occurrence. With sources run in request order, earlier sources win.
// The result is never nil.
func Deduplicate(listings []*domain.Listing) []*domain.Listing {
	seen := make(map[string]struct{}, len(listings))
	deduped := make([]*domain.Listing, 0, len(listings))

	for _, l := range listings {
		name := l.NormalizedName()
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		deduped = append(deduped, l)
	}

	return deduped
}
