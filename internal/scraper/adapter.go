// Package scraper implements the source adapters that fetch and parse UK
// business directory result pages into listings.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/ukdirectory/internal/domain"
	"github.com/jonesrussell/ukdirectory/internal/logger"
)

// Politeness delay defaults, applied between successive page fetches of the
// same directory.
const (
	DefaultDelayMin = 500 * time.Millisecond
	DefaultDelayMax = 1500 * time.Millisecond
)

// Adapter fetches and parses one directory's result pages.
type Adapter interface {
	// Key is the identifier callers use to select this adapter.
	Key() string
	// Source labels every record this adapter produces.
	Source() string
	// Search fetches up to maxPages result pages for the query and
	// location. Transport failures end pagination early; listings
	// collected from earlier pages are still returned.
	Search(ctx context.Context, query, location string, maxPages int) ([]*domain.Listing, error)
}

// Options configures adapter fetch behavior. Each adapter instance owns its
// configuration; there is no shared mutable state between adapters.
type Options struct {
	Client   *Client
	DelayMin time.Duration
	DelayMax time.Duration
	Logger   logger.Interface
}

func (o Options) withDefaults() Options {
	if o.Client == nil {
		o.Client = NewClient(DefaultRequestTimeout, DefaultUserAgent)
	}
	if o.DelayMin <= 0 {
		o.DelayMin = DefaultDelayMin
	}
	if o.DelayMax < o.DelayMin {
		o.DelayMax = o.DelayMin
	}
	if o.Logger == nil {
		o.Logger = logger.NewNop()
	}
	return o
}

// DefaultAdapters returns all known directory adapters sharing the given
// options.
func DefaultAdapters(opts Options) []Adapter {
	return []Adapter{
		NewYell(opts),
		NewFreeIndex(opts),
		NewThomsonLocal(opts),
		NewYelpUK(opts),
		NewGoogleMaps(opts),
	}
}

// definition declaratively describes one paginated directory: how to build
// page URLs, where the repeating listing containers live, and how to
// populate a record from one container.
type definition struct {
	key    string
	source string
	// pageURL builds the search URL for the given page index. Page
	// numbering follows the directory's own convention (1-based page
	// numbers or 0-based offsets); conventions are not unified across
	// directories.
	pageURL func(query, location string, page int) string
	// firstPage is the directory's initial page index.
	firstPage int
	// containers is the ordered fallback chain for the listing container.
	containers []string
	// populate fills listing fields from one container. Missing elements
	// leave fields at their defaults.
	populate func(sel *goquery.Selection, listing *domain.Listing)
}

// directoryAdapter executes a definition against a paginated directory.
type directoryAdapter struct {
	def  definition
	opts Options
}

func newDirectoryAdapter(def definition, opts Options) *directoryAdapter {
	return &directoryAdapter{def: def, opts: opts.withDefaults()}
}

func (a *directoryAdapter) Key() string    { return a.def.key }
func (a *directoryAdapter) Source() string { return a.def.source }

// Search iterates result pages until maxPages is reached, the directory
// stops yielding listing containers, or a transport failure occurs. Failed
// pages are not retried.
func (a *directoryAdapter) Search(
	ctx context.Context,
	query, location string,
	maxPages int,
) ([]*domain.Listing, error) {
	var collected []*domain.Listing

	lastPage := a.def.firstPage + maxPages - 1
	for page := a.def.firstPage; page <= lastPage; page++ {
		pageURL := a.def.pageURL(query, location, page)

		body, err := a.opts.Client.Get(ctx, pageURL)
		if err != nil {
			// Remaining pagination is abandoned; earlier pages still count.
			a.opts.Logger.Warn("page fetch failed",
				"source", a.def.source,
				"page", page,
				"error", err.Error(),
			)
			break
		}

		listings, found := a.parsePage(body)
		if !found {
			a.opts.Logger.Debug("no listing containers found",
				"source", a.def.source,
				"page", page,
			)
			break
		}

		collected = append(collected, listings...)

		if page < lastPage && !politenessDelay(ctx, a.opts.DelayMin, a.opts.DelayMax) {
			break
		}
	}

	return collected, nil
}

// parsePage locates the listing containers via the fallback chain and builds
// one listing per container. Returns found=false when no chain entry matches
// anything, which callers treat as the end of pagination.
func (a *directoryAdapter) parsePage(body []byte) (listings []*domain.Listing, found bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, false
	}

	var containers *goquery.Selection
	for _, selector := range a.def.containers {
		if s := doc.Find(selector); s.Length() > 0 {
			containers = s
			break
		}
	}
	if containers == nil {
		return nil, false
	}

	containers.Each(func(_ int, sel *goquery.Selection) {
		if listing := a.parseListing(sel); listing != nil {
			listings = append(listings, listing)
		}
	})

	return listings, true
}

// parseListing builds one record from a listing container. A panic while
// populating skips only this listing; records without a name are dropped.
func (a *directoryAdapter) parseListing(sel *goquery.Selection) (listing *domain.Listing) {
	defer func() {
		if r := recover(); r != nil {
			a.opts.Logger.Warn("listing parse failed",
				"source", a.def.source,
				"panic", fmt.Sprint(r),
			)
			listing = nil
		}
	}()

	l := domain.NewListing(a.def.source)
	a.def.populate(sel, l)

	if l.NormalizedName() == "" {
		return nil
	}

	return l
}

// politenessDelay blocks for a random duration within [minDelay, maxDelay].
// Returns false if the context was cancelled while waiting.
func politenessDelay(ctx context.Context, minDelay, maxDelay time.Duration) bool {
	delay := minDelay
	if maxDelay > minDelay {
		delay += time.Duration(rand.Int63n(int64(maxDelay - minDelay)))
	}

	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}
