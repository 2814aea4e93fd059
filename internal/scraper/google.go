package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/ukdirectory/internal/domain"
	"github.com/jonesrussell/ukdirectory/internal/textutil"
)

const googleBaseURL = "https://www.google.com"

// googleResultsPerPage approximates one local-results page; Google's local
// pack is fetched in a single request, so maxPages translates to a result
// cap instead of extra fetches.
const googleResultsPerPage = 10

// ratingPattern matches Google's "4.5 (123)" rating and review-count text.
var ratingPattern = regexp.MustCompile(`(\d+\.?\d*)\s*\((\d+)\)`)

// googleAdapter scrapes the Google Maps local results pack. Unlike the
// paginated directories it issues a single fetch per search.
type googleAdapter struct {
	baseURL string
	opts    Options
}

// NewGoogleMaps creates the adapter for Google Maps local results.
func NewGoogleMaps(opts Options) Adapter {
	return &googleAdapter{baseURL: googleBaseURL, opts: opts.withDefaults()}
}

func (a *googleAdapter) Key() string    { return "google" }
func (a *googleAdapter) Source() string { return "google_maps" }

// Search fetches the local results page once and caps the number of records
// at maxPages worth of results.
func (a *googleAdapter) Search(
	ctx context.Context,
	query, location string,
	maxPages int,
) ([]*domain.Listing, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s&tbm=lcl",
		a.baseURL, url.QueryEscape(query+" in "+location+" UK"))

	body, err := a.opts.Client.Get(ctx, searchURL)
	if err != nil {
		a.opts.Logger.Warn("page fetch failed",
			"source", a.Source(),
			"error", err.Error(),
		)
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil
	}

	var containers *goquery.Selection
	for _, selector := range []string{".VkpGBb", "[data-hveid]"} {
		if s := doc.Find(selector); s.Length() > 0 {
			containers = s
			break
		}
	}
	if containers == nil {
		return nil, nil
	}

	maxResults := maxPages * googleResultsPerPage

	var collected []*domain.Listing
	containers.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if listing := a.parseListing(sel); listing != nil {
			collected = append(collected, listing)
		}
		return len(collected) < maxResults
	})

	return collected, nil
}

func (a *googleAdapter) parseListing(sel *goquery.Selection) (listing *domain.Listing) {
	defer func() {
		if r := recover(); r != nil {
			a.opts.Logger.Warn("listing parse failed",
				"source", a.Source(),
				"panic", fmt.Sprint(r),
			)
			listing = nil
		}
	}()

	l := domain.NewListing(a.Source())

	l.Name = FirstMatch(sel,
		Rule{Selector: ".dbg0pd"},
		Rule{Selector: ".OSrXXb"},
	)

	text := sel.Text()
	if m := ratingPattern.FindStringSubmatch(text); m != nil {
		l.Rating = m[1]
		l.ReviewCount = m[2]
	}

	if details := FirstMatch(sel, Rule{Selector: ".rllt__details"}); details != "" {
		l.Address = details
		l.Postcode = textutil.ExtractUKPostcode(details)
	}

	if phones := textutil.ExtractUKPhones(text); len(phones) > 0 {
		l.Phone = phones[0]
	}

	if l.NormalizedName() == "" {
		return nil
	}

	return l
}
