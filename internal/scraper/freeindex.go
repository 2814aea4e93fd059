package scraper

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/ukdirectory/internal/domain"
	"github.com/jonesrussell/ukdirectory/internal/textutil"
)

const freeIndexBaseURL = "https://www.freeindex.co.uk"

// NewFreeIndex creates the adapter for the FreeIndex UK business directory.
func NewFreeIndex(opts Options) Adapter {
	return newDirectoryAdapter(freeIndexDefinition(freeIndexBaseURL), opts)
}

func freeIndexDefinition(baseURL string) definition {
	return definition{
		key:       "freeindex",
		source:    "freeindex",
		firstPage: 1,
		pageURL: func(query, location string, page int) string {
			return fmt.Sprintf(
				"%s/searchresults.htm?k=%s&l=%s&p=%d",
				baseURL, url.QueryEscape(query), url.QueryEscape(location), page,
			)
		},
		containers: []string{".listing", ".search-result-item"},
		populate:   populateFreeIndexListing,
	}
}

func populateFreeIndexListing(sel *goquery.Selection, listing *domain.Listing) {
	listing.Name = FirstMatch(sel,
		Rule{Selector: ".listing-title a"},
		Rule{Selector: "h3 a"},
	)

	if loc := FirstMatch(sel, Rule{Selector: ".listing-location"}); loc != "" {
		listing.Address = loc
		listing.Postcode = textutil.ExtractUKPostcode(loc)
	}

	listing.Industry = FirstMatch(sel, Rule{Selector: ".listing-category"})
	listing.Rating = FirstMatch(sel, Rule{Selector: ".rating-value"})
}
