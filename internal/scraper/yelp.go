package scraper

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/ukdirectory/internal/domain"
)

const yelpBaseURL = "https://www.yelp.co.uk"

// yelpResultsPerPage is Yelp's fixed result-page size; pagination works on
// 0-based result offsets rather than page numbers.
const yelpResultsPerPage = 10

// NewYelpUK creates the adapter for Yelp UK.
func NewYelpUK(opts Options) Adapter {
	return newDirectoryAdapter(yelpDefinition(yelpBaseURL), opts)
}

func yelpDefinition(baseURL string) definition {
	return definition{
		key:       "yelp",
		source:    "yelp_uk",
		firstPage: 0,
		pageURL: func(query, location string, page int) string {
			return fmt.Sprintf(
				"%s/search?find_desc=%s&find_loc=%s&start=%d",
				baseURL, url.QueryEscape(query), url.QueryEscape(location), page*yelpResultsPerPage,
			)
		},
		containers: []string{`[data-testid="serp-ia-card"]`, ".container__09f24__FeTO6"},
		populate:   populateYelpListing,
	}
}

func populateYelpListing(sel *goquery.Selection, listing *domain.Listing) {
	listing.Name = FirstMatch(sel, Rule{Selector: `a[href*="/biz/"]`})

	listing.Industry = JoinedMatches(sel, ", ",
		Rule{Selector: `[class*="category"] a`},
	)
}
