package scraper

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/ukdirectory/internal/domain"
	"github.com/jonesrussell/ukdirectory/internal/textutil"
)

const yellBaseURL = "https://www.yell.com"

// NewYell creates the adapter for Yell.com, the largest of the supported
// directories. Pagination is 1-based via the pageNum parameter.
func NewYell(opts Options) Adapter {
	return newDirectoryAdapter(yellDefinition(yellBaseURL), opts)
}

func yellDefinition(baseURL string) definition {
	return definition{
		key:       "yell",
		source:    "yell.com",
		firstPage: 1,
		pageURL: func(query, location string, page int) string {
			return fmt.Sprintf(
				"%s/ucs/UcsSearchAction.do?scrambleSeed=&keywords=%s&location=%s&pageNum=%d",
				baseURL, url.QueryEscape(query), url.QueryEscape(location), page,
			)
		},
		containers: []string{".businessCapsule", `[data-testid="business-card"]`},
		populate:   populateYellListing,
	}
}

func populateYellListing(sel *goquery.Selection, listing *domain.Listing) {
	listing.Name = FirstMatch(sel,
		Rule{Selector: ".businessCapsule--name a"},
		Rule{Selector: "h2 a"},
	)

	if address := FirstMatch(sel,
		Rule{Selector: ".businessCapsule--address"},
		Rule{Selector: `[itemprop="address"]`},
	); address != "" {
		listing.Address = address
		listing.Postcode = textutil.ExtractUKPostcode(address)
	}

	listing.Phone = FirstMatch(sel,
		Rule{Selector: ".businessCapsule--phone"},
		Rule{Selector: `[data-testid="phone-number"]`},
	)

	listing.Industry = JoinedMatches(sel, ", ",
		Rule{Selector: ".businessCapsule--category a"},
	)

	listing.Rating = FirstMatch(sel, Rule{Selector: ".starRating--average"})
	listing.Description = FirstMatch(sel, Rule{Selector: ".businessCapsule--description"})
}
