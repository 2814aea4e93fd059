package scraper

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/ukdirectory/internal/domain"
	"github.com/jonesrussell/ukdirectory/internal/textutil"
)

const thomsonBaseURL = "https://www.thomsonlocal.com"

// NewThomsonLocal creates the adapter for the Thomson Local directory.
func NewThomsonLocal(opts Options) Adapter {
	return newDirectoryAdapter(thomsonDefinition(thomsonBaseURL), opts)
}

func thomsonDefinition(baseURL string) definition {
	return definition{
		key:       "thomson",
		source:    "thomson_local",
		firstPage: 1,
		pageURL: func(query, location string, page int) string {
			return fmt.Sprintf(
				"%s/search/%s/%s?page=%d",
				baseURL, url.QueryEscape(query), url.QueryEscape(location), page,
			)
		},
		containers: []string{".listing-item", ".search-result"},
		populate:   populateThomsonListing,
	}
}

func populateThomsonListing(sel *goquery.Selection, listing *domain.Listing) {
	listing.Name = FirstMatch(sel,
		Rule{Selector: ".listing-name a"},
		Rule{Selector: "h2 a"},
	)

	if address := FirstMatch(sel, Rule{Selector: ".listing-address"}); address != "" {
		listing.Address = address
		listing.Postcode = textutil.ExtractUKPostcode(address)
	}

	listing.Phone = FirstMatch(sel,
		Rule{Selector: ".listing-phone"},
		Rule{Selector: `a[href^="tel:"]`},
	)
}
