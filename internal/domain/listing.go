// Package domain defines the core business entities shared across the
// scraping pipeline.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCountry is applied to every listing at creation; the directories
// this service targets are UK-only.
const DefaultCountry = "UK"

// Listing represents one business as discovered by a single source adapter
// on one page of results. Fields absent from the source page stay at their
// zero value; adapters never fabricate values.
type Listing struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Website       string            `json:"website"`
	Address       string            `json:"address"`
	City          string            `json:"city"`
	County        string            `json:"county"`
	Postcode      string            `json:"postcode"`
	Country       string            `json:"country"`
	Industry      string            `json:"industry"`
	Description   string            `json:"description"`
	CompanyNumber string            `json:"company_number"`
	Revenue       string            `json:"revenue"`
	Employees     string            `json:"employees"`
	YearFounded   string            `json:"year_founded"`
	CompanyStatus string            `json:"company_status"`
	SICCodes      string            `json:"sic_codes"`
	Rating        string            `json:"rating"`
	ReviewCount   string            `json:"review_count"`
	OpeningHours  string            `json:"opening_hours"`
	SocialMedia   map[string]string `json:"social_media"`
	Source        string            `json:"source"`
	ScrapedAt     time.Time         `json:"scraped_at"`
}

// NewListing creates a listing attributed to the given source. The record ID
// and capture timestamp are assigned here; the source is never inferred from
// page content.
func NewListing(source string) *Listing {
	return &Listing{
		ID:          uuid.NewString(),
		Country:     DefaultCountry,
		SocialMedia: map[string]string{},
		Source:      source,
		ScrapedAt:   time.Now().UTC(),
	}
}

// NormalizedName returns the lowercased, trimmed business name used for
// cross-source deduplication.
func (l *Listing) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(l.Name))
}
