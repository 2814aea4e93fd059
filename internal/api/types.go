package api

import "github.com/jonesrussell/ukdirectory/internal/domain"

// SearchRequest is the JSON body accepted by the search endpoint. Query and
// Location are required; Sources and MaxPages are optional.
type SearchRequest struct {
	Query    string   `json:"query"`
	Location string   `json:"location"`
	Sources  []string `json:"sources"`
	MaxPages int      `json:"max_pages"`
}

// SearchResponse is the JSON body returned by the search endpoint. Sources
// echoes the set actually searched, after defaulting.
type SearchResponse struct {
	Businesses []*domain.Listing `json:"businesses"`
	Count      int               `json:"count"`
	Query      string            `json:"query"`
	Location   string            `json:"location"`
	Sources    []string          `json:"sources"`
}

// ErrorResponse is the JSON body returned for request and server errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
