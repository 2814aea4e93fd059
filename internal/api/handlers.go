// Package api implements the HTTP boundary over the search orchestrator.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/ukdirectory/internal/domain"
	"github.com/jonesrussell/ukdirectory/internal/logger"
	"github.com/jonesrussell/ukdirectory/internal/search"
)

// Page depth limits. Requests above the cap are clamped, not rejected.
const (
	defaultMaxPages = 2
	maxPagesCap     = 5
)

// Searcher runs a directory search. Implemented by search.Orchestrator.
type Searcher interface {
	Search(ctx context.Context, query, location string, sources []string, maxPages int) []*domain.Listing
}

// Handler holds the search endpoint's collaborators.
type Handler struct {
	searcher Searcher
	log      logger.Interface
}

// NewHandler creates the API handler around the given searcher.
func NewHandler(searcher Searcher, log logger.Interface) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{searcher: searcher, log: log}
}

// Search handles POST /api/search.
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	req.Location = strings.TrimSpace(req.Location)
	if req.Query == "" || req.Location == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing query or location"})
		return
	}

	maxPages := req.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	if maxPages > maxPagesCap {
		maxPages = maxPagesCap
	}

	sources := req.Sources
	if len(sources) == 0 {
		sources = search.DefaultSources
	}

	h.log.Info("search request",
		"query", req.Query,
		"location", req.Location,
		"sources", strings.Join(sources, ","),
		"max_pages", maxPages,
	)

	listings := h.searcher.Search(c.Request.Context(), req.Query, req.Location, sources, maxPages)

	c.JSON(http.StatusOK, SearchResponse{
		Businesses: listings,
		Count:      len(listings),
		Query:      req.Query,
		Location:   req.Location,
		Sources:    sources,
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
