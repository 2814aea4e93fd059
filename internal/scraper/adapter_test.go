package scraper_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/ukdirectory/internal/scraper"
)

func testOptions() scraper.Options {
	return scraper.Options{
		Client:   scraper.NewClient(2*time.Second, ""),
		DelayMin: time.Millisecond,
		DelayMax: 2 * time.Millisecond,
	}
}

const yellCapsule = `
<div class="businessCapsule">
	<h2><span class="businessCapsule--name"><a>%s</a></span></h2>
	<div class="businessCapsule--address">%s</div>
	<div class="businessCapsule--phone">%s</div>
	<span class="businessCapsule--category"><a>Plumbers</a></span>
	<span class="businessCapsule--category"><a>Heating Engineers</a></span>
	<span class="starRating--average">4.8</span>
	<p class="businessCapsule--description">Family run since 1987.</p>
</div>`

func TestYellSearchParsesPrimaryMarkup(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNum") != "1" {
			fmt.Fprint(w, "<html><body>no more results</body></html>")
			return
		}
		fmt.Fprint(w, "<html><body>")
		fmt.Fprintf(w, yellCapsule, "Smith &amp; Sons Plumbing", "12 High Street, Leeds LS1 4AP", "0113 496 0123")
		fmt.Fprintf(w, yellCapsule, "Acme Boilers", "3 Mill Lane, York YO1 7HU", "01904 123456")
		fmt.Fprint(w, "</body></html>")
	}))
	defer srv.Close()

	adapter := scraper.NewYellWithBaseURL(srv.URL, testOptions())
	require.Equal(t, "yell", adapter.Key())
	require.Equal(t, "yell.com", adapter.Source())

	listings, err := adapter.Search(context.Background(), "plumber", "leeds", 3)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, "Smith & Sons Plumbing", first.Name)
	assert.Equal(t, "12 High Street, Leeds LS1 4AP", first.Address)
	assert.Equal(t, "LS1 4AP", first.Postcode)
	assert.Equal(t, "0113 496 0123", first.Phone)
	assert.Equal(t, "Plumbers, Heating Engineers", first.Industry)
	assert.Equal(t, "4.8", first.Rating)
	assert.Equal(t, "Family run since 1987.", first.Description)
	assert.Equal(t, "yell.com", first.Source)
	assert.Equal(t, "UK", first.Country)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.ScrapedAt.IsZero())

	assert.Equal(t, "Acme Boilers", listings[1].Name)
}

func TestYellSearchFallbackMarkup(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNum") != "1" {
			fmt.Fprint(w, "<html><body></body></html>")
			return
		}
		fmt.Fprint(w, `<html><body>
			<div data-testid="business-card">
				<h2><a>Modern Markup Ltd</a></h2>
				<div data-testid="phone-number">020 7946 0958</div>
			</div>
		</body></html>`)
	}))
	defer srv.Close()

	adapter := scraper.NewYellWithBaseURL(srv.URL, testOptions())

	listings, err := adapter.Search(context.Background(), "plumber", "london", 2)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	assert.Equal(t, "Modern Markup Ltd", listings[0].Name)
	assert.Equal(t, "020 7946 0958", listings[0].Phone)
}

func TestSearchStopsOnTransportFailureKeepingEarlierPages(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNum") != "1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "<html><body>")
		fmt.Fprintf(w, yellCapsule, "Survivor Ltd", "1 Main Street, Hull HU1 1AA", "01482 123456")
		fmt.Fprint(w, "</body></html>")
	}))
	defer srv.Close()

	adapter := scraper.NewYellWithBaseURL(srv.URL, testOptions())

	listings, err := adapter.Search(context.Background(), "plumber", "hull", 5)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Survivor Ltd", listings[0].Name)
}

func TestSearchRespectsMaxPages(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		fmt.Fprint(w, "<html><body>")
		fmt.Fprintf(w, yellCapsule, fmt.Sprintf("Business %d", n), "Leeds LS1 4AP", "0113 496 0123")
		fmt.Fprint(w, "</body></html>")
	}))
	defer srv.Close()

	adapter := scraper.NewYellWithBaseURL(srv.URL, testOptions())

	listings, err := adapter.Search(context.Background(), "plumber", "leeds", 2)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.Equal(t, int32(2), requests.Load())
}

func TestSearchDropsNamelessListings(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNum") != "1" {
			fmt.Fprint(w, "<html><body></body></html>")
			return
		}
		fmt.Fprint(w, `<html><body>
			<div class="businessCapsule">
				<div class="businessCapsule--address">No name here, Leeds LS1 4AP</div>
			</div>
			<div class="businessCapsule">
				<span class="businessCapsule--name"><a>Named Business</a></span>
			</div>
		</body></html>`)
	}))
	defer srv.Close()

	adapter := scraper.NewYellWithBaseURL(srv.URL, testOptions())

	listings, err := adapter.Search(context.Background(), "plumber", "leeds", 1)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Named Business", listings[0].Name)
}

func TestFreeIndexSearchParsesListings(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("p") != "1" {
			fmt.Fprint(w, "<html><body></body></html>")
			return
		}
		fmt.Fprint(w, `<html><body>
			<div class="listing">
				<div class="listing-title"><a>Leeds Roofing Co</a></div>
				<div class="listing-location">Armley, Leeds LS12 2AE</div>
				<div class="listing-category">Roofing Services</div>
				<span class="rating-value">4.9</span>
			</div>
		</body></html>`)
	}))
	defer srv.Close()

	adapter := scraper.NewFreeIndexWithBaseURL(srv.URL, testOptions())
	require.Equal(t, "freeindex", adapter.Key())
	require.Equal(t, "freeindex", adapter.Source())

	listings, err := adapter.Search(context.Background(), "roofer", "leeds", 1)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	got := listings[0]
	assert.Equal(t, "Leeds Roofing Co", got.Name)
	assert.Equal(t, "Armley, Leeds LS12 2AE", got.Address)
	assert.Equal(t, "LS12 2AE", got.Postcode)
	assert.Equal(t, "Roofing Services", got.Industry)
	assert.Equal(t, "4.9", got.Rating)
	assert.Equal(t, "freeindex", got.Source)
}

func TestThomsonLocalSearchParsesListings(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/search/") || r.URL.Query().Get("page") != "1" {
			fmt.Fprint(w, "<html><body></body></html>")
			return
		}
		fmt.Fprint(w, `<html><body>
			<div class="listing-item">
				<div class="listing-name"><a>Thomson Test Garage</a></div>
				<div class="listing-address">Unit 4, Sheffield S1 2HE</div>
				<a href="tel:01142345678">0114 234 5678</a>
			</div>
		</body></html>`)
	}))
	defer srv.Close()

	adapter := scraper.NewThomsonLocalWithBaseURL(srv.URL, testOptions())
	require.Equal(t, "thomson", adapter.Key())
	require.Equal(t, "thomson_local", adapter.Source())

	listings, err := adapter.Search(context.Background(), "garage", "sheffield", 1)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	got := listings[0]
	assert.Equal(t, "Thomson Test Garage", got.Name)
	assert.Equal(t, "Unit 4, Sheffield S1 2HE", got.Address)
	assert.Equal(t, "S1 2HE", got.Postcode)
	assert.Equal(t, "0114 234 5678", got.Phone)
}

func TestYelpUKPaginatesByResultOffset(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		offsets []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		offsets = append(offsets, r.URL.Query().Get("start"))
		mu.Unlock()
		fmt.Fprint(w, `<html><body>
			<div data-testid="serp-ia-card">
				<a href="/biz/curry-house-leeds">Curry House</a>
				<span class="category-link"><a>Indian</a></span>
			</div>
		</body></html>`)
	}))
	defer srv.Close()

	adapter := scraper.NewYelpUKWithBaseURL(srv.URL, testOptions())
	require.Equal(t, "yelp", adapter.Key())
	require.Equal(t, "yelp_uk", adapter.Source())

	listings, err := adapter.Search(context.Background(), "curry", "leeds", 2)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	mu.Lock()
	assert.Equal(t, []string{"0", "10"}, offsets)
	mu.Unlock()
	assert.Equal(t, "Curry House", listings[0].Name)
	assert.Equal(t, "Indian", listings[0].Industry)
}

func TestGoogleMapsParsesRatingAndPhone(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "electrician in manchester UK", r.URL.Query().Get("q"))
		assert.Equal(t, "lcl", r.URL.Query().Get("tbm"))
		fmt.Fprint(w, `<html><body>
			<div class="VkpGBb">
				<div class="dbg0pd">Sparks Electrical</div>
				<span>4.5 (123)</span>
				<div class="rllt__details">22 Oxford Road, Manchester M1 5QA · 0161 496 0100</div>
			</div>
		</body></html>`)
	}))
	defer srv.Close()

	adapter := scraper.NewGoogleMapsWithBaseURL(srv.URL, testOptions())
	require.Equal(t, "google", adapter.Key())
	require.Equal(t, "google_maps", adapter.Source())

	listings, err := adapter.Search(context.Background(), "electrician", "manchester", 1)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	got := listings[0]
	assert.Equal(t, "Sparks Electrical", got.Name)
	assert.Equal(t, "4.5", got.Rating)
	assert.Equal(t, "123", got.ReviewCount)
	assert.Equal(t, "M1 5QA", got.Postcode)
	assert.Equal(t, "0161 496 0100", got.Phone)
	assert.Equal(t, "google_maps", got.Source)
}

func TestGoogleMapsCapsResultsAtMaxPagesWorth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>")
		for i := 0; i < 15; i++ {
			fmt.Fprintf(w, `<div class="VkpGBb"><div class="dbg0pd">Business %d</div></div>`, i)
		}
		fmt.Fprint(w, "</body></html>")
	}))
	defer srv.Close()

	adapter := scraper.NewGoogleMapsWithBaseURL(srv.URL, testOptions())

	listings, err := adapter.Search(context.Background(), "cafe", "bristol", 1)
	require.NoError(t, err)
	assert.Len(t, listings, 10)
}

func TestGoogleMapsReturnsNothingOnFetchFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	adapter := scraper.NewGoogleMapsWithBaseURL(srv.URL, testOptions())

	listings, err := adapter.Search(context.Background(), "cafe", "bristol", 1)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestSearchAbortsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>")
		fmt.Fprintf(w, yellCapsule, "Before Cancel Ltd", "Leeds LS1 4AP", "0113 496 0123")
		fmt.Fprint(w, "</body></html>")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	adapter := scraper.NewYellWithBaseURL(srv.URL, testOptions())

	listings, err := adapter.Search(ctx, "plumber", "leeds", 3)
	require.NoError(t, err)
	assert.Empty(t, listings)
}
