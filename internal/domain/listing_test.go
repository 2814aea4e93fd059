package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/ukdirectory/internal/domain"
)

func TestNewListingAssignsIdentityAndDefaults(t *testing.T) {
	t.Parallel()

	l := domain.NewListing("yell.com")

	assert.NotEmpty(t, l.ID)
	assert.Equal(t, "UK", l.Country)
	assert.Equal(t, "yell.com", l.Source)
	assert.NotNil(t, l.SocialMedia)
	assert.False(t, l.ScrapedAt.IsZero())

	other := domain.NewListing("freeindex")
	require.NotEqual(t, l.ID, other.ID)
}

func TestNormalizedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Smith & Sons", "smith & sons"},
		{"trims", "  Acme Ltd  ", "acme ltd"},
		{"whitespace only", "   ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := domain.NewListing("yell.com")
			l.Name = tt.in
			assert.Equal(t, tt.want, l.NormalizedName())
		})
	}
}
