package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kantor012/Product-Catalog/app/models"
)

func TestEffectivePrice(t *testing.T) {
	promo := 79.99

	tests := []struct {
		name    string
		product models.Product
		want    float64
	}{
		{
			name:    "regular price when not promotional",
			product: models.Product{Price: 100, PromotionalPrice: &promo},
			want:    100,
		},
		{
			name:    "promotional price when flagged and set",
			product: models.Product{Price: 100, IsPromotional: true, PromotionalPrice: &promo},
			want:    79.99,
		},
		{
			name:    "regular price when flagged but promo price missing",
			product: models.Product{Price: 100, IsPromotional: true},
			want:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.EffectivePrice())
		})
	}
}

func TestSearchableString(t *testing.T) {
	assert.Equal(t, "", models.SearchableString(nil))
	assert.Equal(t, "", models.SearchableString(map[string]string{}))

	// Keys are sorted, so output is deterministic regardless of map order.
	details := map[string]string{
		"Storage (GB)": "256",
		"RAM (GB)":     "16",
		"Color":        "Black",
	}
	assert.Equal(t, "Black 16 256", models.SearchableString(details))
}

func TestPlaceholderImageURL(t *testing.T) {
	url := models.PlaceholderImageURL("Samsung Galaxy S25", "Smartphones")
	assert.Equal(t, "https://placehold.co/400x300/EFEFEF/333333?text=Smartphone+Samsung", url)

	// Unknown categories pass through unchanged.
	url = models.PlaceholderImageURL("Acme Widget", "Widgets")
	assert.Equal(t, "https://placehold.co/400x300/EFEFEF/333333?text=Widgets+Acme", url)

	// Empty name yields an empty brand, not a panic.
	url = models.PlaceholderImageURL("", "TVs")
	assert.Equal(t, "https://placehold.co/400x300/EFEFEF/333333?text=TV+", url)
}
