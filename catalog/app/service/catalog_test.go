package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/lushmo/hairbloom/internal/errors"
)

func TestFindProducts(t *testing.T) {
	catalog := NewCatalogService()

	found := catalog.FindProducts(context.Background())
	assert.Len(t, found, 6)
}

func TestFindProductById(t *testing.T) {
	catalog := NewCatalogService()

	product, err := catalog.FindProductById(context.Background(), "hairbloom-growth-250ml")
	assert.NoError(t, err)
	assert.EqualValues(t, "HairBloom Growth Oil", product.Name)
	assert.EqualValues(t, "250ml", product.Size)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(29.99)))

	_, err = catalog.FindProductById(context.Background(), "hairbloom-growth-999ml")
	assert.ErrorIs(t, err, inErrors.ErrProductNotFound)
}

func TestProductFromIdPrefersCatalogEntry(t *testing.T) {
	catalog := NewCatalogService()

	product := catalog.ProductFromId(context.Background(), "hairbloom-shine-150ml")
	assert.EqualValues(t, "HairBloom Shine Oil", product.Name)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(21.99)))
}

func TestProductFromIdDerivesUnknownIds(t *testing.T) {
	tests := []struct {
		name      string
		productId string
		wantName  string
		wantSize  string
		wantPrice decimal.Decimal
	}{
		{
			name:      "unknown growth 150ml derives small price",
			productId: "hairbloom-growth-150ml-promo",
			wantName:  "HairBloom Growth Oil",
			wantSize:  "promo",
			wantPrice: decimal.NewFromFloat(49.99),
		},
		{
			name:      "unknown 150ml derives 19.99",
			productId: "hairbloom-shine-extra-150ml",
			wantName:  "HairBloom Shine Oil",
			wantSize:  "150ml",
			wantPrice: decimal.NewFromFloat(19.99),
		},
		{
			name:      "unknown 250ml derives 29.99",
			productId: "hairbloom-growth-old-250ml",
			wantName:  "HairBloom Growth Oil",
			wantSize:  "250ml",
			wantPrice: decimal.NewFromFloat(29.99),
		},
		{
			name:      "unknown size derives 49.99",
			productId: "hairbloom-growth-1000ml",
			wantName:  "HairBloom Growth Oil",
			wantSize:  "1000ml",
			wantPrice: decimal.NewFromFloat(49.99),
		},
	}

	catalog := NewCatalogService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := catalog.ProductFromId(context.Background(), tt.productId)
			assert.EqualValues(t, tt.productId, product.ID)
			assert.EqualValues(t, tt.wantName, product.Name)
			assert.EqualValues(t, tt.wantSize, product.Size)
			assert.True(
				t,
				product.Price.Equal(tt.wantPrice),
				"expected price %s got %s",
				tt.wantPrice,
				product.Price,
			)
		})
	}
}
