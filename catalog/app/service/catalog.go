package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/lushmo/hairbloom/catalog/pkg/response"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
)

const defaultImageURL = "https://images.unsplash.com/photo-1618160702438-9b02ab6515c9"

// products is the storefront catalog. It is deliberately static: the
// HairBloom line has six SKUs and no back office manages them.
var products = []response.Product{
	{
		ID:          "hairbloom-growth-150ml",
		Name:        "HairBloom Growth Oil",
		Size:        "150ml",
		Price:       decimal.NewFromFloat(19.99),
		Description: "Our smallest size, perfect for travel or first-time users. Enriched with biotin and castor oil to promote hair growth.",
		ImageURL:    defaultImageURL,
		Slug:        "hairbloom-growth-150ml",
	},
	{
		ID:          "hairbloom-growth-250ml",
		Name:        "HairBloom Growth Oil",
		Size:        "250ml",
		Price:       decimal.NewFromFloat(29.99),
		Description: "Our most popular size, ideal for regular use. Enriched with biotin and castor oil to promote hair growth.",
		ImageURL:    defaultImageURL,
		Slug:        "hairbloom-growth-250ml",
	},
	{
		ID:          "hairbloom-growth-500ml",
		Name:        "HairBloom Growth Oil",
		Size:        "500ml",
		Price:       decimal.NewFromFloat(49.99),
		Description: "Our largest size, great value for dedicated users. Enriched with biotin and castor oil to promote hair growth.",
		ImageURL:    defaultImageURL,
		Slug:        "hairbloom-growth-500ml",
	},
	{
		ID:          "hairbloom-shine-150ml",
		Name:        "HairBloom Shine Oil",
		Size:        "150ml",
		Price:       decimal.NewFromFloat(21.99),
		Description: "Our shine-focused formula in travel size. Infused with argan oil and vitamin E for incredible shine.",
		ImageURL:    defaultImageURL,
		Slug:        "hairbloom-shine-150ml",
	},
	{
		ID:          "hairbloom-shine-250ml",
		Name:        "HairBloom Shine Oil",
		Size:        "250ml",
		Price:       decimal.NewFromFloat(32.99),
		Description: "Our medium-sized shine-focused formula. Infused with argan oil and vitamin E for incredible shine.",
		ImageURL:    defaultImageURL,
		Slug:        "hairbloom-shine-250ml",
	},
	{
		ID:          "hairbloom-shine-500ml",
		Name:        "HairBloom Shine Oil",
		Size:        "500ml",
		Price:       decimal.NewFromFloat(54.99),
		Description: "Our largest shine-focused formula, great value for dedicated users. Infused with argan oil and vitamin E for incredible shine.",
		ImageURL:    defaultImageURL,
		Slug:        "hairbloom-shine-500ml",
	},
}

type CatalogService struct{}

func NewCatalogService() CatalogService {
	return CatalogService{}
}

func (s CatalogService) FindProducts(c context.Context) []response.Product {
	_, span := otel.Tracer.Start(c, "CatalogService FindProducts")
	defer span.End()

	found := make([]response.Product, len(products))
	copy(found, products)
	return found
}

func (s CatalogService) FindProductById(
	c context.Context,
	productId string,
) (response.Product, error) {
	_, span := otel.Tracer.Start(c, "CatalogService FindProductById")
	defer span.End()

	for _, product := range products {
		if product.ID == productId {
			return product, nil
		}
	}
	err := fmt.Errorf("productId=%s with error=%w", productId, inErrors.ErrProductNotFound)
	inErrors.HandleError(err, span)
	return response.Product{}, err
}

func (s CatalogService) FindProductBySlug(
	c context.Context,
	slug string,
) (response.Product, error) {
	_, span := otel.Tracer.Start(c, "CatalogService FindProductBySlug")
	defer span.End()

	for _, product := range products {
		if product.Slug == slug {
			return product, nil
		}
	}
	err := fmt.Errorf("productSlug=%s with error=%w", slug, inErrors.ErrProductNotFound)
	inErrors.HandleError(err, span)
	return response.Product{}, err
}

// ProductFromId resolves a persisted product id to its catalog entry. Cart
// rows written by older storefront revisions may carry ids no longer in the
// catalog; for those the product metadata is re-derived from the id string
// the way the storefront always has.
func (s CatalogService) ProductFromId(c context.Context, productId string) response.Product {
	c, span := otel.Tracer.Start(c, "CatalogService ProductFromId")
	defer span.End()

	if product, err := s.FindProductById(c, productId); err == nil {
		return product
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService ProductFromId").
		Str(log.KeyProductID, productId).
		Logger()
	logger.Info().Msg("product not in catalog, deriving from product id")

	return deriveProduct(productId)
}

func deriveProduct(productId string) response.Product {
	parts := strings.Split(productId, "-")

	name := ""
	if parts[0] == "hairbloom" {
		name = "HairBloom"
	}
	line := "Shine Oil"
	if len(parts) > 1 && parts[1] == "growth" {
		line = "Growth Oil"
	}
	size := parts[len(parts)-1]

	price := decimal.NewFromFloat(49.99)
	switch size {
	case "150ml":
		price = decimal.NewFromFloat(19.99)
	case "250ml":
		price = decimal.NewFromFloat(29.99)
	}

	return response.Product{
		ID:          productId,
		Name:        strings.TrimSpace(name + " " + line),
		Size:        size,
		Price:       price,
		Description: fmt.Sprintf("Our %s size, perfect for regular use.", size),
		ImageURL:    defaultImageURL,
		Slug:        productId,
	}
}
