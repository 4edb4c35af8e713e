package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogResponse "github.com/lushmo/hairbloom/catalog/pkg/response"
)

type CartItem struct {
	ID       uuid.UUID               `json:"id"`
	Product  catalogResponse.Product `json:"product"`
	Quantity int32                   `json:"quantity"`
}

type Cart struct {
	Items      []CartItem      `json:"items"`
	TotalItems int32           `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// NewCart derives the totals from the item list it is given. Totals are
// always recomputed from the freshly loaded list, never maintained
// incrementally.
func NewCart(items []CartItem) Cart {
	if items == nil {
		items = []CartItem{}
	}
	totalItems := int32(0)
	totalPrice := decimal.Zero
	for _, item := range items {
		totalItems += item.Quantity
		totalPrice = totalPrice.Add(
			item.Product.Price.Mul(decimal.NewFromInt32(item.Quantity)),
		)
	}
	return Cart{Items: items, TotalItems: totalItems, TotalPrice: totalPrice}
}
