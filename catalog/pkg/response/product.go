package response

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Slug        string          `json:"slug"`
}
