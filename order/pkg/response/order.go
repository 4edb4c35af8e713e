package response

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogResponse "github.com/lushmo/hairbloom/catalog/pkg/response"
)

type OrderItem struct {
	ID       uuid.UUID               `json:"id"`
	Product  catalogResponse.Product `json:"product"`
	Quantity int32                   `json:"quantity"`
	Price    decimal.Decimal         `json:"price"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentDetails  json.RawMessage `json:"paymentDetails"`
	ShippingAddress json.RawMessage `json:"shippingAddress"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
