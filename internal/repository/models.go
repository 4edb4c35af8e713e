package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CartItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID string
	Quantity  int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	TotalAmount     pgtype.Numeric
	PaymentMethod   string
	PaymentDetails  []byte
	ShippingAddress []byte
	Status          string
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID string
	Quantity  int32
	Price     pgtype.Numeric
	CreatedAt pgtype.Timestamptz
}

type Profile struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}
