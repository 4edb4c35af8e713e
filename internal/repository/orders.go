package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertOrder = `
INSERT INTO orders (user_id, total_amount, payment_method, payment_details, shipping_address, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, user_id, total_amount, payment_method, payment_details, shipping_address, status, created_at, updated_at
`

type InsertOrderParams struct {
	UserID          uuid.UUID
	TotalAmount     pgtype.Numeric
	PaymentMethod   string
	PaymentDetails  []byte
	ShippingAddress []byte
	Status          string
}

func (q *Queries) InsertOrder(c context.Context, arg InsertOrderParams) (Order, error) {
	row := q.db.QueryRow(
		c,
		insertOrder,
		arg.UserID,
		arg.TotalAmount,
		arg.PaymentMethod,
		arg.PaymentDetails,
		arg.ShippingAddress,
		arg.Status,
	)
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.TotalAmount,
		&o.PaymentMethod,
		&o.PaymentDetails,
		&o.ShippingAddress,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

const insertOrderItem = `
INSERT INTO order_items (order_id, product_id, quantity, price)
VALUES ($1, $2, $3, $4)
RETURNING id, order_id, product_id, quantity, price, created_at
`

type InsertOrderItemParams struct {
	OrderID   uuid.UUID
	ProductID string
	Quantity  int32
	Price     pgtype.Numeric
}

func (q *Queries) InsertOrderItem(c context.Context, arg InsertOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(c, insertOrderItem, arg.OrderID, arg.ProductID, arg.Quantity, arg.Price)
	var i OrderItem
	err := row.Scan(
		&i.ID,
		&i.OrderID,
		&i.ProductID,
		&i.Quantity,
		&i.Price,
		&i.CreatedAt,
	)
	return i, err
}

const findOrdersByUserId = `
SELECT id, user_id, total_amount, payment_method, payment_details, shipping_address, status, created_at, updated_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`

func (q *Queries) FindOrdersByUserId(c context.Context, userID uuid.UUID) ([]Order, error) {
	rows, err := q.db.Query(c, findOrdersByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := []Order{}
	for rows.Next() {
		var o Order
		err = rows.Scan(
			&o.ID,
			&o.UserID,
			&o.TotalAmount,
			&o.PaymentMethod,
			&o.PaymentDetails,
			&o.ShippingAddress,
			&o.Status,
			&o.CreatedAt,
			&o.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const findOrderById = `
SELECT id, user_id, total_amount, payment_method, payment_details, shipping_address, status, created_at, updated_at
FROM orders
WHERE id = $1 AND user_id = $2
`

type FindOrderByIdParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

func (q *Queries) FindOrderById(c context.Context, arg FindOrderByIdParams) (Order, error) {
	row := q.db.QueryRow(c, findOrderById, arg.ID, arg.UserID)
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.TotalAmount,
		&o.PaymentMethod,
		&o.PaymentDetails,
		&o.ShippingAddress,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

const findOrderItemsByOrderId = `
SELECT id, order_id, product_id, quantity, price, created_at
FROM order_items
WHERE order_id = $1
ORDER BY created_at
`

func (q *Queries) FindOrderItemsByOrderId(c context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := q.db.Query(c, findOrderItemsByOrderId, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderItem{}
	for rows.Next() {
		var i OrderItem
		err = rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.ProductID,
			&i.Quantity,
			&i.Price,
			&i.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
