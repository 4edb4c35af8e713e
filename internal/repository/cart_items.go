package repository

import (
	"context"

	"github.com/google/uuid"
)

const findCartItemsByUserId = `
SELECT id, user_id, product_id, quantity, created_at, updated_at
FROM cart_items
WHERE user_id = $1
ORDER BY created_at
`

func (q *Queries) FindCartItemsByUserId(
	c context.Context,
	userID uuid.UUID,
) ([]CartItem, error) {
	rows, err := q.db.Query(c, findCartItemsByUserId, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CartItem{}
	for rows.Next() {
		var i CartItem
		err = rows.Scan(
			&i.ID,
			&i.UserID,
			&i.ProductID,
			&i.Quantity,
			&i.CreatedAt,
			&i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const findCartItemByUserIdAndProductId = `
SELECT id, user_id, product_id, quantity, created_at, updated_at
FROM cart_items
WHERE user_id = $1 AND product_id = $2
`

type FindCartItemByUserIdAndProductIdParams struct {
	UserID    uuid.UUID
	ProductID string
}

func (q *Queries) FindCartItemByUserIdAndProductId(
	c context.Context,
	arg FindCartItemByUserIdAndProductIdParams,
) (CartItem, error) {
	row := q.db.QueryRow(c, findCartItemByUserIdAndProductId, arg.UserID, arg.ProductID)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ProductID,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertCartItem = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
RETURNING id, user_id, product_id, quantity, created_at, updated_at
`

type InsertCartItemParams struct {
	UserID    uuid.UUID
	ProductID string
	Quantity  int32
}

func (q *Queries) InsertCartItem(
	c context.Context,
	arg InsertCartItemParams,
) (CartItem, error) {
	row := q.db.QueryRow(c, insertCartItem, arg.UserID, arg.ProductID, arg.Quantity)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ProductID,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateCartItemQuantity = `
UPDATE cart_items
SET quantity = $2, updated_at = now()
WHERE id = $1
RETURNING id, user_id, product_id, quantity, created_at, updated_at
`

type UpdateCartItemQuantityParams struct {
	ID       uuid.UUID
	Quantity int32
}

func (q *Queries) UpdateCartItemQuantity(
	c context.Context,
	arg UpdateCartItemQuantityParams,
) (CartItem, error) {
	row := q.db.QueryRow(c, updateCartItemQuantity, arg.ID, arg.Quantity)
	var i CartItem
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ProductID,
		&i.Quantity,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteCartItemById = `
DELETE FROM cart_items
WHERE id = $1
`

func (q *Queries) DeleteCartItemById(c context.Context, id uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteCartItemById, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteCartItemsByUserId = `
DELETE FROM cart_items
WHERE user_id = $1
`

func (q *Queries) DeleteCartItemsByUserId(c context.Context, userID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(c, deleteCartItemsByUserId, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
