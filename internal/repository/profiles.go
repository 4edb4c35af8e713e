package repository

import (
	"context"

	"github.com/google/uuid"
)

const upsertProfile = `
INSERT INTO profiles (id, first_name, last_name, phone, address, city, postal_code, country)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE
SET first_name  = EXCLUDED.first_name,
    last_name   = EXCLUDED.last_name,
    phone       = EXCLUDED.phone,
    address     = EXCLUDED.address,
    city        = EXCLUDED.city,
    postal_code = EXCLUDED.postal_code,
    country     = EXCLUDED.country,
    updated_at  = now()
RETURNING id, first_name, last_name, phone, address, city, postal_code, country, created_at, updated_at
`

type UpsertProfileParams struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
}

func (q *Queries) UpsertProfile(c context.Context, arg UpsertProfileParams) (Profile, error) {
	row := q.db.QueryRow(
		c,
		upsertProfile,
		arg.ID,
		arg.FirstName,
		arg.LastName,
		arg.Phone,
		arg.Address,
		arg.City,
		arg.PostalCode,
		arg.Country,
	)
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.Address,
		&p.City,
		&p.PostalCode,
		&p.Country,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const findProfileById = `
SELECT id, first_name, last_name, phone, address, city, postal_code, country, created_at, updated_at
FROM profiles
WHERE id = $1
`

func (q *Queries) FindProfileById(c context.Context, id uuid.UUID) (Profile, error) {
	row := q.db.QueryRow(c, findProfileById, id)
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.Address,
		&p.City,
		&p.PostalCode,
		&p.Country,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
