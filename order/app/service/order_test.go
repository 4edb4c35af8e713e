package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	catalogService "github.com/lushmo/hairbloom/catalog/app/service"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/repository"
)

func setup(t *testing.T, c context.Context) (*pgxpool.Pool, *postgres.PostgresContainer, *repository.Queries, *OrderService) {
	t.Helper()

	migrations := filepath.Join("..", "..", "..", "db", "migrations")
	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_DB":       "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_PORT":     "5432",
			"POSTGRES_USER":     "postgres",
		}),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join(migrations, "20250301080000_create_table_profiles.up.sql"),
			filepath.Join(migrations, "20250301080100_create_table_cart_items.up.sql"),
			filepath.Join(migrations, "20250301080200_create_table_orders.up.sql"),
			filepath.Join(migrations, "20250301080300_create_table_order_items.up.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgconfig with error: %s", err)
	}

	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}

	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	queries := repository.New(pool)
	orderService := NewOrderService(queries, catalogService.NewCatalogService())
	return pool, pgContainer, queries, orderService
}

func teardown(t *testing.T, pool *pgxpool.Pool, pgContainer *postgres.PostgresContainer) {
	t.Helper()
	pool.Close()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
}

func seedOrder(
	t *testing.T,
	c context.Context,
	queries *repository.Queries,
	userId uuid.UUID,
	total decimal.Decimal,
) repository.Order {
	t.Helper()

	shipping, err := json.Marshal(map[string]string{"city": "Lahore"})
	assert.NoError(t, err)
	payment, err := json.Marshal(map[string]string{"method": "bank"})
	assert.NoError(t, err)

	order, err := queries.InsertOrder(c, repository.InsertOrderParams{
		UserID:          userId,
		TotalAmount:     repository.NumericFromDecimal(total),
		PaymentMethod:   "bank",
		PaymentDetails:  payment,
		ShippingAddress: shipping,
		Status:          "pending",
	})
	assert.NoError(t, err)
	return order
}

func testContext() context.Context {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
}

func TestFindOrdersByUserId(t *testing.T) {
	c := testContext()
	pool, pgContainer, queries, orderService := setup(t, c)
	defer teardown(t, pool, pgContainer)

	userId := uuid.New()
	other := uuid.New()

	seedOrder(t, c, queries, userId, decimal.NewFromFloat(105.95))
	seedOrder(t, c, queries, userId, decimal.NewFromFloat(19.99))
	seedOrder(t, c, queries, other, decimal.NewFromFloat(54.99))

	orders, err := orderService.FindOrdersByUserId(c, userId)
	assert.NoError(t, err)
	assert.Len(t, orders, 2, "only the user's own orders should be listed")
	for _, order := range orders {
		assert.EqualValues(t, "pending", order.Status)
		assert.Empty(t, order.Items, "listing does not load line items")
	}
}

func TestFindOrderByIdLoadsLineItems(t *testing.T) {
	c := testContext()
	pool, pgContainer, queries, orderService := setup(t, c)
	defer teardown(t, pool, pgContainer)

	userId := uuid.New()
	seeded := seedOrder(t, c, queries, userId, decimal.NewFromFloat(105.95))

	_, err := queries.InsertOrderItem(c, repository.InsertOrderItemParams{
		OrderID:   seeded.ID,
		ProductID: "hairbloom-growth-150ml",
		Quantity:  2,
		Price:     repository.NumericFromDecimal(decimal.NewFromFloat(19.99)),
	})
	assert.NoError(t, err)
	_, err = queries.InsertOrderItem(c, repository.InsertOrderItemParams{
		OrderID:   seeded.ID,
		ProductID: "hairbloom-shine-150ml",
		Quantity:  3,
		Price:     repository.NumericFromDecimal(decimal.NewFromFloat(21.99)),
	})
	assert.NoError(t, err)

	order, err := orderService.FindOrderById(c, userId, seeded.ID)
	assert.NoError(t, err)
	assert.True(
		t,
		order.TotalAmount.Equal(decimal.NewFromFloat(105.95)),
		"expected total 105.95 got %s",
		order.TotalAmount,
	)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromFloat(19.99)))
	assert.EqualValues(t, "HairBloom Growth Oil", order.Items[0].Product.Name)
}

func TestFindOrderByIdScopesToUser(t *testing.T) {
	c := testContext()
	pool, pgContainer, queries, orderService := setup(t, c)
	defer teardown(t, pool, pgContainer)

	owner := uuid.New()
	intruder := uuid.New()
	seeded := seedOrder(t, c, queries, owner, decimal.NewFromFloat(19.99))

	_, err := orderService.FindOrderById(c, intruder, seeded.ID)
	assert.ErrorIs(t, err, inErrors.ErrOrderNotFound)

	_, err = orderService.FindOrderById(c, owner, uuid.New())
	assert.ErrorIs(t, err, inErrors.ErrOrderNotFound)
}
