package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	cartService "github.com/lushmo/hairbloom/cart/app/service"
	catalogService "github.com/lushmo/hairbloom/catalog/app/service"
	"github.com/lushmo/hairbloom/internal/config"
	"github.com/lushmo/hairbloom/internal/repository"
)

type toast struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Variant string
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []toast
}

func (n *recordingNotifier) Success(
	c context.Context,
	userID uuid.UUID,
	title string,
	message string,
) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast{UserID: userID, Title: title, Message: message, Variant: "success"})
}

func (n *recordingNotifier) Failure(
	c context.Context,
	userID uuid.UUID,
	title string,
	message string,
) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast{UserID: userID, Title: title, Message: message, Variant: "destructive"})
}

func (n *recordingNotifier) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	titles := make([]string, 0, len(n.toasts))
	for _, item := range n.toasts {
		titles = append(titles, item.Title)
	}
	return titles
}

type harness struct {
	pool            *pgxpool.Pool
	redisClient     *redis.Client
	pgContainer     *postgres.PostgresContainer
	redisContainer  *testRedis.RedisContainer
	queries         *repository.Queries
	notifier        *recordingNotifier
	cartService     *cartService.CartService
	checkoutService *CheckoutService
}

func setup(t *testing.T, c context.Context) *harness {
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

	redisContainer, err := testRedis.Run(
		c,
		"redis:7.4.2-alpine3.21",
		testRedis.WithLogLevel(testRedis.LogLevelVerbose),
	)
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}

	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}

	queries := repository.New(pool)
	notifier := &recordingNotifier{}
	catalog := catalogService.NewCatalogService()
	cartSvc := cartService.NewCartService(queries, redisClient, catalog, notifier)
	checkoutSvc := NewCheckoutService(queries, cartSvc, notifier, config.Application{
		CheckoutDelay: 10 * time.Millisecond,
	})

	return &harness{
		pool:            pool,
		redisClient:     redisClient,
		pgContainer:     pgContainer,
		redisContainer:  redisContainer,
		queries:         queries,
		notifier:        notifier,
		cartService:     cartSvc,
		checkoutService: checkoutSvc,
	}
}

func (h *harness) teardown(t *testing.T) {
	t.Helper()
	h.redisClient.Close()
	h.pool.Close()
	if err := testcontainers.TerminateContainer(h.pgContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
	if err := testcontainers.TerminateContainer(h.redisContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
}
