package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	pgxuuid "github.com/vgarvardt/pgx-google-uuid/v5"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/lushmo/hairbloom/internal/config"
	"github.com/lushmo/hairbloom/internal/log"
)

func NewDatabaseClient(c context.Context, dbConfig config.Database) *pgxpool.Pool {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main NewDatabaseClient").
		Str(log.KeyProcess, "connecting to database").
		Logger()

	logger.Info().Msg("connecting to database")

	postgresUrl := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		dbConfig.Username,
		dbConfig.Password,
		dbConfig.Host,
		int(dbConfig.Port),
		dbConfig.Name,
	)

	logger = logger.With().Str(log.KeyProcess, "initializing pgx config").Logger()
	logger.Info().Msg("initializing pgx config")
	pgxConfig, err := pgxpool.ParseConfig(postgresUrl)
	if err != nil {
		err = fmt.Errorf("failed creating pgx config with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	pgxConfig.ConnConfig.Tracer = otelpgx.NewTracer(
		otelpgx.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	pgxConfig.AfterConnect = func(c context.Context, conn *pgx.Conn) error {
		pgxuuid.Register(conn.TypeMap())
		return nil
	}
	logger.Info().Msg("initialized pgx config")

	logger = logger.With().Str(log.KeyProcess, "creating connection pool").Logger()
	logger.Info().Msg("creating connection pool")
	pool, err := pgxpool.NewWithConfig(c, pgxConfig)
	if err != nil {
		err = fmt.Errorf("failed creating connection pool with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("created connection pool")

	logger = logger.With().Str(log.KeyProcess, "ping db").Logger()
	logger.Info().Msg("ping db")
	err = pool.Ping(c)
	if err != nil {
		err = fmt.Errorf("failed ping db with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("successed ping db")

	logger = logger.With().Str(log.KeyProcess, "running migration").Logger()
	logger.Info().Msg("creating sql.DB instance")
	db := stdlib.OpenDBFromPool(pool)
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		err = fmt.Errorf("failed creating postgres driver to do migration with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	migration, err := migrate.NewWithDatabaseInstance(dbConfig.MigrationPath, postgresUrl, driver)
	if err != nil {
		err = fmt.Errorf("failed initializing migration with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	err = migration.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		err = fmt.Errorf("failed migration up with error=%w", err)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("successed migration up")

	db.SetConnMaxLifetime(time.Minute * 15)
	db.SetConnMaxIdleTime(time.Minute * 5)
	db.SetMaxOpenConns(dbConfig.MaxConnections)
	db.SetMaxIdleConns(dbConfig.MinConnections)

	logger.Info().Msg("successed connecting to database")

	return pool
}
