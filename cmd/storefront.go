package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	cartController "github.com/lushmo/hairbloom/cart/app/controller"
	cartService "github.com/lushmo/hairbloom/cart/app/service"
	catalogController "github.com/lushmo/hairbloom/catalog/app/controller"
	catalogService "github.com/lushmo/hairbloom/catalog/app/service"
	checkoutController "github.com/lushmo/hairbloom/checkout/app/controller"
	checkoutService "github.com/lushmo/hairbloom/checkout/app/service"
	"github.com/lushmo/hairbloom/internal/config"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/infra"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/middleware"
	"github.com/lushmo/hairbloom/internal/otel"
	"github.com/lushmo/hairbloom/internal/repository"
	notificationController "github.com/lushmo/hairbloom/notification/app/controller"
	notificationService "github.com/lushmo/hairbloom/notification/app/service"
	orderController "github.com/lushmo/hairbloom/order/app/controller"
	orderService "github.com/lushmo/hairbloom/order/app/service"
	profileController "github.com/lushmo/hairbloom/profile/app/controller"
	profileService "github.com/lushmo/hairbloom/profile/app/service"
)

func runStorefrontService(c context.Context) {
	c, span := otel.Tracer.Start(c, "runStorefrontService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, AppStorefront).
		Str(log.KeyTag, "main runStorefrontService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, AppStorefront)
	logger = logger.With().Any(log.KeyConfig, cfg).Logger()
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, AppStorefront, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		c = logger.WithContext(c)
		err = otel.ShutdownOtel(c, otelShutdowns)
		if err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer func() {
		logger = logger.With().Str(log.KeyProcess, "shutting down database").Logger()
		logger.Info().Msg("shutting down database")
		db.Close()
		logger.Info().Msg("shutdown database")
	}()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	c = logger.WithContext(c)
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		logger = logger.With().Str(log.KeyProcess, "shutting down cache").Logger()
		logger.Info().Msg("shutting down cache")
		err = cache.Close()
		if err != nil {
			err = fmt.Errorf("failed shutting down cache with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown cache")
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(log.KeyProcess, "initializing services").Logger()
	logger.Info().Msg("initializing services")
	queries := repository.New(db)
	catalogSvc := catalogService.NewCatalogService()
	notificationSvc := notificationService.NewNotificationService(cache)
	cartSvc := cartService.NewCartService(queries, cache, catalogSvc, notificationSvc)
	checkoutSvc := checkoutService.NewCheckoutService(queries, cartSvc, notificationSvc, cfg.Application)
	orderSvc := orderService.NewOrderService(queries, catalogSvc)
	profileSvc := profileService.NewProfileService(queries)
	logger.Info().Msg("initialized services")

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(AppStorefront),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	catalogController.AttachCatalogController(router, &catalogSvc)

	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.Application.SecretKey))
	cartController.AttachCartController(protected, cartSvc)
	checkoutController.AttachCheckoutController(protected, checkoutSvc)
	orderController.AttachOrderController(protected, orderSvc)
	profileController.AttachProfileController(protected, profileSvc)
	notificationController.AttachNotificationController(protected, notificationSvc)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	go func() {
		logger = logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)

		logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("error=%w occured while server is running", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())

			c = logger.WithContext(c)
			if err := otel.ShutdownOtel(c, otelShutdowns); err != nil {
				err = fmt.Errorf("failed shutting down otel with error=%w", err)
				inErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return
			}
			return
		}
		logger.Info().Msg("shutdown server")
	}()

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
	logger.Info().Msg("received interuption signal shutting down")

	logger = logger.With().Str(log.KeyProcess, "shutting down http server").Logger()
	logger.Info().Msg("shutting down http server")
	err = httpServer.Shutdown(c)
	if err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown http server")
}
