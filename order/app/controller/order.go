package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/lushmo/hairbloom/internal/auth"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	inHttp "github.com/lushmo/hairbloom/internal/http"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
	"github.com/lushmo/hairbloom/order/app/service"
)

type OrderController struct {
	service *service.OrderService
}

func AttachOrderController(router *mux.Router, service *service.OrderService) {
	controller := OrderController{service: service}

	subrouter := router.PathPrefix("/orders").Subrouter()
	subrouter.HandleFunc("", controller.FindOrders).Methods(http.MethodGet)
	subrouter.HandleFunc("/{orderId}", controller.FindOrderById).Methods(http.MethodGet)
}

func (t OrderController) FindOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrders").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from token").Logger()
	userId, err := auth.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    inErrors.ErrNotSignedIn.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	c = logger.WithContext(c)
	orders, err := t.service.FindOrdersByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found orders")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "orders found",
		"data": map[string]interface{}{
			"orders": orders,
		},
	})
}

func (t OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderController FindOrderById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing orderId").Logger()
	orderId, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		err = fmt.Errorf("failed parsing orderId with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyOrderID, orderId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "getting userId from token").Logger()
	userId, err := auth.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from token with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    inErrors.ErrNotSignedIn.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msg("finding order")
	c = logger.WithContext(c)
	order, err := t.service.FindOrderById(c, userId, orderId)
	if err != nil {
		err = fmt.Errorf("failed finding order with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrOrderNotFound) {
			statusCode = http.StatusNotFound
		}
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "order found",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}
