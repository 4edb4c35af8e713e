package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/lushmo/hairbloom/checkout/app/service"
	"github.com/lushmo/hairbloom/checkout/pkg/request"
	"github.com/lushmo/hairbloom/internal/auth"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	inHttp "github.com/lushmo/hairbloom/internal/http"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
)

type CheckoutController struct {
	service *service.CheckoutService
}

func AttachCheckoutController(router *mux.Router, service *service.CheckoutService) {
	controller := CheckoutController{service: service}

	router.HandleFunc("/checkout", controller.SubmitCheckout).Methods(http.MethodPost)
}

func (t CheckoutController) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController SubmitCheckout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutController SubmitCheckout").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.Checkout{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	if err := reqBody.Payment.Validate(); err != nil {
		err = fmt.Errorf("failed validating payment with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

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

	logger = logger.With().Str(log.KeyProcess, "submitting checkout").Logger()
	logger.Info().Msg("submitting checkout")
	c = logger.WithContext(c)
	order, err := t.service.SubmitCheckout(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed submitting checkout with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, inErrors.ErrNotSignedIn):
			statusCode = http.StatusUnauthorized
		case errors.Is(err, inErrors.ErrEmptyCart):
			statusCode = http.StatusBadRequest
		}
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyOrderID, order.ID.String()).Logger()
	logger.Info().Msg("submitted checkout")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "order placed",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}
