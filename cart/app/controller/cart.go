package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/lushmo/hairbloom/cart/app/service"
	"github.com/lushmo/hairbloom/cart/pkg/request"
	"github.com/lushmo/hairbloom/internal/auth"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	inHttp "github.com/lushmo/hairbloom/internal/http"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(router *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	subrouter := router.PathPrefix("/carts").Subrouter()
	subrouter.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	subrouter.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	subrouter.HandleFunc("/items", controller.AddCartItem).Methods(http.MethodPost)
	subrouter.HandleFunc("/items/{productId}", controller.UpdateCartItemQuantity).
		Methods(http.MethodPut)
	subrouter.HandleFunc("/items/{productId}", controller.RemoveCartItem).
		Methods(http.MethodDelete)
}

func statusCodeFromError(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrNotSignedIn):
		return http.StatusUnauthorized
	case errors.Is(err, inErrors.ErrCartItemNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController FindCart").
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

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := t.service.FindCartByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart found",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) AddCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddCartItem").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.AddCartItem{}
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

	logger = logger.With().Str(log.KeyProcess, "adding cart item").Logger()
	logger.Info().Msg("adding cart item")
	c = logger.WithContext(c)
	cart, err := t.service.AddCartItem(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed adding cart item with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("added cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "added item to cart",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) UpdateCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateCartItemQuantity")
	defer span.End()

	productId := mux.Vars(r)["productId"]

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateCartItemQuantity").
		Str(log.KeyProductID, productId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateCartItemQuantity{}
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

	logger = logger.With().Str(log.KeyProcess, "updating cart item quantity").Logger()
	logger.Info().Msg("updating cart item quantity")
	c = logger.WithContext(c)
	cart, err := t.service.UpdateCartItemQuantity(c, userId, productId, reqBody.Quantity)
	if err != nil {
		err = fmt.Errorf("failed updating cart item quantity with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("updated cart item quantity")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "updated cart item quantity",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCartItem")
	defer span.End()

	productId := mux.Vars(r)["productId"]

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveCartItem").
		Str(log.KeyProductID, productId).
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

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msg("removing cart item")
	c = logger.WithContext(c)
	cart, err := t.service.RemoveCartItem(c, userId, productId)
	if err != nil {
		err = fmt.Errorf("failed removing cart item with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("removed cart item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "removed item from cart",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ClearCart").
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

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	cart, err := t.service.ClearCart(c, userId)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("cleared cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "cart cleared",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}
