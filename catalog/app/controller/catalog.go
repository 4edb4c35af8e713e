package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/lushmo/hairbloom/catalog/app/service"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	inHttp "github.com/lushmo/hairbloom/internal/http"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
)

type CatalogController struct {
	service *service.CatalogService
}

func AttachCatalogController(router *mux.Router, service *service.CatalogService) {
	controller := CatalogController{service: service}

	subrouter := router.PathPrefix("/products").Subrouter()
	subrouter.HandleFunc("", controller.FindProducts).Methods(http.MethodGet)
	subrouter.HandleFunc("/{idOrSlug}", controller.FindProduct).Methods(http.MethodGet)
}

func (t CatalogController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindProducts").
		Logger()

	logger.Info().Msg("finding products")
	c = logger.WithContext(c)
	products := t.service.FindProducts(c)
	logger.Info().Msgf("found %d products", len(products))

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "products found",
		"data": map[string]interface{}{
			"products": products,
		},
	})
}

func (t CatalogController) FindProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CatalogController FindProduct")
	defer span.End()

	idOrSlug := mux.Vars(r)["idOrSlug"]

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogController FindProduct").
		Str(log.KeyProductSlug, idOrSlug).
		Logger()

	logger.Info().Msgf("finding product=%s", idOrSlug)
	c = logger.WithContext(c)
	product, err := t.service.FindProductById(c, idOrSlug)
	if err != nil {
		product, err = t.service.FindProductBySlug(c, idOrSlug)
	}
	if err != nil {
		err = fmt.Errorf("failed finding product=%s with error=%w", idOrSlug, err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrProductNotFound) {
			statusCode = http.StatusNotFound
		}
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found product=%s", idOrSlug)

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("product=%s found", idOrSlug),
		"data": map[string]interface{}{
			"product": product,
		},
	})
}
