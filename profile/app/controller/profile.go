package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/lushmo/hairbloom/internal/auth"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	inHttp "github.com/lushmo/hairbloom/internal/http"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
	"github.com/lushmo/hairbloom/profile/app/service"
	"github.com/lushmo/hairbloom/profile/pkg/request"
)

type ProfileController struct {
	service *service.ProfileService
}

func AttachProfileController(router *mux.Router, service *service.ProfileService) {
	controller := ProfileController{service: service}

	subrouter := router.PathPrefix("/profile").Subrouter()
	subrouter.HandleFunc("", controller.FindProfile).Methods(http.MethodGet)
	subrouter.HandleFunc("", controller.UpsertProfile).Methods(http.MethodPut)
}

func (t ProfileController) FindProfile(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProfileController FindProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProfileController FindProfile").
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

	logger = logger.With().Str(log.KeyProcess, "finding profile").Logger()
	logger.Info().Msg("finding profile")
	c = logger.WithContext(c)
	profile, err := t.service.FindProfileById(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding profile with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		statusCode := http.StatusInternalServerError
		if errors.Is(err, inErrors.ErrProfileNotFound) {
			statusCode = http.StatusNotFound
		}
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCode,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found profile")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "profile found",
		"data": map[string]interface{}{
			"profile": profile,
		},
	})
}

func (t ProfileController) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProfileController UpsertProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProfileController UpsertProfile").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpsertProfile{}
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

	logger = logger.With().Str(log.KeyProcess, "upserting profile").Logger()
	logger.Info().Msg("upserting profile")
	c = logger.WithContext(c)
	profile, err := t.service.UpsertProfile(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed upserting profile with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("upserted profile")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "profile saved",
		"data": map[string]interface{}{
			"profile": profile,
		},
	})
}
