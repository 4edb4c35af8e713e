package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/lushmo/hairbloom/internal/auth"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	inHttp "github.com/lushmo/hairbloom/internal/http"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
	"github.com/lushmo/hairbloom/notification/app/service"
)

type NotificationController struct {
	service *service.NotificationService
}

func AttachNotificationController(router *mux.Router, service *service.NotificationService) {
	controller := NotificationController{service: service}

	subrouter := router.PathPrefix("/notifications").Subrouter()
	subrouter.HandleFunc("", controller.FindNotifications).Methods(http.MethodGet)
}

func (t NotificationController) FindNotifications(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "NotificationController FindNotifications")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationController FindNotifications").
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

	logger = logger.With().Str(log.KeyProcess, "finding notifications").Logger()
	logger.Info().Msg("finding notifications")
	c = logger.WithContext(c)
	notifications, err := t.service.FindNotificationsByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding notifications with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("found notifications")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "notifications found",
		"data": map[string]interface{}{
			"notifications": notifications,
		},
	})
}
