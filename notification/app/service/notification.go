package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	inCache "github.com/lushmo/hairbloom/internal/cache"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
	"github.com/lushmo/hairbloom/notification/pkg/response"
)

const (
	feedLength = 50
	feedTTL    = 24 * time.Hour
)

// Notifier is the storefront's toast surface. Pushing a notification is
// fire-and-forget: a toast must never fail the operation it reports on, so
// implementations log push failures instead of returning them.
type Notifier interface {
	Success(c context.Context, userID uuid.UUID, title string, message string)
	Failure(c context.Context, userID uuid.UUID, title string, message string)
}

type NotificationService struct {
	cache *redis.Client
}

func NewNotificationService(cache *redis.Client) *NotificationService {
	return &NotificationService{cache: cache}
}

func (s *NotificationService) Success(
	c context.Context,
	userID uuid.UUID,
	title string,
	message string,
) {
	s.push(c, userID, response.Notification{
		ID:        uuid.New(),
		Title:     title,
		Message:   message,
		Variant:   response.VariantSuccess,
		CreatedAt: time.Now(),
	})
}

func (s *NotificationService) Failure(
	c context.Context,
	userID uuid.UUID,
	title string,
	message string,
) {
	s.push(c, userID, response.Notification{
		ID:        uuid.New(),
		Title:     title,
		Message:   message,
		Variant:   response.VariantDestructive,
		CreatedAt: time.Now(),
	})
}

func (s *NotificationService) push(
	c context.Context,
	userID uuid.UUID,
	notification response.Notification,
) {
	c, span := otel.Tracer.Start(c, "NotificationService push")
	defer span.End()

	cacheKey := fmt.Sprintf(inCache.KeyNotificationsByUserId, userID.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationService push").
		Str(log.KeyCacheKey, cacheKey).
		Any(log.KeyNotification, notification).
		Logger()

	if userID == uuid.Nil {
		logger.Info().Msg("no user to notify, skipping")
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		err = fmt.Errorf("failed marshaling notification with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	pipe := s.cache.TxPipeline()
	pipe.LPush(c, cacheKey, payload)
	pipe.LTrim(c, cacheKey, 0, feedLength-1)
	pipe.Expire(c, cacheKey, feedTTL)
	_, err = pipe.Exec(c)
	if err != nil {
		err = fmt.Errorf("failed pushing notification with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("pushed notification")
}

func (s *NotificationService) FindNotificationsByUserId(
	c context.Context,
	userID uuid.UUID,
) ([]response.Notification, error) {
	c, span := otel.Tracer.Start(c, "NotificationService FindNotificationsByUserId")
	defer span.End()

	cacheKey := fmt.Sprintf(inCache.KeyNotificationsByUserId, userID.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "NotificationService FindNotificationsByUserId").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger.Info().Msg("finding notifications")
	payloads, err := s.cache.LRange(c, cacheKey, 0, feedLength-1).Result()
	if err != nil {
		err = fmt.Errorf("failed finding notifications with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	notifications := make([]response.Notification, 0, len(payloads))
	for _, payload := range payloads {
		notification := response.Notification{}
		err = json.Unmarshal([]byte(payload), &notification)
		if err != nil {
			err = fmt.Errorf("failed unmarshaling notification with error=%w", err)
			inErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	logger.Info().Msgf("found %d notifications", len(notifications))

	return notifications, nil
}
