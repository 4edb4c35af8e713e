package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
	"github.com/lushmo/hairbloom/internal/repository"
	"github.com/lushmo/hairbloom/profile/pkg/request"
	"github.com/lushmo/hairbloom/profile/pkg/response"
)

type ProfileService struct {
	queries *repository.Queries
}

func NewProfileService(queries *repository.Queries) *ProfileService {
	return &ProfileService{queries: queries}
}

func (s *ProfileService) FindProfileById(
	c context.Context,
	userID uuid.UUID,
) (response.Profile, error) {
	c, span := otel.Tracer.Start(c, "ProfileService FindProfileById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProfileService FindProfileById").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding profile").Logger()
	logger.Info().Msg("finding profile")
	row, err := s.queries.FindProfileById(c, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("userId=%s with error=%w", userID, inErrors.ErrProfileNotFound)
		} else {
			err = fmt.Errorf("failed finding profile with error=%w", err)
		}
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Profile{}, err
	}
	logger.Info().Msg("found profile")

	return mapProfile(row), nil
}

func (s *ProfileService) UpsertProfile(
	c context.Context,
	userID uuid.UUID,
	param request.UpsertProfile,
) (response.Profile, error) {
	c, span := otel.Tracer.Start(c, "ProfileService UpsertProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProfileService UpsertProfile").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "upserting profile").Logger()
	logger.Info().Msg("upserting profile")
	row, err := s.queries.UpsertProfile(c, repository.UpsertProfileParams{
		ID:         userID,
		FirstName:  param.FirstName,
		LastName:   param.LastName,
		Phone:      param.Phone,
		Address:    param.Address,
		City:       param.City,
		PostalCode: param.PostalCode,
		Country:    param.Country,
	})
	if err != nil {
		err = fmt.Errorf("failed upserting profile with error=%w", err)
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Profile{}, err
	}
	logger.Info().Msg("upserted profile")

	return mapProfile(row), nil
}

func mapProfile(row repository.Profile) response.Profile {
	return response.Profile{
		ID:         row.ID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Phone:      row.Phone,
		Address:    row.Address,
		City:       row.City,
		PostalCode: row.PostalCode,
		Country:    row.Country,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}
