package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/log"
)

type jwtToken struct{}

func AttachTokenToContext(c context.Context, token *jwt.Token) context.Context {
	return context.WithValue(c, jwtToken{}, token)
}

func TokenFromContext(c context.Context) *jwt.Token {
	token, ok := c.Value(jwtToken{}).(*jwt.Token)
	if !ok {
		return nil
	}
	return token
}

func VerifyToken(c context.Context, secretKey string, token string) (*jwt.Token, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifyToken").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	if !parsed.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return nil, inErrors.ErrTokenInvalid
	}

	return parsed, nil
}

func UserIdFromContext(c context.Context) (uuid.UUID, error) {
	token := TokenFromContext(c)
	if token == nil {
		return uuid.Nil, inErrors.ErrEmptyAuth
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed getting subject with error=%w", err)
	}
	if subject == "" {
		return uuid.Nil, inErrors.ErrEmptySubject
	}
	userId, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing subject=%s with error=%w", subject, err)
	}
	return userId, nil
}
