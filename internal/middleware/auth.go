package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lushmo/hairbloom/internal/auth"
	inErrors "github.com/lushmo/hairbloom/internal/errors"
	inHttp "github.com/lushmo/hairbloom/internal/http"
	"github.com/lushmo/hairbloom/internal/log"
)

// Auth verifies the bearer token issued by the hosted auth provider and
// attaches it to the request context. Requests without a valid token are
// the "redirect to sign-in" surface of the storefront.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware Auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrNotSignedIn.Error(),
				})
				return
			}

			token := strings.TrimPrefix(authorization, "Bearer ")
			parsed, err := auth.VerifyToken(c, secretKey, token)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			c = auth.AttachTokenToContext(c, parsed)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
