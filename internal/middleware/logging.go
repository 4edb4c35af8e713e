package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	inHttp "github.com/lushmo/hairbloom/internal/http"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
)

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(inHttp.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c, span := otel.Tracer.Start(
			r.Context(),
			"main Logging",
			trace.WithAttributes(
				attribute.String(log.KeyRequestID, requestID),
				attribute.String(log.KeyRequestHost, r.Host),
				attribute.String(log.KeyRequestIp, r.RemoteAddr),
				attribute.String(log.KeyRequestMethod, r.Method),
				attribute.String(log.KeyRequestURI, r.RequestURI),
				attribute.String(log.KeyRequestURL, r.URL.String()),
			),
		)
		defer span.End()

		var buffer bytes.Buffer
		tee := io.TeeReader(r.Body, &buffer)
		requestBody := map[string]interface{}{}
		json.NewDecoder(tee).Decode(&requestBody)
		if requestBody["cardNumber"] != nil {
			requestBody["cardNumber"] = "****"
		}
		if requestBody["cardCvc"] != nil {
			requestBody["cardCvc"] = "***"
		}
		r.Body = io.NopCloser(&buffer)

		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyRequestID, requestID).
			Dict("request", zerolog.Dict().
				Any(log.KeyRequestHeader, r.Header).
				Str(log.KeyRequestHost, r.Host).
				Str(log.KeyRequestIp, r.RemoteAddr).
				Str(log.KeyRequestMethod, r.Method).
				Str(log.KeyRequestURI, r.RequestURI).
				Str(log.KeyRequestURL, r.URL.String()).
				Any(log.KeyRequestBody, requestBody)).
			Str(log.KeyTag, "Logging").
			Logger()

		logger.Trace().Msg("attaching request value to context")
		c = log.AttachRequestIDToContext(c, requestID)
		c = logger.WithContext(c)
		r = r.WithContext(c)
		logger.Trace().Msg("attached request value to context")

		next.ServeHTTP(w, r)
	})
}
