package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	inErrors "github.com/lushmo/hairbloom/internal/errors"
	"github.com/lushmo/hairbloom/internal/log"
	"github.com/lushmo/hairbloom/internal/otel"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "WriteJsonResponse").Logger()

	w.Header().Add(HeaderContentType, HeaderValueJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"]; ok {
		w.WriteHeader(v.(int))
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		inErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}
