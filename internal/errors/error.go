package errors

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrEmptyAuth        = errors.New("missing authorization")
	ErrEmptySubject     = errors.New("missing subject")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrNotSignedIn      = errors.New("please sign in")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProfileNotFound  = errors.New("profile not found")
)

func HandleError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
