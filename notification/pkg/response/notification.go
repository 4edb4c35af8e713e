package response

import (
	"time"

	"github.com/google/uuid"
)

const (
	VariantSuccess     = "success"
	VariantDestructive = "destructive"
)

type Notification struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Variant   string    `json:"variant"`
	CreatedAt time.Time `json:"createdAt"`
}
