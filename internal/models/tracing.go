package models

import (
	"time"

	"github.com/google/uuid"
)

// TraceDirection - направление прослеживания контакта
type TraceDirection string

const (
	TraceBack    TraceDirection = "TraceBack"
	TraceForward TraceDirection = "TraceForward"
)

// Valid сообщает, известно ли направление
func (d TraceDirection) Valid() bool {
	return d == TraceBack || d == TraceForward
}

// ContactTracingLink - связь подтвержденной вспышки с внешней локацией
type ContactTracingLink struct {
	ID               uuid.UUID      `json:"id"`
	SourceOutbreakID uuid.UUID      `json:"source_outbreak_id"`
	LocationName     string         `json:"location_name"`
	LocationType     string         `json:"location_type,omitempty"`
	ContactType      string         `json:"contact_type,omitempty"`
	Latitude         *float64       `json:"latitude,omitempty"`
	Longitude        *float64       `json:"longitude,omitempty"`
	ContactDate      time.Time      `json:"contact_date"`
	Direction        TraceDirection `json:"direction"`
	Notes            string         `json:"notes,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

// TracingFilter - выборка связей по региону и периоду для визуализации сети
type TracingFilter struct {
	RegionCode string
	From       *time.Time
	To         *time.Time
}
