// Package tracing - окно прослеживания контактов и сеть связей подтвержденных вспышек.
package tracing

import (
	"strings"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/outbreak"
	"github.com/google/uuid"
)

// EventAddLink - имя операции в ошибках перехода
const EventAddLink = "AddTracingLink"

// LocationTypes - типы локаций, которые принимает полевая форма
var LocationTypes = []string{"Farm", "Market", "Water Point", "Slaughterhouse", "Trader's Home"}

// ContactTypes - виды контакта
var ContactTypes = []string{"Animal Movement", "Vehicle", "Personnel", "Shared Grazing", "Other"}

// Window - интервал прослеживания [From, To] включительно
type Window struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	IncubationDays int       `json:"incubation_days"`
}

// Contains сообщает, попадает ли дата контакта в окно
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// WindowFor: окно заканчивается датой расследования (или датой сообщения),
// начинается раньше на максимальный инкубационный период болезни
func WindowFor(o models.Outbreak, catalog models.DiseaseCatalog) Window {
	anchor := o.ReportDate
	if o.InvestigationDate != nil {
		anchor = *o.InvestigationDate
	}
	incubation := catalog.Incubation(o.DiseaseCode)
	return Window{
		From:           anchor.Add(-incubation),
		To:             anchor,
		IncubationDays: int(incubation / (24 * time.Hour)),
	}
}

// NewLink проверяет связь и статус вспышки-источника и заполняет служебные поля
func NewLink(source models.Outbreak, draft models.ContactTracingLink, now time.Time) (models.ContactTracingLink, error) {
	if !outbreak.CanTrace(source.Status) {
		return models.ContactTracingLink{}, &models.InvalidTransitionError{
			OutbreakID: source.ID.String(),
			Transition: EventAddLink,
			From:       source.Status,
			Detail:     "tracing links require a confirmed outbreak",
		}
	}

	l := draft
	l.LocationName = strings.TrimSpace(l.LocationName)
	if l.LocationName == "" {
		return models.ContactTracingLink{}, models.NewValidationError("tracing_link", "location_name", "is required")
	}
	if l.ContactDate.IsZero() {
		return models.ContactTracingLink{}, models.NewValidationError("tracing_link", "contact_date", "is required")
	}
	if !l.Direction.Valid() {
		return models.ContactTracingLink{}, models.NewValidationError("tracing_link", "direction", "must be TraceBack or TraceForward")
	}
	if l.LocationType != "" && !contains(LocationTypes, l.LocationType) {
		return models.ContactTracingLink{}, models.NewValidationError("tracing_link", "location_type", "unknown location type "+l.LocationType)
	}
	if l.ContactType != "" && !contains(ContactTypes, l.ContactType) {
		return models.ContactTracingLink{}, models.NewValidationError("tracing_link", "contact_type", "unknown contact type "+l.ContactType)
	}
	if l.Latitude != nil && (*l.Latitude < -90 || *l.Latitude > 90) {
		return models.ContactTracingLink{}, models.NewValidationError("tracing_link", "latitude", "must be within [-90, 90]")
	}
	if l.Longitude != nil && (*l.Longitude < -180 || *l.Longitude > 180) {
		return models.ContactTracingLink{}, models.NewValidationError("tracing_link", "longitude", "must be within [-180, 180]")
	}

	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.SourceOutbreakID = source.ID
	l.CreatedAt = now
	return l, nil
}

// SameContact - совпадение кортежа (источник, локация, дата, направление)
func SameContact(a, b models.ContactTracingLink) bool {
	return a.SourceOutbreakID == b.SourceOutbreakID &&
		LocationNodeID(a.LocationName) == LocationNodeID(b.LocationName) &&
		sameDay(a.ContactDate, b.ContactDate) &&
		a.Direction == b.Direction
}

// CheckDuplicate отклоняет точный дубликат уже записанной связи
func CheckDuplicate(existing []models.ContactTracingLink, l models.ContactTracingLink) error {
	for _, e := range existing {
		if SameContact(e, l) {
			return &models.ValidationError{
				Entity: "tracing_link",
				ID:     e.ID.String(),
				Field:  "location_name",
				Reason: "link with the same location, contact date and direction already exists",
			}
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
