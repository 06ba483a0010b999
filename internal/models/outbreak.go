package models

import (
	"time"

	"github.com/google/uuid"
)

// OutbreakStatus - состояние расследования вспышки
type OutbreakStatus string

const (
	StatusUnassigned OutbreakStatus = "Unassigned"
	StatusAssigned   OutbreakStatus = "Assigned"
	StatusInProgress OutbreakStatus = "InProgress"
	StatusCompleted  OutbreakStatus = "Completed"
	StatusConfirmed  OutbreakStatus = "Confirmed"
	StatusResolved   OutbreakStatus = "Resolved"
	StatusRejected   OutbreakStatus = "Rejected"
)

// Valid сообщает, известен ли статус
func (s OutbreakStatus) Valid() bool {
	switch s {
	case StatusUnassigned, StatusAssigned, StatusInProgress, StatusCompleted,
		StatusConfirmed, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Outbreak - запись о вспышке заболевания
type Outbreak struct {
	ID                  uuid.UUID      `json:"id"`
	RegionCode          string         `json:"region_code"`
	ReporterName        string         `json:"reporter_name,omitempty"`
	ReportDate          time.Time      `json:"report_date"`
	Latitude            *float64       `json:"latitude,omitempty"`
	Longitude           *float64       `json:"longitude,omitempty"`
	SpeciesAffected     []string       `json:"species_affected"`
	InitialComplaint    string         `json:"initial_complaint"`
	Status              OutbreakStatus `json:"status"`
	InvestigatorName    *string        `json:"investigator_name,omitempty"`
	InvestigationDate   *time.Time     `json:"investigation_date,omitempty"`
	InvestigationDetail map[string]any `json:"investigation_detail,omitempty"`
	DiseaseCode         *string        `json:"disease_code,omitempty"`
	ConfirmationDate    *time.Time     `json:"confirmation_date,omitempty"`
	ResolvedAt          *time.Time     `json:"resolved_at,omitempty"`
	CloseReason         string         `json:"close_reason,omitempty"`
	Version             int            `json:"version"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// OutbreakCase - строка line-list, принадлежит ровно одной вспышке
type OutbreakCase struct {
	ID          uuid.UUID `json:"id"`
	OutbreakID  uuid.UUID `json:"outbreak_id"`
	Species     string    `json:"species" validate:"required"`
	Susceptible int       `json:"susceptible" validate:"gte=0"`
	Cases       int       `json:"cases" validate:"gte=0"`
	Deaths      int       `json:"deaths" validate:"gte=0"`
	ObservedOn  time.Time `json:"observed_on" validate:"required"`
}

// OutbreakAggregate - вспышка вместе с её случаями и пробами, единица атомарного обновления
type OutbreakAggregate struct {
	Outbreak Outbreak       `json:"outbreak"`
	Cases    []OutbreakCase `json:"cases"`
	Samples  []Sample       `json:"samples"`
}

// Clone возвращает глубокую копию агрегата
func (a OutbreakAggregate) Clone() OutbreakAggregate {
	out := OutbreakAggregate{
		Outbreak: a.Outbreak.Clone(),
		Cases:    make([]OutbreakCase, len(a.Cases)),
		Samples:  make([]Sample, len(a.Samples)),
	}
	copy(out.Cases, a.Cases)
	for i, s := range a.Samples {
		out.Samples[i] = s.Clone()
	}
	return out
}

// SampleByFieldID ищет пробу по полевому идентификатору
func (a *OutbreakAggregate) SampleByFieldID(fieldID string) (int, bool) {
	for i := range a.Samples {
		if a.Samples[i].FieldID == fieldID {
			return i, true
		}
	}
	return -1, false
}

// Clone возвращает копию вспышки без общих указателей
func (o Outbreak) Clone() Outbreak {
	out := o
	if o.SpeciesAffected != nil {
		out.SpeciesAffected = append([]string(nil), o.SpeciesAffected...)
	}
	out.Latitude = cloneFloat(o.Latitude)
	out.Longitude = cloneFloat(o.Longitude)
	out.InvestigatorName = cloneString(o.InvestigatorName)
	out.InvestigationDate = cloneTime(o.InvestigationDate)
	out.DiseaseCode = cloneString(o.DiseaseCode)
	out.ConfirmationDate = cloneTime(o.ConfirmationDate)
	out.ResolvedAt = cloneTime(o.ResolvedAt)
	if o.InvestigationDetail != nil {
		out.InvestigationDetail = make(map[string]any, len(o.InvestigationDetail))
		for k, v := range o.InvestigationDetail {
			out.InvestigationDetail[k] = v
		}
	}
	return out
}

// OutbreakFilter - параметры выборки вспышек
type OutbreakFilter struct {
	Status       OutbreakStatus
	Investigator string
	RegionCode   string
	Page         int
	PageSize     int
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
