package models

import (
	"time"

	"github.com/google/uuid"
)

// SampleStatus - этап движения пробы от поля до лаборатории
type SampleStatus string

const (
	SampleCollected        SampleStatus = "Collected"
	SampleInTransit        SampleStatus = "InTransit"
	SampleReceived         SampleStatus = "Received"
	SampleTesting          SampleStatus = "Testing"
	SampleResultsAvailable SampleStatus = "ResultsAvailable"
	SampleRejected         SampleStatus = "Rejected"
)

// Rank задает порядок этапов; терминальные статусы имеют одинаковый ранг
func (s SampleStatus) Rank() int {
	switch s {
	case SampleCollected:
		return 0
	case SampleInTransit:
		return 1
	case SampleReceived:
		return 2
	case SampleTesting:
		return 3
	case SampleResultsAvailable, SampleRejected:
		return 4
	}
	return -1
}

// Terminal сообщает, что проба больше не меняет статус
func (s SampleStatus) Terminal() bool {
	return s == SampleResultsAvailable || s == SampleRejected
}

// SampleResult - лабораторный результат
type SampleResult string

const (
	ResultPositive     SampleResult = "Positive"
	ResultNegative     SampleResult = "Negative"
	ResultInconclusive SampleResult = "Inconclusive"
	ResultRejected     SampleResult = "Rejected"
)

// Valid сообщает, известен ли результат
func (r SampleResult) Valid() bool {
	switch r {
	case ResultPositive, ResultNegative, ResultInconclusive, ResultRejected:
		return true
	}
	return false
}

// Sample - проба, отобранная в ходе полевого расследования
type Sample struct {
	ID           uuid.UUID     `json:"id"`
	OutbreakID   uuid.UUID     `json:"outbreak_id"`
	FieldID      string        `json:"field_id" validate:"required"`
	SampleType   string        `json:"sample_type,omitempty"`
	Laboratory   string        `json:"laboratory,omitempty"`
	SubmittedOn  *time.Time    `json:"submitted_on,omitempty"`
	Status       SampleStatus  `json:"status"`
	Result       *SampleResult `json:"result,omitempty"`
	ResultDetail string        `json:"result_detail,omitempty"`
	ResultDate   *time.Time    `json:"result_date,omitempty"`
}

// Clone возвращает копию пробы без общих указателей
func (s Sample) Clone() Sample {
	out := s
	out.SubmittedOn = cloneTime(s.SubmittedOn)
	out.ResultDate = cloneTime(s.ResultDate)
	if s.Result != nil {
		r := *s.Result
		out.Result = &r
	}
	return out
}
