package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound возвращается репозиториями, когда запись отсутствует
	ErrNotFound = errors.New("not found")
	// ErrConcurrentUpdate возвращается при несовпадении версии вспышки
	ErrConcurrentUpdate = errors.New("concurrent update")
)

// ValidationError - некорректный или отсутствующий входной параметр
type ValidationError struct {
	Entity string
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	if e.Entity != "" {
		b.WriteString(" for ")
		b.WriteString(e.Entity)
		if e.ID != "" {
			b.WriteString(" ")
			b.WriteString(e.ID)
		}
	}
	if e.Field != "" {
		b.WriteString(": field '")
		b.WriteString(e.Field)
		b.WriteString("'")
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// NewValidationError создает ValidationError без привязки к конкретной записи
func NewValidationError(entity, field, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}

// GeometryError - непригодная граница региона. Регион исключается из графа смежности.
type GeometryError struct {
	RegionCode string `json:"region_code"`
	Reason     string `json:"reason"`
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry error for region %s: %s", e.RegionCode, e.Reason)
}

// InvalidTransitionError - переход запрещен для текущего состояния, состояние не меняется
type InvalidTransitionError struct {
	OutbreakID string
	Transition string
	From       OutbreakStatus
	Detail     string
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("invalid transition %s from status %s", e.Transition, e.From)
	if e.OutbreakID != "" {
		msg = fmt.Sprintf("outbreak %s: %s", e.OutbreakID, msg)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ComputationError - аналитический расчет отклонен до получения частичного результата
type ComputationError struct {
	Operation string
	Regions   []string
	Reason    string
}

func (e *ComputationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Operation, e.Reason)
	if len(e.Regions) > 0 {
		msg += " (regions: " + strings.Join(e.Regions, ", ") + ")"
	}
	return msg
}

// IsValidation сообщает, содержит ли цепочка ошибок ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsInvalidTransition сообщает, содержит ли цепочка ошибок InvalidTransitionError
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}

// IsComputation сообщает, содержит ли цепочка ошибок ComputationError
func IsComputation(err error) bool {
	var target *ComputationError
	return errors.As(err, &target)
}
