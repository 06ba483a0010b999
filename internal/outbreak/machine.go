// Package outbreak - конечный автомат жизненного цикла вспышки.
// Переходы - чистые функции над агрегатом (вспышка + случаи + пробы):
// на вход текущий агрегат и событие, на выход следующий агрегат.
package outbreak

import (
	"fmt"
	"strings"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Имена переходов, попадают в ошибки и события
const (
	EventReport              = "Report"
	EventAssign              = "Assign"
	EventStartInvestigation  = "StartInvestigation"
	EventSubmitInvestigation = "SubmitInvestigation"
	EventUpdateSampleStatus  = "UpdateSampleStatus"
	EventRecordSampleResult  = "RecordSampleResult"
	EventResolve             = "Resolve"
	EventClose               = "Close"
)

// ReasonAllSamplesRejected - причина закрытия, когда лаборатория отклонила все пробы
const ReasonAllSamplesRejected = "all samples rejected by laboratory"

var validate = validator.New()

// Event - входное воздействие автомата
type Event interface {
	Name() string
}

type Assign struct {
	Investigator string
}

type StartInvestigation struct {
	Date time.Time
}

type SubmitInvestigation struct {
	Date        time.Time
	Detail      map[string]any
	DiseaseCode *string
	Cases       []models.OutbreakCase
	Samples     []models.Sample
}

type UpdateSampleStatus struct {
	FieldID string
	Status  models.SampleStatus
}

type RecordSampleResult struct {
	FieldID     string
	Result      models.SampleResult
	Detail      string
	Date        time.Time
	DiseaseCode *string
}

type Resolve struct{}

type Close struct {
	Reason string
}

func (Assign) Name() string              { return EventAssign }
func (StartInvestigation) Name() string  { return EventStartInvestigation }
func (SubmitInvestigation) Name() string { return EventSubmitInvestigation }
func (UpdateSampleStatus) Name() string  { return EventUpdateSampleStatus }
func (RecordSampleResult) Name() string  { return EventRecordSampleResult }
func (Resolve) Name() string             { return EventResolve }
func (Close) Name() string               { return EventClose }

// Transition - результат перехода: новый агрегат и данные для аудита и записи
type Transition struct {
	Aggregate models.OutbreakAggregate
	Event     string
	From      models.OutbreakStatus
	To        models.OutbreakStatus
	// Promoted - статус повышен до Confirmed положительным результатом пробы
	Promoted bool
	At       time.Time

	NewCases      []models.OutbreakCase
	NewSamples    []models.Sample
	ChangedSample *models.Sample
}

// StatusChanged сообщает, изменился ли статус вспышки
func (t Transition) StatusChanged() bool { return t.From != t.To }

// New регистрирует новое сообщение о вспышке в статусе Unassigned
func New(draft models.Outbreak, now time.Time) (models.OutbreakAggregate, error) {
	o := draft.Clone()
	o.RegionCode = strings.TrimSpace(o.RegionCode)
	o.InitialComplaint = strings.TrimSpace(o.InitialComplaint)
	if o.RegionCode == "" {
		return models.OutbreakAggregate{}, models.NewValidationError("outbreak", "region_code", "is required")
	}
	if o.InitialComplaint == "" {
		return models.OutbreakAggregate{}, models.NewValidationError("outbreak", "initial_complaint", "is required")
	}
	if o.Latitude != nil && (*o.Latitude < -90 || *o.Latitude > 90) {
		return models.OutbreakAggregate{}, models.NewValidationError("outbreak", "latitude", "must be within [-90, 90]")
	}
	if o.Longitude != nil && (*o.Longitude < -180 || *o.Longitude > 180) {
		return models.OutbreakAggregate{}, models.NewValidationError("outbreak", "longitude", "must be within [-180, 180]")
	}

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.ReportDate.IsZero() {
		o.ReportDate = now
	}
	o.Status = models.StatusUnassigned
	o.InvestigatorName = nil
	o.InvestigationDate = nil
	o.ConfirmationDate = nil
	o.ResolvedAt = nil
	o.CloseReason = ""
	o.Version = 1
	o.CreatedAt = now
	o.UpdatedAt = now
	return models.OutbreakAggregate{Outbreak: o}, nil
}

// CanTrace - связи прослеживания допустимы только для подтвержденных вспышек
func CanTrace(status models.OutbreakStatus) bool {
	return status == models.StatusConfirmed || status == models.StatusResolved
}

// Apply применяет событие к агрегату. Исходный агрегат не изменяется;
// при ошибке состояние считается неизменным.
func Apply(agg models.OutbreakAggregate, ev Event, now time.Time) (Transition, error) {
	next := agg.Clone()
	t := Transition{
		Event: ev.Name(),
		From:  agg.Outbreak.Status,
		At:    now,
	}

	var err error
	switch e := ev.(type) {
	case Assign:
		err = applyAssign(&next, e)
	case StartInvestigation:
		err = applyStart(&next, e, now)
	case SubmitInvestigation:
		err = applySubmit(&next, &t, e, now)
	case UpdateSampleStatus:
		err = applySampleStatus(&next, &t, e, now)
	case RecordSampleResult:
		err = applyResult(&next, &t, e, now)
	case Resolve:
		err = applyResolve(&next, now)
	case Close:
		err = applyClose(&next, e)
	default:
		err = fmt.Errorf("outbreak: unknown event %T", ev)
	}
	if err != nil {
		return Transition{}, err
	}

	next.Outbreak.UpdatedAt = now
	t.Aggregate = next
	t.To = next.Outbreak.Status
	return t, nil
}

func invalid(agg *models.OutbreakAggregate, event, detail string) error {
	return &models.InvalidTransitionError{
		OutbreakID: agg.Outbreak.ID.String(),
		Transition: event,
		From:       agg.Outbreak.Status,
		Detail:     detail,
	}
}

func applyAssign(agg *models.OutbreakAggregate, e Assign) error {
	if agg.Outbreak.Status != models.StatusUnassigned {
		return invalid(agg, EventAssign, "")
	}
	name := strings.TrimSpace(e.Investigator)
	if name == "" {
		return &models.ValidationError{Entity: "outbreak", ID: agg.Outbreak.ID.String(), Field: "investigator", Reason: "is required"}
	}
	agg.Outbreak.InvestigatorName = &name
	agg.Outbreak.Status = models.StatusAssigned
	return nil
}

func applyStart(agg *models.OutbreakAggregate, e StartInvestigation, now time.Time) error {
	if agg.Outbreak.Status != models.StatusAssigned {
		return invalid(agg, EventStartInvestigation, "")
	}
	date := e.Date
	if date.IsZero() {
		date = now
	}
	agg.Outbreak.InvestigationDate = &date
	agg.Outbreak.Status = models.StatusInProgress
	return nil
}

func applySubmit(agg *models.OutbreakAggregate, t *Transition, e SubmitInvestigation, now time.Time) error {
	st := agg.Outbreak.Status
	if st != models.StatusAssigned && st != models.StatusInProgress {
		return invalid(agg, EventSubmitInvestigation, "")
	}
	id := agg.Outbreak.ID

	for i, c := range e.Cases {
		if err := validateCase(id, i, c); err != nil {
			return err
		}
	}
	fieldIDs := make(map[string]bool, len(agg.Samples)+len(e.Samples))
	for _, s := range agg.Samples {
		fieldIDs[s.FieldID] = true
	}
	for i, s := range e.Samples {
		if err := validate.Struct(s); err != nil {
			return &models.ValidationError{Entity: "sample", ID: fmt.Sprint(i), Field: "field_id", Reason: "is required"}
		}
		if fieldIDs[s.FieldID] {
			return &models.ValidationError{Entity: "sample", ID: s.FieldID, Field: "field_id", Reason: "duplicate field id"}
		}
		fieldIDs[s.FieldID] = true
	}

	date := e.Date
	if date.IsZero() {
		if agg.Outbreak.InvestigationDate != nil {
			date = *agg.Outbreak.InvestigationDate
		} else {
			date = now
		}
	}
	agg.Outbreak.InvestigationDate = &date
	if e.Detail != nil {
		agg.Outbreak.InvestigationDetail = make(map[string]any, len(e.Detail))
		for k, v := range e.Detail {
			agg.Outbreak.InvestigationDetail[k] = v
		}
	}
	if e.DiseaseCode != nil && *e.DiseaseCode != "" {
		code := *e.DiseaseCode
		agg.Outbreak.DiseaseCode = &code
	}

	for _, c := range e.Cases {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		c.OutbreakID = id
		agg.Cases = append(agg.Cases, c)
		t.NewCases = append(t.NewCases, c)
	}
	for _, s := range e.Samples {
		s = s.Clone()
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		s.OutbreakID = id
		if s.Status == "" {
			s.Status = models.SampleCollected
		}
		if s.Status.Rank() < 0 || s.Status.Terminal() {
			return &models.ValidationError{Entity: "sample", ID: s.FieldID, Field: "status", Reason: fmt.Sprintf("unexpected initial status %q", s.Status)}
		}
		s.Result = nil
		s.ResultDate = nil
		agg.Samples = append(agg.Samples, s)
		t.NewSamples = append(t.NewSamples, s.Clone())
	}

	agg.Outbreak.Status = models.StatusCompleted
	return nil
}

func validateCase(outbreakID uuid.UUID, i int, c models.OutbreakCase) error {
	if err := validate.Struct(c); err != nil {
		field := "case"
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field = strings.ToLower(verrs[0].Field())
		}
		return &models.ValidationError{Entity: "outbreak_case", ID: fmt.Sprint(i), Field: field, Reason: "invalid value"}
	}
	if c.Susceptible > 0 && (c.Cases > c.Susceptible || c.Deaths > c.Susceptible) {
		return &models.ValidationError{
			Entity: "outbreak_case", ID: fmt.Sprint(i), Field: "cases",
			Reason: fmt.Sprintf("cases (%d) and deaths (%d) must not exceed susceptible (%d)", c.Cases, c.Deaths, c.Susceptible),
		}
	}
	return nil
}

func applySampleStatus(agg *models.OutbreakAggregate, t *Transition, e UpdateSampleStatus, now time.Time) error {
	idx, ok := agg.SampleByFieldID(e.FieldID)
	if !ok {
		return fmt.Errorf("sample %s: %w", e.FieldID, models.ErrNotFound)
	}
	if e.Status.Rank() < 0 {
		return &models.ValidationError{Entity: "sample", ID: e.FieldID, Field: "status", Reason: fmt.Sprintf("unknown status %q", e.Status)}
	}
	if e.Status == models.SampleResultsAvailable {
		return &models.ValidationError{Entity: "sample", ID: e.FieldID, Field: "status", Reason: "results are recorded together with the result value"}
	}
	s := &agg.Samples[idx]
	if s.Status.Terminal() || e.Status.Rank() <= s.Status.Rank() {
		return invalid(agg, EventUpdateSampleStatus, fmt.Sprintf("sample %s cannot move from %s to %s", e.FieldID, s.Status, e.Status))
	}
	s.Status = e.Status
	if e.Status == models.SampleRejected {
		r := models.ResultRejected
		date := now
		s.Result = &r
		s.ResultDate = &date
		rejectIfAllSamplesRejected(agg)
	}
	changed := s.Clone()
	t.ChangedSample = &changed
	return nil
}

func applyResult(agg *models.OutbreakAggregate, t *Transition, e RecordSampleResult, now time.Time) error {
	if !e.Result.Valid() {
		return &models.ValidationError{Entity: "sample", ID: e.FieldID, Field: "result", Reason: fmt.Sprintf("unknown result %q", e.Result)}
	}
	idx, ok := agg.SampleByFieldID(e.FieldID)
	if !ok {
		return fmt.Errorf("sample %s: %w", e.FieldID, models.ErrNotFound)
	}
	s := &agg.Samples[idx]
	if s.Status.Terminal() {
		return invalid(agg, EventRecordSampleResult, fmt.Sprintf("sample %s already has status %s", e.FieldID, s.Status))
	}

	date := e.Date
	if date.IsZero() {
		date = now
	}
	result := e.Result
	s.Result = &result
	s.ResultDetail = e.Detail
	s.ResultDate = &date
	s.Status = models.SampleResultsAvailable
	if result == models.ResultRejected {
		s.Status = models.SampleRejected
	}
	changed := s.Clone()
	t.ChangedSample = &changed

	o := &agg.Outbreak
	switch {
	case result == models.ResultPositive:
		if e.DiseaseCode != nil && *e.DiseaseCode != "" {
			code := *e.DiseaseCode
			o.DiseaseCode = &code
		}
		// результат лаборатории имеет приоритет: повышение сразу из любого открытого статуса
		if o.Status != models.StatusConfirmed && o.Status != models.StatusResolved {
			o.Status = models.StatusConfirmed
			o.ConfirmationDate = &date
			o.CloseReason = ""
			t.Promoted = true
		}
	case result == models.ResultRejected:
		rejectIfAllSamplesRejected(agg)
	}
	return nil
}

func rejectIfAllSamplesRejected(agg *models.OutbreakAggregate) {
	if agg.Outbreak.Status != models.StatusCompleted || len(agg.Samples) == 0 {
		return
	}
	for _, s := range agg.Samples {
		if s.Status != models.SampleRejected {
			return
		}
	}
	agg.Outbreak.Status = models.StatusRejected
	agg.Outbreak.CloseReason = ReasonAllSamplesRejected
}

func applyResolve(agg *models.OutbreakAggregate, now time.Time) error {
	if agg.Outbreak.Status != models.StatusConfirmed {
		return invalid(agg, EventResolve, "")
	}
	at := now
	agg.Outbreak.ResolvedAt = &at
	agg.Outbreak.Status = models.StatusResolved
	return nil
}

func applyClose(agg *models.OutbreakAggregate, e Close) error {
	switch agg.Outbreak.Status {
	case models.StatusUnassigned, models.StatusAssigned, models.StatusInProgress, models.StatusCompleted:
	default:
		return invalid(agg, EventClose, "")
	}
	reason := strings.TrimSpace(e.Reason)
	if reason == "" {
		return &models.ValidationError{Entity: "outbreak", ID: agg.Outbreak.ID.String(), Field: "reason", Reason: "is required"}
	}
	agg.Outbreak.CloseReason = reason
	agg.Outbreak.Status = models.StatusRejected
	return nil
}
