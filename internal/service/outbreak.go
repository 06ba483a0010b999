package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/metrics"
	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/outbreak"
	"github.com/bayillag/epigeo_surveillance/internal/stats"
	"github.com/bayillag/epigeo_surveillance/internal/webhook"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// OutbreakService определяет контракт бизнес-логики жизненного цикла вспышки
type OutbreakService interface {
	ReportOutbreak(ctx context.Context, draft models.Outbreak) (*models.OutbreakAggregate, error)
	GetOutbreak(ctx context.Context, id uuid.UUID) (*models.OutbreakAggregate, error)
	ListOutbreaks(ctx context.Context, filter models.OutbreakFilter) ([]*models.Outbreak, error)
	AssignInvestigator(ctx context.Context, id uuid.UUID, investigator string) (*outbreak.Transition, error)
	StartInvestigation(ctx context.Context, id uuid.UUID, date time.Time) (*outbreak.Transition, error)
	SubmitInvestigation(ctx context.Context, id uuid.UUID, report outbreak.SubmitInvestigation) (*outbreak.Transition, error)
	UpdateSampleStatus(ctx context.Context, fieldID string, status models.SampleStatus) (*outbreak.Transition, error)
	SubmitSampleResult(ctx context.Context, result outbreak.RecordSampleResult) (*outbreak.Transition, error)
	ResolveOutbreak(ctx context.Context, id uuid.UUID) (*outbreak.Transition, error)
	CloseOutbreak(ctx context.Context, id uuid.UUID, reason string) (*outbreak.Transition, error)
	OutbreakSummary(ctx context.Context, id uuid.UUID) (*stats.Summary, error)
	SampleStatusCounts(ctx context.Context) (map[models.SampleStatus]int, error)
}

type outbreakService struct {
	repo      OutbreakRepository
	publisher webhook.WebhookPublisher
	metrics   *metrics.Metrics
	logger    *logrus.Logger
	locks     *keyedMutex
	now       func() time.Time
}

func NewOutbreakService(repo OutbreakRepository, logger *logrus.Logger, publisher webhook.WebhookPublisher, m *metrics.Metrics) OutbreakService {
	return &outbreakService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		locks:     newKeyedMutex(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ReportOutbreak регистрирует новое сообщение о вспышке
func (s *outbreakService) ReportOutbreak(ctx context.Context, draft models.Outbreak) (*models.OutbreakAggregate, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "outbreak",
		"method":      "ReportOutbreak",
		"region_code": draft.RegionCode,
	})
	log.Info("Registering a new outbreak report")

	agg, err := outbreak.New(draft, s.now())
	if err != nil {
		s.metrics.TransitionErrors.WithLabelValues(outbreak.EventReport, errorKind(err)).Inc()
		log.WithError(err).Warn("Outbreak report rejected")
		return nil, fmt.Errorf("service: could not report outbreak: %w", err)
	}
	if err := s.repo.CreateOutbreak(ctx, &agg); err != nil {
		log.WithError(err).Error("Failed to create outbreak in repository")
		return nil, fmt.Errorf("service: could not report outbreak: %w", err)
	}

	s.metrics.Transitions.WithLabelValues(outbreak.EventReport, "", string(agg.Outbreak.Status)).Inc()
	s.publish(ctx, log, outbreak.Transition{
		Aggregate: agg,
		Event:     outbreak.EventReport,
		To:        agg.Outbreak.Status,
		At:        agg.Outbreak.CreatedAt,
	})
	log.WithField("outbreak_id", agg.Outbreak.ID).Info("Outbreak reported successfully")
	return &agg, nil
}

// GetOutbreak возвращает вспышку вместе со случаями и пробами
func (s *outbreakService) GetOutbreak(ctx context.Context, id uuid.UUID) (*models.OutbreakAggregate, error) {
	agg, err := s.repo.GetAggregate(ctx, id)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":     "outbreak",
			"method":      "GetOutbreak",
			"outbreak_id": id,
		}).WithError(err).Warn("Failed to get outbreak")
		return nil, fmt.Errorf("service: could not get outbreak %s: %w", id, err)
	}
	return agg, nil
}

// ListOutbreaks - очереди вспышек по статусу, региону или исследователю
func (s *outbreakService) ListOutbreaks(ctx context.Context, filter models.OutbreakFilter) ([]*models.Outbreak, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, models.NewValidationError("outbreak_filter", "status", fmt.Sprintf("unknown status %q", filter.Status))
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "outbreak",
		"method":    "ListOutbreaks",
		"status":    filter.Status,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
	outbreaks, err := s.repo.ListOutbreaks(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list outbreaks from repository")
		return nil, fmt.Errorf("service: could not list outbreaks: %w", err)
	}
	log.WithField("count", len(outbreaks)).Info("Outbreaks listed successfully")
	return outbreaks, nil
}

func (s *outbreakService) AssignInvestigator(ctx context.Context, id uuid.UUID, investigator string) (*outbreak.Transition, error) {
	return s.apply(ctx, id, outbreak.Assign{Investigator: investigator})
}

func (s *outbreakService) StartInvestigation(ctx context.Context, id uuid.UUID, date time.Time) (*outbreak.Transition, error) {
	return s.apply(ctx, id, outbreak.StartInvestigation{Date: date})
}

// SubmitInvestigation сохраняет отчет о расследовании, случаи и пробы одной транзакцией
func (s *outbreakService) SubmitInvestigation(ctx context.Context, id uuid.UUID, report outbreak.SubmitInvestigation) (*outbreak.Transition, error) {
	return s.apply(ctx, id, report)
}

// UpdateSampleStatus продвигает пробу по этапам доставки и обработки
func (s *outbreakService) UpdateSampleStatus(ctx context.Context, fieldID string, status models.SampleStatus) (*outbreak.Transition, error) {
	id, err := s.sampleOutbreak(ctx, fieldID, outbreak.EventUpdateSampleStatus)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, id, outbreak.UpdateSampleStatus{FieldID: fieldID, Status: status})
}

// SubmitSampleResult записывает результат лаборатории; положительный результат подтверждает вспышку
func (s *outbreakService) SubmitSampleResult(ctx context.Context, result outbreak.RecordSampleResult) (*outbreak.Transition, error) {
	id, err := s.sampleOutbreak(ctx, result.FieldID, outbreak.EventRecordSampleResult)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, id, result)
}

func (s *outbreakService) ResolveOutbreak(ctx context.Context, id uuid.UUID) (*outbreak.Transition, error) {
	return s.apply(ctx, id, outbreak.Resolve{})
}

func (s *outbreakService) CloseOutbreak(ctx context.Context, id uuid.UUID, reason string) (*outbreak.Transition, error) {
	return s.apply(ctx, id, outbreak.Close{Reason: reason})
}

// OutbreakSummary - показатели заболеваемости по line-list вспышки
func (s *outbreakService) OutbreakSummary(ctx context.Context, id uuid.UUID) (*stats.Summary, error) {
	agg, err := s.GetOutbreak(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := stats.Summarize(agg.Cases)
	return &summary, nil
}

func (s *outbreakService) SampleStatusCounts(ctx context.Context) (map[models.SampleStatus]int, error) {
	counts, err := s.repo.SampleStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not count samples: %w", err)
	}
	return counts, nil
}

func (s *outbreakService) sampleOutbreak(ctx context.Context, fieldID, event string) (uuid.UUID, error) {
	if fieldID == "" {
		err := models.NewValidationError("sample", "field_id", "is required")
		s.metrics.TransitionErrors.WithLabelValues(event, errorKind(err)).Inc()
		return uuid.Nil, err
	}
	id, err := s.repo.FindSampleOutbreak(ctx, fieldID)
	if err != nil {
		s.metrics.TransitionErrors.WithLabelValues(event, errorKind(err)).Inc()
		return uuid.Nil, fmt.Errorf("service: could not find sample %s: %w", fieldID, err)
	}
	return id, nil
}

// apply проводит событие через автомат и сохраняет все изменения агрегата одной транзакцией.
// Операции над одной вспышкой сериализуются; разные вспышки не блокируют друг друга.
func (s *outbreakService) apply(ctx context.Context, id uuid.UUID, ev outbreak.Event) (*outbreak.Transition, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "outbreak",
		"method":      ev.Name(),
		"outbreak_id": id,
	})

	unlock := s.locks.Lock(id)
	defer unlock()

	var result outbreak.Transition
	err := s.repo.WithinTx(ctx, id, func(ctx context.Context, tx OutbreakTx) error {
		t, err := outbreak.Apply(tx.Aggregate(), ev, s.now())
		if err != nil {
			return err
		}
		if len(t.NewCases) > 0 {
			if err := tx.InsertCases(ctx, t.NewCases); err != nil {
				return err
			}
		}
		if len(t.NewSamples) > 0 {
			if err := tx.InsertSamples(ctx, t.NewSamples); err != nil {
				return err
			}
		}
		if t.ChangedSample != nil {
			if err := tx.UpdateSample(ctx, *t.ChangedSample); err != nil {
				return err
			}
		}
		o := t.Aggregate.Outbreak
		if err := tx.UpdateOutbreak(ctx, &o); err != nil {
			return err
		}
		t.Aggregate.Outbreak = o
		result = t
		return nil
	})
	if err != nil {
		s.metrics.TransitionErrors.WithLabelValues(ev.Name(), errorKind(err)).Inc()
		log.WithError(err).Warn("Outbreak transition rejected")
		return nil, fmt.Errorf("service: %s: %w", ev.Name(), err)
	}

	s.metrics.Transitions.WithLabelValues(result.Event, string(result.From), string(result.To)).Inc()
	log = log.WithFields(logrus.Fields{"from": result.From, "to": result.To, "version": result.Aggregate.Outbreak.Version})
	if result.StatusChanged() {
		s.publish(ctx, log, result)
	}
	if result.Promoted {
		log.Info("Outbreak confirmed by positive laboratory result")
	}
	log.Info("Outbreak transition applied")
	return &result, nil
}

// publish ставит событие смены статуса в очередь; ошибка доставки не отменяет перехода
func (s *outbreakService) publish(ctx context.Context, log *logrus.Entry, t outbreak.Transition) {
	o := t.Aggregate.Outbreak
	event := webhook.OutbreakEvent{
		OutbreakID:  o.ID,
		RegionCode:  o.RegionCode,
		Transition:  t.Event,
		From:        t.From,
		To:          t.To,
		Promoted:    t.Promoted,
		DiseaseCode: o.DiseaseCode,
		Version:     o.Version,
		Timestamp:   t.At,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.EventsPublished.WithLabelValues("error").Inc()
		log.WithError(err).Error("Failed to publish outbreak event")
		return
	}
	s.metrics.EventsPublished.WithLabelValues("ok").Inc()
}

// errorKind - метка вида ошибки для метрик
func errorKind(err error) string {
	switch {
	case models.IsValidation(err):
		return "validation"
	case models.IsInvalidTransition(err):
		return "invalid_transition"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrConcurrentUpdate):
		return "concurrent_update"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	}
	return "internal"
}
