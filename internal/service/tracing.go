package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/tracing"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TracingService определяет контракт прослеживания контактов подтвержденных вспышек
type TracingService interface {
	AddLink(ctx context.Context, outbreakID uuid.UUID, draft models.ContactTracingLink) (*models.ContactTracingLink, error)
	ListLinks(ctx context.Context, outbreakID uuid.UUID) ([]models.ContactTracingLink, error)
	TracingWindow(ctx context.Context, outbreakID uuid.UUID) (*tracing.Window, error)
	OutbreakNetwork(ctx context.Context, outbreakID uuid.UUID) (*tracing.Network, error)
	RegionalNetwork(ctx context.Context, filter models.TracingFilter) (*tracing.Network, error)
}

type tracingService struct {
	outbreaks OutbreakRepository
	links     TracingRepository
	catalog   models.DiseaseCatalog
	logger    *logrus.Logger
	now       func() time.Time
}

func NewTracingService(outbreaks OutbreakRepository, links TracingRepository, catalog models.DiseaseCatalog, logger *logrus.Logger) TracingService {
	return &tracingService{
		outbreaks: outbreaks,
		links:     links,
		catalog:   catalog,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddLink добавляет связь. Статус вспышки проверяется в той же транзакции, что и запись связи.
func (s *tracingService) AddLink(ctx context.Context, outbreakID uuid.UUID, draft models.ContactTracingLink) (*models.ContactTracingLink, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "tracing",
		"method":      "AddLink",
		"outbreak_id": outbreakID,
		"direction":   draft.Direction,
	})
	log.Info("Adding contact tracing link")

	var created models.ContactTracingLink
	err := s.outbreaks.WithinTx(ctx, outbreakID, func(ctx context.Context, tx OutbreakTx) error {
		link, err := tracing.NewLink(tx.Aggregate().Outbreak, draft, s.now())
		if err != nil {
			return err
		}
		existing, err := tx.ListLinks(ctx)
		if err != nil {
			return err
		}
		if err := tracing.CheckDuplicate(existing, link); err != nil {
			return err
		}
		if err := tx.InsertLink(ctx, &link); err != nil {
			return err
		}
		created = link
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Contact tracing link rejected")
		return nil, fmt.Errorf("service: could not add tracing link: %w", err)
	}

	log.WithField("link_id", created.ID).Info("Contact tracing link added successfully")
	return &created, nil
}

func (s *tracingService) ListLinks(ctx context.Context, outbreakID uuid.UUID) ([]models.ContactTracingLink, error) {
	if _, err := s.outbreaks.GetAggregate(ctx, outbreakID); err != nil {
		return nil, fmt.Errorf("service: could not list tracing links: %w", err)
	}
	links, err := s.links.ListLinks(ctx, outbreakID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list tracing links: %w", err)
	}
	return links, nil
}

// TracingWindow - интервал, в котором ищутся контакты вспышки
func (s *tracingService) TracingWindow(ctx context.Context, outbreakID uuid.UUID) (*tracing.Window, error) {
	agg, err := s.outbreaks.GetAggregate(ctx, outbreakID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get tracing window: %w", err)
	}
	w := tracing.WindowFor(agg.Outbreak, s.catalog)
	return &w, nil
}

// OutbreakNetwork строит сеть контактов одной вспышки
func (s *tracingService) OutbreakNetwork(ctx context.Context, outbreakID uuid.UUID) (*tracing.Network, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "tracing",
		"method":      "OutbreakNetwork",
		"outbreak_id": outbreakID,
	})
	agg, err := s.outbreaks.GetAggregate(ctx, outbreakID)
	if err != nil {
		log.WithError(err).Warn("Failed to get outbreak for network")
		return nil, fmt.Errorf("service: could not build tracing network: %w", err)
	}
	links, err := s.links.ListLinks(ctx, outbreakID)
	if err != nil {
		log.WithError(err).Error("Failed to list tracing links")
		return nil, fmt.Errorf("service: could not build tracing network: %w", err)
	}
	network := tracing.Build(agg.Outbreak, links, tracing.WindowFor(agg.Outbreak, s.catalog))
	log.WithFields(logrus.Fields{"nodes": len(network.Nodes), "edges": len(network.Edges)}).Info("Tracing network built")
	return &network, nil
}

// RegionalNetwork объединяет сети вспышек региона за период
func (s *tracingService) RegionalNetwork(ctx context.Context, filter models.TracingFilter) (*tracing.Network, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "tracing",
		"method":      "RegionalNetwork",
		"region_code": filter.RegionCode,
	})
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, models.NewValidationError("tracing_filter", "from", "must not be after 'to'")
	}
	outbreaks, links, err := s.links.RegionalTrace(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to load regional tracing links")
		return nil, fmt.Errorf("service: could not build regional network: %w", err)
	}
	network := tracing.BuildRegional(outbreaks, links, s.catalog)
	log.WithFields(logrus.Fields{"nodes": len(network.Nodes), "edges": len(network.Edges)}).Info("Regional tracing network built")
	return &network, nil
}
