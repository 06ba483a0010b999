package service

import (
	"context"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/spatial"
	"github.com/google/uuid"
)

// OutbreakRepository определяет контракт хранилища вспышек
type OutbreakRepository interface {
	CreateOutbreak(ctx context.Context, agg *models.OutbreakAggregate) error
	GetAggregate(ctx context.Context, id uuid.UUID) (*models.OutbreakAggregate, error)
	ListOutbreaks(ctx context.Context, filter models.OutbreakFilter) ([]*models.Outbreak, error)
	// FindSampleOutbreak возвращает id вспышки, которой принадлежит проба
	FindSampleOutbreak(ctx context.Context, fieldID string) (uuid.UUID, error)
	SampleStatusCounts(ctx context.Context) (map[models.SampleStatus]int, error)
	// WithinTx выполняет fn в транзакции над заблокированным агрегатом.
	// Если fn вернула ошибку, ни одна запись не сохраняется.
	WithinTx(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, tx OutbreakTx) error) error
}

// OutbreakTx - операции над одной вспышкой внутри транзакции
type OutbreakTx interface {
	// Aggregate - состояние вспышки на момент блокировки
	Aggregate() models.OutbreakAggregate
	InsertCases(ctx context.Context, cases []models.OutbreakCase) error
	InsertSamples(ctx context.Context, samples []models.Sample) error
	UpdateSample(ctx context.Context, sample models.Sample) error
	// UpdateOutbreak сохраняет вспышку, если её версия не изменилась, и увеличивает версию.
	// При расхождении версии возвращает models.ErrConcurrentUpdate.
	UpdateOutbreak(ctx context.Context, o *models.Outbreak) error
	ListLinks(ctx context.Context) ([]models.ContactTracingLink, error)
	InsertLink(ctx context.Context, link *models.ContactTracingLink) error
}

// TracingRepository - чтение связей прослеживания
type TracingRepository interface {
	ListLinks(ctx context.Context, outbreakID uuid.UUID) ([]models.ContactTracingLink, error)
	// RegionalTrace возвращает вспышки региона за период и их связи
	RegionalTrace(ctx context.Context, filter models.TracingFilter) ([]models.Outbreak, []models.ContactTracingLink, error)
}

// RegionRepository - справочник регионов и записи случаев для анализа
type RegionRepository interface {
	ListRegions(ctx context.Context) ([]models.Region, error)
	ListCaseRecords(ctx context.Context, filter models.CaseFilter) ([]models.CaseRecord, error)
}

// GraphStore - внешний кэш графов смежности. Промах возвращает (nil, nil).
type GraphStore interface {
	LoadGraph(ctx context.Context, fingerprint string) (*spatial.GraphSnapshot, error)
	SaveGraph(ctx context.Context, snapshot spatial.GraphSnapshot) error
}
