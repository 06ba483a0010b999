// Package memory - хранилище в памяти процесса для режима STORAGE_BACKEND=memory и тестов.
// Транзакция работает над копией агрегата и подменяет его целиком при фиксации.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/google/uuid"
)

// Store реализует service.OutbreakRepository, service.TracingRepository и service.RegionRepository
type Store struct {
	mu        sync.RWMutex
	outbreaks map[uuid.UUID]*models.OutbreakAggregate
	links     map[uuid.UUID][]models.ContactTracingLink
	samples   map[string]uuid.UUID
	regions   []models.Region
	// rows - блокировки строк вспышек, аналог SELECT ... FOR UPDATE
	rows map[uuid.UUID]*sync.Mutex
}

var (
	_ service.OutbreakRepository = (*Store)(nil)
	_ service.TracingRepository  = (*Store)(nil)
	_ service.RegionRepository   = (*Store)(nil)
)

func NewStore(regions []models.Region) *Store {
	return &Store{
		outbreaks: make(map[uuid.UUID]*models.OutbreakAggregate),
		links:     make(map[uuid.UUID][]models.ContactTracingLink),
		samples:   make(map[string]uuid.UUID),
		regions:   regions,
		rows:      make(map[uuid.UUID]*sync.Mutex),
	}
}

// CreateOutbreak сохраняет новую вспышку вместе со случаями и пробами
func (s *Store) CreateOutbreak(ctx context.Context, agg *models.OutbreakAggregate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.outbreaks[agg.Outbreak.ID]; ok {
		return &models.ValidationError{Entity: "outbreak", ID: agg.Outbreak.ID.String(), Field: "id", Reason: "already exists"}
	}
	if err := s.checkFieldIDs(agg.Samples); err != nil {
		return err
	}
	stored := agg.Clone()
	s.outbreaks[stored.Outbreak.ID] = &stored
	s.rows[stored.Outbreak.ID] = &sync.Mutex{}
	for _, smp := range stored.Samples {
		s.samples[smp.FieldID] = stored.Outbreak.ID
	}
	return nil
}

func (s *Store) GetAggregate(ctx context.Context, id uuid.UUID) (*models.OutbreakAggregate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	agg, ok := s.outbreaks[id]
	if !ok {
		return nil, fmt.Errorf("outbreak %s: %w", id, models.ErrNotFound)
	}
	out := agg.Clone()
	return &out, nil
}

// ListOutbreaks возвращает вспышки по фильтру, новые сначала
func (s *Store) ListOutbreaks(ctx context.Context, filter models.OutbreakFilter) ([]*models.Outbreak, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	matched := make([]*models.Outbreak, 0)
	for _, agg := range s.outbreaks {
		o := agg.Outbreak
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.RegionCode != "" && o.RegionCode != filter.RegionCode {
			continue
		}
		if filter.Investigator != "" && (o.InvestigatorName == nil || *o.InvestigatorName != filter.Investigator) {
			continue
		}
		c := o.Clone()
		matched = append(matched, &c)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].ReportDate.Equal(matched[j].ReportDate) {
			return matched[i].ReportDate.After(matched[j].ReportDate)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})
	return paginate(matched, filter.Page, filter.PageSize), nil
}

func (s *Store) FindSampleOutbreak(ctx context.Context, fieldID string) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.samples[fieldID]
	if !ok {
		return uuid.Nil, fmt.Errorf("sample %s: %w", fieldID, models.ErrNotFound)
	}
	return id, nil
}

// SampleStatusCounts - сводка проб по этапам для лабораторной доски
func (s *Store) SampleStatusCounts(ctx context.Context) (map[models.SampleStatus]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[models.SampleStatus]int)
	for _, agg := range s.outbreaks {
		for _, smp := range agg.Samples {
			counts[smp.Status]++
		}
	}
	return counts, nil
}

// WithinTx блокирует вспышку, передает fn рабочую копию агрегата и при успехе фиксирует её
func (s *Store) WithinTx(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, tx service.OutbreakTx) error) error {
	s.mu.RLock()
	row, ok := s.rows[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("outbreak %s: %w", id, models.ErrNotFound)
	}
	row.Lock()
	defer row.Unlock()

	s.mu.RLock()
	base := s.outbreaks[id].Clone()
	links := append([]models.ContactTracingLink(nil), s.links[id]...)
	s.mu.RUnlock()

	t := &tx{
		store: s,
		base:  base,
		work:  base.Clone(),
		links: links,
	}
	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.commit(t)
}

func (s *Store) commit(t *tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := t.base.Outbreak.ID
	current, ok := s.outbreaks[id]
	if !ok {
		return fmt.Errorf("outbreak %s: %w", id, models.ErrNotFound)
	}
	if current.Outbreak.Version != t.base.Outbreak.Version {
		return fmt.Errorf("outbreak %s: %w", id, models.ErrConcurrentUpdate)
	}
	if err := s.checkFieldIDs(t.newSamples); err != nil {
		return err
	}

	next := t.work.Clone()
	s.outbreaks[id] = &next
	for _, smp := range t.newSamples {
		s.samples[smp.FieldID] = id
	}
	if len(t.newLinks) > 0 {
		s.links[id] = append(s.links[id], t.newLinks...)
	}
	return nil
}

// checkFieldIDs - полевые идентификаторы проб уникальны во всем хранилище
func (s *Store) checkFieldIDs(samples []models.Sample) error {
	for _, smp := range samples {
		if _, taken := s.samples[smp.FieldID]; taken {
			return &models.ValidationError{Entity: "sample", ID: smp.FieldID, Field: "field_id", Reason: "duplicate field id"}
		}
	}
	return nil
}

func paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return items
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return items[:0]
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
