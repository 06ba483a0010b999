package memory

import (
	"context"
	"sort"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/outbreak"
	"github.com/google/uuid"
)

func (s *Store) ListLinks(ctx context.Context, outbreakID uuid.UUID) ([]models.ContactTracingLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]models.ContactTracingLink{}, s.links[outbreakID]...)
	sortLinks(out)
	return out, nil
}

// RegionalTrace - подтвержденные вспышки региона, сообщенные в периоде, и их связи
func (s *Store) RegionalTrace(ctx context.Context, filter models.TracingFilter) ([]models.Outbreak, []models.ContactTracingLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	outbreaks := make([]models.Outbreak, 0)
	links := make([]models.ContactTracingLink, 0)
	for id, agg := range s.outbreaks {
		o := agg.Outbreak
		if !outbreak.CanTrace(o.Status) {
			continue
		}
		if filter.RegionCode != "" && o.RegionCode != filter.RegionCode {
			continue
		}
		if filter.From != nil && o.ReportDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && o.ReportDate.After(*filter.To) {
			continue
		}
		outbreaks = append(outbreaks, o.Clone())
		links = append(links, s.links[id]...)
	}
	sort.Slice(outbreaks, func(i, j int) bool { return outbreaks[i].ID.String() < outbreaks[j].ID.String() })
	sortLinks(links)
	return outbreaks, links, nil
}

func sortLinks(links []models.ContactTracingLink) {
	sort.SliceStable(links, func(i, j int) bool {
		if !links[i].ContactDate.Equal(links[j].ContactDate) {
			return links[i].ContactDate.Before(links[j].ContactDate)
		}
		return links[i].ID.String() < links[j].ID.String()
	})
}
