package memory

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/paulmach/orb/geojson"
)

func (s *Store) ListRegions(ctx context.Context) ([]models.Region, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Region(nil), s.regions...), nil
}

// SetRegions заменяет справочник регионов
func (s *Store) SetRegions(regions []models.Region) {
	s.mu.Lock()
	s.regions = append([]models.Region(nil), regions...)
	s.mu.Unlock()
}

// ListCaseRecords разворачивает line-list вспышек в записи по регионам.
// Вспышки, закрытые как Rejected, в анализ не входят.
func (s *Store) ListCaseRecords(ctx context.Context, filter models.CaseFilter) ([]models.CaseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.CaseRecord, 0)
	for _, agg := range s.outbreaks {
		o := agg.Outbreak
		if o.Status == models.StatusRejected {
			continue
		}
		disease := ""
		if o.DiseaseCode != nil {
			disease = *o.DiseaseCode
		}
		if filter.DiseaseCode != "" && !strings.EqualFold(filter.DiseaseCode, disease) {
			continue
		}
		for _, c := range agg.Cases {
			if filter.Species != "" && !strings.EqualFold(filter.Species, c.Species) {
				continue
			}
			if filter.From != nil && c.ObservedOn.Before(*filter.From) {
				continue
			}
			if filter.To != nil && c.ObservedOn.After(*filter.To) {
				continue
			}
			records = append(records, models.CaseRecord{
				RegionCode:  o.RegionCode,
				Date:        c.ObservedOn,
				Species:     c.Species,
				DiseaseCode: disease,
				Susceptible: c.Susceptible,
				Cases:       c.Cases,
				Deaths:      c.Deaths,
			})
		}
	}
	return records, nil
}

// LoadRegionsGeoJSON читает FeatureCollection с границами регионов.
// Код берется из свойства code (или woreda_code), название из name (или woreda_name).
func LoadRegionsGeoJSON(r io.Reader) ([]models.Region, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode regions GeoJSON: %w", err)
	}

	regions := make([]models.Region, 0, len(fc.Features))
	for i, f := range fc.Features {
		code := firstProperty(f.Properties, "code", "woreda_code")
		if code == "" {
			return nil, &models.ValidationError{Entity: "region", ID: fmt.Sprint(i), Field: "code", Reason: "is required"}
		}
		regions = append(regions, models.Region{
			Code:       code,
			Name:       firstProperty(f.Properties, "name", "woreda_name"),
			ZoneCode:   firstProperty(f.Properties, "zone_code"),
			ParentCode: firstProperty(f.Properties, "parent_code"),
			Boundary:   f.Geometry,
		})
	}
	return regions, nil
}

func firstProperty(props geojson.Properties, keys ...string) string {
	for _, k := range keys {
		switch v := props[k].(type) {
		case string:
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		case float64:
			// числовые коды из shapefile
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
