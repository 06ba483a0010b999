package repository

import (
	"context"
	"fmt"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb/geojson"
)

type RegionRepository struct {
	db *pgxpool.Pool
}

func NewRegionRepository(db *pgxpool.Pool) *RegionRepository {
	return &RegionRepository{db: db}
}

var _ service.RegionRepository = (*RegionRepository)(nil)

// ListRegions возвращает справочник воред с границами, прочитанными через ST_AsGeoJSON
func (r *RegionRepository) ListRegions(ctx context.Context) ([]models.Region, error) {
	query := `
		SELECT
			woreda_code,
			woreda_name,
			COALESCE(zone_code, ''),
			COALESCE(parent_code, ''),
			ST_AsGeoJSON(geom)
		FROM admin_woredas
		ORDER BY woreda_code;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	defer rows.Close()

	regions := make([]models.Region, 0)
	for rows.Next() {
		var (
			reg  models.Region
			geom *string
		)
		if err := rows.Scan(&reg.Code, &reg.Name, &reg.ZoneCode, &reg.ParentCode, &geom); err != nil {
			return nil, fmt.Errorf("failed to scan region row: %w", err)
		}
		// регион без границы передается дальше: построитель графа исключит его с причиной
		if geom != nil {
			g, err := geojson.UnmarshalGeometry([]byte(*geom))
			if err != nil {
				return nil, fmt.Errorf("failed to decode boundary of region %s: %w", reg.Code, err)
			}
			reg.Boundary = g.Geometry()
		}
		regions = append(regions, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error region iteration: %w", err)
	}
	return regions, nil
}

// UpsertRegions загружает справочник регионов (например, из REGIONS_FILE) в admin_woredas
func (r *RegionRepository) UpsertRegions(ctx context.Context, regions []models.Region) error {
	if len(regions) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, reg := range regions {
		var geom *string
		if reg.Boundary != nil {
			raw, err := geojson.NewGeometry(reg.Boundary).MarshalJSON()
			if err != nil {
				return fmt.Errorf("failed to encode boundary of region %s: %w", reg.Code, err)
			}
			s := string(raw)
			geom = &s
		}
		batch.Queue(`
			INSERT INTO admin_woredas (woreda_code, woreda_name, zone_code, parent_code, geom)
			VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), ST_Multi(ST_SetSRID(ST_GeomFromGeoJSON($5::text), 4326)))
			ON CONFLICT (woreda_code) DO UPDATE SET
				woreda_name = EXCLUDED.woreda_name,
				zone_code = EXCLUDED.zone_code,
				parent_code = EXCLUDED.parent_code,
				geom = EXCLUDED.geom;`,
			reg.Code, reg.Name, reg.ZoneCode, reg.ParentCode, geom,
		)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert regions: %w", err)
	}
	return nil
}

// ListCaseRecords разворачивает случаи вспышек в записи по воредам; вспышки Rejected не учитываются
func (r *RegionRepository) ListCaseRecords(ctx context.Context, filter models.CaseFilter) ([]models.CaseRecord, error) {
	query := `
		SELECT
			o.woreda_code,
			c.observed_on,
			c.species,
			COALESCE(o.disease_code, ''),
			c.susceptible,
			c.cases,
			c.deaths
		FROM outbreak_cases c
		JOIN outbreaks o ON o.id = c.outbreak_id
		WHERE o.status <> 'Rejected'
			AND ($1::text = '' OR lower(o.disease_code) = lower($1))
			AND ($2::text = '' OR lower(c.species) = lower($2))
			AND ($3::timestamptz IS NULL OR c.observed_on >= $3)
			AND ($4::timestamptz IS NULL OR c.observed_on <= $4)
		ORDER BY o.woreda_code, c.observed_on;
	`
	rows, err := r.db.Query(ctx, query, filter.DiseaseCode, filter.Species, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list case records: %w", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CaseRecord, error) {
		var rec models.CaseRecord
		err := row.Scan(
			&rec.RegionCode,
			&rec.Date,
			&rec.Species,
			&rec.DiseaseCode,
			&rec.Susceptible,
			&rec.Cases,
			&rec.Deaths,
		)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan case record: %w", err)
	}
	return records, nil
}
