package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const linkColumns = `
	id,
	source_outbreak_id,
	location_name,
	COALESCE(location_type, ''),
	COALESCE(contact_type, ''),
	latitude,
	longitude,
	contact_date,
	direction,
	notes,
	created_at`

type TracingRepository struct {
	db *pgxpool.Pool
}

func NewTracingRepository(db *pgxpool.Pool) *TracingRepository {
	return &TracingRepository{db: db}
}

var _ service.TracingRepository = (*TracingRepository)(nil)

func (r *TracingRepository) ListLinks(ctx context.Context, outbreakID uuid.UUID) ([]models.ContactTracingLink, error) {
	return listLinks(ctx, r.db, outbreakID)
}

// RegionalTrace возвращает вспышки с подтвержденным диагнозом, сообщенные в периоде, и их связи
func (r *TracingRepository) RegionalTrace(ctx context.Context, filter models.TracingFilter) ([]models.Outbreak, []models.ContactTracingLink, error) {
	args := []any{[]string{string(models.StatusConfirmed), string(models.StatusResolved)}}
	where := []string{"status = ANY($1)"}
	if filter.RegionCode != "" {
		args = append(args, filter.RegionCode)
		where = append(where, fmt.Sprintf("woreda_code = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("report_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("report_date <= $%d", len(args)))
	}
	query := "SELECT " + outbreakColumns + " FROM outbreaks WHERE " + strings.Join(where, " AND ") + " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list traced outbreaks: %w", err)
	}
	outbreaks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Outbreak, error) {
		o, err := scanOutbreak(row)
		if err != nil {
			return models.Outbreak{}, err
		}
		return *o, nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan traced outbreak: %w", err)
	}
	if len(outbreaks) == 0 {
		return outbreaks, []models.ContactTracingLink{}, nil
	}

	ids := make([]uuid.UUID, len(outbreaks))
	for i, o := range outbreaks {
		ids[i] = o.ID
	}
	rows, err = r.db.Query(ctx,
		"SELECT "+linkColumns+" FROM tracing_links WHERE source_outbreak_id = ANY($1) ORDER BY contact_date, id", ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list regional links: %w", err)
	}
	links, err := pgx.CollectRows(rows, scanLink)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan tracing link: %w", err)
	}
	return outbreaks, links, nil
}

func listLinks(ctx context.Context, q querier, outbreakID uuid.UUID) ([]models.ContactTracingLink, error) {
	rows, err := q.Query(ctx,
		"SELECT "+linkColumns+" FROM tracing_links WHERE source_outbreak_id = $1 ORDER BY contact_date, id", outbreakID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracing links: %w", err)
	}
	links, err := pgx.CollectRows(rows, scanLink)
	if err != nil {
		return nil, fmt.Errorf("failed to scan tracing link: %w", err)
	}
	return links, nil
}

func scanLink(row pgx.CollectableRow) (models.ContactTracingLink, error) {
	var l models.ContactTracingLink
	err := row.Scan(
		&l.ID,
		&l.SourceOutbreakID,
		&l.LocationName,
		&l.LocationType,
		&l.ContactType,
		&l.Latitude,
		&l.Longitude,
		&l.ContactDate,
		&l.Direction,
		&l.Notes,
		&l.CreatedAt,
	)
	return l, err
}
