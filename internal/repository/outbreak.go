package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier - общее подмножество pgxpool.Pool и pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const outbreakColumns = `
	id,
	woreda_code,
	COALESCE(reporter_name, ''),
	report_date,
	latitude,
	longitude,
	species_affected,
	initial_complaint,
	status,
	investigator_name,
	investigation_date,
	investigation_detail,
	disease_code,
	confirmation_date,
	resolved_at,
	close_reason,
	version,
	created_at,
	updated_at`

type OutbreakRepository struct {
	db *pgxpool.Pool
}

func NewOutbreakRepository(db *pgxpool.Pool) *OutbreakRepository {
	return &OutbreakRepository{db: db}
}

var _ service.OutbreakRepository = (*OutbreakRepository)(nil)

// CreateOutbreak создает запись о вспышке вместе со случаями и пробами в одной транзакции
func (r *OutbreakRepository) CreateOutbreak(ctx context.Context, agg *models.OutbreakAggregate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o := &agg.Outbreak
	query := `
		INSERT INTO outbreaks (
			id, woreda_code, reporter_name, report_date, latitude, longitude,
			species_affected, initial_complaint, status, version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	species := o.SpeciesAffected
	if species == nil {
		species = []string{}
	}
	_, err = tx.Exec(ctx, query,
		o.ID,
		o.RegionCode,
		o.ReporterName,
		o.ReportDate,
		o.Latitude,
		o.Longitude,
		species,
		o.InitialComplaint,
		o.Status,
		o.Version,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "outbreak", o.ID.String(), "id", "failed to create outbreak")
	}
	if err := insertCases(ctx, tx, agg.Cases); err != nil {
		return err
	}
	if err := insertSamples(ctx, tx, agg.Samples); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit outbreak: %w", err)
	}
	return nil
}

// GetAggregate возвращает вспышку с её случаями и пробами
func (r *OutbreakRepository) GetAggregate(ctx context.Context, id uuid.UUID) (*models.OutbreakAggregate, error) {
	return loadAggregate(ctx, r.db, id, false)
}

// ListOutbreaks возвращает вспышки по фильтру с пагинацией, новые сначала
func (r *OutbreakRepository) ListOutbreaks(ctx context.Context, filter models.OutbreakFilter) ([]*models.Outbreak, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.RegionCode != "" {
		args = append(args, filter.RegionCode)
		where = append(where, fmt.Sprintf("woreda_code = $%d", len(args)))
	}
	if filter.Investigator != "" {
		args = append(args, filter.Investigator)
		where = append(where, fmt.Sprintf("investigator_name = $%d", len(args)))
	}

	query := "SELECT " + outbreakColumns + " FROM outbreaks"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY report_date DESC, id"
	if filter.Page > 0 && filter.PageSize > 0 {
		args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbreaks: %w", err)
	}
	defer rows.Close()

	outbreaks := make([]*models.Outbreak, 0)
	for rows.Next() {
		o, err := scanOutbreak(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbreak row: %w", err)
		}
		outbreaks = append(outbreaks, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return outbreaks, nil
}

func (r *OutbreakRepository) FindSampleOutbreak(ctx context.Context, fieldID string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT outbreak_id FROM samples WHERE field_id = $1;`, fieldID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("sample %s: %w", fieldID, models.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("failed to find sample: %w", err)
	}
	return id, nil
}

// SampleStatusCounts - число проб на каждом этапе
func (r *OutbreakRepository) SampleStatusCounts(ctx context.Context) (map[models.SampleStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM samples GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count samples: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.SampleStatus]int)
	for rows.Next() {
		var (
			status models.SampleStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan sample count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error sample count iteration: %w", err)
	}
	return counts, nil
}

// WithinTx блокирует строку вспышки (SELECT ... FOR UPDATE) на время fn.
// Транзакция фиксируется, только если fn завершилась без ошибки.
func (r *OutbreakRepository) WithinTx(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, tx service.OutbreakTx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	agg, err := loadAggregate(ctx, tx, id, true)
	if err != nil {
		return err
	}
	if err := fn(ctx, &outbreakTx{tx: tx, agg: *agg}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit outbreak transaction: %w", err)
	}
	return nil
}

func loadAggregate(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*models.OutbreakAggregate, error) {
	query := "SELECT " + outbreakColumns + " FROM outbreaks WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	o, err := scanOutbreak(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("outbreak %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get outbreak by id: %w", err)
	}

	agg := &models.OutbreakAggregate{Outbreak: *o}
	if agg.Cases, err = listCases(ctx, q, id); err != nil {
		return nil, err
	}
	if agg.Samples, err = listSamples(ctx, q, id); err != nil {
		return nil, err
	}
	return agg, nil
}

func scanOutbreak(row pgx.Row) (*models.Outbreak, error) {
	o := &models.Outbreak{}
	err := row.Scan(
		&o.ID,
		&o.RegionCode,
		&o.ReporterName,
		&o.ReportDate,
		&o.Latitude,
		&o.Longitude,
		&o.SpeciesAffected,
		&o.InitialComplaint,
		&o.Status,
		&o.InvestigatorName,
		&o.InvestigationDate,
		&o.InvestigationDetail,
		&o.DiseaseCode,
		&o.ConfirmationDate,
		&o.ResolvedAt,
		&o.CloseReason,
		&o.Version,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func listCases(ctx context.Context, q querier, outbreakID uuid.UUID) ([]models.OutbreakCase, error) {
	query := `
		SELECT id, outbreak_id, species, susceptible, cases, deaths, observed_on
		FROM outbreak_cases
		WHERE outbreak_id = $1
		ORDER BY observed_on, id;
	`
	rows, err := q.Query(ctx, query, outbreakID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outbreak cases: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OutbreakCase, error) {
		var c models.OutbreakCase
		err := row.Scan(&c.ID, &c.OutbreakID, &c.Species, &c.Susceptible, &c.Cases, &c.Deaths, &c.ObservedOn)
		return c, err
	})
}

func listSamples(ctx context.Context, q querier, outbreakID uuid.UUID) ([]models.Sample, error) {
	query := `
		SELECT
			id,
			outbreak_id,
			field_id,
			COALESCE(sample_type, ''),
			COALESCE(laboratory, ''),
			submitted_on,
			status,
			result,
			result_detail,
			result_date
		FROM samples
		WHERE outbreak_id = $1
		ORDER BY field_id;
	`
	rows, err := q.Query(ctx, query, outbreakID)
	if err != nil {
		return nil, fmt.Errorf("failed to list samples: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Sample, error) {
		var s models.Sample
		err := row.Scan(
			&s.ID,
			&s.OutbreakID,
			&s.FieldID,
			&s.SampleType,
			&s.Laboratory,
			&s.SubmittedOn,
			&s.Status,
			&s.Result,
			&s.ResultDetail,
			&s.ResultDate,
		)
		return s, err
	})
}

func insertCases(ctx context.Context, q pgx.Tx, cases []models.OutbreakCase) error {
	if len(cases) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, c := range cases {
		batch.Queue(`
			INSERT INTO outbreak_cases (id, outbreak_id, species, susceptible, cases, deaths, observed_on)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			c.ID, c.OutbreakID, c.Species, c.Susceptible, c.Cases, c.Deaths, c.ObservedOn,
		)
	}
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "outbreak_case", "", "id", "failed to insert outbreak cases")
	}
	return nil
}

func insertSamples(ctx context.Context, q pgx.Tx, samples []models.Sample) error {
	for _, s := range samples {
		_, err := q.Exec(ctx, `
			INSERT INTO samples (id, outbreak_id, field_id, sample_type, laboratory, submitted_on, status, result, result_detail, result_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
			s.ID, s.OutbreakID, s.FieldID, s.SampleType, s.Laboratory, s.SubmittedOn, s.Status, s.Result, s.ResultDetail, s.ResultDate,
		)
		if err != nil {
			return mapWriteError(err, "sample", s.FieldID, "field_id", "failed to insert sample")
		}
	}
	return nil
}

// mapWriteError превращает нарушение уникальности в ValidationError
func mapWriteError(err error, entity, id, field, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return &models.ValidationError{Entity: entity, ID: id, Field: field, Reason: "already exists"}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
