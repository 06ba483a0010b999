package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/jackc/pgx/v5"
)

// outbreakTx - операции над заблокированной вспышкой внутри транзакции pgx
type outbreakTx struct {
	tx  pgx.Tx
	agg models.OutbreakAggregate
}

func (t *outbreakTx) Aggregate() models.OutbreakAggregate {
	return t.agg.Clone()
}

func (t *outbreakTx) InsertCases(ctx context.Context, cases []models.OutbreakCase) error {
	return insertCases(ctx, t.tx, cases)
}

func (t *outbreakTx) InsertSamples(ctx context.Context, samples []models.Sample) error {
	return insertSamples(ctx, t.tx, samples)
}

func (t *outbreakTx) UpdateSample(ctx context.Context, s models.Sample) error {
	query := `
		UPDATE samples SET
			sample_type = $1,
			laboratory = $2,
			submitted_on = $3,
			status = $4,
			result = $5,
			result_detail = $6,
			result_date = $7
		WHERE id = $8 AND outbreak_id = $9;
	`
	cmdTag, err := t.tx.Exec(ctx, query,
		s.SampleType,
		s.Laboratory,
		s.SubmittedOn,
		s.Status,
		s.Result,
		s.ResultDetail,
		s.ResultDate,
		s.ID,
		t.agg.Outbreak.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sample: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("sample %s: %w", s.FieldID, models.ErrNotFound)
	}
	return nil
}

// UpdateOutbreak записывает вспышку, если её версия не изменилась, и увеличивает версию
func (t *outbreakTx) UpdateOutbreak(ctx context.Context, o *models.Outbreak) error {
	query := `
		UPDATE outbreaks SET
			status = $1,
			investigator_name = $2,
			investigation_date = $3,
			investigation_detail = $4,
			disease_code = $5,
			confirmation_date = $6,
			resolved_at = $7,
			close_reason = $8,
			species_affected = $9,
			updated_at = $10,
			version = version + 1
		WHERE id = $11 AND version = $12
		RETURNING version;
	`
	species := o.SpeciesAffected
	if species == nil {
		species = []string{}
	}
	var version int
	err := t.tx.QueryRow(ctx, query,
		o.Status,
		o.InvestigatorName,
		o.InvestigationDate,
		o.InvestigationDetail,
		o.DiseaseCode,
		o.ConfirmationDate,
		o.ResolvedAt,
		o.CloseReason,
		species,
		o.UpdatedAt,
		o.ID,
		o.Version,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("outbreak %s: %w", o.ID, models.ErrConcurrentUpdate)
		}
		return fmt.Errorf("failed to update outbreak: %w", err)
	}
	o.Version = version
	t.agg.Outbreak = o.Clone()
	return nil
}

func (t *outbreakTx) ListLinks(ctx context.Context) ([]models.ContactTracingLink, error) {
	return listLinks(ctx, t.tx, t.agg.Outbreak.ID)
}

func (t *outbreakTx) InsertLink(ctx context.Context, link *models.ContactTracingLink) error {
	query := `
		INSERT INTO tracing_links (
			id, source_outbreak_id, location_name, location_type, contact_type,
			latitude, longitude, contact_date, direction, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := t.tx.Exec(ctx, query,
		link.ID,
		link.SourceOutbreakID,
		link.LocationName,
		link.LocationType,
		link.ContactType,
		link.Latitude,
		link.Longitude,
		link.ContactDate,
		link.Direction,
		link.Notes,
		link.CreatedAt,
	)
	if err != nil {
		return mapWriteError(err, "tracing_link", link.LocationName, "location_name", "failed to insert tracing link")
	}
	return nil
}
