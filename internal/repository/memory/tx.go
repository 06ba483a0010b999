package memory

import (
	"context"
	"fmt"

	"github.com/bayillag/epigeo_surveillance/internal/models"
)

// tx - рабочая копия агрегата; изменения видны хранилищу только после commit
type tx struct {
	store *Store
	base  models.OutbreakAggregate
	work  models.OutbreakAggregate
	links []models.ContactTracingLink

	newSamples []models.Sample
	newLinks   []models.ContactTracingLink
}

func (t *tx) Aggregate() models.OutbreakAggregate {
	return t.base.Clone()
}

func (t *tx) InsertCases(ctx context.Context, cases []models.OutbreakCase) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.work.Cases = append(t.work.Cases, cases...)
	return nil
}

func (t *tx) InsertSamples(ctx context.Context, samples []models.Sample) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.RLock()
	err := t.store.checkFieldIDs(samples)
	t.store.mu.RUnlock()
	if err != nil {
		return err
	}
	for _, smp := range samples {
		if _, ok := t.work.SampleByFieldID(smp.FieldID); ok {
			return &models.ValidationError{Entity: "sample", ID: smp.FieldID, Field: "field_id", Reason: "duplicate field id"}
		}
		t.work.Samples = append(t.work.Samples, smp.Clone())
		t.newSamples = append(t.newSamples, smp.Clone())
	}
	return nil
}

func (t *tx) UpdateSample(ctx context.Context, sample models.Sample) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i := range t.work.Samples {
		if t.work.Samples[i].ID == sample.ID {
			t.work.Samples[i] = sample.Clone()
			return nil
		}
	}
	return fmt.Errorf("sample %s: %w", sample.FieldID, models.ErrNotFound)
}

func (t *tx) UpdateOutbreak(ctx context.Context, o *models.Outbreak) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.ID != t.work.Outbreak.ID {
		return fmt.Errorf("outbreak %s: %w", o.ID, models.ErrNotFound)
	}
	if o.Version != t.work.Outbreak.Version {
		return fmt.Errorf("outbreak %s: %w", o.ID, models.ErrConcurrentUpdate)
	}
	o.Version++
	t.work.Outbreak = o.Clone()
	return nil
}

func (t *tx) ListLinks(ctx context.Context) ([]models.ContactTracingLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.ContactTracingLink, 0, len(t.links)+len(t.newLinks))
	out = append(out, t.links...)
	return append(out, t.newLinks...), nil
}

func (t *tx) InsertLink(ctx context.Context, link *models.ContactTracingLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.newLinks = append(t.newLinks, *link)
	return nil
}
