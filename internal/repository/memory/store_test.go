package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAggregate(region string, status models.OutbreakStatus, reported time.Time) *models.OutbreakAggregate {
	return &models.OutbreakAggregate{
		Outbreak: models.Outbreak{
			ID:               uuid.New(),
			RegionCode:       region,
			ReportDate:       reported,
			InitialComplaint: "sudden deaths",
			Status:           status,
			Version:          1,
		},
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	// Подготовка
	store := NewStore(nil)
	ctx := context.Background()
	agg := newAggregate("ET01", models.StatusUnassigned, time.Now())
	agg.Samples = []models.Sample{{ID: uuid.New(), OutbreakID: agg.Outbreak.ID, FieldID: "F-1", Status: models.SampleCollected}}

	// Действие
	require.NoError(t, store.CreateOutbreak(ctx, agg))
	got, err := store.GetAggregate(ctx, agg.Outbreak.ID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, agg.Outbreak.ID, got.Outbreak.ID)
	owner, err := store.FindSampleOutbreak(ctx, "F-1")
	require.NoError(t, err)
	assert.Equal(t, agg.Outbreak.ID, owner)

	// копия не разделяет память с хранилищем
	got.Outbreak.RegionCode = "CHANGED"
	again, _ := store.GetAggregate(ctx, agg.Outbreak.ID)
	assert.Equal(t, "ET01", again.Outbreak.RegionCode)
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore(nil)

	_, err := store.GetAggregate(context.Background(), uuid.New())

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStore_WithinTx_RollsBackOnError(t *testing.T) {
	// Подготовка
	store := NewStore(nil)
	ctx := context.Background()
	agg := newAggregate("ET01", models.StatusAssigned, time.Now())
	require.NoError(t, store.CreateOutbreak(ctx, agg))
	boom := errors.New("boom")

	// Действие
	err := store.WithinTx(ctx, agg.Outbreak.ID, func(ctx context.Context, tx service.OutbreakTx) error {
		require.NoError(t, tx.InsertCases(ctx, []models.OutbreakCase{{ID: uuid.New(), Species: "Cattle", Cases: 3}}))
		require.NoError(t, tx.InsertSamples(ctx, []models.Sample{{ID: uuid.New(), FieldID: "F-9"}}))
		return boom
	})

	// Проверки
	assert.ErrorIs(t, err, boom)
	got, _ := store.GetAggregate(ctx, agg.Outbreak.ID)
	assert.Empty(t, got.Cases)
	assert.Empty(t, got.Samples)
	_, err = store.FindSampleOutbreak(ctx, "F-9")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStore_WithinTx_CommitsAndBumpsVersion(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	agg := newAggregate("ET01", models.StatusAssigned, time.Now())
	require.NoError(t, store.CreateOutbreak(ctx, agg))

	err := store.WithinTx(ctx, agg.Outbreak.ID, func(ctx context.Context, tx service.OutbreakTx) error {
		o := tx.Aggregate().Outbreak
		o.Status = models.StatusCompleted
		if err := tx.InsertCases(ctx, []models.OutbreakCase{{ID: uuid.New(), Species: "Goat", Cases: 1}}); err != nil {
			return err
		}
		return tx.UpdateOutbreak(ctx, &o)
	})

	require.NoError(t, err)
	got, _ := store.GetAggregate(ctx, agg.Outbreak.ID)
	assert.Equal(t, models.StatusCompleted, got.Outbreak.Status)
	assert.Equal(t, 2, got.Outbreak.Version)
	assert.Len(t, got.Cases, 1)
}

func TestStore_UpdateOutbreak_StaleVersion(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	agg := newAggregate("ET01", models.StatusAssigned, time.Now())
	require.NoError(t, store.CreateOutbreak(ctx, agg))

	err := store.WithinTx(ctx, agg.Outbreak.ID, func(ctx context.Context, tx service.OutbreakTx) error {
		first := tx.Aggregate().Outbreak
		stale := first
		if err := tx.UpdateOutbreak(ctx, &first); err != nil {
			return err
		}
		return tx.UpdateOutbreak(ctx, &stale)
	})

	assert.ErrorIs(t, err, models.ErrConcurrentUpdate)
	got, _ := store.GetAggregate(ctx, agg.Outbreak.ID)
	assert.Equal(t, 1, got.Outbreak.Version)
}

func TestStore_DuplicateFieldIDAcrossOutbreaks(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	first := newAggregate("ET01", models.StatusCompleted, time.Now())
	first.Samples = []models.Sample{{ID: uuid.New(), FieldID: "F-1"}}
	second := newAggregate("ET02", models.StatusAssigned, time.Now())
	require.NoError(t, store.CreateOutbreak(ctx, first))
	require.NoError(t, store.CreateOutbreak(ctx, second))

	err := store.WithinTx(ctx, second.Outbreak.ID, func(ctx context.Context, tx service.OutbreakTx) error {
		return tx.InsertSamples(ctx, []models.Sample{{ID: uuid.New(), FieldID: "F-1"}})
	})

	assert.True(t, models.IsValidation(err))
}

func TestStore_ListOutbreaks(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		status := models.StatusUnassigned
		if i%2 == 1 {
			status = models.StatusAssigned
		}
		require.NoError(t, store.CreateOutbreak(ctx, newAggregate("ET01", status, base.AddDate(0, 0, i))))
	}

	unassigned, err := store.ListOutbreaks(ctx, models.OutbreakFilter{Status: models.StatusUnassigned, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, unassigned, 3)
	assert.True(t, unassigned[0].ReportDate.After(unassigned[1].ReportDate))

	page2, err := store.ListOutbreaks(ctx, models.OutbreakFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	empty, err := store.ListOutbreaks(ctx, models.OutbreakFilter{Page: 4, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_ListCaseRecords(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()
	fmd := "FMD"
	observed := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	confirmed := newAggregate("ET01", models.StatusConfirmed, observed)
	confirmed.Outbreak.DiseaseCode = &fmd
	confirmed.Cases = []models.OutbreakCase{
		{ID: uuid.New(), Species: "Cattle", Susceptible: 100, Cases: 10, Deaths: 1, ObservedOn: observed},
		{ID: uuid.New(), Species: "Goat", Susceptible: 50, Cases: 5, ObservedOn: observed.AddDate(0, 1, 0)},
	}
	rejected := newAggregate("ET02", models.StatusRejected, observed)
	rejected.Cases = []models.OutbreakCase{{ID: uuid.New(), Species: "Cattle", Susceptible: 10, Cases: 1, ObservedOn: observed}}
	require.NoError(t, store.CreateOutbreak(ctx, confirmed))
	require.NoError(t, store.CreateOutbreak(ctx, rejected))

	to := observed.AddDate(0, 0, 7)
	records, err := store.ListCaseRecords(ctx, models.CaseFilter{DiseaseCode: "fmd", To: &to})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ET01", records[0].RegionCode)
	assert.Equal(t, "FMD", records[0].DiseaseCode)
	assert.Equal(t, 10, records[0].Cases)
}

func TestLoadRegionsGeoJSON(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"woreda_code":"ET0412","woreda_name":"Hamer","zone_code":"SO"},
		 "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
		{"type":"Feature","properties":{"code":101,"name":"Dasenech"},
		 "geometry":{"type":"MultiPolygon","coordinates":[[[[1,0],[2,0],[2,1],[1,1],[1,0]]]]}}
	]}`

	regions, err := LoadRegionsGeoJSON(strings.NewReader(doc))

	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "ET0412", regions[0].Code)
	assert.Equal(t, "Hamer", regions[0].Name)
	assert.Equal(t, "SO", regions[0].ZoneCode)
	assert.IsType(t, orb.Polygon{}, regions[0].Boundary)
	assert.Equal(t, "101", regions[1].Code)
	assert.IsType(t, orb.MultiPolygon{}, regions[1].Boundary)
}

func TestLoadRegionsGeoJSON_MissingCode(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}}]}`

	_, err := LoadRegionsGeoJSON(strings.NewReader(doc))

	assert.True(t, models.IsValidation(err))
}
