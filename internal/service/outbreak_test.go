package service_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/metrics"
	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/outbreak"
	"github.com/bayillag/epigeo_surveillance/internal/repository/memory"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/bayillag/epigeo_surveillance/internal/service/mocks"
	"github.com/bayillag/epigeo_surveillance/internal/webhook"
	webhook_mocks "github.com/bayillag/epigeo_surveillance/internal/webhook/mocks"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

type outbreakFixture struct {
	svc       service.OutbreakService
	store     *memory.Store
	publisher *webhook_mocks.MockWebhookPublisher
	metrics   *metrics.Metrics
}

// newOutbreakFixture - сервис поверх хранилища в памяти с мокированным издателем событий
func newOutbreakFixture(t *testing.T, wrap func(service.OutbreakRepository) service.OutbreakRepository) *outbreakFixture {
	ctrl := gomock.NewController(t)
	store := memory.NewStore(nil)
	var repo service.OutbreakRepository = store
	if wrap != nil {
		repo = wrap(store)
	}
	publisher := webhook_mocks.NewMockWebhookPublisher(ctrl)
	m := metrics.NewMetrics(prometheus.NewRegistry())

	svc := service.NewOutbreakService(repo, testLogger(), publisher, m)
	service.SetClock(svc, func() time.Time { return testNow })
	return &outbreakFixture{svc: svc, store: store, publisher: publisher, metrics: m}
}

func reportDraft() models.Outbreak {
	return models.Outbreak{
		RegionCode:       "ET0412",
		ReporterName:     "Kebede",
		SpeciesAffected:  []string{"Cattle"},
		InitialComplaint: "vesicular lesions and lameness",
	}
}

func investigation() outbreak.SubmitInvestigation {
	fmd := "FMD"
	return outbreak.SubmitInvestigation{
		Date:        testNow,
		DiseaseCode: &fmd,
		Detail:      map[string]any{"herd_size": 120},
		Cases: []models.OutbreakCase{
			{Species: "Cattle", Susceptible: 120, Cases: 18, Deaths: 2, ObservedOn: testNow},
		},
		Samples: []models.Sample{
			{FieldID: "SO-001", SampleType: "Epithelium", Laboratory: "NAHDIC"},
			{FieldID: "SO-002", SampleType: "Serum", Laboratory: "NAHDIC"},
		},
	}
}

// assigned регистрирует вспышку и назначает исследователя; события публикуются успешно
func (f *outbreakFixture) assigned(t *testing.T) uuid.UUID {
	t.Helper()
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	agg, err := f.svc.ReportOutbreak(context.Background(), reportDraft())
	require.NoError(t, err)
	_, err = f.svc.AssignInvestigator(context.Background(), agg.Outbreak.ID, "Dr. Alemu")
	require.NoError(t, err)
	return agg.Outbreak.ID
}

func TestOutbreakLifecycle_PositiveResultConfirms(t *testing.T) {
	// Подготовка
	f := newOutbreakFixture(t, nil)
	ctx := context.Background()
	id := f.assigned(t)

	var events []webhook.OutbreakEvent
	// Ожидания
	f.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e webhook.OutbreakEvent) error {
			events = append(events, e)
			return nil
		}).
		Times(2)

	// Действие
	submitted, err := f.svc.SubmitInvestigation(ctx, id, investigation())
	require.NoError(t, err)
	confirmed, err := f.svc.SubmitSampleResult(ctx, outbreak.RecordSampleResult{
		FieldID: "SO-001",
		Result:  models.ResultPositive,
		Detail:  "FMDV serotype O",
	})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, submitted.To)
	assert.Equal(t, models.StatusCompleted, confirmed.From)
	assert.Equal(t, models.StatusConfirmed, confirmed.To)
	assert.True(t, confirmed.Promoted)
	assert.Equal(t, 4, confirmed.Aggregate.Outbreak.Version)

	stored, err := f.svc.GetOutbreak(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Outbreak.Status)
	require.Len(t, stored.Cases, 1)
	require.Len(t, stored.Samples, 2)
	assert.Equal(t, models.SampleResultsAvailable, stored.Samples[0].Status)

	require.Len(t, events, 2)
	assert.True(t, events[1].Promoted)
	assert.Equal(t, "RecordSampleResult", events[1].Transition)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Transitions.WithLabelValues("RecordSampleResult", "Completed", "Confirmed")))
	assert.Equal(t, 4.0, testutil.ToFloat64(f.metrics.EventsPublished.WithLabelValues("ok")))
}

func TestOutbreakSummary(t *testing.T) {
	f := newOutbreakFixture(t, nil)
	ctx := context.Background()
	id := f.assigned(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	_, err := f.svc.SubmitInvestigation(ctx, id, investigation())
	require.NoError(t, err)

	summary, err := f.svc.OutbreakSummary(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, 18, summary.Cases)
	assert.InDelta(t, 0.15, summary.AttackRate, 1e-9)
	assert.InDelta(t, 2.0/18.0, summary.CaseFatalityRate, 1e-9)
}

// failingTx отказывает на последней записи транзакции
type failingTx struct {
	service.OutbreakTx
}

func (failingTx) UpdateOutbreak(context.Context, *models.Outbreak) error {
	return errors.New("connection reset")
}

type failingRepo struct {
	service.OutbreakRepository
	fail bool
}

func (r *failingRepo) WithinTx(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, tx service.OutbreakTx) error) error {
	return r.OutbreakRepository.WithinTx(ctx, id, func(ctx context.Context, tx service.OutbreakTx) error {
		if r.fail {
			return fn(ctx, failingTx{tx})
		}
		return fn(ctx, tx)
	})
}

func TestSubmitInvestigation_AtomicOnFailure(t *testing.T) {
	// Подготовка
	repo := &failingRepo{}
	f := newOutbreakFixture(t, func(store service.OutbreakRepository) service.OutbreakRepository {
		repo.OutbreakRepository = store
		return repo
	})
	ctx := context.Background()
	id := f.assigned(t)
	repo.fail = true

	// Действие
	_, err := f.svc.SubmitInvestigation(ctx, id, investigation())

	// Проверки
	require.Error(t, err)
	stored, err := f.svc.GetOutbreak(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, stored.Outbreak.Status)
	assert.Empty(t, stored.Cases)
	assert.Empty(t, stored.Samples)
	_, err = f.store.FindSampleOutbreak(ctx, "SO-001")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TransitionErrors.WithLabelValues("SubmitInvestigation", "internal")))
}

func TestSubmitInvestigation_ConcurrentSubmissions(t *testing.T) {
	// Подготовка
	f := newOutbreakFixture(t, nil)
	ctx := context.Background()
	id := f.assigned(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		invalid   int
	)

	// Действие
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			report := investigation()
			report.Samples = nil
			_, err := f.svc.SubmitInvestigation(ctx, id, report)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case models.IsInvalidTransition(err):
				invalid++
			}
		}()
	}
	wg.Wait()

	// Проверки
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, invalid)
	stored, err := f.svc.GetOutbreak(ctx, id)
	require.NoError(t, err)
	assert.Len(t, stored.Cases, 1)
	assert.Equal(t, 3, stored.Outbreak.Version)
}

func TestResolve_FromUnassigned_Rejected(t *testing.T) {
	// Подготовка
	f := newOutbreakFixture(t, nil)
	ctx := context.Background()
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	agg, err := f.svc.ReportOutbreak(ctx, reportDraft())
	require.NoError(t, err)

	// Действие
	_, err = f.svc.ResolveOutbreak(ctx, agg.Outbreak.ID)

	// Проверки
	var terr *models.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "Resolve", terr.Transition)
	assert.Equal(t, models.StatusUnassigned, terr.From)
	stored, _ := f.svc.GetOutbreak(ctx, agg.Outbreak.ID)
	assert.Equal(t, agg.Outbreak.Version, stored.Outbreak.Version)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TransitionErrors.WithLabelValues("Resolve", "invalid_transition")))
}

func TestAssign_PublishFailureKeepsTransition(t *testing.T) {
	f := newOutbreakFixture(t, nil)
	ctx := context.Background()
	gomock.InOrder(
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil),
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down")),
	)
	agg, err := f.svc.ReportOutbreak(ctx, reportDraft())
	require.NoError(t, err)

	tr, err := f.svc.AssignInvestigator(ctx, agg.Outbreak.ID, "Dr. Alemu")

	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, tr.To)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.EventsPublished.WithLabelValues("error")))
}

func TestSampleWorkflow_AllRejectedClosesOutbreak(t *testing.T) {
	f := newOutbreakFixture(t, nil)
	ctx := context.Background()
	id := f.assigned(t)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	_, err := f.svc.SubmitInvestigation(ctx, id, investigation())
	require.NoError(t, err)

	tr, err := f.svc.UpdateSampleStatus(ctx, "SO-001", models.SampleInTransit)
	require.NoError(t, err)
	assert.False(t, tr.StatusChanged())
	_, err = f.svc.UpdateSampleStatus(ctx, "SO-001", models.SampleRejected)
	require.NoError(t, err)
	tr, err = f.svc.SubmitSampleResult(ctx, outbreak.RecordSampleResult{FieldID: "SO-002", Result: models.ResultRejected})
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, tr.To)
	assert.Equal(t, outbreak.ReasonAllSamplesRejected, tr.Aggregate.Outbreak.CloseReason)
	counts, err := f.svc.SampleStatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[models.SampleRejected])
}

func TestUpdateSampleStatus_UnknownSample(t *testing.T) {
	f := newOutbreakFixture(t, nil)

	_, err := f.svc.UpdateSampleStatus(context.Background(), "NOPE", models.SampleReceived)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TransitionErrors.WithLabelValues("UpdateSampleStatus", "not_found")))
}

func TestReportOutbreak_ValidationSkipsRepository(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockOutbreakRepository(ctrl)
	publisherMock := webhook_mocks.NewMockWebhookPublisher(ctrl)
	svc := service.NewOutbreakService(repoMock, testLogger(), publisherMock, metrics.NewMetrics(prometheus.NewRegistry()))
	draft := reportDraft()
	draft.InitialComplaint = "  "

	// Ожидания
	repoMock.EXPECT().CreateOutbreak(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	agg, err := svc.ReportOutbreak(context.Background(), draft)

	// Проверки
	assert.Nil(t, agg)
	assert.True(t, models.IsValidation(err))
}

func TestReportOutbreak_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockOutbreakRepository(ctrl)
	publisherMock := webhook_mocks.NewMockWebhookPublisher(ctrl)
	svc := service.NewOutbreakService(repoMock, testLogger(), publisherMock, metrics.NewMetrics(prometheus.NewRegistry()))
	dbErr := errors.New("db is down")

	repoMock.EXPECT().CreateOutbreak(gomock.Any(), gomock.Any()).Return(dbErr).Times(1)

	_, err := svc.ReportOutbreak(context.Background(), reportDraft())

	assert.ErrorIs(t, err, dbErr)
}

func TestListOutbreaks_DefaultsAndValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockOutbreakRepository(ctrl)
	svc := service.NewOutbreakService(repoMock, testLogger(), webhook_mocks.NewMockWebhookPublisher(ctrl), metrics.NewMetrics(prometheus.NewRegistry()))
	expected := []*models.Outbreak{{ID: uuid.New(), Status: models.StatusUnassigned}}

	repoMock.EXPECT().
		ListOutbreaks(gomock.Any(), models.OutbreakFilter{Status: models.StatusUnassigned, Page: 1, PageSize: 20}).
		Return(expected, nil)

	got, err := svc.ListOutbreaks(context.Background(), models.OutbreakFilter{Status: models.StatusUnassigned, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	_, err = svc.ListOutbreaks(context.Background(), models.OutbreakFilter{Status: "Closed"})
	assert.True(t, models.IsValidation(err))
}
