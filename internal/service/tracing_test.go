package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/outbreak"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/bayillag/epigeo_surveillance/internal/service/mocks"
	"github.com/bayillag/epigeo_surveillance/internal/tracing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func catalog() models.DiseaseCatalog {
	return models.NewDiseaseCatalog(map[string]int{"FMD": 14, "PPR": 21}, 21)
}

func newTracingService(f *outbreakFixture) service.TracingService {
	svc := service.NewTracingService(f.store, f.store, catalog(), testLogger())
	service.SetClock(svc, func() time.Time { return testNow })
	return svc
}

func TestAddLink_RequiresConfirmedOutbreak(t *testing.T) {
	// Подготовка
	f := newOutbreakFixture(t, nil)
	ctx := context.Background()
	id := f.assigned(t)
	tracer := newTracingService(f)
	draft := models.ContactTracingLink{
		LocationName: "Turmi Market",
		LocationType: "Market",
		ContactDate:  testNow.AddDate(0, 0, -5),
		Direction:    models.TraceBack,
	}

	// Действие: вспышка еще не подтверждена
	_, err := tracer.AddLink(ctx, id, draft)

	// Проверки
	var terr *models.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, models.StatusAssigned, terr.From)
	links, err := tracer.ListLinks(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, links)

	// Подготовка: подтверждение положительным результатом
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	_, err = f.svc.SubmitInvestigation(ctx, id, investigation())
	require.NoError(t, err)
	_, err = f.svc.SubmitSampleResult(ctx, outbreak.RecordSampleResult{FieldID: "SO-002", Result: models.ResultPositive})
	require.NoError(t, err)

	// Действие
	link, err := tracer.AddLink(ctx, id, draft)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, id, link.SourceOutbreakID)
	assert.Equal(t, testNow, link.CreatedAt)

	_, err = tracer.AddLink(ctx, id, draft)
	assert.True(t, models.IsValidation(err), "duplicate link must be rejected")
}

func TestOutbreakNetwork(t *testing.T) {
	f := newOutbreakFixture(t, nil)
	ctx := context.Background()
	id := f.assigned(t)
	tracer := newTracingService(f)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	_, err := f.svc.SubmitInvestigation(ctx, id, investigation())
	require.NoError(t, err)
	_, err = f.svc.SubmitSampleResult(ctx, outbreak.RecordSampleResult{FieldID: "SO-001", Result: models.ResultPositive})
	require.NoError(t, err)

	_, err = tracer.AddLink(ctx, id, models.ContactTracingLink{
		LocationName: "Turmi Market", ContactDate: testNow.AddDate(0, 0, -3), Direction: models.TraceBack,
	})
	require.NoError(t, err)
	_, err = tracer.AddLink(ctx, id, models.ContactTracingLink{
		LocationName: "Dimeka Farm", ContactDate: testNow.AddDate(0, 0, -30), Direction: models.TraceForward,
	})
	require.NoError(t, err)

	network, err := tracer.OutbreakNetwork(ctx, id)

	require.NoError(t, err)
	assert.Len(t, network.Nodes, 3)
	require.Len(t, network.Edges, 2)
	// окно FMD - 14 дней до даты расследования
	require.NotNil(t, network.Window)
	assert.Equal(t, 14, network.Window.IncubationDays)
	assert.False(t, network.Edges[0].InWindow)
	assert.Equal(t, tracing.OutbreakNodeID(id), network.Edges[0].From)
	assert.True(t, network.Edges[1].InWindow)
	assert.Equal(t, tracing.OutbreakNodeID(id), network.Edges[1].To)

	window, err := tracer.TracingWindow(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, -14), window.From)
}

func TestRegionalNetwork(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	outbreaksMock := mocks.NewMockOutbreakRepository(ctrl)
	linksMock := mocks.NewMockTracingRepository(ctrl)
	svc := service.NewTracingService(outbreaksMock, linksMock, catalog(), testLogger())
	a := models.Outbreak{ID: uuid.New(), RegionCode: "ET01", Status: models.StatusConfirmed, ReportDate: testNow}
	b := models.Outbreak{ID: uuid.New(), RegionCode: "ET01", Status: models.StatusResolved, ReportDate: testNow}
	links := []models.ContactTracingLink{
		{ID: uuid.New(), SourceOutbreakID: a.ID, LocationName: "Turmi Market", ContactDate: testNow, Direction: models.TraceBack},
		{ID: uuid.New(), SourceOutbreakID: b.ID, LocationName: "turmi  market", ContactDate: testNow, Direction: models.TraceForward},
	}
	filter := models.TracingFilter{RegionCode: "ET01"}

	// Ожидания
	linksMock.EXPECT().RegionalTrace(gomock.Any(), filter).Return([]models.Outbreak{a, b}, links, nil)

	// Действие
	network, err := svc.RegionalNetwork(context.Background(), filter)

	// Проверки
	require.NoError(t, err)
	assert.Len(t, network.Nodes, 3)
	market, ok := network.Node(tracing.LocationNodeID("Turmi Market"))
	require.True(t, ok)
	assert.Equal(t, 1, market.InDegree)
	assert.Equal(t, 1, market.OutDegree)
	assert.InDelta(t, 1.0, market.Centrality, 1e-9)
}

func TestRegionalNetwork_InvalidPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.NewTracingService(mocks.NewMockOutbreakRepository(ctrl), mocks.NewMockTracingRepository(ctrl), catalog(), testLogger())
	from := testNow
	to := testNow.AddDate(0, 0, -1)

	_, err := svc.RegionalNetwork(context.Background(), models.TracingFilter{From: &from, To: &to})

	assert.True(t, models.IsValidation(err))
}
