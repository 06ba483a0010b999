package memory

import (
	"context"
	"testing"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addLink(t *testing.T, store *Store, outbreakID uuid.UUID, location string, date time.Time) {
	t.Helper()
	err := store.WithinTx(context.Background(), outbreakID, func(ctx context.Context, tx service.OutbreakTx) error {
		return tx.InsertLink(ctx, &models.ContactTracingLink{
			ID:               uuid.New(),
			SourceOutbreakID: outbreakID,
			LocationName:     location,
			ContactDate:      date,
			Direction:        models.TraceBack,
		})
	})
	require.NoError(t, err)
}

func TestStore_LinksOrderedByContactDate(t *testing.T) {
	// Подготовка
	store := NewStore(nil)
	ctx := context.Background()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	agg := newAggregate("ET01", models.StatusConfirmed, day)
	require.NoError(t, store.CreateOutbreak(ctx, agg))

	// Действие
	addLink(t, store, agg.Outbreak.ID, "Market B", day.AddDate(0, 0, -1))
	addLink(t, store, agg.Outbreak.ID, "Market A", day.AddDate(0, 0, -5))
	links, err := store.ListLinks(ctx, agg.Outbreak.ID)

	// Проверки
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "Market A", links[0].LocationName)
	assert.Equal(t, "Market B", links[1].LocationName)
}

func TestStore_RegionalTrace(t *testing.T) {
	// Подготовка
	store := NewStore(nil)
	ctx := context.Background()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	confirmed := newAggregate("ET01", models.StatusConfirmed, day)
	resolved := newAggregate("ET01", models.StatusResolved, day.AddDate(0, -2, 0))
	other := newAggregate("ET02", models.StatusConfirmed, day)
	pending := newAggregate("ET01", models.StatusInProgress, day)
	for _, agg := range []*models.OutbreakAggregate{confirmed, resolved, other, pending} {
		require.NoError(t, store.CreateOutbreak(ctx, agg))
	}
	addLink(t, store, confirmed.Outbreak.ID, "Kebele 04 water point", day.AddDate(0, 0, -3))
	addLink(t, store, resolved.Outbreak.ID, "Holding ground", day.AddDate(0, -2, -1))
	addLink(t, store, other.Outbreak.ID, "Border market", day.AddDate(0, 0, -2))
	from := day.AddDate(0, 0, -7)

	// Действие
	all, allLinks, err := store.RegionalTrace(ctx, models.TracingFilter{RegionCode: "ET01"})
	require.NoError(t, err)
	recent, recentLinks, err := store.RegionalTrace(ctx, models.TracingFilter{RegionCode: "ET01", From: &from})
	require.NoError(t, err)

	// Проверки
	assert.Len(t, all, 2)
	assert.Len(t, allLinks, 2)
	assert.Equal(t, "Holding ground", allLinks[0].LocationName)
	require.Len(t, recent, 1)
	assert.Equal(t, confirmed.Outbreak.ID, recent[0].ID)
	require.Len(t, recentLinks, 1)
	assert.Equal(t, "Kebele 04 water point", recentLinks[0].LocationName)
}
