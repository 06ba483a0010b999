package tracing

import (
	"testing"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now     = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	catalog = models.NewDiseaseCatalog(map[string]int{"FMD": 14, "PPR": 21, "Anthrax": 7}, 21)
)

func confirmedOutbreak(disease string) models.Outbreak {
	investigated := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	return models.Outbreak{
		ID:                uuid.New(),
		RegionCode:        "ET0412",
		ReportDate:        investigated.Add(-48 * time.Hour),
		Status:            models.StatusConfirmed,
		InvestigationDate: &investigated,
		DiseaseCode:       &disease,
	}
}

func link(name string, date time.Time, dir models.TraceDirection) models.ContactTracingLink {
	return models.ContactTracingLink{
		LocationName: name,
		LocationType: "Market",
		ContactType:  "Animal Movement",
		ContactDate:  date,
		Direction:    dir,
	}
}

func TestWindowFor(t *testing.T) {
	o := confirmedOutbreak("FMD")

	w := WindowFor(o, catalog)

	assert.Equal(t, *o.InvestigationDate, w.To)
	assert.Equal(t, o.InvestigationDate.AddDate(0, 0, -14), w.From)
	assert.Equal(t, 14, w.IncubationDays)

	// неизвестная болезнь и отсутствие даты расследования
	o.DiseaseCode = nil
	o.InvestigationDate = nil
	w = WindowFor(o, catalog)
	assert.Equal(t, o.ReportDate, w.To)
	assert.Equal(t, 21, w.IncubationDays)
}

func TestNewLink_RequiresConfirmedOutbreak(t *testing.T) {
	o := confirmedOutbreak("PPR")
	o.Status = models.StatusAssigned
	draft := link("Gode Market", now, models.TraceBack)

	_, err := NewLink(o, draft, now)

	var terr *models.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, EventAddLink, terr.Transition)
	assert.Equal(t, models.StatusAssigned, terr.From)

	o.Status = models.StatusConfirmed
	l, err := NewLink(o, draft, now)
	require.NoError(t, err)
	assert.Equal(t, o.ID, l.SourceOutbreakID)
	assert.NotEqual(t, uuid.Nil, l.ID)
	assert.Equal(t, now, l.CreatedAt)
}

func TestNewLink_Validation(t *testing.T) {
	o := confirmedOutbreak("PPR")

	cases := map[string]models.ContactTracingLink{
		"no location":  link(" ", now, models.TraceBack),
		"no date":      link("Gode Market", time.Time{}, models.TraceBack),
		"bad dir":      link("Gode Market", now, "Sideways"),
		"bad location": {LocationName: "X", LocationType: "Airport", ContactDate: now, Direction: models.TraceBack},
		"bad contact":  {LocationName: "X", ContactType: "Telepathy", ContactDate: now, Direction: models.TraceBack},
	}
	for name, draft := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewLink(o, draft, now)
			assert.True(t, models.IsValidation(err))
		})
	}
}

func TestCheckDuplicate(t *testing.T) {
	o := confirmedOutbreak("FMD")
	first, err := NewLink(o, link("Gode Market", now, models.TraceBack), now)
	require.NoError(t, err)

	dup, err := NewLink(o, link("  gode   market ", now.Add(3*time.Hour), models.TraceBack), now)
	require.NoError(t, err)
	assert.True(t, models.IsValidation(CheckDuplicate([]models.ContactTracingLink{first}, dup)))

	forward, err := NewLink(o, link("Gode Market", now, models.TraceForward), now)
	require.NoError(t, err)
	assert.NoError(t, CheckDuplicate([]models.ContactTracingLink{first}, forward))
}

func TestBuild_DirectedEdgesAndWindow(t *testing.T) {
	// Подготовка
	o := confirmedOutbreak("FMD")
	inside := o.InvestigationDate.AddDate(0, 0, -5)
	outside := o.InvestigationDate.AddDate(0, 0, -30)
	links := []models.ContactTracingLink{
		link("Gode Market", inside, models.TraceBack),
		link("Ali's Farm", inside, models.TraceForward),
		link("Water Point 3", outside, models.TraceBack),
	}
	for i := range links {
		links[i].ID = uuid.New()
		links[i].SourceOutbreakID = o.ID
	}
	links = append(links, models.ContactTracingLink{SourceOutbreakID: uuid.New(), LocationName: "Elsewhere"})

	// Действие
	n := Build(o, links, WindowFor(o, catalog))

	// Проверки
	require.Len(t, n.Nodes, 4)
	require.Len(t, n.Edges, 3)
	root := OutbreakNodeID(o.ID)

	byTarget := map[string]Edge{}
	for _, e := range n.Edges {
		if e.To == root {
			byTarget[e.From] = e
		} else {
			byTarget[e.To] = e
		}
	}
	market := byTarget[LocationNodeID("Gode Market")]
	assert.Equal(t, root, market.To)
	assert.Equal(t, models.TraceBack, market.Direction)
	assert.True(t, market.InWindow)

	farm := byTarget[LocationNodeID("Ali's Farm")]
	assert.Equal(t, root, farm.From)
	assert.True(t, farm.InWindow)

	assert.False(t, byTarget[LocationNodeID("Water Point 3")].InWindow)

	rootNode, ok := n.Node(root)
	require.True(t, ok)
	assert.Equal(t, 2, rootNode.InDegree)
	assert.Equal(t, 1, rootNode.OutDegree)
	assert.InDelta(t, 1.0, rootNode.Centrality, 1e-12)

	marketNode, ok := n.Node(LocationNodeID("Gode Market"))
	require.True(t, ok)
	assert.InDelta(t, 1.0/3.0, marketNode.Centrality, 1e-12)
}

func TestBuildRegional_SharedLocation(t *testing.T) {
	a := confirmedOutbreak("FMD")
	b := confirmedOutbreak("FMD")
	day := a.InvestigationDate.AddDate(0, 0, -2)
	links := []models.ContactTracingLink{
		{ID: uuid.New(), SourceOutbreakID: a.ID, LocationName: "Gode Market", ContactDate: day, Direction: models.TraceBack},
		{ID: uuid.New(), SourceOutbreakID: b.ID, LocationName: "GODE MARKET", ContactDate: day, Direction: models.TraceBack},
	}

	n := BuildRegional([]models.Outbreak{a, b}, links, catalog)

	require.Len(t, n.Nodes, 3)
	require.Len(t, n.Edges, 2)
	market, ok := n.Node(LocationNodeID("Gode Market"))
	require.True(t, ok)
	assert.Equal(t, 2, market.OutDegree)
	assert.InDelta(t, 1.0, market.Centrality, 1e-12)
	assert.Nil(t, n.Window)
}
