package spatial

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T, policy ContiguityPolicy) *Builder {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return NewBuilder(policy, logger)
}

func square(x, y float64) orb.Polygon {
	return orb.Polygon{{{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y}}}
}

func region(code string, g orb.Geometry) models.Region {
	return models.Region{Code: code, Name: code, Boundary: g}
}

// grid - регионы 2x2: A B снизу, C D сверху
func grid() []models.Region {
	return []models.Region{
		region("A", square(0, 0)),
		region("B", square(1, 0)),
		region("C", square(0, 1)),
		region("D", square(1, 1)),
	}
}

func TestBuild_QueenGrid(t *testing.T) {
	builder := newTestBuilder(t, Queen{Tolerance: DefaultTolerance})

	res, err := builder.Build(context.Background(), grid())

	require.NoError(t, err)
	assert.Empty(t, res.Rejected)
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Graph.IDs())
	assert.Equal(t, []string{"B", "C", "D"}, res.Graph.Neighbors("A"))
	assert.Equal(t, []string{"A", "C", "D"}, res.Graph.Neighbors("B"))
	assert.True(t, res.Graph.IsSymmetric())
	assert.Equal(t, "queen", res.Graph.Policy())
}

func TestBuild_RookGrid(t *testing.T) {
	builder := newTestBuilder(t, Rook{Tolerance: DefaultTolerance})

	res, err := builder.Build(context.Background(), grid())

	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, res.Graph.Neighbors("A"))
	assert.Equal(t, []string{"A", "D"}, res.Graph.Neighbors("B"))
	assert.False(t, res.Graph.Adjacent("A", "D"))
	assert.False(t, res.Graph.Adjacent("B", "C"))
	assert.True(t, res.Graph.IsSymmetric())
}

func TestBuild_Triangle(t *testing.T) {
	// три региона, попарно имеющие общую границу
	regions := []models.Region{
		region("A", orb.Polygon{{{0, 0}, {2, 0}, {1, 1}, {0, 0}}}),
		region("B", orb.Polygon{{{2, 0}, {2, 2}, {1, 1}, {2, 0}}}),
		region("C", orb.Polygon{{{0, 0}, {1, 1}, {2, 2}, {0, 2}, {0, 0}}}),
	}
	builder := newTestBuilder(t, Rook{Tolerance: DefaultTolerance})

	res, err := builder.Build(context.Background(), regions)

	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, res.Graph.Neighbors("A"))
	assert.Equal(t, []string{"A", "C"}, res.Graph.Neighbors("B"))
	assert.Equal(t, []string{"A", "B"}, res.Graph.Neighbors("C"))
}

func TestBuild_OrderIndependent(t *testing.T) {
	builder := newTestBuilder(t, Queen{Tolerance: DefaultTolerance})
	regions := grid()
	reversed := []models.Region{regions[3], regions[1], regions[2], regions[0]}

	first, err := builder.Build(context.Background(), regions)
	require.NoError(t, err)
	second, err := builder.Build(context.Background(), reversed)
	require.NoError(t, err)

	assert.Equal(t, first.Graph.Snapshot(), second.Graph.Snapshot())
	assert.Equal(t, first.Graph.Fingerprint(), second.Graph.Fingerprint())
	assert.Equal(t, RegionsFingerprint(builder.Policy(), reversed), first.Graph.Fingerprint())

	rook, err := newTestBuilder(t, Rook{Tolerance: DefaultTolerance}).Build(context.Background(), regions)
	require.NoError(t, err)
	assert.NotEqual(t, first.Graph.Fingerprint(), rook.Graph.Fingerprint())
}

func TestBuildResult_SnapshotRoundTrip(t *testing.T) {
	builder := newTestBuilder(t, Queen{Tolerance: DefaultTolerance})
	res, err := builder.Build(context.Background(), append(grid(), region("EMPTY", nil)))
	require.NoError(t, err)

	restored := res.Snapshot().Result()

	assert.Equal(t, res.Graph.Snapshot(), restored.Graph.Snapshot())
	assert.Equal(t, res.Rejected, restored.Rejected)
	assert.Equal(t, res.Graph.Fingerprint(), restored.Graph.Fingerprint())
}

func TestBuild_MultiPolygonIsOneRegion(t *testing.T) {
	regions := []models.Region{
		region("M", orb.MultiPolygon{square(0, 0), square(5, 5)}),
		region("N", square(6, 5)),
		region("O", square(10, 10)),
	}
	builder := newTestBuilder(t, Rook{Tolerance: DefaultTolerance})

	res, err := builder.Build(context.Background(), regions)

	require.NoError(t, err)
	assert.Equal(t, []string{"N"}, res.Graph.Neighbors("M"))
	assert.Empty(t, res.Graph.Neighbors("O"))
	assert.True(t, res.Graph.Has("O"))
}

func TestBuild_RejectsInvalidGeometry(t *testing.T) {
	bowtie := orb.Polygon{{{0, 0}, {1, 1}, {1, 0}, {0, 1}, {0, 0}}}
	regions := append(grid(),
		region("BAD", bowtie),
		region("EMPTY", nil),
		region("LINE", orb.LineString{{0, 0}, {1, 1}}),
		region("A", square(7, 7)),
	)
	builder := newTestBuilder(t, Queen{Tolerance: DefaultTolerance})

	res, err := builder.Build(context.Background(), regions)

	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D"}, res.Graph.IDs())
	require.Len(t, res.Rejected, 5)
	rejected := map[string]string{}
	for _, gerr := range res.Rejected {
		rejected[gerr.RegionCode] = gerr.Reason
	}
	assert.Contains(t, rejected["BAD"], "self-intersecting")
	assert.Contains(t, rejected["EMPTY"], "missing")
	assert.Contains(t, rejected["LINE"], "unsupported")
	assert.Contains(t, rejected["A"], "duplicate")
	// оба региона с кодом A исключены
	assert.Empty(t, res.Graph.Neighbors("A"))
	assert.Equal(t, []string{"C", "D"}, res.Graph.Neighbors("B"))
}

func TestBuild_DuplicateCodesOrderIndependent(t *testing.T) {
	// Подготовка
	first := []models.Region{
		region("A", square(1, 0)),
		region("D", square(0, 0)),
		region("D", square(10, 10)),
	}
	second := []models.Region{first[0], first[2], first[1]}
	builder := newTestBuilder(t, Queen{Tolerance: DefaultTolerance})

	// Действие
	r1, err := builder.Build(context.Background(), first)
	require.NoError(t, err)
	r2, err := builder.Build(context.Background(), second)
	require.NoError(t, err)

	// Проверки
	assert.Equal(t, []string{"A"}, r1.Graph.IDs())
	assert.Empty(t, r1.Graph.Neighbors("A"))
	assert.Equal(t, r1.Graph.IDs(), r2.Graph.IDs())
	assert.Equal(t, r1.Graph.Neighbors("A"), r2.Graph.Neighbors("A"))
	assert.Equal(t, r1.Rejected, r2.Rejected)
	require.Len(t, r1.Rejected, 2)
	assert.Equal(t, "D", r1.Rejected[0].RegionCode)
	assert.Equal(t, r1.Graph.Fingerprint(), r2.Graph.Fingerprint())
	assert.Equal(t, RegionsFingerprint(builder.Policy(), first), RegionsFingerprint(builder.Policy(), second))
}

func TestBuild_Cancelled(t *testing.T) {
	builder := newTestBuilder(t, Queen{Tolerance: DefaultTolerance})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := builder.Build(ctx, grid())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewShape_RepairsRing(t *testing.T) {
	// незамкнутое кольцо с повторяющимися вершинами и иглой
	ring := orb.Ring{{0, 0}, {0, 0}, {1, 0}, {2, 0}, {1, 0}, {1, 1}, {0, 1}}

	shape, err := NewShape(region("R", orb.Polygon{ring}))

	require.NoError(t, err)
	require.Len(t, shape.Rings, 1)
	assert.Equal(t, orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}, shape.Rings[0])
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, shape.Bound)
}

func TestNewShape_TooFewVertices(t *testing.T) {
	_, err := NewShape(region("R", orb.Polygon{{{0, 0}, {1, 1}, {0, 0}}}))

	var gerr *models.GeometryError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "R", gerr.RegionCode)
}

func TestGraph_FromSnapshotSymmetrizes(t *testing.T) {
	g := FromSnapshot(GraphSnapshot{
		Policy: "queen",
		Neighbors: map[string][]string{
			"A": {"B", "A", "Z"},
			"B": {},
			"C": {"B"},
		},
	})

	assert.Equal(t, []string{"B"}, g.Neighbors("A"))
	assert.Equal(t, []string{"A", "C"}, g.Neighbors("B"))
	assert.True(t, g.IsSymmetric())
}

func TestGraphCache(t *testing.T) {
	builder := newTestBuilder(t, Queen{Tolerance: DefaultTolerance})
	res, err := builder.Build(context.Background(), grid())
	require.NoError(t, err)
	cache := NewGraphCache(2, time.Minute)

	cache.Add(res)
	got, ok := cache.Get(res.Graph.Fingerprint())

	require.True(t, ok)
	assert.Same(t, res, got)
	assert.Equal(t, 1, cache.Len())
	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("ROOK", 0)
	require.NoError(t, err)
	assert.Equal(t, Rook{Tolerance: DefaultTolerance}, p)

	p, err = PolicyByName("", 1e-6)
	require.NoError(t, err)
	assert.Equal(t, Queen{Tolerance: 1e-6}, p)

	_, err = PolicyByName("bishop", 0)
	assert.Error(t, err)
}
