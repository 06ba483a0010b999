package spatial

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
)

// BuildResult - граф и регионы, исключенные из-за непригодной геометрии
type BuildResult struct {
	Graph    *Graph
	Rejected []*models.GeometryError
}

// Builder строит граф смежности по выбранной политике
type Builder struct {
	policy ContiguityPolicy
	logger *logrus.Logger
}

func NewBuilder(policy ContiguityPolicy, logger *logrus.Logger) *Builder {
	if policy == nil {
		policy = Queen{Tolerance: DefaultTolerance}
	}
	return &Builder{policy: policy, logger: logger}
}

func (b *Builder) Policy() ContiguityPolicy { return b.policy }

// Build проверяет геометрии, исключает непригодные регионы и строит симметричный граф.
// Результат не зависит от порядка входных регионов.
func (b *Builder) Build(ctx context.Context, regions []models.Region) (*BuildResult, error) {
	log := b.logger.WithFields(logrus.Fields{
		"service": "RegionGraphBuilder",
		"method":  "Build",
		"policy":  b.policy.Name(),
	})

	sorted := make([]models.Region, len(regions))
	copy(sorted, regions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	// регион с повторяющимся кодом исключается вместе со всеми тезками
	counts := make(map[string]int, len(sorted))
	for _, r := range sorted {
		counts[r.Code]++
	}

	result := &BuildResult{}
	shapes := make([]*Shape, 0, len(sorted))
	for _, r := range sorted {
		if r.Code == "" {
			result.Rejected = append(result.Rejected, &models.GeometryError{Reason: "region code is empty"})
			continue
		}
		if counts[r.Code] > 1 {
			result.Rejected = append(result.Rejected, &models.GeometryError{
				RegionCode: r.Code,
				Reason:     fmt.Sprintf("duplicate region code (%d regions)", counts[r.Code]),
			})
			continue
		}

		shape, err := NewShape(r)
		if err != nil {
			var gerr *models.GeometryError
			if !errors.As(err, &gerr) {
				gerr = &models.GeometryError{RegionCode: r.Code, Reason: err.Error()}
			}
			result.Rejected = append(result.Rejected, gerr)
			continue
		}
		shapes = append(shapes, shape)
	}

	for _, gerr := range result.Rejected {
		log.WithField("region_code", gerr.RegionCode).Warnf("region excluded from graph: %s", gerr.Reason)
	}

	ids := make([]string, len(shapes))
	for i, s := range shapes {
		ids[i] = s.Code
	}
	g := newGraph(b.policy.Name(), RegionsFingerprint(b.policy, regions), ids)

	// sweep по minX: кандидаты - только пересекающиеся по X прямоугольники
	order := make([]int, len(shapes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return shapes[order[i]].Bound.Min[0] < shapes[order[j]].Bound.Min[0]
	})

	tol := tolerance(b.policy)
	edges := 0
	for oi, i := range order {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("spatial: build graph: %w", err)
		}
		a := shapes[i]
		for _, j := range order[oi+1:] {
			c := shapes[j]
			if c.Bound.Min[0] > a.Bound.Max[0]+tol {
				break
			}
			if b.policy.Adjacent(a, c) {
				g.link(a.Code, c.Code)
				edges++
			}
		}
	}
	g.finalize()

	log.WithFields(logrus.Fields{
		"regions":  g.Len(),
		"edges":    edges,
		"rejected": len(result.Rejected),
	}).Info("Region graph built")

	result.Graph = g
	return result, nil
}

func tolerance(p ContiguityPolicy) float64 {
	switch v := p.(type) {
	case Queen:
		return v.Tolerance
	case Rook:
		return v.Tolerance
	}
	return DefaultTolerance
}

// RegionsFingerprint - sha256 по политике, кодам и исходным координатам регионов.
// Не зависит от порядка регионов (в том числе с одинаковыми кодами) и совпадает
// с Graph.Fingerprint графа, построенного по тем же регионам, поэтому годится как ключ кэша до построения.
func RegionsFingerprint(policy ContiguityPolicy, regions []models.Region) string {
	type entry struct {
		code   string
		digest []byte
	}
	entries := make([]entry, len(regions))
	for i, r := range regions {
		entries[i] = entry{code: r.Code, digest: regionDigest(r)}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].code != entries[j].code {
			return entries[i].code < entries[j].code
		}
		return bytes.Compare(entries[i].digest, entries[j].digest) < 0
	})

	h := sha256.New()
	var buf [8]byte
	h.Write([]byte(policy.Name()))
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(tolerance(policy)))
	h.Write(buf[:])
	for _, e := range entries {
		h.Write(e.digest)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// regionDigest - sha256 кода и исходной геометрии одного региона
func regionDigest(r models.Region) []byte {
	h := sha256.New()
	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeRing := func(ring orb.Ring) {
		writeUint(uint64(len(ring)))
		for _, p := range ring {
			writeUint(math.Float64bits(p[0]))
			writeUint(math.Float64bits(p[1]))
		}
	}

	h.Write([]byte(r.Code))
	h.Write([]byte{0})
	switch g := r.Boundary.(type) {
	case orb.Polygon:
		writeUint(1)
		for _, ring := range g {
			writeRing(ring)
		}
	case orb.MultiPolygon:
		writeUint(uint64(len(g)) + 1)
		for _, p := range g {
			for _, ring := range p {
				writeRing(ring)
			}
		}
	case orb.Ring:
		writeRing(g)
	case nil:
		writeUint(0)
	default:
		h.Write([]byte(g.GeoJSONType()))
	}
	return h.Sum(nil)
}
