package spatial

import (
	"fmt"
	"math"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Shape - нормализованная граница региона: все кольца всех частей мультиполигона
type Shape struct {
	Code  string
	Rings []orb.Ring
	Bound orb.Bound
}

type edge struct {
	a, b  orb.Point
	bound orb.Bound
}

// NewShape проверяет и чинит геометрию региона.
// Мультиполигон считается одним логическим регионом.
func NewShape(region models.Region) (*Shape, error) {
	if region.Boundary == nil {
		return nil, &models.GeometryError{RegionCode: region.Code, Reason: "geometry is missing"}
	}

	var polygons []orb.Polygon
	switch g := region.Boundary.(type) {
	case orb.Polygon:
		polygons = []orb.Polygon{g}
	case orb.MultiPolygon:
		polygons = g
	case orb.Ring:
		polygons = []orb.Polygon{{g}}
	default:
		return nil, &models.GeometryError{
			RegionCode: region.Code,
			Reason:     fmt.Sprintf("unsupported geometry type %s", region.Boundary.GeoJSONType()),
		}
	}

	shape := &Shape{Code: region.Code}
	for pi, polygon := range polygons {
		for ri, ring := range polygon {
			repaired, err := repairRing(ring)
			if err != nil {
				return nil, &models.GeometryError{
					RegionCode: region.Code,
					Reason:     fmt.Sprintf("polygon %d ring %d: %v", pi, ri, err),
				}
			}
			if i, j, bad := selfIntersection(repaired); bad {
				return nil, &models.GeometryError{
					RegionCode: region.Code,
					Reason:     fmt.Sprintf("polygon %d ring %d is self-intersecting beyond repair (segments %d and %d)", pi, ri, i, j),
				}
			}
			if ri == 0 && math.Abs(planar.Area(repaired)) == 0 {
				return nil, &models.GeometryError{
					RegionCode: region.Code,
					Reason:     fmt.Sprintf("polygon %d has zero area", pi),
				}
			}
			shape.Rings = append(shape.Rings, repaired)
		}
	}
	if len(shape.Rings) == 0 {
		return nil, &models.GeometryError{RegionCode: region.Code, Reason: "geometry is empty"}
	}

	shape.Bound = shape.Rings[0].Bound()
	for _, r := range shape.Rings[1:] {
		shape.Bound = shape.Bound.Union(r.Bound())
	}
	return shape, nil
}

// edges возвращает отрезки границы, попадающие в область clip
func (s *Shape) edges(clip orb.Bound) []edge {
	var out []edge
	for _, ring := range s.Rings {
		for i := 0; i+1 < len(ring); i++ {
			b := segmentBound(ring[i], ring[i+1])
			if !b.Intersects(clip) {
				continue
			}
			out = append(out, edge{a: ring[i], b: ring[i+1], bound: b})
		}
	}
	return out
}

// repairRing удаляет повторяющиеся вершины и «иглы», замыкает кольцо
func repairRing(ring orb.Ring) (orb.Ring, error) {
	pts := make([]orb.Point, 0, len(ring))
	for _, p := range ring {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return nil, fmt.Errorf("non-finite coordinate %v", p)
		}
		if len(pts) > 0 && pts[len(pts)-1] == p {
			continue
		}
		pts = append(pts, p)
	}
	// последняя точка будет добавлена заново при замыкании
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}

	// игла: A -> B -> A
	for changed := true; changed && len(pts) >= 3; {
		changed = false
		for i := 0; i < len(pts); i++ {
			prev := pts[(i-1+len(pts))%len(pts)]
			next := pts[(i+1)%len(pts)]
			if prev == next {
				pts = dedupeCyclic(append(pts[:i], pts[i+1:]...))
				changed = true
				break
			}
		}
	}

	if len(pts) < 3 {
		return nil, fmt.Errorf("ring has %d distinct vertices, need at least 3", len(pts))
	}
	out := make(orb.Ring, 0, len(pts)+1)
	out = append(out, pts...)
	out = append(out, pts[0])
	return out, nil
}

func dedupeCyclic(pts []orb.Point) []orb.Point {
	out := pts[:0]
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// selfIntersection ищет пересечение несмежных отрезков замкнутого кольца
func selfIntersection(ring orb.Ring) (int, int, bool) {
	n := len(ring) - 1
	for i := 0; i < n; i++ {
		bi := segmentBound(ring[i], ring[i+1])
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if !bi.Intersects(segmentBound(ring[j], ring[j+1])) {
				continue
			}
			if segmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
