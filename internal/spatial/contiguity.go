package spatial

import (
	"fmt"
	"strings"
)

// ContiguityPolicy определяет, считаются ли два региона соседями.
// Политика применяется одинаково ко всем парам одного графа.
type ContiguityPolicy interface {
	Name() string
	Adjacent(a, b *Shape) bool
}

// DefaultTolerance - допуск совпадения координат в градусах
const DefaultTolerance = 1e-9

// Queen - соседство по общей точке (ребру или вершине)
type Queen struct {
	Tolerance float64
}

func (Queen) Name() string { return "queen" }

func (q Queen) Adjacent(a, b *Shape) bool {
	tol := q.Tolerance
	if !a.Bound.Pad(tol).Intersects(b.Bound) {
		return false
	}
	clip := overlap(a.Bound.Pad(tol), b.Bound.Pad(tol))
	ea := a.edges(clip)
	eb := b.edges(clip)
	for _, s := range ea {
		sb := s.bound.Pad(tol)
		for _, t := range eb {
			if !sb.Intersects(t.bound) {
				continue
			}
			if segmentDistance(s.a, s.b, t.a, t.b) <= tol {
				return true
			}
		}
	}
	return false
}

// Rook - соседство только по общему ребру ненулевой длины
type Rook struct {
	Tolerance float64
}

func (Rook) Name() string { return "rook" }

func (r Rook) Adjacent(a, b *Shape) bool {
	tol := r.Tolerance
	if !a.Bound.Pad(tol).Intersects(b.Bound) {
		return false
	}
	clip := overlap(a.Bound.Pad(tol), b.Bound.Pad(tol))
	ea := a.edges(clip)
	eb := b.edges(clip)
	for _, s := range ea {
		sb := s.bound.Pad(tol)
		for _, t := range eb {
			if !sb.Intersects(t.bound) {
				continue
			}
			if collinearOverlap(s.a, s.b, t.a, t.b, tol) > tol {
				return true
			}
		}
	}
	return false
}

// PolicyByName возвращает политику смежности по имени из конфигурации
func PolicyByName(name string, tolerance float64) (ContiguityPolicy, error) {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "queen":
		return Queen{Tolerance: tolerance}, nil
	case "rook":
		return Rook{Tolerance: tolerance}, nil
	}
	return nil, fmt.Errorf("unknown contiguity policy %q", name)
}
