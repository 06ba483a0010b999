package spatial

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Contains сообщает, лежит ли точка внутри границы (Polygon или MultiPolygon).
// Точка на границе считается принадлежащей региону.
func Contains(g orb.Geometry, pt orb.Point) bool {
	if g == nil || !g.Bound().Contains(pt) {
		return false
	}
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, pt)
	}
	return false
}
