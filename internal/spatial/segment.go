package spatial

import (
	"math"

	"github.com/paulmach/orb"
)

func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func dot(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[0]-o[0]) + (a[1]-o[1])*(b[1]-o[1])
}

func dist(a, b orb.Point) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}

// onSegment - p коллинеарна ab и лежит в ее ограничивающем прямоугольнике
func onSegment(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// segmentsIntersect - точная проверка пересечения или касания отрезков p1p2 и q1q2
func segmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	d1 := sign(cross(q1, q2, p1))
	d2 := sign(cross(q1, q2, p2))
	d3 := sign(cross(p1, p2, q1))
	d4 := sign(cross(p1, p2, q2))

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	if d1 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if d2 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	return false
}

func pointSegmentDistance(p, a, b orb.Point) float64 {
	l2 := (b[0]-a[0])*(b[0]-a[0]) + (b[1]-a[1])*(b[1]-a[1])
	if l2 == 0 {
		return dist(p, a)
	}
	t := dot(a, p, b) / l2
	t = math.Max(0, math.Min(1, t))
	proj := orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
	return dist(p, proj)
}

// segmentDistance - минимальное расстояние между отрезками, 0 при пересечении
func segmentDistance(p1, p2, q1, q2 orb.Point) float64 {
	if segmentsIntersect(p1, p2, q1, q2) {
		return 0
	}
	return math.Min(
		math.Min(pointSegmentDistance(p1, q1, q2), pointSegmentDistance(p2, q1, q2)),
		math.Min(pointSegmentDistance(q1, p1, p2), pointSegmentDistance(q2, p1, p2)),
	)
}

// collinearOverlap возвращает длину общего участка коллинеарных (с допуском tol) отрезков
func collinearOverlap(p1, p2, q1, q2 orb.Point, tol float64) float64 {
	l := dist(p1, p2)
	if l == 0 {
		return 0
	}
	if math.Abs(cross(p1, p2, q1))/l > tol || math.Abs(cross(p1, p2, q2))/l > tol {
		return 0
	}
	t1 := dot(p1, q1, p2) / l
	t2 := dot(p1, q2, p2) / l
	lo := math.Max(0, math.Min(t1, t2))
	hi := math.Min(l, math.Max(t1, t2))
	if hi <= lo {
		return 0
	}
	return hi - lo
}

func segmentBound(a, b orb.Point) orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Min(a[0], b[0]), math.Min(a[1], b[1])},
		Max: orb.Point{math.Max(a[0], b[0]), math.Max(a[1], b[1])},
	}
}

// overlap - пересечение двух прямоугольников (предполагается, что они пересекаются)
func overlap(a, b orb.Bound) orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Max(a.Min[0], b.Min[0]), math.Max(a.Min[1], b.Min[1])},
		Max: orb.Point{math.Min(a.Max[0], b.Max[0]), math.Min(a.Max[1], b.Max[1])},
	}
}
