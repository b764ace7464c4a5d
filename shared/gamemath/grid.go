package gamemath

import "math"

// SnapDown returns the largest multiple of size that is <= v.
func SnapDown(v, size float64) float64 {
	return math.Floor(v/size) * size
}

// CellOf returns the grid cell containing world position p.
func CellOf(p Point, size float64) (int, int) {
	return int(math.Floor(p.X / size)), int(math.Floor(p.Y / size))
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
