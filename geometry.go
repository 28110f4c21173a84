package strategy

import "math"

// Vec2 is a continuous 2-D point or vector.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Rotate rotates v by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Angle returns atan2(y, x).
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// TilePos is an integer tile coordinate, origin at the bottom-left.
type TilePos struct {
	X int
	Y int
}

// TileOf rounds a continuous position down to its containing tile.
func TileOf(p Vec2) TilePos {
	return TilePos{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// distanceSqr returns the squared Euclidean distance between a and b.
func distanceSqr(a, b Vec2) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// segmentEpsilon guards the segment-intersection solve against a
// near-parallel system; below this the intersection is treated as
// not existing rather than numerically unstable.
const segmentEpsilon = 1e-9

// segmentsIntersection returns the intersection point of segments
// a1-a2 and b1-b2, if one exists within both segments' bounds.
func segmentsIntersection(a1, a2, b1, b2 Vec2) (Vec2, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) < segmentEpsilon {
		return Vec2{}, false
	}
	diff := b1.Sub(a1)
	t := (diff.X*d2.Y - diff.Y*d2.X) / denom
	u := (diff.X*d1.Y - diff.Y*d1.X) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Vec2{}, false
	}
	return a1.Add(d1.Mul(t)), true
}

// normalizeAngle wraps an angle into (-pi, pi].
func normalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// deltaAngle returns the signed difference (b - a) normalized into
// (-pi, pi], so magnitude comparisons on the result are meaningful
// regardless of how a and b individually wrapped.
func deltaAngle(a, b float64) float64 {
	return normalizeAngle(b - a)
}
