// Package spatialmath holds the planar geometry helpers shared by the kinematics packages.
// Points are github.com/golang/geo/r2 values in the robot's base coordinate frame.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"go.armlab.dev/planar/utils"
)

// DefaultPrecision is the tolerance used when no other is supplied.
const DefaultPrecision = 1e-8

// NewPoint returns the r2.Point at (x, y).
func NewPoint(x, y float64) r2.Point {
	return r2.Point{X: x, Y: y}
}

// PointAlmostEqual returns true if each coordinate of a and b differs by at most epsilon.
func PointAlmostEqual(a, b r2.Point, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) && utils.Float64AlmostEqual(a.Y, b.Y, epsilon)
}

// PointsAlmostEqual compares two point sequences element by element.
func PointsAlmostEqual(a, b []r2.Point, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !PointAlmostEqual(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}

// RoundPoint rounds both coordinates to the given number of decimal places.
func RoundPoint(p r2.Point, places int) r2.Point {
	return r2.Point{X: utils.RoundTo(p.X, places), Y: utils.RoundTo(p.Y, places)}
}

// PolarOffset is the displacement of a segment of the given length pointing along heading (radians).
func PolarOffset(length, heading float64) r2.Point {
	return r2.Point{X: length * math.Cos(heading), Y: length * math.Sin(heading)}
}

// Heading is the angle of p measured counter-clockwise from the +X axis.
func Heading(p r2.Point) float64 {
	return math.Atan2(p.Y, p.X)
}

// NormalizeAngle wraps an angle in radians into (-pi, pi].
func NormalizeAngle(angle float64) float64 {
	return Heading(PolarOffset(1, angle))
}

// PointIsFinite is false if either coordinate is NaN or infinite.
func PointIsFinite(p r2.Point) bool {
	return utils.IsFinite(p.X) && utils.IsFinite(p.Y)
}

// FormatPoint renders a point with fixed precision, e.g. "(0.50, 0.87)". Values that round to zero
// print without a sign.
func FormatPoint(p r2.Point, places int) string {
	p = RoundPoint(p, places)
	if p.X == 0 {
		p.X = 0
	}
	if p.Y == 0 {
		p.Y = 0
	}
	return fmt.Sprintf("(%.*f, %.*f)", places, p.X, places, p.Y)
}
