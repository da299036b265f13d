/*
Package dhchain implements homogeneous transforms for serial-link
manipulators described by Denavit–Hartenberg parameters.

The root package holds the numeric helpers, the Pose type (a 4x4
homogeneous matrix) and the transform builders. Sub-packages compose
poses along a joint chain (package chain), derive auxiliary points from
frame poses (package feature), interpolate joint configurations
(package trajectory) and project footprints onto the floor plane
(package polygon).

All angles given to functions of this module are in degrees.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package dhchain

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'dhchain'
func tracer() tracing.Trace {
	return tracing.Select("dhchain")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Sind is the sine of an angle given in degrees.
func Sind(deg float64) float64 {
	return math.Sin(deg * Deg2Rad)
}

// Cosd is the cosine of an angle given in degrees.
func Cosd(deg float64) float64 {
	return math.Cos(deg * Deg2Rad)
}

// IsFinite is a predicate: is n neither NaN nor ±Inf?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// === Pair Data Type ========================================================

// Pair is a 2D-point, used for planar projections of world points.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(float64(0), float64(0))

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	p2 = p2.Zap()
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Abs is the distance of p from the origin.
func (p Pair) Abs() float64 {
	return cmplx.Abs(p.C())
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return (p + v).Zap()
}

// Rotated returns a new pair rotated around origin by theta degrees
// (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	return Pair(p.C() * cmplx.Rect(1, theta*Deg2Rad)).Zap()
}
