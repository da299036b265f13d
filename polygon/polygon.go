/*
Package polygon provides planar footprints for workspace checks.

Curves computed by the feature package (e.g. the rim of an end-effector
plate) are projected onto the floor plane and compared against regions of
the workspace. Clipping is delegated to polyclip.

	region := polygon.Box(dhchain.P(-1000, 1000), dhchain.P(1000, -1000))
	plate := polygon.FromPoints(rim)
	ok := polygon.Inside(plate, region)

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"iter"
	"math"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/dhchain"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// L writes to trace with key 'dhchain.polygon'
func L() tracing.Trace {
	return tracing.Select("dhchain.polygon")
}

// Polygon is a set of closed contours in the plane. Contours may be
// holes of other contours, as produced by clipping operations.
type Polygon struct {
	pg polyclip.Polygon
}

// Builder collects knots of a contour. Part of builder functionality.
type Builder struct {
	knots polyclip.Contour
}

// NullPolygon starts an empty polygon.
func NullPolygon() *Builder {
	return &Builder{}
}

// Knot appends a point to the contour.
func (b *Builder) Knot(p dhchain.Pair) *Builder {
	b.knots.Add(point(p))
	return b
}

func point(p dhchain.Pair) polyclip.Point {
	x, y := p.F()
	return polyclip.Point{X: x, Y: y}
}

// Cycle closes the contour and returns the polygon.
func (b *Builder) Cycle() Polygon {
	var pg polyclip.Polygon
	if len(b.knots) > 0 {
		pg.Add(append(polyclip.Contour(nil), b.knots...))
	}
	return Polygon{pg: pg}
}

// Box creates a rectangle from two opposite corners.
func Box(a, b dhchain.Pair) Polygon {
	ax, ay := a.F()
	bx, by := b.F()
	x0, x1 := math.Min(ax, bx), math.Max(ax, bx)
	y0, y1 := math.Min(ay, by), math.Max(ay, by)
	return NullPolygon().Knot(dhchain.P(x0, y0)).Knot(dhchain.P(x1, y0)).
		Knot(dhchain.P(x1, y1)).Knot(dhchain.P(x0, y1)).Cycle()
}

// FromPoints projects a sampled closed curve onto the X–Y plane.
func FromPoints(pts iter.Seq[r3.Vec]) Polygon {
	b := NullPolygon()
	for p := range pts {
		b.Knot(dhchain.XY(p))
	}
	return b.Cycle()
}

// N is the number of knots of all contours.
func (pg Polygon) N() int {
	n := 0
	for _, c := range pg.pg {
		n += len(c)
	}
	return n
}

// IsEmpty is true for polygons without any contour.
func (pg Polygon) IsEmpty() bool {
	return len(pg.pg) == 0
}

// Intersection clips pg against other.
func (pg Polygon) Intersection(other Polygon) Polygon {
	return Polygon{pg: pg.pg.Construct(polyclip.INTERSECTION, other.pg)}
}

// Union merges pg and other.
func (pg Polygon) Union(other Polygon) Polygon {
	return Polygon{pg: pg.pg.Construct(polyclip.UNION, other.pg)}
}

// Difference removes other from pg.
func (pg Polygon) Difference(other Polygon) Polygon {
	return Polygon{pg: pg.pg.Construct(polyclip.DIFFERENCE, other.pg)}
}

// depth counts how many other contours enclose contour i.
func (pg Polygon) depth(i int) int {
	if len(pg.pg[i]) == 0 {
		return 0
	}
	p := pg.pg[i][0]
	d := 0
	for j, c := range pg.pg {
		if j != i && c.Contains(p) {
			d++
		}
	}
	return d
}

// Contains tests if point p is inside the polygon, respecting holes.
func (pg Polygon) Contains(p dhchain.Pair) bool {
	pt := point(p)
	n := 0
	for _, c := range pg.pg {
		if c.Contains(pt) {
			n++
		}
	}
	return n%2 == 1
}

// Area is the enclosed area. Contours nested at odd depth count as holes.
func (pg Polygon) Area() float64 {
	area := 0.0
	for i, c := range pg.pg {
		a := math.Abs(shoelace(c))
		if pg.depth(i)%2 == 1 {
			a = -a
		}
		area += a
	}
	return area
}

func shoelace(c polyclip.Contour) float64 {
	s := 0.0
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		s += p.X*q.Y - q.X*p.Y
	}
	return s / 2
}

// BoundingBox returns the lower left and upper right corners of the
// smallest axis-parallel box enclosing the polygon.
func (pg Polygon) BoundingBox() (dhchain.Pair, dhchain.Pair) {
	if pg.IsEmpty() {
		return dhchain.Origin, dhchain.Origin
	}
	r := pg.pg.BoundingBox()
	return dhchain.P(r.Min.X, r.Min.Y), dhchain.P(r.Max.X, r.Max.Y)
}

// Inside reports whether footprint lies entirely within region, up to an
// area of dhchain.Epsilon.
func Inside(footprint, region Polygon) bool {
	rest := footprint.Difference(region)
	L().Debugf("footprint outside region: %d contours", len(rest.pg))
	return rest.IsEmpty() || dhchain.Is0(rest.Area())
}

// AsString returns a polygon in a human readable format.
func AsString(pg Polygon) string {
	var sb strings.Builder
	for i, c := range pg.pg {
		if i > 0 {
			sb.WriteString(" ")
		}
		for j, p := range c {
			if j > 0 {
				sb.WriteString("--")
			}
			sb.WriteString(dhchain.P(p.X, p.Y).String())
		}
		sb.WriteString("--cycle")
	}
	return sb.String()
}

func (pg Polygon) String() string {
	return fmt.Sprintf("polygon[%d contours, %d knots]", len(pg.pg), pg.N())
}
