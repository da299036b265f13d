/*
Package feature computes auxiliary points and curves attached to the frames
of a kinematic chain.

A feature is fixed in the local coordinates of an anchor frame, i.e. one of
the poses returned by chain.ComputePoses, and is mapped to world
coordinates through that frame's pose. Three kinds of features exist:

▪︎ OffsetPoint: a point at a fixed local offset, e.g. a tool tip.

▪︎ PhaseCircle: a sampled circle whose phase follows one driven joint angle,
e.g. a rotating plate with a reference mark.

▪︎ Coincident: a point which is, by definition, identical to a frame origin
(or to another feature's point). It is copied, never recomputed, so the
two never drift apart numerically.

Features are plain values and extraction is a pure function of poses and
configuration.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package feature

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/npillmayer/dhchain"
	"github.com/npillmayer/dhchain/chain"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'dhchain.feature'
func tracer() tracing.Trace {
	return tracing.Select("dhchain.feature")
}

var (
	// ErrIndexOutOfRange indicates an anchor frame (or phase joint) which
	// does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidFeature indicates an unusable feature descriptor.
	ErrInvalidFeature = errors.New("invalid feature")
)

// Base denotes the base (world) frame as an anchor. Its pose is the identity.
const Base = -1

// Feature is a point or point set fixed in the local coordinates of an
// anchor frame.
type Feature interface {
	// Frame is the index of the anchor frame.
	Frame() int
	// Points returns the feature's world points for the given frame poses
	// and configuration. The sequence may be iterated any number of times.
	Points(poses []dhchain.Pose, q chain.Configuration) (iter.Seq[r3.Vec], error)
}

func anchor(poses []dhchain.Pose, i int) (dhchain.Pose, error) {
	if i == Base {
		return dhchain.Identity(), nil
	}
	if i < 0 || i >= len(poses) {
		err := fmt.Errorf("%w: anchor frame %d, have %d frames", ErrIndexOutOfRange, i, len(poses))
		tracer().Errorf("%v", err)
		return dhchain.Pose{}, err
	}
	return poses[i], nil
}

func single(v r3.Vec) iter.Seq[r3.Vec] {
	return func(yield func(r3.Vec) bool) {
		yield(v)
	}
}

// Extract collects the world points of a feature.
func Extract(f Feature, poses []dhchain.Pose, q chain.Configuration) ([]r3.Vec, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil feature", ErrInvalidFeature)
	}
	seq, err := f.Points(poses, q)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// --- Offset point ----------------------------------------------------------

// OffsetPoint is a point at a fixed offset in an anchor frame.
type OffsetPoint struct {
	Anchor int
	Offset r3.Vec
}

var _ Feature = OffsetPoint{}

// At creates an offset point.
func At(anchor int, x, y, z float64) OffsetPoint {
	return OffsetPoint{Anchor: anchor, Offset: r3.Vec{X: x, Y: y, Z: z}}
}

// Frame is the anchor frame index.
func (p OffsetPoint) Frame() int { return p.Anchor }

// Point maps the offset through the anchor pose.
func (p OffsetPoint) Point(poses []dhchain.Pose) (r3.Vec, error) {
	pose, err := anchor(poses, p.Anchor)
	if err != nil {
		return r3.Vec{}, err
	}
	return pose.Transform(p.Offset), nil
}

// Points is part of interface Feature.
func (p OffsetPoint) Points(poses []dhchain.Pose, _ chain.Configuration) (iter.Seq[r3.Vec], error) {
	v, err := p.Point(poses)
	if err != nil {
		return nil, err
	}
	return single(v), nil
}

// --- Coincident point ------------------------------------------------------

// Coincident is a point identical to the origin of frame Anchor. If Ref is
// set, the point is instead identical to the point of the feature named Ref
// in the same Set; this form is only usable with Set.Extract.
type Coincident struct {
	Anchor int
	Ref    string
}

var _ Feature = Coincident{}

// Frame is the anchor frame index.
func (c Coincident) Frame() int { return c.Anchor }

// Point copies the anchor frame's origin.
func (c Coincident) Point(poses []dhchain.Pose) (r3.Vec, error) {
	if c.Ref != "" {
		return r3.Vec{}, fmt.Errorf("%w: reference to %q must be resolved within a feature set",
			ErrInvalidFeature, c.Ref)
	}
	pose, err := anchor(poses, c.Anchor)
	if err != nil {
		return r3.Vec{}, err
	}
	return pose.Origin(), nil
}

// Points is part of interface Feature.
func (c Coincident) Points(poses []dhchain.Pose, _ chain.Configuration) (iter.Seq[r3.Vec], error) {
	v, err := c.Point(poses)
	if err != nil {
		return nil, err
	}
	return single(v), nil
}
