package feature

import (
	"fmt"
	"iter"
	"math"

	"github.com/npillmayer/dhchain"
	"github.com/npillmayer/dhchain/chain"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSamples is the angular resolution used for circles with
// Samples == 0.
const DefaultSamples = 60

// PhaseCircle is a circle of radius Radius around a local center point of
// an anchor frame. Its phase follows the driven angle of joint PhaseJoint:
// sample k lies at local angle φₖ + θ, with φₖ = 2πk/N.
//
// The circle lies in the anchor frame's X–Y plane. With WorldAligned set,
// only the center is anchor-local; plane and phase reference follow the
// world axes.
type PhaseCircle struct {
	Anchor       int
	Center       r3.Vec
	Radius       float64
	Samples      int
	PhaseJoint   int
	WorldAligned bool
}

var _ Feature = PhaseCircle{}

// Frame is the anchor frame index.
func (c PhaseCircle) Frame() int { return c.Anchor }

func (c PhaseCircle) samples() int {
	if c.Samples == 0 {
		return DefaultSamples
	}
	return c.Samples
}

func (c PhaseCircle) prepare(poses []dhchain.Pose, q chain.Configuration) (dhchain.Pose, float64, error) {
	if c.Samples < 0 {
		return dhchain.Pose{}, 0, fmt.Errorf("%w: circle with %d samples", ErrInvalidFeature, c.Samples)
	}
	if c.Radius < 0 {
		return dhchain.Pose{}, 0, fmt.Errorf("%w: circle radius %g", ErrInvalidFeature, c.Radius)
	}
	pose, err := anchor(poses, c.Anchor)
	if err != nil {
		return dhchain.Pose{}, 0, err
	}
	if c.PhaseJoint < 0 || c.PhaseJoint >= len(q) {
		err = fmt.Errorf("%w: phase joint %d, configuration has %d values",
			ErrIndexOutOfRange, c.PhaseJoint, len(q))
		tracer().Errorf("%v", err)
		return dhchain.Pose{}, 0, err
	}
	return pose, q[c.PhaseJoint] * dhchain.Deg2Rad, nil
}

func (c PhaseCircle) sample(pose dhchain.Pose, theta, phi float64) r3.Vec {
	rim := r3.Vec{X: c.Radius * math.Cos(phi+theta), Y: c.Radius * math.Sin(phi+theta)}
	if c.WorldAligned {
		return r3.Add(pose.Transform(c.Center), rim)
	}
	return pose.Transform(r3.Add(c.Center, rim))
}

// Points returns the circle samples. Anchor pose and phase angle are
// captured when Points is called; every iteration regenerates the same
// samples.
func (c PhaseCircle) Points(poses []dhchain.Pose, q chain.Configuration) (iter.Seq[r3.Vec], error) {
	pose, theta, err := c.prepare(poses, q)
	if err != nil {
		return nil, err
	}
	n := c.samples()
	return func(yield func(r3.Vec) bool) {
		for k := 0; k < n; k++ {
			phi := 2 * math.Pi * float64(k) / float64(n)
			if !yield(c.sample(pose, theta, phi)) {
				return
			}
		}
	}, nil
}

// Marker is the reference mark on the rim, the sample at φ = 0.
func (c PhaseCircle) Marker(poses []dhchain.Pose, q chain.Configuration) (r3.Vec, error) {
	pose, theta, err := c.prepare(poses, q)
	if err != nil {
		return r3.Vec{}, err
	}
	return c.sample(pose, theta, 0), nil
}
