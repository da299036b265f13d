/*
Package chain composes the frame poses of a serial manipulator.

A Chain is an ordered list of joints, root to tip. Each joint contributes
one Denavit–Hartenberg transform, relative to its parent frame. Given a
Configuration (one driven value per joint) ComputePoses multiplies these
transforms left to right,

	pose(i) = pose(i−1) · T(i),   pose(−1) = I

and returns the pose of every joint frame relative to the base.

Chains are immutable once created and may be shared by concurrent
evaluations. Configurations are never modified.

Poses are not re-orthonormalized. For long chains (more than about six
joints) rounding errors accumulate in the orientation blocks; callers
needing strict orthonormality should check with Pose.IsOrthonormal.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package chain

import (
	"errors"
	"fmt"

	"github.com/npillmayer/dhchain"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'dhchain.chain'
func tracer() tracing.Trace {
	return tracing.Select("dhchain.chain")
}

var (
	// ErrEmptyChain indicates a chain without joints (or a nil chain).
	ErrEmptyChain = errors.New("chain must have at least one joint")
	// ErrDimensionMismatch indicates a configuration whose length differs from the chain's.
	ErrDimensionMismatch = errors.New("configuration length does not match chain length")
	// ErrUnknownJointType indicates a joint type other than revolute or prismatic.
	ErrUnknownJointType = errors.New("unknown joint type")
	// ErrInvalidParameter indicates a fixed DH parameter which is NaN or ±Inf.
	ErrInvalidParameter = errors.New("invalid joint parameter")
)

// Configuration holds the driven parameter values of a chain, one per joint,
// in chain order: θ in degrees for revolute joints, d for prismatic joints.
type Configuration []float64

// Zero returns the all-zero configuration for n joints.
func Zero(n int) Configuration {
	return make(Configuration, n)
}

// Clone returns a copy of q.
func (q Configuration) Clone() Configuration {
	if q == nil {
		return nil
	}
	c := make(Configuration, len(q))
	copy(c, q)
	return c
}

// Equal compares two configurations component-wise, within absolute or
// relative tolerance eps.
func (q Configuration) Equal(other Configuration, eps float64) bool {
	return floats.EqualApprox(q, other, eps)
}

// Chain is an ordered sequence of joints, root to tip.
type Chain struct {
	name   string
	joints []Joint
}

// New creates a chain from joint descriptors. The joints are copied.
// It fails for an empty joint list, for unknown joint types and for
// non-finite fixed parameters.
func New(joints ...Joint) (*Chain, error) {
	if len(joints) == 0 {
		return nil, ErrEmptyChain
	}
	for i, j := range joints {
		if err := j.validate(i); err != nil {
			tracer().Errorf("rejecting chain: %v", err)
			return nil, err
		}
	}
	c := &Chain{joints: make([]Joint, len(joints))}
	copy(c.joints, joints)
	return c, nil
}

// MustNew is like New, but panics on invalid joints.
func MustNew(joints ...Joint) *Chain {
	c, err := New(joints...)
	if err != nil {
		panic(err)
	}
	return c
}

// Named returns a copy of the chain carrying a name.
func (c *Chain) Named(name string) *Chain {
	return &Chain{name: name, joints: c.joints}
}

// Name is the chain's name, if any.
func (c *Chain) Name() string {
	return c.name
}

// Len is the number of joints.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.joints)
}

// Joint returns the joint at position i.
func (c *Chain) Joint(i int) Joint {
	return c.joints[i]
}

// Joints returns a copy of the joint list.
func (c *Chain) Joints() []Joint {
	js := make([]Joint, len(c.joints))
	copy(js, c.joints)
	return js
}

// Types lists the joint types, e.g. "RRP" for a revolute-revolute-prismatic arm.
func (c *Chain) Types() string {
	s := make([]byte, len(c.joints))
	for i, j := range c.joints {
		s[i] = 'R'
		if j.Type == Prismatic {
			s[i] = 'P'
		}
	}
	return string(s)
}

func (c *Chain) String() string {
	s := c.name
	if s == "" {
		s = c.Types()
	}
	s += ":"
	for _, j := range c.joints {
		s += " " + j.String()
	}
	return s
}

func (c *Chain) check(q Configuration) error {
	if c.Len() == 0 {
		return ErrEmptyChain
	}
	if len(q) != len(c.joints) {
		err := fmt.Errorf("%w: chain has %d joints, configuration has %d values",
			ErrDimensionMismatch, len(c.joints), len(q))
		tracer().Errorf("%v", err)
		return err
	}
	return nil
}

// Transforms returns the parent-relative transform of every joint for
// configuration q.
func Transforms(c *Chain, q Configuration) ([]dhchain.Pose, error) {
	if err := c.check(q); err != nil {
		return nil, err
	}
	ts := make([]dhchain.Pose, len(c.joints))
	for i, j := range c.joints {
		ts[i] = j.Transform(q[i])
	}
	return ts, nil
}

// ComputePoses calculates the pose of every joint frame, relative to the
// base frame, for configuration q. Result i is the product of the first
// i+1 joint transforms.
//
// If len(q) differs from the chain length, ErrDimensionMismatch is returned
// and nothing is computed.
func ComputePoses(c *Chain, q Configuration) ([]dhchain.Pose, error) {
	if err := c.check(q); err != nil {
		return nil, err
	}
	poses := make([]dhchain.Pose, len(c.joints))
	cumul := dhchain.Identity()
	for i, j := range c.joints {
		p := j.Params(q[i])
		cumul = cumul.Compose(p.Transform())
		poses[i] = cumul
		tracer().P("joint", i).Debugf("%v → origin %v", p, cumul.Origin())
	}
	return poses, nil
}

// MustComputePoses is like ComputePoses, but panics on a dimension mismatch.
func MustComputePoses(c *Chain, q Configuration) []dhchain.Pose {
	poses, err := ComputePoses(c, q)
	if err != nil {
		panic(err)
	}
	return poses
}

// Poses is the method form of ComputePoses.
func (c *Chain) Poses(q Configuration) ([]dhchain.Pose, error) {
	return ComputePoses(c, q)
}

// EndPose returns the pose of the last frame (the tool flange) only.
func EndPose(c *Chain, q Configuration) (dhchain.Pose, error) {
	poses, err := ComputePoses(c, q)
	if err != nil {
		return dhchain.Pose{}, err
	}
	return poses[len(poses)-1], nil
}

// Origins lists the base origin followed by the origin of every frame in
// poses. Consecutive entries are the end points of the link segments.
func Origins(poses []dhchain.Pose) []r3.Vec {
	pts := make([]r3.Vec, 0, len(poses)+1)
	pts = append(pts, r3.Vec{})
	for _, p := range poses {
		pts = append(pts, p.Origin())
	}
	return pts
}
