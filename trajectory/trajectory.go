/*
Package trajectory generates joint-space motions for kinematic chains.

A Trajectory linearly interpolates between two configurations in a fixed
number of steps. It is a value holding only its end points: samples are
computed on demand, and iterating a trajectory any number of times yields
the same samples. Every driven parameter moves independently at constant
speed; there is no velocity or acceleration blending.

	tr, _ := trajectory.Interpolate(home, target, 100)
	for i, q := range tr.All() {
		poses, _ := chain.ComputePoses(arm, q)
		…
	}

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package trajectory

import (
	"errors"
	"fmt"
	"iter"

	"github.com/npillmayer/dhchain/chain"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/floats"
)

// tracer writes to trace with key 'dhchain.trajectory'
func tracer() tracing.Trace {
	return tracing.Select("dhchain.trajectory")
}

var (
	// ErrInvalidStepCount indicates a step count below 1.
	ErrInvalidStepCount = errors.New("step count must be at least 1")
	// ErrDimensionMismatch indicates configurations of different length.
	ErrDimensionMismatch = errors.New("configurations differ in length")
)

// Trajectory is a linear motion from a start to an end configuration,
// sampled at Steps()+1 points.
type Trajectory struct {
	start, end chain.Configuration
	delta      []float64
	steps      int
}

// Interpolate creates a trajectory of steps+1 samples. Sample i is
//
//	start + (end − start) · i/steps
//
// Start and end are copied.
func Interpolate(start, end chain.Configuration, steps int) (Trajectory, error) {
	if steps < 1 {
		err := fmt.Errorf("%w: %d", ErrInvalidStepCount, steps)
		tracer().Errorf("%v", err)
		return Trajectory{}, err
	}
	if len(start) != len(end) {
		err := fmt.Errorf("%w: start has %d values, end has %d", ErrDimensionMismatch, len(start), len(end))
		tracer().Errorf("%v", err)
		return Trajectory{}, err
	}
	tr := Trajectory{
		start: start.Clone(),
		end:   end.Clone(),
		delta: make([]float64, len(start)),
		steps: steps,
	}
	floats.SubTo(tr.delta, tr.end, tr.start)
	return tr, nil
}

// MustInterpolate is like Interpolate, but panics on invalid input.
func MustInterpolate(start, end chain.Configuration, steps int) Trajectory {
	tr, err := Interpolate(start, end, steps)
	if err != nil {
		panic(err)
	}
	return tr
}

// Steps is the number of steps, one less than the number of samples.
func (tr Trajectory) Steps() int {
	return tr.steps
}

// Len is the number of samples.
func (tr Trajectory) Len() int {
	if tr.steps == 0 {
		return 0
	}
	return tr.steps + 1
}

// Start returns a copy of the first sample.
func (tr Trajectory) Start() chain.Configuration {
	return tr.start.Clone()
}

// End returns a copy of the last sample.
func (tr Trajectory) End() chain.Configuration {
	return tr.end.Clone()
}

// At returns sample i as a freshly allocated configuration. The first and
// last samples are exact copies of start and end. At panics if i is not
// in [0, Len()).
func (tr Trajectory) At(i int) chain.Configuration {
	if i < 0 || i >= tr.Len() {
		panic(fmt.Sprintf("trajectory sample %d out of range [0,%d)", i, tr.Len()))
	}
	switch i {
	case 0:
		return tr.Start()
	case tr.steps:
		return tr.End()
	}
	q := make(chain.Configuration, len(tr.start))
	floats.AddScaledTo(q, tr.start, float64(i)/float64(tr.steps), tr.delta)
	return q
}

// All iterates over all samples, in order, together with their index.
func (tr Trajectory) All() iter.Seq2[int, chain.Configuration] {
	return func(yield func(int, chain.Configuration) bool) {
		for i := 0; i < tr.Len(); i++ {
			if !yield(i, tr.At(i)) {
				return
			}
		}
	}
}

// Samples iterates over all samples, in order.
func (tr Trajectory) Samples() iter.Seq[chain.Configuration] {
	return func(yield func(chain.Configuration) bool) {
		for _, q := range tr.All() {
			if !yield(q) {
				return
			}
		}
	}
}

func (tr Trajectory) String() string {
	return fmt.Sprintf("%v → %v in %d steps", tr.start, tr.end, tr.steps)
}
