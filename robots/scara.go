package robots

import (
	"fmt"

	"github.com/npillmayer/dhchain"
	"github.com/npillmayer/dhchain/chain"
	"github.com/npillmayer/dhchain/feature"
	"github.com/npillmayer/dhchain/trajectory"
	"gonum.org/v1/gonum/spatial/r3"
)

// ScaraParams are the dimensions of a SCARA arm, in millimeters.
//
// The base height lifts everything above the floor, but is not part of
// the kinematic chain; it enters only as an offset of derived features.
type ScaraParams struct {
	A1           float64 `yaml:"a1"`
	A2           float64 `yaml:"a2"`
	BaseHeight   float64 `yaml:"base_height"`
	ArmOffsetZ   float64 `yaml:"arm_offset_z"`
	PistonLength float64 `yaml:"piston_length"`
	PlateRadius  float64 `yaml:"plate_radius"`
	PlateSamples int     `yaml:"plate_samples"`
	BarMin       float64 `yaml:"bar_min"`
	BarMax       float64 `yaml:"bar_max"`
}

// DefaultScara returns the dimensions of an i4-850H type arm.
func DefaultScara() ScaraParams {
	return ScaraParams{
		A1:           715,
		A2:           850,
		BaseHeight:   776,
		ArmOffsetZ:   -40,
		PistonLength: 322,
		PlateRadius:  100,
		PlateSamples: 60,
		BarMin:       418.5,
		BarMax:       880,
	}
}

// Frame indices of a Scara chain.
const (
	ScaraShoulder = iota // rotation θ1, link A1
	ScaraLift            // vertical stroke d
	ScaraElbow           // rotation θ2, link A2
	ScaraWrist           // rotation θ3 of the piston and plate
)

// Scara is a SCARA arm. Its chain has joints shoulder, lift, elbow and
// wrist; the lift is split off the elbow link, which is possible because
// a translation along z commutes with a rotation about z.
type Scara struct {
	ScaraParams
	chain *chain.Chain
}

// NewScara creates a SCARA arm.
func NewScara(p ScaraParams) (*Scara, error) {
	c, err := chain.New(
		chain.R(0, p.A1, 0).Named("shoulder"),
		chain.P(0, 0, 0).Named("lift"),
		chain.R(0, p.A2, 0).Named("elbow"),
		chain.R(0, 0, 0).Named("wrist"),
	)
	if err != nil {
		return nil, err
	}
	if p.BarMax < p.BarMin {
		p.BarMin, p.BarMax = p.BarMax, p.BarMin
	}
	return &Scara{ScaraParams: p, chain: c.Named("scara")}, nil
}

// Chain is the kinematic chain of the arm.
func (s *Scara) Chain() *chain.Chain {
	return s.chain
}

// Stroke converts an absolute bar length into the lift joint's travel.
func (s *Scara) Stroke(barLength float64) float64 {
	return s.ArmOffsetZ + barLength - s.BaseHeight
}

// Configuration assembles the chain configuration for joint angles θ1, θ2,
// θ3 (degrees) and an absolute bar length.
func (s *Scara) Configuration(theta1, theta2, barLength, theta3 float64) chain.Configuration {
	return chain.Configuration{theta1, s.Stroke(barLength), theta2, theta3}
}

// Features lists the derived geometry of the arm: base and column top,
// the two link joints lifted by the base height, the piston (whose base
// always coincides with the elbow joint) and the plate on the piston tip.
func (s *Scara) Features() feature.Set {
	h := s.BaseHeight
	return feature.Set{
		{Name: "base", Feature: feature.At(feature.Base, 0, 0, 0)},
		{Name: "column", Feature: feature.At(feature.Base, 0, 0, h)},
		{Name: "joint1", Feature: feature.At(ScaraShoulder, 0, 0, h)},
		{Name: "joint2", Feature: feature.At(ScaraElbow, 0, 0, h)},
		{Name: "piston-base", Feature: feature.Coincident{Ref: "joint2"}},
		{Name: "piston-tip", Feature: feature.At(ScaraWrist, 0, 0, h+s.PistonLength)},
		{Name: "plate", Feature: s.plate()},
	}
}

func (s *Scara) plate() feature.PhaseCircle {
	return feature.PhaseCircle{
		Anchor:       ScaraWrist,
		Center:       r3.Vec{Z: s.BaseHeight + s.PistonLength},
		Radius:       s.PlateRadius,
		Samples:      s.PlateSamples,
		PhaseJoint:   ScaraWrist,
		WorldAligned: true,
	}
}

// Evaluate computes poses and features for one configuration, including
// the plate's reference mark as feature "plate-marker".
func (s *Scara) Evaluate(q chain.Configuration) ([]feature.Result, error) {
	poses, err := chain.ComputePoses(s.chain, q)
	if err != nil {
		return nil, err
	}
	return s.Derive(poses, q)
}

// Derive extracts the features of Evaluate from poses already computed
// for q.
func (s *Scara) Derive(poses []dhchain.Pose, q chain.Configuration) ([]feature.Result, error) {
	results, err := s.Features().Extract(poses, q)
	if err != nil {
		return nil, err
	}
	m, err := s.plate().Marker(poses, q)
	if err != nil {
		return nil, err
	}
	return append(results, feature.Result{Name: "plate-marker", Points: []r3.Vec{m}}), nil
}

// Motion is the demonstration move: with θ1 held, the bar retracts from
// BarMax to BarMin while θ2 turns from 0 to theta2Final and the wrist from
// 0 to theta3Total, in frames samples.
func (s *Scara) Motion(theta1 float64, frames int, theta2Final, theta3Total float64) (trajectory.Trajectory, error) {
	if frames < 2 {
		return trajectory.Trajectory{}, fmt.Errorf("%w: %d frames", trajectory.ErrInvalidStepCount, frames)
	}
	return trajectory.Interpolate(
		s.Configuration(theta1, 0, s.BarMax, 0),
		s.Configuration(theta1, theta2Final, s.BarMin, theta3Total),
		frames-1,
	)
}
