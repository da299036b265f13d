package chain

import (
	"fmt"
	"strings"

	"github.com/npillmayer/dhchain"
)

// JointType tells which Denavit–Hartenberg parameter of a joint is driven.
type JointType int8

const (
	// Revolute joints drive θ; d, a and α are fixed.
	Revolute JointType = iota
	// Prismatic joints drive d; θ, a and α are fixed.
	Prismatic
)

func (jt JointType) String() string {
	switch jt {
	case Revolute:
		return "revolute"
	case Prismatic:
		return "prismatic"
	}
	return fmt.Sprintf("JointType(%d)", int8(jt))
}

// ParseJointType recognizes "revolute"/"R" and "prismatic"/"P",
// case-insensitively.
func ParseJointType(s string) (JointType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "revolute", "r", "rotational":
		return Revolute, nil
	case "prismatic", "p", "linear":
		return Prismatic, nil
	}
	return Revolute, fmt.Errorf("%w: %q", ErrUnknownJointType, s)
}

// Joint is one link's kinematic descriptor. Of the four DH parameters the
// one selected by Type is driven at evaluation time; whatever value the
// descriptor holds for it is ignored. Angles are in degrees.
type Joint struct {
	Name  string
	Type  JointType
	Theta float64
	D     float64
	A     float64
	Alpha float64
}

// R creates a revolute joint with fixed offset d, link length a and twist α.
func R(d, a, alpha float64) Joint {
	return Joint{Type: Revolute, D: d, A: a, Alpha: alpha}
}

// P creates a prismatic joint with fixed angle θ, link length a and twist α.
func P(theta, a, alpha float64) Joint {
	return Joint{Type: Prismatic, Theta: theta, A: a, Alpha: alpha}
}

// Named returns a copy of j carrying a name. Part of builder functionality.
func (j Joint) Named(name string) Joint {
	j.Name = name
	return j
}

// Params assembles the full DH quadruple for this joint by substituting
// the driven value q.
func (j Joint) Params(q float64) dhchain.Params {
	p := dhchain.Params{Theta: j.Theta, D: j.D, A: j.A, Alpha: j.Alpha}
	switch j.Type {
	case Revolute:
		p.Theta = q
	case Prismatic:
		p.D = q
	}
	return p
}

// Transform is the parent-relative transform of this joint for driven
// value q.
func (j Joint) Transform(q float64) dhchain.Pose {
	return j.Params(q).Transform()
}

// fixed reports the three non-driven parameters, in DH order.
func (j Joint) fixed() []float64 {
	if j.Type == Prismatic {
		return []float64{j.Theta, j.A, j.Alpha}
	}
	return []float64{j.D, j.A, j.Alpha}
}

func (j Joint) validate(i int) error {
	if j.Type != Revolute && j.Type != Prismatic {
		return fmt.Errorf("%w: joint %d has type %v", ErrUnknownJointType, i, j.Type)
	}
	for _, v := range j.fixed() {
		if !dhchain.IsFinite(v) {
			return fmt.Errorf("%w: joint %d (%s) has fixed parameter %g", ErrInvalidParameter, i, j, v)
		}
	}
	return nil
}

func (j Joint) String() string {
	name := j.Name
	if name == "" {
		name = j.Type.String()
	}
	switch j.Type {
	case Prismatic:
		return fmt.Sprintf("%s[θ=%g d=* a=%g α=%g]", name, j.Theta, j.A, j.Alpha)
	default:
		return fmt.Sprintf("%s[θ=* d=%g a=%g α=%g]", name, j.D, j.A, j.Alpha)
	}
}
