package chain

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Description is the serializable form of a chain, as found in chain
// description files:
//
//	name: planar-2r
//	joints:
//	  - type: revolute
//	    fixed_params: { d: 0, a: 15, alpha: 0 }
//	  - type: revolute
//	    fixed_params: { d: 0, a: 10, alpha: 0 }
//
// The driven parameter may be listed in fixed_params; it is ignored.
type Description struct {
	Name   string             `yaml:"name,omitempty" mapstructure:"name"`
	Joints []JointDescription `yaml:"joints" mapstructure:"joints"`
}

// JointDescription is the serializable form of a joint.
type JointDescription struct {
	Name        string             `yaml:"name,omitempty" mapstructure:"name"`
	Type        string             `yaml:"type" mapstructure:"type"`
	FixedParams map[string]float64 `yaml:"fixed_params" mapstructure:"fixed_params"`
}

// Joint converts a description to a joint descriptor.
func (jd JointDescription) Joint() (Joint, error) {
	jt, err := ParseJointType(jd.Type)
	if err != nil {
		return Joint{}, err
	}
	j := Joint{Name: jd.Name, Type: jt}
	seen := make(map[string]string, len(jd.FixedParams))
	for k, v := range jd.FixedParams {
		var name string
		switch strings.ToLower(k) {
		case "theta", "θ":
			name, j.Theta = "theta", v
		case "d":
			name, j.D = "d", v
		case "a":
			name, j.A = "a", v
		case "alpha", "α":
			name, j.Alpha = "alpha", v
		default:
			return Joint{}, fmt.Errorf("%w: unknown fixed parameter %q", ErrInvalidParameter, k)
		}
		if prev, ok := seen[name]; ok {
			return Joint{}, fmt.Errorf("%w: parameter %s given twice, as %q and %q", ErrInvalidParameter, name, prev, k)
		}
		seen[name] = k
	}
	return j, nil
}

// Chain creates a chain from a description.
func (d Description) Chain() (*Chain, error) {
	joints := make([]Joint, len(d.Joints))
	for i, jd := range d.Joints {
		j, err := jd.Joint()
		if err != nil {
			return nil, fmt.Errorf("joint %d: %w", i, err)
		}
		joints[i] = j
	}
	c, err := New(joints...)
	if err != nil {
		return nil, err
	}
	return c.Named(d.Name), nil
}

// Describe returns the serializable form of a chain.
func (c *Chain) Describe() Description {
	d := Description{Name: c.name, Joints: make([]JointDescription, len(c.joints))}
	for i, j := range c.joints {
		jd := JointDescription{Name: j.Name, Type: j.Type.String()}
		switch j.Type {
		case Prismatic:
			jd.FixedParams = map[string]float64{"theta": j.Theta, "a": j.A, "alpha": j.Alpha}
		default:
			jd.FixedParams = map[string]float64{"d": j.D, "a": j.A, "alpha": j.Alpha}
		}
		d.Joints[i] = jd
	}
	return d
}

// FromMap decodes a chain from a generic structure, e.g. a section of a
// larger configuration document. Recognized fields are name and joints,
// per joint name, type and fixed_params.
func FromMap(m map[string]any) (*Chain, error) {
	var d Description
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &d,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("cannot decode chain description: %w", err)
	}
	tracer().Debugf("decoded chain description %q with %d joints", d.Name, len(d.Joints))
	return d.Chain()
}

// Parse reads a chain description in YAML (or JSON) format.
func Parse(data []byte) (*Chain, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("cannot parse chain description: %w", err)
	}
	if m == nil {
		return nil, ErrEmptyChain
	}
	return FromMap(m)
}

// Load reads a chain description file.
func Load(path string) (*Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read chain description: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal writes the chain description in YAML format.
func (c *Chain) Marshal() ([]byte, error) {
	return yaml.Marshal(c.Describe())
}
