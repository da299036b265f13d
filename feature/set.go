package feature

import (
	"fmt"
	"slices"

	"github.com/npillmayer/dhchain"
	"github.com/npillmayer/dhchain/chain"
	"gonum.org/v1/gonum/spatial/r3"
)

// Named is a feature with a name.
type Named struct {
	Name    string
	Feature Feature
}

// Set is an ordered collection of named features, e.g. all the auxiliary
// geometry of one robot.
type Set []Named

// Result holds the world points of one named feature.
type Result struct {
	Name   string
	Points []r3.Vec
}

// Extract evaluates all features in order. A Coincident feature with a
// reference receives a copy of the point of the named, earlier feature.
func (s Set) Extract(poses []dhchain.Pose, q chain.Configuration) ([]Result, error) {
	results := make([]Result, 0, len(s))
	for _, nf := range s {
		var pts []r3.Vec
		var err error
		if c, ok := nf.Feature.(Coincident); ok && c.Ref != "" {
			pts, err = resolve(results, c.Ref)
		} else {
			pts, err = Extract(nf.Feature, poses, q)
		}
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", nf.Name, err)
		}
		tracer().Debugf("feature %q: %d point(s)", nf.Name, len(pts))
		results = append(results, Result{Name: nf.Name, Points: pts})
	}
	return results, nil
}

func resolve(results []Result, ref string) ([]r3.Vec, error) {
	i := slices.IndexFunc(results, func(r Result) bool { return r.Name == ref })
	if i < 0 {
		return nil, fmt.Errorf("%w: no earlier feature named %q", ErrInvalidFeature, ref)
	}
	if len(results[i].Points) != 1 {
		return nil, fmt.Errorf("%w: feature %q is not a point", ErrInvalidFeature, ref)
	}
	return []r3.Vec{results[i].Points[0]}, nil
}

// Lookup finds the points of a named feature in a result list.
func Lookup(results []Result, name string) ([]r3.Vec, bool) {
	for _, r := range results {
		if r.Name == name {
			return r.Points, true
		}
	}
	return nil, false
}
