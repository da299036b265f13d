package trajectory

import (
	"fmt"
	"iter"

	"github.com/npillmayer/dhchain/chain"
	"github.com/npillmayer/dhchain/feature"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sequence is a motion composed of consecutive trajectories. Where a
// segment starts exactly at the end of its predecessor, the duplicate
// junction sample is dropped.
type Sequence []Trajectory

// Then creates a sequence from trajectories of equal dimension.
func Then(segments ...Trajectory) (Sequence, error) {
	for i := 1; i < len(segments); i++ {
		if len(segments[i].start) != len(segments[0].start) {
			return nil, fmt.Errorf("%w: segment %d has %d values, segment 0 has %d",
				ErrDimensionMismatch, i, len(segments[i].start), len(segments[0].start))
		}
	}
	return Sequence(segments), nil
}

// Staged moves from start to end one joint at a time, in joint order.
// Each moving joint takes steps steps while all others hold still; joints
// which do not move are skipped.
func Staged(start, end chain.Configuration, steps int) (Sequence, error) {
	if len(start) != len(end) {
		return nil, fmt.Errorf("%w: start has %d values, end has %d", ErrDimensionMismatch, len(start), len(end))
	}
	var seq Sequence
	from := start.Clone()
	for j := range start {
		if start[j] == end[j] {
			continue
		}
		to := from.Clone()
		to[j] = end[j]
		tr, err := Interpolate(from, to, steps)
		if err != nil {
			return nil, err
		}
		seq = append(seq, tr)
		from = to
	}
	if len(seq) == 0 { // nothing moves
		tr, err := Interpolate(start, end, steps)
		if err != nil {
			return nil, err
		}
		seq = append(seq, tr)
	}
	tracer().Debugf("staged motion in %d segments", len(seq))
	return seq, nil
}

func (seq Sequence) skipFirst(k int) bool {
	return k > 0 && seq[k].start.Equal(seq[k-1].end, 0)
}

// Len is the total number of samples.
func (seq Sequence) Len() int {
	n := 0
	for k, tr := range seq {
		n += tr.Len()
		if seq.skipFirst(k) {
			n--
		}
	}
	return n
}

// All iterates over the samples of all segments, numbered consecutively.
func (seq Sequence) All() iter.Seq2[int, chain.Configuration] {
	return func(yield func(int, chain.Configuration) bool) {
		n := 0
		for k, tr := range seq {
			for i, q := range tr.All() {
				if i == 0 && seq.skipFirst(k) {
					continue
				}
				if !yield(n, q) {
					return
				}
				n++
			}
		}
	}
}

// Motion is anything producing a sequence of configurations, i.e. a
// Trajectory or a Sequence.
type Motion interface {
	All() iter.Seq2[int, chain.Configuration]
}

var _ Motion = Trajectory{}
var _ Motion = Sequence{}

// Sweep traces the world origin of frame anchor along a motion, the path
// an end effector draws.
// It stops with an error at the first sample the chain cannot evaluate.
func Sweep(c *chain.Chain, m Motion, anchor int) iter.Seq2[r3.Vec, error] {
	return func(yield func(r3.Vec, error) bool) {
		if anchor < 0 || anchor >= c.Len() {
			yield(r3.Vec{}, fmt.Errorf("%w: sweep anchor %d, chain has %d joints",
				feature.ErrIndexOutOfRange, anchor, c.Len()))
			return
		}
		for _, q := range m.All() {
			poses, err := chain.ComputePoses(c, q)
			if err != nil {
				yield(r3.Vec{}, err)
				return
			}
			if !yield(poses[anchor].Origin(), nil) {
				return
			}
		}
	}
}

// Trace collects a sweep into a polyline.
func Trace(c *chain.Chain, m Motion, anchor int) ([]r3.Vec, error) {
	var pts []r3.Vec
	for p, err := range Sweep(c, m, anchor) {
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}
