package robots

import (
	"fmt"
	"math"
	"testing"

	"github.com/npillmayer/dhchain"
	"github.com/npillmayer/dhchain/chain"
	"github.com/npillmayer/dhchain/feature"
	"github.com/npillmayer/dhchain/trajectory"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func vecNear(t *testing.T, want, got r3.Vec, eps float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x of %v vs %v", want, got)
	assert.InDelta(t, want.Y, got.Y, eps, "y of %v vs %v", want, got)
	assert.InDelta(t, want.Z, got.Z, eps, "z of %v vs %v", want, got)
}

func point(t *testing.T, results []feature.Result, name string) r3.Vec {
	t.Helper()
	pts, ok := feature.Lookup(results, name)
	require.True(t, ok, "feature %q missing", name)
	require.Len(t, pts, 1)
	return pts[0]
}

func TestPlanar2R(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	arm := Planar2R(15, 10)
	q := chain.Configuration{101.518221, 100.1785133}
	// hand-written link matrices, rotation about z and translation by L·(cos, sin)
	link := func(theta, l float64) dhchain.Pose {
		return dhchain.Translation(r3.Vec{X: l * dhchain.Cosd(theta), Y: l * dhchain.Sind(theta)}).Compose(dhchain.RotZ(theta))
	}
	want := link(q[0], 15).Compose(link(q[1], 10))
	tip, err := chain.EndPose(arm, q)
	require.NoError(t, err)
	assert.True(t, tip.Equal(want, 1e-9), "tip %v, want %v", tip, want)
	// elbow-down solution for target (10, 15)
	tip, err = chain.EndPose(arm, chain.Configuration{90, -90})
	require.NoError(t, err)
	vecNear(t, r3.Vec{X: 10, Y: 15}, tip.Origin(), 1e-9)
}

func TestSphericalMatchesRotationProduct(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const l1, l2 = 15.0, 13.0
	arm := Spherical(l1, l2)
	for _, a := range [][3]float64{
		{56.31, -20.946833, 92.93429754},
		{0, 0, 0},
		{-120, 45, -30},
	} {
		T1 := dhchain.Product(dhchain.RotZ(a[0]), dhchain.RotY(a[1]), dhchain.Translation(r3.Vec{X: l1}))
		T2 := dhchain.Product(T1, dhchain.RotY(-a[2]), dhchain.Translation(r3.Vec{X: l2}))
		poses, err := chain.ComputePoses(arm, SphericalConfiguration(a[0], a[1], a[2]))
		require.NoError(t, err)
		vecNear(t, r3.Vec{}, poses[0].Origin(), 1e-12)
		vecNear(t, T1.Origin(), poses[1].Origin(), 1e-9)
		vecNear(t, T2.Origin(), poses[2].Origin(), 1e-9)
	}
}

// scaraScript evaluates the SCARA geometry with explicit link matrices.
func scaraScript(p ScaraParams, theta1, theta2, bar, theta3 float64) (p1, p2, top, marker r3.Vec) {
	T01 := dhchain.DH(theta1, 0, p.A1, 0)
	T12 := dhchain.DH(theta2, p.ArmOffsetZ+bar-p.BaseHeight, p.A2, 0)
	T23 := dhchain.DH(theta3, 0, 0, 0)
	T02 := T01.Compose(T12)
	T03 := T02.Compose(T23)
	p1 = T01.Transform(r3.Vec{Z: p.BaseHeight})
	p2 = T02.Transform(r3.Vec{Z: p.BaseHeight})
	top = T03.Transform(r3.Vec{Z: p.BaseHeight + p.PistonLength})
	marker = r3.Add(top, r3.Vec{X: p.PlateRadius * dhchain.Cosd(theta3), Y: p.PlateRadius * dhchain.Sind(theta3)})
	return
}

func TestScaraMatchesLinkMatrices(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewScara(DefaultScara())
	require.NoError(t, err)
	for _, c := range [][4]float64{
		{30, 0, 880, 0},
		{30, 45, 650, 180},
		{-75, 90, 418.5, 360},
		{12.5, -33, 700, 271},
	} {
		q := s.Configuration(c[0], c[1], c[2], c[3])
		results, err := s.Evaluate(q)
		require.NoError(t, err)
		p1, p2, top, marker := scaraScript(s.ScaraParams, c[0], c[1], c[2], c[3])
		vecNear(t, r3.Vec{}, point(t, results, "base"), 0)
		vecNear(t, r3.Vec{Z: 776}, point(t, results, "column"), 0)
		vecNear(t, p1, point(t, results, "joint1"), 1e-9)
		vecNear(t, p2, point(t, results, "joint2"), 1e-9)
		vecNear(t, top, point(t, results, "piston-tip"), 1e-9)
		vecNear(t, marker, point(t, results, "plate-marker"), 1e-9)
		// the piston never leaves the elbow joint
		assert.Equal(t, point(t, results, "joint2"), point(t, results, "piston-base"))
		// the piston does not change its length
		assert.InDelta(t, 322.0, r3.Norm(r3.Sub(top, point(t, results, "piston-base"))), 1e-9)
		plate, ok := feature.Lookup(results, "plate")
		require.True(t, ok)
		require.Len(t, plate, 60)
		for _, p := range plate {
			assert.InDelta(t, 100.0, r3.Norm(r3.Sub(p, top)), 1e-9)
			assert.InDelta(t, top.Z, p.Z, 1e-9, "plate is horizontal")
		}
	}
}

func TestScaraDeriveFromPoses(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewScara(DefaultScara())
	require.NoError(t, err)
	q := s.Configuration(-20, 35, 700, 90)
	poses, err := chain.ComputePoses(s.Chain(), q)
	require.NoError(t, err)
	derived, err := s.Derive(poses, q)
	require.NoError(t, err)
	evaluated, err := s.Evaluate(q)
	require.NoError(t, err)
	assert.Equal(t, evaluated, derived)
	_, err = s.Derive(poses[:2], q)
	assert.ErrorIs(t, err, feature.ErrIndexOutOfRange)
}

func TestScaraStroke(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := NewScara(DefaultScara())
	require.NoError(t, err)
	assert.Equal(t, 880.0-40-776, s.Stroke(880))
	assert.Equal(t, "RPRR", s.Chain().Types())
	q := s.Configuration(1, 2, 776+40, 3)
	assert.Equal(t, chain.Configuration{1, 0, 2, 3}, q)
	p := DefaultScara()
	p.A1 = math.Inf(1)
	_, err = NewScara(p)
	assert.ErrorIs(t, err, chain.ErrInvalidParameter)
}

func TestScaraMotion(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultScara()
	p.BarMin, p.BarMax = p.BarMax, p.BarMin // swapped limits are accepted
	s, err := NewScara(p)
	require.NoError(t, err)
	tr, err := s.Motion(30, 240, 90, 360)
	require.NoError(t, err)
	assert.Equal(t, 240, tr.Len())
	assert.Equal(t, s.Configuration(30, 0, 880, 0), tr.At(0))
	assert.Equal(t, s.Configuration(30, 90, 418.5, 360), tr.At(239))
	// sample i matches evenly spaced bar lengths and angles
	const i = 100
	frac := float64(i) / 239
	want := s.Configuration(30, 90*frac, 880+(418.5-880)*frac, 360*frac)
	assert.True(t, tr.At(i).Equal(want, 1e-9), "sample %d = %v, want %v", i, tr.At(i), want)
	for _, q := range tr.All() {
		_, err := s.Evaluate(q)
		require.NoError(t, err)
	}
	_, err = s.Motion(30, 1, 90, 360)
	assert.ErrorIs(t, err, trajectory.ErrInvalidStepCount)
}

// Joint positions of a SCARA arm at its home position.
func ExampleScara() {
	s, _ := NewScara(DefaultScara())
	results, _ := s.Evaluate(s.Configuration(0, 0, 880, 0))
	for _, name := range []string{"joint1", "joint2", "piston-tip"} {
		pts, _ := feature.Lookup(results, name)
		fmt.Printf("%-10s (%.1f, %.1f, %.1f)\n", name, dhchain.Zap(pts[0].X), dhchain.Zap(pts[0].Y), dhchain.Zap(pts[0].Z))
	}
	// Output:
	// joint1     (715.0, 0.0, 776.0)
	// joint2     (1565.0, 0.0, 840.0)
	// piston-tip (1565.0, 0.0, 1162.0)
}
