package dhchain

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func vecNear(t *testing.T, want, got r3.Vec, eps float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x of %v vs %v", want, got)
	assert.InDelta(t, want.Y, got.Y, eps, "y of %v vs %v", want, got)
	assert.InDelta(t, want.Z, got.Z, eps, "z of %v vs %v", want, got)
}

func TestIdentity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v := r3.Vec{X: 1, Y: -2, Z: 3}
	assert.Equal(t, v, Identity().Transform(v))
	assert.True(t, Identity().IsOrthonormal(tol))
}

func TestTranslationAndRotation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	T := Translation(r3.Vec{X: -1, Y: -1})
	vecNear(t, r3.Vec{}, T.Transform(r3.Vec{X: 1, Y: 1}), tol)
	vecNear(t, r3.Vec{Y: 1}, RotZ(90).Transform(r3.Vec{X: 1}), tol)
	vecNear(t, r3.Vec{Z: 1}, RotX(90).Transform(r3.Vec{Y: 1}), tol)
	vecNear(t, r3.Vec{X: 1}, RotY(90).Transform(r3.Vec{Z: 1}), tol)
}

func TestDHIsOrthonormal(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(4711))
	for i := 0; i < 500; i++ {
		theta := rnd.Float64()*720 - 360
		alpha := rnd.Float64()*720 - 360
		d := rnd.Float64()*2000 - 1000
		a := rnd.Float64()*2000 - 1000
		T := DH(theta, d, a, alpha)
		if !T.IsOrthonormal(tol) {
			t.Fatalf("DH(%g,%g,%g,%g) not orthonormal: %v", theta, d, a, alpha, T)
		}
		require.InDelta(t, 1.0, T.Det(), tol)
	}
}

func TestDHFactorization(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := Params{Theta: 33, D: 12.5, A: 7, Alpha: -71}
	want := Product(RotZ(p.Theta), Translation(r3.Vec{Z: p.D}),
		Translation(r3.Vec{X: p.A}), RotX(p.Alpha))
	got := p.Transform()
	assert.True(t, got.Equal(want, tol), "DH = %v, Rz·Tz·Tx·Rx = %v", got, want)
}

func TestDHPlanarLink(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	T := DH(90, 0, 15, 0)
	vecNear(t, r3.Vec{Y: 15}, T.Origin(), tol)
	vecNear(t, r3.Vec{X: -1}, T.Axis(1), tol)
}

func TestDHPropagatesNaN(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	T := DH(math.NaN(), 0, 1, 0)
	assert.True(t, math.IsNaN(T.At(0, 0)))
	assert.True(t, math.IsNaN(T.Origin().X))
	assert.Equal(t, 1.0, T.At(3, 3))
	T = DH(0, math.Inf(1), 0, 0)
	assert.True(t, math.IsInf(T.Origin().Z, 1))
	assert.False(t, Params{D: math.Inf(1)}.IsFinite())
}

func TestComposeIsNotCommutative(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := DH(30, 0, 10, 0)
	b := DH(0, 5, 0, 90)
	assert.False(t, a.Compose(b).Equal(b.Compose(a), tol))
	assert.True(t, Identity().Compose(a).Equal(a, 0))
	assert.True(t, a.Compose(Identity()).Equal(a, 0))
}

func TestInverse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	T := Product(DH(12, 3, 4, 90), DH(-40, 0, 8, -30))
	assert.True(t, T.Compose(T.Inverse()).Equal(Identity(), tol))
	assert.True(t, T.Inverse().Compose(T).Equal(Identity(), tol))
}

func TestOrientationMatchesRotationBlock(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(815))
	v := r3.Vec{X: 0.3, Y: -1.2, Z: 2}
	for i := 0; i < 200; i++ {
		T := DH(rnd.Float64()*360, 0, 1, rnd.Float64()*360-180)
		rot := T.Orientation()
		vecNear(t, T.Rotation().MulVec(v), rot.Rotate(v), 1e-9)
	}
	// a 180° turn exercises the non-positive trace branches
	vecNear(t, r3.Vec{X: -1}, RotZ(180).Orientation().Rotate(r3.Vec{X: 1}), 1e-9)
	vecNear(t, r3.Vec{Y: -1}, RotX(180).Orientation().Rotate(r3.Vec{Y: 1}), 1e-9)
	vecNear(t, r3.Vec{Z: -1}, RotY(180).Orientation().Rotate(r3.Vec{Z: 1}), 1e-9)
}

func TestHomogeneous(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	v := r3.Vec{X: 1, Y: 2, Z: 3}
	h := ToHomogeneous(v)
	assert.Equal(t, [4]float64{1, 2, 3, 1}, h)
	assert.Equal(t, v, FromHomogeneous([4]float64{2, 4, 6, 2}))
	assert.Equal(t, P(1, 2), XY(v))
	assert.Equal(t, P(1, 3), XZ(v))
	inf := FromHomogeneous([4]float64{1, 0, -1, 0})
	assert.True(t, math.IsInf(inf.X, 1))
	assert.True(t, math.IsNaN(inf.Y))
	assert.True(t, math.IsInf(inf.Z, -1))
}

// The matrix of a planar revolute link, turned by 90 degrees.
func ExampleDH() {
	T := DH(90, 0, 10, 0)
	o := T.Origin()
	fmt.Printf("origin = (%.1f, %.1f, %.1f)\n", Zap(o.X), Zap(o.Y), Zap(o.Z))
	// Output: origin = (0.0, 10.0, 0.0)
}
