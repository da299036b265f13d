package dhchain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// === Homogeneous Transforms ================================================

// Pose is a homogeneous transform, a matrix type used for mapping points
// from a local frame to its parent frame (or the world). It is a 4x4 matrix,
// flattened by rows, with a last row of (0,0,0,1).
//
// Pose is a value type: operations return new poses and never change
// their arguments.
type Pose [16]float64

func (m Pose) get(row, col int) float64 {
	return m[row*4+col]
}

func (m *Pose) set(row, col int, value float64) {
	m[row*4+col] = value
}

func (m Pose) row(row int) [4]float64 {
	return [4]float64{m[row*4], m[row*4+1], m[row*4+2], m[row*4+3]}
}

func (m Pose) col(col int) [4]float64 {
	return [4]float64{m[col], m[4+col], m[8+col], m[12+col]}
}

// At returns the matrix element at (row, col), both in [0,3].
func (m Pose) At(row, col int) float64 {
	return m.get(row, col)
}

// Identity transform. Will transform a point onto itself.
func Identity() Pose {
	var m Pose
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	m.set(3, 3, 1.0)
	return m
}

// Translation transform. Translate a point by v.
func Translation(v r3.Vec) Pose {
	m := Identity()
	m.set(0, 3, v.X)
	m.set(1, 3, v.Y)
	m.set(2, 3, v.Z)
	return m
}

// RotX is a rotation around the X axis. Argument is in degrees.
func RotX(deg float64) Pose {
	m := Identity()
	sin, cos := Sind(deg), Cosd(deg)
	m.set(1, 1, cos)
	m.set(1, 2, -sin)
	m.set(2, 1, sin)
	m.set(2, 2, cos)
	return m
}

// RotY is a rotation around the Y axis. Argument is in degrees.
func RotY(deg float64) Pose {
	m := Identity()
	sin, cos := Sind(deg), Cosd(deg)
	m.set(0, 0, cos)
	m.set(0, 2, sin)
	m.set(2, 0, -sin)
	m.set(2, 2, cos)
	return m
}

// RotZ is a rotation around the Z axis. Argument is in degrees.
func RotZ(deg float64) Pose {
	m := Identity()
	sin, cos := Sind(deg), Cosd(deg)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	return m
}

// Debug Stringer for a pose, one bracketed row after the other.
func (m Pose) String() string {
	return fmt.Sprintf("[%g,%g,%g,%g|%g,%g,%g,%g|%g,%g,%g,%g|%g,%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7],
		m[8], m[9], m[10], m[11], m[12], m[13], m[14], m[15])
}

func dotProd(vec1, vec2 [4]float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2] + vec1[3]*vec2[3]
}

// Compose returns the matrix product m·n, i.e. n expressed in the frame m
// maps to. This is the rule for chaining a child frame onto its parent.
// Neither m nor n is changed.
func (m Pose) Compose(n Pose) Pose {
	var o Pose
	for row := 0; row < 4; row++ {
		r := m.row(row)
		for col := 0; col < 4; col++ {
			o.set(row, col, dotProd(r, n.col(col)))
		}
	}
	return o
}

// Product composes a sequence of transforms left to right. An empty
// sequence yields the identity.
func Product(ts ...Pose) Pose {
	p := Identity()
	for _, t := range ts {
		p = p.Compose(t)
	}
	return p
}

// Transform maps a point given in local coordinates to the parent frame.
// The point is extended by an implicit homogeneous 1.
func (m Pose) Transform(v r3.Vec) r3.Vec {
	h := ToHomogeneous(v)
	return r3.Vec{
		X: dotProd(m.row(0), h),
		Y: dotProd(m.row(1), h),
		Z: dotProd(m.row(2), h),
	}
}

// Origin is the translation part of the pose, i.e. where the local
// origin lies in the parent frame.
func (m Pose) Origin() r3.Vec {
	return r3.Vec{X: m.get(0, 3), Y: m.get(1, 3), Z: m.get(2, 3)}
}

// Rotation returns a copy of the 3x3 orientation block.
func (m Pose) Rotation() *r3.Mat {
	return r3.NewMat([]float64{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	})
}

// Axis returns column i (0=X, 1=Y, 2=Z) of the orientation block, i.e. the
// direction of a local axis in the parent frame.
func (m Pose) Axis(i int) r3.Vec {
	c := m.col(i)
	return r3.Vec{X: c[0], Y: c[1], Z: c[2]}
}

// Det is the determinant of the orientation block. It is +1 for proper
// rigid transforms.
func (m Pose) Det() float64 {
	return m.Rotation().Det()
}

// IsOrthonormal checks R·Rᵗ = I within tolerance tol and det(R) = +1,
// with R the orientation block. It also checks the last row.
func (m Pose) IsOrthonormal(tol float64) bool {
	r := m.Rotation()
	var rrt r3.Mat
	rrt.Mul(r, r.T())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(rrt.At(i, j)-want) > tol {
				return false
			}
		}
	}
	if math.Abs(r.Det()-1) > tol {
		return false
	}
	return m[12] == 0 && m[13] == 0 && m[14] == 0 && m[15] == 1
}

// Equal compares two poses element-wise within tolerance tol.
func (m Pose) Equal(n Pose, tol float64) bool {
	for i := range m {
		if math.Abs(m[i]-n[i]) > tol {
			return false
		}
	}
	return true
}

// Inverse returns the inverse of a rigid transform, (Rᵗ, −Rᵗ·t).
// It assumes m is orthonormal.
func (m Pose) Inverse() Pose {
	var inv Pose
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv.set(i, j, m.get(j, i))
		}
	}
	t := m.Origin()
	for i := 0; i < 3; i++ {
		inv.set(i, 3, -(inv.get(i, 0)*t.X + inv.get(i, 1)*t.Y + inv.get(i, 2)*t.Z))
	}
	inv.set(3, 3, 1)
	return inv
}

// Orientation converts the orientation block to a unit quaternion
// rotation (Shepperd's method).
func (m Pose) Orientation() r3.Rotation {
	r00, r01, r02 := m.get(0, 0), m.get(0, 1), m.get(0, 2)
	r10, r11, r12 := m.get(1, 0), m.get(1, 1), m.get(1, 2)
	r20, r21, r22 := m.get(2, 0), m.get(2, 1), m.get(2, 2)
	var q quat.Number
	switch tr := r00 + r11 + r22; {
	case tr > 0:
		s := 2 * math.Sqrt(tr+1)
		q = quat.Number{Real: s / 4, Imag: (r21 - r12) / s, Jmag: (r02 - r20) / s, Kmag: (r10 - r01) / s}
	case r00 > r11 && r00 > r22:
		s := 2 * math.Sqrt(1+r00-r11-r22)
		q = quat.Number{Real: (r21 - r12) / s, Imag: s / 4, Jmag: (r01 + r10) / s, Kmag: (r02 + r20) / s}
	case r11 > r22:
		s := 2 * math.Sqrt(1+r11-r00-r22)
		q = quat.Number{Real: (r02 - r20) / s, Imag: (r01 + r10) / s, Jmag: s / 4, Kmag: (r12 + r21) / s}
	default:
		s := 2 * math.Sqrt(1+r22-r00-r11)
		q = quat.Number{Real: (r10 - r01) / s, Imag: (r02 + r20) / s, Jmag: (r12 + r21) / s, Kmag: s / 4}
	}
	if l := quat.Abs(q); l != 0 && l != 1 {
		q = quat.Scale(1/l, q)
	}
	return r3.Rotation(q)
}

// ToHomogeneous extends a point [x,y,z] to [x,y,z,1].
func ToHomogeneous(v r3.Vec) [4]float64 {
	return [4]float64{v.X, v.Y, v.Z, 1}
}

// FromHomogeneous converts [x,y,z,w] back to [x/w,y/w,z/w].
// For w = 0 the components are infinite or NaN.
func FromHomogeneous(h [4]float64) r3.Vec {
	if h[3] == 0 {
		tracer().Errorf("homogeneous point %v lies at infinity", h)
	}
	return r3.Vec{X: h[0] / h[3], Y: h[1] / h[3], Z: h[2] / h[3]}
}

// XY projects a world point onto the floor plane.
func XY(v r3.Vec) Pair {
	return P(v.X, v.Y)
}

// XZ projects a world point onto the upright X–Z plane.
func XZ(v r3.Vec) Pair {
	return P(v.X, v.Z)
}
