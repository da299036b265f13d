package dhchain

// DH builds the standard Denavit–Hartenberg transform between two
// consecutive joint frames,
//
//	T = Rz(θ) · Tz(d) · Tx(a) · Rx(α)
//
// which, written out, is
//
//	⎡cosθ  −cosα·sinθ   sinα·sinθ  a·cosθ⎤
//	⎢sinθ   cosα·cosθ  −sinα·cosθ  a·sinθ⎥
//	⎢0      sinα        cosα       d     ⎥
//	⎣0      0           0          1     ⎦
//
// Angles θ and α are in degrees. There are no error conditions: NaN or ±Inf
// arguments simply propagate into the result.
func DH(theta, d, a, alpha float64) Pose {
	st, ct := Sind(theta), Cosd(theta)
	sa, ca := Sind(alpha), Cosd(alpha)
	return Pose{
		ct, -ca * st, sa * st, a * ct,
		st, ca * ct, -sa * ct, a * st,
		0, sa, ca, d,
		0, 0, 0, 1,
	}
}

// Params is a complete Denavit–Hartenberg quadruple. Angles are in degrees.
type Params struct {
	Theta float64 // rotation about the previous z axis
	D     float64 // offset along the previous z axis
	A     float64 // link length along the new x axis
	Alpha float64 // link twist about the new x axis
}

// Transform builds the DH transform for a quadruple.
func (p Params) Transform() Pose {
	return DH(p.Theta, p.D, p.A, p.Alpha)
}

// IsFinite is a predicate: are all four parameters finite numbers?
func (p Params) IsFinite() bool {
	return IsFinite(p.Theta) && IsFinite(p.D) && IsFinite(p.A) && IsFinite(p.Alpha)
}
