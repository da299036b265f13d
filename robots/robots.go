/*
Package robots provides ready-made chains for common arm geometries.

▪︎ Planar2R: two revolute joints turning about parallel vertical axes.

▪︎ Spherical: base yaw followed by shoulder and elbow pitch.

▪︎ Scara: a SCARA arm with a vertical stroke, a wrist rotation and a piston
carrying a round plate.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package robots

import (
	"github.com/npillmayer/dhchain/chain"
)

// Planar2R creates a planar arm with link lengths a1 and a2. Both joints
// turn about the world z axis.
func Planar2R(a1, a2 float64) *chain.Chain {
	return chain.MustNew(
		chain.R(0, a1, 0).Named("shoulder"),
		chain.R(0, a2, 0).Named("elbow"),
	).Named("planar-2r")
}

// Spherical creates an arm with a base yaw joint and two pitch joints,
// upper arm length l1 and forearm length l2. The twist of −90° on the
// base joint turns the following joint axes horizontal.
func Spherical(l1, l2 float64) *chain.Chain {
	return chain.MustNew(
		chain.R(0, 0, -90).Named("yaw"),
		chain.R(0, l1, 0).Named("shoulder"),
		chain.R(0, l2, 0).Named("elbow"),
	).Named("spherical")
}

// SphericalConfiguration converts yaw, shoulder and elbow angles, with
// pitch angles measured as right-handed rotations about the horizontal
// y axis, into a configuration of a Spherical chain. The elbow pitch is
// reported in the opposite sense, so an elbow angle θ bends the forearm
// by −θ about y.
func SphericalConfiguration(yaw, shoulder, elbow float64) chain.Configuration {
	return chain.Configuration{yaw, shoulder, -elbow}
}
