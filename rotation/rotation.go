// Package rotation provides the quaternion and spherical-coordinate helpers
// used to orient the globe.
//
// Screen space is right-handed with X to the right, Y up and Z toward the
// viewer. World space uses the same axes for the unrotated globe: longitude 0
// and latitude 0 face the viewer (+Z), the north pole is +Y.
//
// A globe orientation is a unit quaternion that maps screen-space vectors to
// world-space vectors. All functions in this package are pure: they never
// mutate their arguments.
package rotation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Matrix is a 3x3 rotation matrix in column-major order.
type Matrix = mgl64.Mat3

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

// NorthPole is the world-space unit vector of the geographic north pole.
var NorthPole = r3.Vector{X: 0, Y: 1, Z: 0}

// Identity returns the orientation that shows longitude 0, latitude 0 at the
// center of the globe with north up.
func Identity() mgl64.Quat {
	return mgl64.QuatIdent()
}

// LookAt returns the orientation that centers the globe on (lng, lat),
// in radians, with north up.
func LookAt(lng, lat float64) mgl64.Quat {
	return Orientation(lng, lat, 0)
}

// Orientation returns the orientation that centers the globe on (lng, lat)
// and then rolls the view by roll radians around the line of sight.
// A positive roll moves the north pole to the right of the screen.
func Orientation(lng, lat, roll float64) mgl64.Quat {
	q := mgl64.QuatRotate(lng, axisY).
		Mul(mgl64.QuatRotate(-lat, axisX)).
		Mul(mgl64.QuatRotate(roll, axisZ))
	return q.Normalize()
}

// Rotate returns v rotated by q.
func Rotate(v r3.Vector, q mgl64.Quat) r3.Vector {
	return fromVec3(q.Rotate(toVec3(v)))
}

// Inverse returns v rotated by the inverse of q, mapping a world-space
// vector back into screen space.
func Inverse(v r3.Vector, q mgl64.Quat) r3.Vector {
	return fromVec3(q.Inverse().Rotate(toVec3(v)))
}

// ToMatrix converts q to an equivalent rotation matrix.
// The quaternion is normalized first so slightly drifted inputs still
// produce an orthonormal matrix.
func ToMatrix(q mgl64.Quat) Matrix {
	return q.Normalize().Mat4().Mat3()
}

// Apply returns m * v.
func Apply(m Matrix, v r3.Vector) r3.Vector {
	return fromVec3(m.Mul3x1(toVec3(v)))
}

// Spherical decomposes a world-space vector into longitude and latitude in
// radians. Longitude is in (-π, π], latitude in [-π/2, π/2].
// The vector does not need to be normalized.
func Spherical(v r3.Vector) (lng, lat float64) {
	// s2 puts the pole on +Z and longitude 0 on +X.
	ll := s2.LatLngFromPoint(s2.Point{Vector: r3.Vector{X: v.Z, Y: v.X, Z: v.Y}})
	lng = ll.Lng.Radians()
	if lng <= -math.Pi {
		lng = math.Pi
	}
	return lng, ll.Lat.Radians()
}

// FromSpherical returns the world-space unit vector at (lng, lat) radians.
func FromSpherical(lng, lat float64) r3.Vector {
	sinLat, cosLat := math.Sincos(lat)
	sinLng, cosLng := math.Sincos(lng)
	return r3.Vector{X: cosLat * sinLng, Y: sinLat, Z: cosLat * cosLng}
}

// WrapLongitude maps lng into (-π, π].
func WrapLongitude(lng float64) float64 {
	return s1.Angle(lng).Normalized().Radians()
}

// Distance returns the great-circle distance in radians between two
// (lng, lat) positions.
func Distance(lng1, lat1, lng2, lat2 float64) float64 {
	a := s2.LatLng{Lat: s1.Angle(lat1), Lng: s1.Angle(lng1)}
	b := s2.LatLng{Lat: s1.Angle(lat2), Lng: s1.Angle(lng2)}
	return a.Distance(b).Radians()
}

func toVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
