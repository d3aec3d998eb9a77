package geometry

import "github.com/funnsam/termray/pkg/core"

// Epsilon is the smallest ray parameter accepted as a valid hit. It keeps a
// bounced ray from re-intersecting the surface it just left.
const Epsilon = 0.001

// HitInfo contains information about a ray-shape intersection
type HitInfo struct {
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Unit surface normal at intersection
	T      float64   // Parameter t along the ray
}

// NoHit returns the sentinel reported when a ray misses a shape
func NoHit() HitInfo {
	return HitInfo{T: -1}
}

// Valid reports whether the hit lies far enough in front of the ray origin
func (h HitInfo) Valid() bool {
	return h.T > Epsilon
}

// Shape interface for objects that can be hit by rays.
// A miss is reported through a non-positive T rather than an error.
type Shape interface {
	TryRay(ray core.Ray) HitInfo
}
