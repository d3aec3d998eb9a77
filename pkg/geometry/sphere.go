package geometry

import (
	"math"

	"github.com/funnsam/termray/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// TryRay intersects the ray with the sphere and returns the nearer root.
// The root is not checked against the ray origin, so it may be negative;
// callers reject it through HitInfo.Valid.
func (s *Sphere) TryRay(ray core.Ray) HitInfo {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return NoHit()
	}

	t := (-b - math.Sqrt(discriminant)) / (2 * a)
	point := ray.At(t)
	return HitInfo{
		Point:  point,
		Normal: point.Subtract(s.Center).Divide(s.Radius),
		T:      t,
	}
}
