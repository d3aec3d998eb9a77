package geometry

import (
	"github.com/funnsam/termray/pkg/core"
)

// determinantEpsilon rejects rays (nearly) parallel to the triangle plane.
// It is relative to |d||edge1||edge2|, so it holds at any model scale.
const determinantEpsilon = 1e-8

// Triangle is a one-sided triangle. Its front face is the side from which
// V0, V1, V2 appear counter-clockwise.
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	Normals    *[3]core.Vec3 // Optional per-vertex normals for smooth shading
	normal     core.Vec3     // Cached face normal
}

// NewTriangle creates a flat-shaded triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2}
	t.computeNormal()
	return t
}

// NewSmoothTriangle creates a triangle whose normal is interpolated from
// the given vertex normals
func NewSmoothTriangle(v0, v1, v2, n0, n1, n2 core.Vec3) *Triangle {
	t := NewTriangle(v0, v1, v2)
	t.Normals = &[3]core.Vec3{n0.Normalize(), n1.Normalize(), n2.Normalize()}
	return t
}

// computeNormal calculates and caches the triangle's face normal
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

// TryRay tests the ray against the triangle using the Möller-Trumbore algorithm.
// Rays reaching the back face are rejected.
func (t *Triangle) TryRay(ray core.Ray) HitInfo {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// Back face, parallel or degenerate
	scale := ray.Direction.Length() * edge1.Length() * edge2.Length()
	if det <= determinantEpsilon*scale {
		return NoHit()
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return NoHit()
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return NoHit()
	}

	tParam := f * edge2.Dot(q)
	return HitInfo{
		Point:  ray.At(tParam),
		Normal: t.NormalAt(u, v),
		T:      tParam,
	}
}

// NormalAt returns the shading normal at barycentric coordinates (u, v),
// where (0,0), (1,0) and (0,1) are V0, V1 and V2
func (t *Triangle) NormalAt(u, v float64) core.Vec3 {
	if t.Normals == nil {
		return t.normal
	}
	w := 1 - u - v
	return t.Normals[0].Multiply(w).
		Add(t.Normals[1].Multiply(u)).
		Add(t.Normals[2].Multiply(v)).
		Normalize()
}

// GetNormal returns the triangle's face normal
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}
