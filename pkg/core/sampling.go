package core

import (
	"math/rand"
)

// MaxSampleAttempts bounds every rejection sampling loop. The acceptance
// rate is about 52% for the unit ball and 78% for the unit disk.
const MaxSampleAttempts = 64

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by a fresh generator for seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomInUnitSphere returns a point uniformly distributed inside the unit ball.
// It rejection-samples the enclosing cube and gives up with the zero vector
// after MaxSampleAttempts.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for attempt := 0; attempt < MaxSampleAttempts; attempt++ {
		s := sampler.Get3D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
	return Vec3{}
}

// RandomInUnitDisk returns a point uniformly distributed inside the unit disk
// in the XY plane (Z is zero), with the same attempt bound as RandomInUnitSphere.
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for attempt := 0; attempt < MaxSampleAttempts; attempt++ {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
	return Vec3{}
}
