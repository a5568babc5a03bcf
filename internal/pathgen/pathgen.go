package pathgen

import (
	"time"

	"cogentcore.org/core/math32"
)

// Options controls procedural polyline generation.
// Points is the number of vertices; Length is the extent along X, centered on the origin.
// Amplitude is the maximum sideways (Y) and vertical (Z) excursion in world units.
// Seed controls randomness; Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity, and Gain control the fractal noise shape.
type Options struct {
	Points    int
	Length    float32
	Amplitude float32
	// Lift scales the Z excursion relative to Amplitude; 0 keeps the path flat on Z=0.
	Lift float32

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultOptions returns a sane default configuration.
func DefaultOptions() Options {
	return Options{
		Points:     48,
		Length:     16,
		Amplitude:  3,
		Lift:       0,
		Seed:       0,
		Octaves:    4,
		Frequency:  0.15,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

// Generate builds a wavy polyline along +X. Y (and Z when Lift > 0) are sampled from
// fractal noise so neighbouring points stay close. The same non-zero seed always
// returns the same points.
func Generate(opts Options) []math32.Vector3 {
	if opts.Points <= 0 {
		return nil
	}
	if opts.Length <= 0 {
		opts.Length = 1
	}
	if opts.Amplitude < 0 {
		opts.Amplitude = 0
	}
	if opts.Octaves <= 0 {
		opts.Octaves = 1
	}
	if opts.Frequency <= 0 {
		opts.Frequency = 0.15
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = 2.0
	}
	if opts.Gain <= 0 {
		opts.Gain = 0.5
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	step := float32(0)
	if opts.Points > 1 {
		step = opts.Length / float32(opts.Points-1)
	}
	startX := -opts.Length * 0.5
	if opts.Points == 1 {
		startX = 0
	}

	out := make([]math32.Vector3, opts.Points)
	for i := range out {
		t := float32(i) * opts.Frequency
		// Noise is [0,1]; recenter to [-1,1] so the path wanders both ways.
		y := fractalValueNoise1D(t, seed, opts.Octaves, opts.Lacunarity, opts.Gain)*2 - 1
		z := float32(0)
		if opts.Lift > 0 {
			z = (fractalValueNoise1D(t, seed+7919, opts.Octaves, opts.Lacunarity, opts.Gain)*2 - 1) * opts.Lift
		}
		out[i] = math32.Vec3(startX+float32(i)*step, y*opts.Amplitude, z*opts.Amplitude)
	}
	return out
}

// Spiral returns points on a helix around Z: radius in world units, turns full
// revolutions, rising rise units in total. Useful for demoing mitered joints.
func Spiral(points int, radius, turns, rise float32) []math32.Vector3 {
	if points <= 0 {
		return nil
	}
	out := make([]math32.Vector3, points)
	den := float32(points - 1)
	if den == 0 {
		den = 1
	}
	for i := range out {
		f := float32(i) / den
		ang := f * turns * 2 * math32.Pi
		out[i] = math32.Vec3(radius*math32.Cos(ang), radius*math32.Sin(ang), f*rise)
	}
	return out
}

// fractalValueNoise1D is layered smooth value noise with configurable octaves,
// lacunarity, and gain. Output is in [0,1].
func fractalValueNoise1D(x float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum float32
	var amplitude float32 = 1
	var maxAmp float32
	freq := float32(1)

	for i := 0; i < octaves; i++ {
		sum += valueNoise1D(x*freq, int32(seed)+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise1D interpolates hashed lattice values with cubic easing.
func valueNoise1D(x float32, seed int32) float32 {
	x0 := int32(math32.Floor(x))
	t := x - float32(x0)
	return math32.Lerp(hash1D(x0, seed), hash1D(x0+1, seed), smoothStep(t))
}

// hash1D maps an integer lattice coordinate to a deterministic pseudo-random float in [0,1].
func hash1D(x, seed int32) float32 {
	n := x*374761393 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

// smoothStep is Perlin-style cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
