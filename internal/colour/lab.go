package colour

import (
	"math"

	"github.com/golang/groupcache/lru"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DarkLightness is the L* value below which a colour counts as dark.
	DarkLightness = 25.0

	// DarkLightnessWeight scales the lightness term when exactly one of two
	// colours is dark, so near-black never sits close to mid-tones.
	DarkLightnessWeight = 2.5

	// DefaultLabCacheSize bounds the number of memoised Lab conversions.
	DefaultLabCacheSize = 4096
)

// Lab is a colour in CIE L*a*b* space (D65 white point).
// L is in [0, 100]; A and B are roughly in [-128, 127].
type Lab struct {
	L, A, B float64
}

// ToLab converts an 8-bit sRGB colour to CIE Lab.
func ToLab(c RGB) Lab {
	col := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	l, a, b := col.Lab()
	return Lab{L: l * 100, A: a * 100, B: b * 100}
}

// LabDistance returns the lightness-weighted Euclidean distance between two
// Lab colours.
func LabDistance(p, q Lab) float64 {
	weight := 1.0
	if (p.L < DarkLightness) != (q.L < DarkLightness) {
		weight = DarkLightnessWeight
	}
	dl := (p.L - q.L) * weight
	da := p.A - q.A
	db := p.B - q.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// PerceptualDistance returns the lightness-weighted Lab distance between two
// RGB colours. It is symmetric and never negative.
func PerceptualDistance(c1, c2 RGB) float64 {
	return LabDistance(ToLab(c1), ToLab(c2))
}

// LabCache memoises Lab conversions for one extraction. It is not safe for
// concurrent use; each extraction owns its own cache.
type LabCache struct {
	entries *lru.Cache
	hits    int
	misses  int
}

// NewLabCache creates a cache holding at most size conversions.
// A non-positive size selects DefaultLabCacheSize.
func NewLabCache(size int) *LabCache {
	if size <= 0 {
		size = DefaultLabCacheSize
	}
	return &LabCache{entries: lru.New(size)}
}

// Lab returns the Lab value for c, converting and storing it on a miss.
// A nil cache converts without memoising.
func (c *LabCache) Lab(rgb RGB) Lab {
	if c == nil {
		return ToLab(rgb)
	}
	if v, ok := c.entries.Get(rgb); ok {
		c.hits++
		return v.(Lab)
	}
	c.misses++
	lab := ToLab(rgb)
	c.entries.Add(rgb, lab)
	return lab
}

// Distance is PerceptualDistance using memoised conversions.
func (c *LabCache) Distance(c1, c2 RGB) float64 {
	return LabDistance(c.Lab(c1), c.Lab(c2))
}

// Len returns the number of memoised conversions.
func (c *LabCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// Stats returns the hit and miss counters.
func (c *LabCache) Stats() (hits, misses int) {
	if c == nil {
		return 0, 0
	}
	return c.hits, c.misses
}
