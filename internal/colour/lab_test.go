package colour

import (
	"math"
	"testing"
)

func TestToLab(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want Lab
		tol  float64
	}{
		{name: "black", rgb: RGB{}, want: Lab{}, tol: 0.01},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: Lab{L: 100}, tol: 0.1},
		{name: "mid grey", rgb: RGB{R: 128, G: 128, B: 128}, want: Lab{L: 53.59}, tol: 0.1},
		{name: "red", rgb: RGB{R: 255}, want: Lab{L: 53.24, A: 80.09, B: 67.20}, tol: 0.2},
		{name: "blue", rgb: RGB{B: 255}, want: Lab{L: 32.30, A: 79.19, B: -107.86}, tol: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToLab(tt.rgb)
			if math.Abs(got.L-tt.want.L) > tt.tol ||
				math.Abs(got.A-tt.want.A) > tt.tol ||
				math.Abs(got.B-tt.want.B) > tt.tol {
				t.Errorf("ToLab(%v) = %+v, want %+v (±%g)", tt.rgb, got, tt.want, tt.tol)
			}
		})
	}
}

func TestPerceptualDistanceSymmetric(t *testing.T) {
	colours := []RGB{
		{}, {R: 255, G: 255, B: 255}, {R: 5, G: 5, B: 5}, {R: 90, G: 60, B: 40},
		{R: 200, G: 30, B: 30}, {R: 12, G: 180, B: 220}, {R: 128, G: 128, B: 128},
	}

	for _, a := range colours {
		for _, b := range colours {
			if d1, d2 := PerceptualDistance(a, b), PerceptualDistance(b, a); d1 != d2 {
				t.Errorf("PerceptualDistance(%v, %v) = %v but reversed = %v", a, b, d1, d2)
			}
			if d := PerceptualDistance(a, b); d < 0 {
				t.Errorf("PerceptualDistance(%v, %v) = %v, want >= 0", a, b, d)
			}
		}
		if d := PerceptualDistance(a, a); d != 0 {
			t.Errorf("PerceptualDistance(%v, %v) = %v, want 0", a, a, d)
		}
	}
}

func plainLabDistance(a, b RGB) float64 {
	p, q := ToLab(a), ToLab(b)
	return math.Sqrt((p.L-q.L)*(p.L-q.L) + (p.A-q.A)*(p.A-q.A) + (p.B-q.B)*(p.B-q.B))
}

func TestPerceptualDistanceDarkWeighting(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RGB
		weighted bool
	}{
		{name: "near black vs mid brown", a: RGB{R: 10, G: 10, B: 10}, b: RGB{R: 120, G: 80, B: 50}, weighted: true},
		{name: "near black vs white", a: RGB{R: 5, G: 5, B: 5}, b: RGB{R: 250, G: 250, B: 250}, weighted: true},
		{name: "two dark colours", a: RGB{R: 10, G: 10, B: 10}, b: RGB{R: 30, G: 20, B: 20}, weighted: false},
		{name: "two light colours", a: RGB{R: 200, G: 30, B: 30}, b: RGB{R: 30, G: 200, B: 30}, weighted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerceptualDistance(tt.a, tt.b)
			plain := plainLabDistance(tt.a, tt.b)
			if tt.weighted {
				if got <= plain {
					t.Errorf("PerceptualDistance() = %v, want more than unweighted %v", got, plain)
				}
				return
			}
			if math.Abs(got-plain) > 1e-9 {
				t.Errorf("PerceptualDistance() = %v, want unweighted %v", got, plain)
			}
		})
	}
}

func TestLabDistanceWeightFactor(t *testing.T) {
	dark := Lab{L: 20}
	light := Lab{L: 30}
	if got := LabDistance(dark, light); math.Abs(got-25) > 1e-9 {
		t.Errorf("LabDistance() = %v, want 25", got)
	}
	if got := LabDistance(Lab{L: 30}, Lab{L: 40}); math.Abs(got-10) > 1e-9 {
		t.Errorf("LabDistance() = %v, want 10", got)
	}
}

func TestLabCache(t *testing.T) {
	cache := NewLabCache(2)
	red := RGB{R: 255}

	if got, want := cache.Lab(red), ToLab(red); got != want {
		t.Errorf("Lab() = %+v, want %+v", got, want)
	}
	cache.Lab(red)
	if hits, misses := cache.Stats(); hits != 1 || misses != 1 {
		t.Errorf("Stats() = (%d, %d), want (1, 1)", hits, misses)
	}

	cache.Lab(RGB{G: 255})
	cache.Lab(RGB{B: 255})
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after eviction", cache.Len())
	}

	if d := cache.Distance(red, RGB{B: 255}); d != PerceptualDistance(red, RGB{B: 255}) {
		t.Errorf("Distance() = %v, want %v", d, PerceptualDistance(red, RGB{B: 255}))
	}
}

func TestNilLabCache(t *testing.T) {
	var cache *LabCache
	white := RGB{R: 255, G: 255, B: 255}

	if got := cache.Lab(white); got != ToLab(white) {
		t.Errorf("nil cache Lab() = %+v, want %+v", got, ToLab(white))
	}
	if cache.Len() != 0 {
		t.Errorf("nil cache Len() = %d, want 0", cache.Len())
	}
}

func TestNewLabCacheDefaultSize(t *testing.T) {
	cache := NewLabCache(0)
	if cache.entries.MaxEntries != DefaultLabCacheSize {
		t.Errorf("MaxEntries = %d, want %d", cache.entries.MaxEntries, DefaultLabCacheSize)
	}
}
