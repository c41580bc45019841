package colour

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// MaxColours is the largest palette size Extract accepts.
const MaxColours = 256

// ErrInvalidColourCount is returned when the requested palette size is outside [1, MaxColours].
var ErrInvalidColourCount = errors.New("invalid colour count")

// Extractor defines the interface for palette extraction.
type Extractor interface {
	// Extract reduces pixels to at most k palette entries.
	Extract(pixels []RGB, k int) (*Palette, error)
}

// Options holds configuration for palette extraction.
type Options struct {
	// Levels is the number of quantization steps per channel.
	Levels int

	// MaxIterations caps refinement passes.
	MaxIterations int

	// MergeThreshold is the perceptual distance below which clusters merge.
	MergeThreshold float64

	// MaxBackfillSamples bounds the pixels scanned per backfill pass.
	MaxBackfillSamples int

	// Workers parallelises nearest-centre assignment when above one.
	Workers int

	// CacheSize bounds the per-extraction Lab cache.
	CacheSize int

	Logger hclog.Logger
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		Levels:             DefaultLevels,
		MaxIterations:      DefaultMaxIterations,
		MergeThreshold:     DefaultMergeThreshold,
		MaxBackfillSamples: DefaultMaxBackfillSamples,
		Workers:            1,
		CacheSize:          DefaultLabCacheSize,
	}
}

// Validate validates the extraction options.
func (o Options) Validate() error {
	if o.Levels < 1 || o.Levels > maxLevels {
		return fmt.Errorf("levels must be between 1 and %d, got %d", maxLevels, o.Levels)
	}
	if o.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", o.MaxIterations)
	}
	if o.MergeThreshold <= 0 {
		return fmt.Errorf("merge threshold must be positive, got %g", o.MergeThreshold)
	}
	if o.MaxBackfillSamples < 1 {
		return fmt.Errorf("max backfill samples must be at least 1, got %d", o.MaxBackfillSamples)
	}
	if o.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", o.Workers)
	}
	if o.CacheSize < 1 {
		return fmt.Errorf("cache size must be at least 1, got %d", o.CacheSize)
	}
	return nil
}

// ValidateColourCount checks that k is a usable palette size.
func ValidateColourCount(k int) error {
	if k < 1 || k > MaxColours {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidColourCount, k, MaxColours)
	}
	return nil
}

// PaletteExtractor runs quantization, seeding, refinement and finishing.
// It holds no state between calls and is safe for concurrent use.
type PaletteExtractor struct {
	opts   Options
	logger hclog.Logger
}

// NewPaletteExtractor creates a PaletteExtractor. Options are validated on Extract.
func NewPaletteExtractor(opts Options) *PaletteExtractor {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PaletteExtractor{opts: opts, logger: logger}
}

// Extract reduces pixels to a palette of at most k entries. An empty pixel
// slice yields an empty palette, not an error. The result is a pure function
// of pixels, k and the options.
func (e *PaletteExtractor) Extract(pixels []RGB, k int) (*Palette, error) {
	if err := ValidateColourCount(k); err != nil {
		return nil, err
	}
	if err := e.opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	palette := &Palette{Requested: k}
	if len(pixels) == 0 {
		e.logger.Debug("no pixels to extract from")
		return palette, nil
	}

	cache := NewLabCache(e.opts.CacheSize)

	colors := Quantize(pixels, e.opts.Levels)
	e.logger.Debug("quantized pixels", "pixels", len(pixels), "buckets", len(colors), "levels", e.opts.Levels)

	seeds := SelectSeeds(colors, k, cache)
	e.logger.Debug("selected seeds", "requested", k, "seeds", len(seeds))

	refined := Refine(colors, seeds, RefineOptions{
		MaxIterations: e.opts.MaxIterations,
		Workers:       e.opts.Workers,
		Cache:         cache,
		Logger:        e.logger,
	})

	palette.Entries = Finish(refined.Clusters, pixels, k, FinishOptions{
		MergeThreshold:     e.opts.MergeThreshold,
		MaxBackfillSamples: e.opts.MaxBackfillSamples,
		Cache:              cache,
		Logger:             e.logger,
	})

	hits, misses := cache.Stats()
	e.logger.Debug("palette extracted",
		"entries", palette.Len(),
		"short", palette.Short(),
		"iterations", refined.Iterations,
		"converged", refined.Converged,
		"lab_cache_hits", hits,
		"lab_cache_misses", misses)
	return palette, nil
}
