package colour

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultMergeThreshold is the perceptual distance below which two
	// clusters are folded into one entry.
	DefaultMergeThreshold = 15.0

	// DefaultMaxBackfillSamples bounds how many original pixels the backfill
	// search scans per pass.
	DefaultMaxBackfillSamples = 20000

	primaryIDs = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// FinishOptions controls Finish.
type FinishOptions struct {
	// MergeThreshold is the merge distance; zero selects DefaultMergeThreshold.
	MergeThreshold float64

	// MaxBackfillSamples is the backfill sample cap; zero selects
	// DefaultMaxBackfillSamples.
	MaxBackfillSamples int

	Cache  *LabCache
	Logger hclog.Logger
}

type candidate struct {
	rgb   RGB
	count int
}

// Finish turns refined clusters into at most k palette entries, each
// coloured by the mean raw colour behind its cluster. Empty clusters are
// dropped, clusters closer than the merge threshold are folded
// together, and when fewer than k colours remain the original pixels are
// searched for the most distant colour until k is reached or no pixel is
// far enough from the accepted entries. Entries are ordered by descending
// count and labelled with EntryID. An empty pixel population yields no
// entries.
func Finish(clusters []Cluster, pixels []RGB, k int, opts FinishOptions) []PaletteEntry {
	if len(pixels) == 0 || k < 1 {
		return nil
	}
	threshold := opts.MergeThreshold
	if threshold <= 0 {
		threshold = DefaultMergeThreshold
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	cache := opts.Cache

	candidates := make([]candidate, 0, len(clusters))
	for _, c := range clusters {
		if c.Empty() {
			continue
		}
		candidates = append(candidates, candidate{rgb: c.SourceMean(), count: c.Count()})
	}
	sortCandidates(candidates)

	accepted := make([]candidate, 0, k)
	for _, c := range candidates {
		match := -1
		best := threshold
		for i, a := range accepted {
			if d := cache.Distance(c.rgb, a.rgb); d < best {
				best = d
				match = i
			}
		}
		if match < 0 {
			accepted = append(accepted, c)
			continue
		}
		logger.Trace("merging cluster", "colour", c.rgb.Hex(), "into", accepted[match].rgb.Hex(), "distance", best)
		accepted[match] = mergeCandidates(accepted[match], c)
	}
	if len(accepted) > k {
		sortCandidates(accepted)
		accepted = accepted[:k]
	}
	if merged := len(candidates) - len(accepted); merged > 0 {
		logger.Debug("merged near-duplicate clusters", "merged", merged, "remaining", len(accepted))
	}

	if len(accepted) < k {
		samples := opts.MaxBackfillSamples
		if samples <= 0 {
			samples = DefaultMaxBackfillSamples
		}
		accepted = backfill(accepted, pixels, k, threshold, samples, cache, logger)
	}

	sortCandidates(accepted)
	entries := make([]PaletteEntry, len(accepted))
	for i, c := range accepted {
		entries[i] = PaletteEntry{
			ID:    EntryID(i),
			R:     c.rgb.R,
			G:     c.rgb.G,
			B:     c.rgb.B,
			Hex:   c.rgb.Hex(),
			Name:  NameFor(c.rgb, cache),
			Count: c.count,
		}
	}
	return entries
}

// sortCandidates orders by descending count, keeping the existing order on ties.
func sortCandidates(cs []candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].count > cs[j].count
	})
}

// mergeCandidates folds b into a using the rounded count-weighted mean.
func mergeCandidates(a, b candidate) candidate {
	total := a.count + b.count
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(int(x)*a.count+int(y)*b.count) / float64(total)))
	}
	return candidate{
		rgb:   RGB{R: mix(a.rgb.R, b.rgb.R), G: mix(a.rgb.G, b.rgb.G), B: mix(a.rgb.B, b.rgb.B)},
		count: total,
	}
}

// BackfillStride returns the sampling step used to scan a population of n
// pixels with at most maxSamples samples.
func BackfillStride(n, maxSamples int) int {
	if maxSamples <= 0 || n <= maxSamples {
		return 1
	}
	return (n + maxSamples - 1) / maxSamples
}

// backfill adds the sampled pixel farthest from every accepted entry, one
// per pass, while it is at least threshold away and fewer than k entries
// exist. A backfilled entry counts the pixels exactly equal to it.
func backfill(accepted []candidate, pixels []RGB, k int, threshold float64, maxSamples int, cache *LabCache, logger hclog.Logger) []candidate {
	stride := BackfillStride(len(pixels), maxSamples)
	sampled := make([]Lab, 0, len(pixels)/stride+1)
	sampledRGB := make([]RGB, 0, cap(sampled))
	for i := 0; i < len(pixels); i += stride {
		sampledRGB = append(sampledRGB, pixels[i])
		sampled = append(sampled, cache.Lab(pixels[i]))
	}

	nearest := make([]float64, len(sampled))
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	update := func(c RGB) {
		lab := cache.Lab(c)
		for i, s := range sampled {
			if d := LabDistance(s, lab); d < nearest[i] {
				nearest[i] = d
			}
		}
	}
	for _, a := range accepted {
		update(a.rgb)
	}

	var occurrences map[RGB]int
	for len(accepted) < k {
		best := -1
		bestDist := 0.0
		for i, d := range nearest {
			if d > bestDist {
				best = i
				bestDist = d
			}
		}
		if best < 0 || bestDist < threshold {
			break
		}

		if occurrences == nil {
			occurrences = make(map[RGB]int)
			for _, p := range pixels {
				occurrences[p]++
			}
		}
		chosen := sampledRGB[best]
		accepted = append(accepted, candidate{rgb: chosen, count: occurrences[chosen]})
		update(chosen)
		logger.Trace("backfilled colour", "colour", chosen.Hex(), "distance", bestDist)
	}

	logger.Debug("backfill finished", "stride", stride, "samples", len(sampled), "entries", len(accepted))
	return accepted
}

// EntryID returns the palette label for the entry at index: "A".."Z", then
// "0".."9", then "a1".."a9", "b1".."z9", then "z10", "z11", and so on.
func EntryID(index int) string {
	if index < 0 {
		return ""
	}
	if index < len(primaryIDs) {
		return string(primaryIDs[index])
	}
	j := index - len(primaryIDs)
	if j < 26*9 {
		return fmt.Sprintf("%c%d", 'a'+j/9, j%9+1)
	}
	return "z" + strconv.Itoa(j-224)
}
