package colour

import "math"

// SelectSeeds picks up to k initial cluster centres from colors, which must
// be sorted by descending count. The first seed is the most frequent colour.
// Each following seed maximises the distance to its nearest chosen seed
// scaled by sqrt(count); the first colour in input order wins a tie.
// Fewer than k seeds are returned when colors runs out of distinct candidates.
func SelectSeeds(colors []WeightedColor, k int, cache *LabCache) []RGB {
	if len(colors) == 0 || k < 1 {
		return nil
	}

	seeds := make([]RGB, 0, min(k, len(colors)))
	chosen := make([]bool, len(colors))
	labs := make([]Lab, len(colors))
	nearest := make([]float64, len(colors))
	for i, c := range colors {
		labs[i] = cache.Lab(c.RGB)
		nearest[i] = math.Inf(1)
	}

	pick := func(i int) {
		chosen[i] = true
		seeds = append(seeds, colors[i].RGB)
		for j := range colors {
			if chosen[j] {
				continue
			}
			if d := LabDistance(labs[j], labs[i]); d < nearest[j] {
				nearest[j] = d
			}
		}
	}

	pick(0)
	for len(seeds) < k {
		best := -1
		bestScore := 0.0
		for i, c := range colors {
			if chosen[i] {
				continue
			}
			score := nearest[i] * math.Sqrt(float64(c.Count))
			if score > bestScore {
				best = i
				bestScore = score
			}
		}
		if best < 0 {
			break
		}
		pick(best)
	}

	return seeds
}
