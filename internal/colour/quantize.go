package colour

import "sort"

const (
	// DefaultLevels is the number of quantization steps per channel.
	DefaultLevels = 32

	maxLevels = 256
)

// WeightedColor is a representative colour with the number of raw pixels
// it stands for. Mean is the average raw colour behind the representative.
type WeightedColor struct {
	RGB
	Count int
	Mean  RGB
}

// NewWeightedColor returns a weighted colour whose raw mean is c itself.
func NewWeightedColor(c RGB, count int) WeightedColor {
	return WeightedColor{RGB: c, Count: count, Mean: c}
}

// Quantize buckets pixels into levels steps per channel, snapping each to its
// bucket midpoint, and returns the distinct buckets ordered by descending
// count. Buckets with equal counts keep the order in which they were first
// seen. Levels outside [1, 256] fall back to DefaultLevels.
func Quantize(pixels []RGB, levels int) []WeightedColor {
	if len(pixels) == 0 {
		return nil
	}
	if levels < 1 || levels > maxLevels {
		levels = DefaultLevels
	}

	index := make(map[RGB]int)
	buckets := make([]WeightedColor, 0, min(len(pixels), levels*levels*levels))
	var sums [][3]int
	for _, p := range pixels {
		key := RGB{
			R: quantizeChannel(p.R, levels),
			G: quantizeChannel(p.G, levels),
			B: quantizeChannel(p.B, levels),
		}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, WeightedColor{RGB: key})
			sums = append(sums, [3]int{})
		}
		buckets[i].Count++
		sums[i][0] += int(p.R)
		sums[i][1] += int(p.G)
		sums[i][2] += int(p.B)
	}
	for i := range buckets {
		n := buckets[i].Count
		buckets[i].Mean = RGB{
			R: roundedMean(sums[i][0], n),
			G: roundedMean(sums[i][1], n),
			B: roundedMean(sums[i][2], n),
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})
	return buckets
}

// quantizeChannel maps v to the midpoint of its bucket. Bucket b holds the
// values v with floor(v*levels/256) == b, so every level count in [1, 256]
// yields exactly levels non-empty buckets. The midpoint rounds up and always
// lies inside the bucket.
func quantizeChannel(v uint8, levels int) uint8 {
	bucket := int(v) * levels / maxLevels
	lo, hi := bucketBounds(bucket, levels)
	return uint8((lo + hi + 1) / 2)
}

// bucketBounds returns the smallest and largest channel value in bucket.
func bucketBounds(bucket, levels int) (int, int) {
	lo := (bucket*maxLevels + levels - 1) / levels
	hi := ((bucket+1)*maxLevels+levels-1)/levels - 1
	return lo, hi
}
