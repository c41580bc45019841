package colour

import (
	"math"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// DefaultMaxIterations caps the number of refinement passes.
const DefaultMaxIterations = 20

// Cluster is the set of weighted colours assigned to one centre.
type Cluster struct {
	Center  RGB
	Members []WeightedColor
}

// Count returns the total pixel count of the cluster's members.
func (c Cluster) Count() int {
	total := 0
	for _, m := range c.Members {
		total += m.Count
	}
	return total
}

// SourceMean returns the count-weighted mean of the members' raw colours,
// or the centre when the cluster is empty.
func (c Cluster) SourceMean() RGB {
	var r, g, b, n int
	for _, m := range c.Members {
		r += int(m.Mean.R) * m.Count
		g += int(m.Mean.G) * m.Count
		b += int(m.Mean.B) * m.Count
		n += m.Count
	}
	if n == 0 {
		return c.Center
	}
	return RGB{R: roundedMean(r, n), G: roundedMean(g, n), B: roundedMean(b, n)}
}

// Empty reports whether no colour was assigned to the cluster.
func (c Cluster) Empty() bool {
	return len(c.Members) == 0
}

// RefineOptions controls Refine.
type RefineOptions struct {
	// MaxIterations caps the number of passes; zero selects DefaultMaxIterations.
	MaxIterations int

	// Workers splits the assignment step across goroutines when above one.
	Workers int

	Cache  *LabCache
	Logger hclog.Logger
}

// RefineResult is the outcome of Refine. Clusters are index-aligned with the
// initial centres and may be empty.
type RefineResult struct {
	Clusters   []Cluster
	Iterations int

	// Converged is false when the iteration cap stopped refinement.
	Converged bool
}

// Refine runs Lloyd's iterations: every colour is assigned to the centre at
// the smallest perceptual distance (lowest index on ties), then each
// non-empty cluster's centre moves to the count-weighted mean of its members.
// Refinement stops when no rounded centre changes or the cap is reached.
func Refine(colors []WeightedColor, centers []RGB, opts RefineOptions) RefineResult {
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if len(centers) == 0 {
		return RefineResult{Converged: true}
	}

	labs := make([]Lab, len(colors))
	for i, c := range colors {
		labs[i] = opts.Cache.Lab(c.RGB)
	}

	current := make([]RGB, len(centers))
	copy(current, centers)
	centerLabs := make([]Lab, len(centers))
	assignments := make([]int, len(colors))

	var result RefineResult
	for iter := 1; iter <= maxIterations; iter++ {
		for i, c := range current {
			centerLabs[i] = opts.Cache.Lab(c)
		}
		assign(labs, centerLabs, assignments, opts.Workers)

		next, moved := recomputeCenters(colors, assignments, current)
		current = next
		result.Iterations = iter

		logger.Trace("refine iteration", "iteration", iter, "moved", moved)
		if moved == 0 {
			result.Converged = true
			break
		}
	}

	result.Clusters = make([]Cluster, len(current))
	for i, c := range current {
		result.Clusters[i].Center = c
	}
	for i, a := range assignments {
		result.Clusters[a].Members = append(result.Clusters[a].Members, colors[i])
	}

	logger.Debug("refinement finished",
		"iterations", result.Iterations,
		"converged", result.Converged,
		"clusters", len(result.Clusters))
	return result
}

// nearestCenter returns the index of the closest centre, lowest index on ties.
func nearestCenter(lab Lab, centers []Lab) int {
	nearest := 0
	minDist := math.MaxFloat64
	for i, c := range centers {
		if d := LabDistance(lab, c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// assign fills assignments with each colour's nearest centre. Each worker
// owns a contiguous index range and centres are read-only, so the result
// does not depend on the worker count.
func assign(labs, centers []Lab, assignments []int, workers int) {
	workers = max(1, min(workers, len(labs)))
	if workers == 1 {
		for i, lab := range labs {
			assignments[i] = nearestCenter(lab, centers)
		}
		return
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start, end := splitRange(len(labs), workers, w)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				assignments[i] = nearestCenter(labs[i], centers)
			}
		}(start, end)
	}
	wg.Wait()
}

// recomputeCenters returns the rounded count-weighted mean of each cluster
// and how many centres changed. Empty clusters keep their previous centre.
func recomputeCenters(colors []WeightedColor, assignments []int, previous []RGB) ([]RGB, int) {
	type sum struct {
		r, g, b, n int
	}
	sums := make([]sum, len(previous))
	for i, c := range colors {
		s := &sums[assignments[i]]
		s.r += int(c.R) * c.Count
		s.g += int(c.G) * c.Count
		s.b += int(c.B) * c.Count
		s.n += c.Count
	}

	next := make([]RGB, len(previous))
	moved := 0
	for i, s := range sums {
		if s.n == 0 {
			next[i] = previous[i]
			continue
		}
		next[i] = RGB{
			R: roundedMean(s.r, s.n),
			G: roundedMean(s.g, s.n),
			B: roundedMean(s.b, s.n),
		}
		if next[i] != previous[i] {
			moved++
		}
	}
	return next, moved
}

func roundedMean(total, n int) uint8 {
	return uint8(math.Round(float64(total) / float64(n)))
}

// splitRange returns the bounds of one worker's share of length items.
func splitRange(length, workers, worker int) (int, int) {
	chunk := length / workers
	remainder := length % workers
	start := worker*chunk + min(worker, remainder)
	end := start + chunk
	if worker < remainder {
		end++
	}
	return start, end
}
