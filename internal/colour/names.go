package colour

import (
	"math"
	"sync"

	"golang.org/x/image/colornames"
)

type namedColour struct {
	name string
	lab  Lab
}

// namedColours is the fixed CSS/SVG colour table in Lab, in colornames.Names order.
var namedColours = sync.OnceValue(func() []namedColour {
	table := make([]namedColour, 0, len(colornames.Names))
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		table = append(table, namedColour{
			name: name,
			lab:  ToLab(RGB{R: c.R, G: c.G, B: c.B}),
		})
	}
	return table
})

// NameFor returns the CSS colour name perceptually closest to c.
// The first name in alphabetical order wins a tie.
func NameFor(c RGB, cache *LabCache) string {
	lab := cache.Lab(c)
	best := ""
	bestDist := math.MaxFloat64
	for _, n := range namedColours() {
		if d := LabDistance(lab, n.lab); d < bestDist {
			best = n.name
			bestDist = d
		}
	}
	return best
}
