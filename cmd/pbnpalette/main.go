// pbnpalette - A paint-by-number palette extractor
//
// pbnpalette reduces images to a small set of perceptually distinct colours,
// each with a stable id for labelling puzzle cells.
package main

import (
	"os"

	"github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
