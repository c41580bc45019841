package image

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/colour"
)

// ReadPixelsJSON decodes a JSON array of [r, g, b] triples. Every channel
// must be an integer in [0, 255].
func ReadPixelsJSON(r io.Reader) ([]colour.RGB, error) {
	var triples [][]int
	if err := json.NewDecoder(r).Decode(&triples); err != nil {
		return nil, fmt.Errorf("failed to decode pixel list: %w", err)
	}

	pixels := make([]colour.RGB, len(triples))
	for i, t := range triples {
		if len(t) != 3 {
			return nil, fmt.Errorf("pixel %d: want 3 channels, got %d", i, len(t))
		}
		rgb, err := colour.NewRGB(t[0], t[1], t[2])
		if err != nil {
			return nil, fmt.Errorf("pixel %d: %w", i, err)
		}
		pixels[i] = rgb
	}
	return pixels, nil
}

// LoadPixelsJSON reads a pixel list from a JSON file.
func LoadPixelsJSON(path string) ([]colour.RGB, error) {
	file, err := os.Open(path) // #nosec G304 - User-specified pixel file, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open pixel file: %w", err)
	}
	defer file.Close()

	return ReadPixelsJSON(file)
}
