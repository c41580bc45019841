// Package colour reduces sampled image pixels to a small palette of
// perceptually distinct colours for paint-by-number puzzles.
package colour

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrChannelOutOfRange is returned when a channel value lies outside [0, 255].
var ErrChannelOutOfRange = errors.New("channel value out of range")

// RGB represents a colour with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// NewRGB builds an RGB from integer channels, rejecting values outside [0, 255].
func NewRGB(r, g, b int) (RGB, error) {
	for _, v := range [3]int{r, g, b} {
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("%w: %d", ErrChannelOutOfRange, v)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as an upper-case hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// PaletteEntry is one colour of a finished palette. Count is the number of
// pixels behind the entry: its cluster's pixels, or for an entry added to
// reach the requested size, the pixels exactly equal to it. Those pixels are
// also counted by the cluster they were assigned to, so counts may sum to
// more than the pixel total.
type PaletteEntry struct {
	ID    string `json:"id"`
	R     uint8  `json:"r"`
	G     uint8  `json:"g"`
	B     uint8  `json:"b"`
	Hex   string `json:"hex"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RGB returns the entry's colour.
func (e PaletteEntry) RGB() RGB {
	return RGB{R: e.R, G: e.G, B: e.B}
}

// Palette is the ordered result of one extraction.
type Palette struct {
	Entries   []PaletteEntry
	Requested int
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// Short reports whether the palette holds fewer colours than were requested.
func (p *Palette) Short() bool {
	return len(p.Entries) < p.Requested
}

// ByID returns the entry with the given id.
func (p *Palette) ByID(id string) (PaletteEntry, bool) {
	for _, e := range p.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return PaletteEntry{}, false
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		hexColours[i] = e.Hex
	}
	return hexColours
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Requested int            `json:"requested"`
	Count     int            `json:"count"`
	Colours   []PaletteEntry `json:"colours"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	entries := p.Entries
	if entries == nil {
		entries = []PaletteEntry{}
	}
	return json.MarshalIndent(PaletteJSON{
		Requested: p.Requested,
		Count:     len(entries),
		Colours:   entries,
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Entries) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.Entries))
	for _, e := range p.Entries {
		fmt.Fprintf(&sb, "  %3s: %s (%s) %s x%d\n", e.ID, e.Hex, e.RGB().String(), e.Name, e.Count)
	}
	return sb.String()
}

// All returns an iterator over all entries in the palette.
func (p *Palette) All() func(func(int, PaletteEntry) bool) {
	return func(yield func(int, PaletteEntry) bool) {
		for i, e := range p.Entries {
			if !yield(i, e) {
				return
			}
		}
	}
}
