package image

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/colour"
)

// DefaultSwatchCell is the side length in pixels of one swatch cell.
const DefaultSwatchCell = 48

// RenderSwatch draws the palette as a row of square cells, each labelled
// with its entry id.
func RenderSwatch(p *colour.Palette, cell int) (*image.RGBA, error) {
	if p == nil || p.Len() == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	if cell <= 0 {
		cell = DefaultSwatchCell
	}

	img := image.NewRGBA(image.Rect(0, 0, cell*p.Len(), cell))
	face := basicfont.Face7x13
	for i, e := range p.Entries {
		rect := image.Rect(i*cell, 0, (i+1)*cell, cell)
		fill := color.RGBA{R: e.R, G: e.G, B: e.B, A: 255}
		draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)

		lc := colour.LabelColour(e.RGB())
		ink := color.RGBA{R: lc.R, G: lc.G, B: lc.B, A: 255}
		d := &font.Drawer{Dst: img, Src: image.NewUniform(ink), Face: face}
		textW := d.MeasureString(e.ID).Ceil()
		x := rect.Min.X + (cell-textW)/2
		y := (cell + face.Ascent - face.Descent) / 2
		d.Dot = fixed.P(x, y)
		d.DrawString(e.ID)
	}
	return img, nil
}

// SaveSwatch renders the palette and writes it as a PNG file.
func SaveSwatch(path string, p *colour.Palette, cell int) error {
	img, err := RenderSwatch(p, cell)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to write swatch: %w", err)
	}
	return nil
}
