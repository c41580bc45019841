package colour

import "math"

var (
	black = RGB{}
	white = RGB{R: 255, G: 255, B: 255}
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	return 0.2126*linearise(c.R) + 0.7152*linearise(c.G) + 0.0722*linearise(c.B)
}

func linearise(v uint8) float64 {
	f := float64(v) / 255
	if f <= 0.03928 {
		return f / 12.92
	}
	return math.Pow((f+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is black against white.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// LabelColour returns black or white, whichever reads better on bg.
// Black wins a tie.
func LabelColour(bg RGB) RGB {
	if ContrastRatio(bg, white) > ContrastRatio(bg, black) {
		return white
	}
	return black
}
