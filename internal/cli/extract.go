package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/colour"
	"github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/image"
)

// DefaultColours is the palette size used when --colours is not given.
const DefaultColours = 24

// extractFlags holds the extract command flags.
type extractFlags struct {
	colours        int
	levels         int
	maxIterations  int
	mergeThreshold float64
	workers        int
	maxDimension   int
	format         string
	output         string
	preview        string
	swatch         string
}

func newExtractCmd() *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract <image|pixels.json>",
		Short: "Extract a paint-by-number palette from an image",
		Long: `Extract a palette of perceptually distinct colours from an image.

The input is either an image file (JPEG, PNG, GIF, WebP) or a JSON file
holding a list of [r, g, b] pixel triples. Images larger than
--max-dimension are downscaled before sampling.

Unset flags fall back to these environment variables:
  PBNPALETTE_COLOURS          --colours
  PBNPALETTE_LEVELS           --levels
  PBNPALETTE_MERGE_THRESHOLD  --merge-threshold

Examples:
  # Extract 24 colours (default) from an image
  pbnpalette extract photo.jpg

  # Extract 12 colours as a table
  pbnpalette extract -c 12 -f table photo.png

  # Write JSON to a file and save a labelled swatch
  pbnpalette extract -f json -o palette.json --swatch swatch.png photo.jpg

  # Extract from a raw pixel list
  pbnpalette extract pixels.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyEnvDefaults(cmd.Flags(), nil); err != nil {
				return err
			}
			return runExtract(cmd, flags, args[0])
		},
	}

	defaults := colour.DefaultOptions()
	cmd.Flags().IntVarP(&flags.colours, "colours", "c", DefaultColours, fmt.Sprintf("number of colours to extract (1-%d)", colour.MaxColours))
	cmd.Flags().IntVar(&flags.levels, "levels", defaults.Levels, "quantization levels per channel")
	cmd.Flags().IntVar(&flags.maxIterations, "max-iterations", defaults.MaxIterations, "maximum refinement iterations")
	cmd.Flags().Float64Var(&flags.mergeThreshold, "merge-threshold", defaults.MergeThreshold, "perceptual distance below which colours merge")
	cmd.Flags().IntVar(&flags.workers, "workers", defaults.Workers, "goroutines used for cluster assignment")
	cmd.Flags().IntVar(&flags.maxDimension, "max-dimension", image.DefaultMaxDimension, "downscale images whose longer side exceeds this (0 disables)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "hex", "output format (hex, rgb, json, table)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&flags.preview, "preview", "auto", "show colour previews (auto, always, never)")
	cmd.Flags().StringVar(&flags.swatch, "swatch", "", "write a labelled PNG swatch to this file")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, flags *extractFlags, inputPath string) error {
	logger := newLogger(cmd)

	if err := colour.ValidateColourCount(flags.colours); err != nil {
		return err
	}
	opts := colour.DefaultOptions()
	opts.Levels = flags.levels
	opts.MaxIterations = flags.maxIterations
	opts.MergeThreshold = flags.mergeThreshold
	opts.Workers = flags.workers
	opts.Logger = logger.Named("extract")
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	pixels, err := loadPixels(inputPath, flags.maxDimension, logger)
	if err != nil {
		return err
	}

	logger.Debug("extracting palette", "colours", flags.colours, "pixels", len(pixels))
	palette, err := colour.NewPaletteExtractor(opts).Extract(pixels, flags.colours)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	if palette.Short() {
		logger.Warn("palette has fewer colours than requested",
			"requested", palette.Requested, "found", palette.Len())
	}

	var out io.Writer = cmd.OutOrStdout()
	showPreview := false
	if flags.output == "" {
		showPreview, err = wantPreview(flags.preview, out)
		if err != nil {
			return err
		}
	} else if flags.preview == "always" {
		showPreview = true
	}

	output, err := formatPalette(palette, flags.format, showPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if flags.output != "" {
		logger.Debug("writing palette", "path", flags.output)
		if err := os.WriteFile(flags.output, []byte(output), 0o644); err != nil { // #nosec G306 - palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
	} else {
		fmt.Fprint(out, output)
	}

	if flags.swatch != "" {
		logger.Debug("writing swatch", "path", flags.swatch)
		if err := image.SaveSwatch(flags.swatch, palette, 0); err != nil {
			return err
		}
	}

	return nil
}

// loadPixels reads pixels from a JSON pixel list or samples them from an image.
func loadPixels(path string, maxDimension int, logger hclog.Logger) ([]colour.RGB, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		pixels, err := image.LoadPixelsJSON(path)
		if err != nil {
			return nil, fmt.Errorf("invalid pixel file: %w", err)
		}
		logger.Debug("pixel list loaded", "path", path, "pixels", len(pixels))
		return pixels, nil
	}

	if !image.IsImageFile(path) {
		return nil, fmt.Errorf("unsupported input %s (want .json or one of %s)",
			path, strings.Join(image.SupportedImageExtensions(), ", "))
	}
	img, err := image.NewFileLoader().Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	w, h := image.ScaledSize(bounds.Dx(), bounds.Dy(), maxDimension)
	logger.Debug("image loaded", "path", path,
		"width", bounds.Dx(), "height", bounds.Dy(), "sample_width", w, "sample_height", h)

	return image.Sample(img, maxDimension), nil
}

// wantPreview resolves a --preview mode against the destination writer.
// In auto mode previews are shown only when writing to a terminal.
func wantPreview(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid preview mode: %s (valid: auto, always, never)", mode)
	}
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case "table":
		return formatTable(palette, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json, table)", format)
	}
}

// formatHex formats the palette as one "<id> <hex>" line per entry.
// Previews carry the id inside the colour block.
func formatHex(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, e := range palette.Entries {
		if showPreview {
			sb.WriteString(colour.FormatEntryWithPreview(e, 8) + "\n")
		} else {
			sb.WriteString(e.ID + " " + e.Hex + "\n")
		}
	}
	return sb.String()
}

// formatRGB formats the palette as one "<id> rgb(r, g, b)" line per entry.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, e := range palette.Entries {
		sb.WriteString(e.ID + " ")
		if showPreview {
			sb.WriteString(colour.ColourPreview(e.RGB(), 8) + "  ")
		}
		sb.WriteString(e.RGB().String() + "\n")
	}
	return sb.String()
}

// formatTable formats the palette as an aligned table.
func formatTable(palette *colour.Palette, showPreview bool) string {
	headers := []string{"ID", "Hex", "RGB", "Name", "Count"}
	if showPreview {
		headers = append([]string{"Colour"}, headers...)
	}

	table := NewTable(headers)
	for _, e := range palette.Entries {
		row := []string{e.ID, e.Hex, e.RGB().String(), e.Name, strconv.Itoa(e.Count)}
		if showPreview {
			row = append([]string{colour.ColourPreviewWithText(e.RGB(), e.ID, 6)}, row...)
		}
		table.AddRow(row)
	}
	return table.Render()
}
