// Package cli provides the command-line interface for pbnpalette.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/version"
)

// NewRootCmd builds the pbnpalette command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pbnpalette",
		Short: "A paint-by-number palette extractor",
		Long: `pbnpalette reduces an image to a small palette of perceptually distinct
colours suitable for paint-by-number puzzles.

Each colour gets a short stable id (A-Z, 0-9, then a1, a2, ...) so that a
grid generator can label cells with the colour to paint.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// newLogger builds the command logger from the global verbosity flags.
// Quiet wins over verbose.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	var output io.Writer = cmd.ErrOrStderr()
	level := hclog.Warn
	switch {
	case quiet:
		output = io.Discard
		level = hclog.Off
	case verbose:
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "pbnpalette",
		Output: output,
		Level:  level,
	})
}
