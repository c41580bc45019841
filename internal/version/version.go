// Package version reports how a pbnpalette binary was built and which
// extraction defaults it ships with. Build metadata is injected with ldflags.
package version

import (
	"fmt"
	"runtime"

	"github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/colour"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/version.Version=1.0.0 \
//	  -X github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/wsw1818-afk/paint-canvas-nativ-sub000/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Engine lists the palette extraction defaults compiled into the binary.
// Palettes are only reproducible between builds whose Engine values match.
type Engine struct {
	Levels         int     `json:"levels"`
	MaxIterations  int     `json:"max_iterations"`
	MergeThreshold float64 `json:"merge_threshold"`
	MaxColours     int     `json:"max_colours"`
}

// Info is the full build description.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Engine    Engine `json:"engine"`
}

// GetInfo collects the build metadata and engine defaults.
func GetInfo() Info {
	defaults := colour.DefaultOptions()
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Engine: Engine{
			Levels:         defaults.Levels,
			MaxIterations:  defaults.MaxIterations,
			MergeThreshold: defaults.MergeThreshold,
			MaxColours:     colour.MaxColours,
		},
	}
}

// String renders Info on two lines: the build, then the engine defaults.
func String() string {
	info := GetInfo()

	build := fmt.Sprintf("pbnpalette version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
	if info.Commit != "unknown" && info.Date != "unknown" {
		build = fmt.Sprintf("pbnpalette version %s (commit: %s, built: %s, %s, %s)",
			info.Version, shortCommit(info.Commit), info.Date, info.GoVersion, info.Platform)
	}

	e := info.Engine
	return fmt.Sprintf("%s\nengine: levels=%d max-iterations=%d merge-threshold=%g max-colours=%d",
		build, e.Levels, e.MaxIterations, e.MergeThreshold, e.MaxColours)
}

// Short returns the bare version, used for --version.
func Short() string {
	return Version
}

func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
