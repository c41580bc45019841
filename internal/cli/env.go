package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// envDefaults maps environment variables to the extract flags they default.
var envDefaults = []struct {
	env  string
	flag string
}{
	{"PBNPALETTE_COLOURS", "colours"},
	{"PBNPALETTE_LEVELS", "levels"},
	{"PBNPALETTE_MERGE_THRESHOLD", "merge-threshold"},
}

// applyEnvDefaults sets every flag the user left unset from its environment
// variable, if present. Explicit flags always win.
func applyEnvDefaults(flags *pflag.FlagSet, lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, d := range envDefaults {
		f := flags.Lookup(d.flag)
		if f == nil || f.Changed {
			continue
		}
		value, ok := lookup(d.env)
		if !ok || value == "" {
			continue
		}
		if err := flags.Set(d.flag, value); err != nil {
			return fmt.Errorf("invalid %s: %w", d.env, err)
		}
	}
	return nil
}
