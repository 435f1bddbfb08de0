package shared

import (
	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag of the set was set on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(*pflag.Flag) {
		changed = true
	})
	return changed
}

// ChangedStringSlice returns the flag value when it was set, otherwise current.
func ChangedStringSlice(flags *pflag.FlagSet, name string, current []string) []string {
	if !flags.Changed(name) {
		return current
	}
	value, err := flags.GetStringArray(name)
	if err != nil {
		return current
	}
	return value
}
