package check

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// validateCheckArgs validates the arguments provided to the check command.
func validateCheckArgs(options *RunOptionsCheck, args []string, flags *pflag.FlagSet) error {
	if len(args) > 1 {
		return fmt.Errorf("at most one basedir argument is accepted, got %d", len(args))
	}

	if len(args) == 1 {
		if flags != nil && flags.Changed("basedir") {
			return fmt.Errorf("you cannot use a 'basedir' flag and a basedir argument at the same time")
		}
		if strings.TrimSpace(args[0]) == "" {
			return fmt.Errorf("the basedir argument must not be blank")
		}
		options.Basedir = args[0]
	}

	options.OutputFormat = strings.ToLower(strings.TrimSpace(options.OutputFormat))
	if options.OutputFormat == "" {
		options.OutputFormat = FormatPlain
	}
	if !isSupportedFormat(options.OutputFormat) {
		return fmt.Errorf("unsupported output format %q, expected one of: %s", options.OutputFormat, strings.Join(supportedFormats, ", "))
	}

	if options.Threads <= 0 {
		return fmt.Errorf("the 'threads' flag must be a positive integer")
	}

	return nil
}

func isSupportedFormat(format string) bool {
	for _, f := range supportedFormats {
		if f == format {
			return true
		}
	}
	return false
}
