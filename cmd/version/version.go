package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	CoreVersion   = "unknown"
	GolangVersion = runtime.Version()
	BuildTime     = "unknown"
)

// Versions holds build information of the binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// Current returns the build information of the running binary.
func Current() Versions {
	return Versions{
		Version:       CoreVersion,
		GolangVersion: GolangVersion,
		BuildTime:     BuildTime,
	}
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:                   "version [--json]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application",
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersionInfo(cmd.OutOrStdout(), Current(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON.")
	return cmd
}

// printVersionInfo prints the version information for the core application.
func printVersionInfo(w io.Writer, versions Versions, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(versions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	fmt.Fprintf(w, "Core Version: v%s\n", versions.Version)
	fmt.Fprintf(w, "Go Version: %s\n", versions.GolangVersion)
	fmt.Fprintf(w, "Build Time: %s\n", versions.BuildTime)
	return nil
}
