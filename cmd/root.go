package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/propusage/cmd/check"
	"github.com/scan-io-git/propusage/cmd/version"
	"github.com/scan-io-git/propusage/internal/config"
	"github.com/scan-io-git/propusage/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "propusage [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Propusage checks that properties files and source code agree.",
		Long: `Propusage reads key/value properties files and searches source files for property usages
described by regular expression templates. It reports keys defined more than once,
defined keys that are never used and used keys that are never defined.
`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default is %s in the working directory)", config.DefaultConfigFile))
	rootCmd.AddCommand(check.CheckCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return errors.ExitCode(err)
	}
	return errors.ExitCodeOK
}

func initConfig(cmd *cobra.Command, args []string) error {
	var err error

	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		return errors.NewCommandError(fmt.Errorf("initializing config file: %w", err), errors.ExitCodeError)
	}
	if err := config.ValidateLoggerConfig(&AppConfig.Logger); err != nil {
		return errors.NewCommandError(err, errors.ExitCodeError)
	}

	check.Init(AppConfig)
	return nil
}
