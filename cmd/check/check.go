package check

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/propusage/cmd/version"
	"github.com/scan-io-git/propusage/internal/ci"
	"github.com/scan-io-git/propusage/internal/config"
	"github.com/scan-io-git/propusage/internal/filespec"
	"github.com/scan-io-git/propusage/internal/git"
	"github.com/scan-io-git/propusage/internal/logger"
	"github.com/scan-io-git/propusage/internal/rule"
	"github.com/scan-io-git/propusage/pkg/shared/errors"
)

// RunOptionsCheck holds the arguments for the check command.
type RunOptionsCheck struct {
	Basedir            string
	Definitions        []string
	Usages             []string
	Templates          []string
	Placeholder        string
	PropertyNameRegexp string
	PropertiesEncoding string
	SourceEncoding     string
	NoDuplicatesCheck  bool
	NoUnusedCheck      bool
	NoUndefinedCheck   bool
	RawPropertyNames   bool
	Threads            int
	OutputFormat       string
	OutputPath         string
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	checkOptions      RunOptionsCheck
	exampleCheckUsage = `  # Checking a Maven layout with the default template "REPLACE_THIS"
  propusage check

  # Checking another project directory
  propusage check /path/to/project

  # Using getProperty calls and ${...} placeholders as usage templates
  propusage check -t 'getProperty\("REPLACE_THIS"\)' -t '\$\{REPLACE_THIS\}'

  # Checking specific definition and usage files with 4 concurrent readers
  propusage check -d 'src/main/resources/**/*.properties' -u src/main/java -u 'src/main/webapp/**/*.jsp' -j 4

  # Only reporting properties used without being defined
  propusage check --no-duplicates-check --no-unused-check

  # Writing a SARIF report
  propusage check --format sarif --output /path/to/reports/propusage.sarif`
)

// CheckCmd represents the check command.
var CheckCmd = &cobra.Command{
	Use:                   "check [--config PATH] [-d SPEC]... [-u SPEC]... [-t TEMPLATE]... [--format/-f OUTPUT_FORMAT] [--output/-o PATH] [-j THREADS_NUMBER, default=1] [BASEDIR]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleCheckUsage,
	Short:                 "Checks that properties are defined once, used, and only used when defined",
	Long: `Checks property definitions files against their usage in source files.

Three problems are reported:
  PROPUSAGE-DUPLICATE  a property key is defined more than once
  PROPUSAGE-UNUSED     a defined property key is not matched by any usage template
  PROPUSAGE-UNDEFINED  a property key found by a usage template is not defined

Exit codes: 0 when every enabled check passes, 1 on configuration or IO errors, 2 when problems were found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runCheckCommand executes the check command.
func runCheckCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-check")

	if err := validateCheckArgs(&checkOptions, args, cmd.Flags()); err != nil {
		log.Error("invalid check arguments", "error", err)
		return errors.NewCommandError(err, errors.ExitCodeError)
	}

	cfg := mergeConfig(AppConfig, &checkOptions, cmd.Flags())
	if err := config.ValidateConfig(cfg); err != nil {
		log.Error("invalid configuration", "error", err)
		return errors.NewCommandError(err, errors.ExitCodeError)
	}

	workDir, err := os.Getwd()
	if err != nil {
		log.Error("failed to determine working directory", "error", err)
		return errors.NewCommandError(err, errors.ExitCodeError)
	}

	basedir, repoMetadata, err := git.ResolveBasedir(cfg.Rule.Basedir, workDir, log)
	if err != nil {
		log.Error("failed to resolve basedir", "error", err)
		return errors.NewCommandError(err, errors.ExitCodeError)
	}
	if env := ci.Detect(); env.Kind != ci.Unknown {
		log.Debug("applying CI metadata", "ci", env.Kind.String())
		repoMetadata.ApplyEnvironment(env.Branch, env.CommitHash, env.RepositoryURL)
	}
	log.Debug("resolved basedir", "basedir", basedir)

	resolver := filespec.NewResolver(basedir, log)
	definitionFiles, err := resolver.Resolve(cfg.Rule.Definitions)
	if err != nil {
		log.Error("failed to resolve definitions", "error", err)
		return errors.NewCommandError(err, errors.ExitCodeError)
	}
	usageFiles, err := resolver.Resolve(cfg.Rule.Usages)
	if err != nil {
		log.Error("failed to resolve usages", "error", err)
		return errors.NewCommandError(err, errors.ExitCodeError)
	}
	log.Info("checking property usage", "definitions", len(definitionFiles), "usages", len(usageFiles))

	result, err := rule.New(ruleOptions(&cfg.Rule, definitionFiles, usageFiles), log).Run(cmd.Context())
	if err != nil {
		log.Error("check command failed", "error", err)
		return errors.NewCommandError(err, errors.ExitCodeError)
	}

	violations := result.Violations()
	rule.LogViolations(log, violations)

	report := reportTarget{
		format:     checkOptions.OutputFormat,
		outputPath: checkOptions.OutputPath,
		basedir:    basedir,
		version:    version.CoreVersion,
		metadata:   repoMetadata,
	}
	if err := report.write(cmd.OutOrStdout(), result.Passed, violations); err != nil {
		log.Error("failed to write report", "error", err)
		return errors.NewCommandError(err, errors.ExitCodeError)
	}

	if err := result.Err(); err != nil {
		log.Error("check command failed", "violations", len(violations))
		return errors.NewCommandError(err, errors.ExitCodeViolations)
	}

	log.Info("check command completed successfully")
	return nil
}

// Initialize flags for the check command.
func init() {
	CheckCmd.Flags().StringVar(&checkOptions.Basedir, "basedir", "", "Directory relative file specs are resolved against. Defaults to the enclosing git worktree root, then the working directory.")
	CheckCmd.Flags().StringArrayVarP(&checkOptions.Definitions, "definitions", "d", nil, "File, directory or glob of property definitions files. Repeatable.")
	CheckCmd.Flags().StringArrayVarP(&checkOptions.Usages, "usages", "u", nil, "File, directory or glob of source files to search for usages. Repeatable.")
	CheckCmd.Flags().StringArrayVarP(&checkOptions.Templates, "template", "t", nil, "Usage template: a regular expression containing the placeholder once. Repeatable.")
	CheckCmd.Flags().StringVar(&checkOptions.Placeholder, "placeholder", "", "Token replaced in templates (default REPLACE_THIS).")
	CheckCmd.Flags().StringVar(&checkOptions.PropertyNameRegexp, "property-name-regexp", "", "Regular expression capturing a property name in group 1.")
	CheckCmd.Flags().StringVar(&checkOptions.PropertiesEncoding, "properties-encoding", "", "Charset of definitions files (default UTF-8).")
	CheckCmd.Flags().StringVar(&checkOptions.SourceEncoding, "source-encoding", "", "Charset of usage files (default UTF-8).")
	CheckCmd.Flags().BoolVar(&checkOptions.NoDuplicatesCheck, "no-duplicates-check", false, "Do not fail on properties defined more than once.")
	CheckCmd.Flags().BoolVar(&checkOptions.NoUnusedCheck, "no-unused-check", false, "Do not fail on defined properties that are not used.")
	CheckCmd.Flags().BoolVar(&checkOptions.NoUndefinedCheck, "no-undefined-check", false, "Do not fail on used properties that are not defined.")
	CheckCmd.Flags().BoolVar(&checkOptions.RawPropertyNames, "raw-property-names", false, "Insert property names into templates without regex quoting.")
	CheckCmd.Flags().IntVarP(&checkOptions.Threads, "threads", "j", config.DefaultThreads, "Number of concurrent file readers.")
	CheckCmd.Flags().StringVarP(&checkOptions.OutputFormat, "format", "f", FormatPlain, "Report format: plain, json or sarif.")
	CheckCmd.Flags().StringVarP(&checkOptions.OutputPath, "output", "o", "", "File or directory the report is written to. Defaults to stdout.")
	CheckCmd.Flags().BoolP("help", "h", false, "Show help for the check command.")
}
