package check

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/scan-io-git/propusage/internal/config"
	"github.com/scan-io-git/propusage/internal/findings"
	"github.com/scan-io-git/propusage/internal/git"
	"github.com/scan-io-git/propusage/internal/reconcile"
	"github.com/scan-io-git/propusage/internal/rule"
	"github.com/scan-io-git/propusage/internal/sarif"
	"github.com/scan-io-git/propusage/pkg/shared"
	"github.com/scan-io-git/propusage/pkg/shared/files"
)

// Output formats
const (
	FormatPlain = "plain"
	FormatJSON  = "json"
	FormatSarif = "sarif"
)

var supportedFormats = []string{FormatPlain, FormatJSON, FormatSarif}

var reportNames = map[string]string{
	FormatPlain: "propusage.txt",
	FormatJSON:  "propusage.json",
	FormatSarif: "propusage.sarif",
}

// mergeConfig copies cfg and overrides it with the flags that were set on the command line.
// The positional basedir, already stored in options, wins over the configured one.
func mergeConfig(cfg *config.Config, options *RunOptionsCheck, flags *pflag.FlagSet) *config.Config {
	merged := config.Default()
	if cfg != nil {
		copied := *cfg
		copied.Rule.Definitions = append([]string(nil), cfg.Rule.Definitions...)
		copied.Rule.Usages = append([]string(nil), cfg.Rule.Usages...)
		copied.Rule.Templates = append([]string(nil), cfg.Rule.Templates...)
		merged = &copied
	}

	r := &merged.Rule
	if options.Basedir != "" {
		r.Basedir = options.Basedir
	}
	if !shared.HasFlags(flags) {
		return merged
	}

	r.Definitions = shared.ChangedStringSlice(flags, "definitions", r.Definitions)
	r.Usages = shared.ChangedStringSlice(flags, "usages", r.Usages)
	r.Templates = shared.ChangedStringSlice(flags, "template", r.Templates)

	if flags.Changed("placeholder") {
		r.Placeholder = options.Placeholder
	}
	if flags.Changed("property-name-regexp") {
		r.PropertyNameRegexp = options.PropertyNameRegexp
	}
	if flags.Changed("properties-encoding") {
		r.PropertiesEncoding = options.PropertiesEncoding
	}
	if flags.Changed("source-encoding") {
		r.SourceEncoding = options.SourceEncoding
	}
	if flags.Changed("threads") {
		r.Threads = options.Threads
	}
	if options.NoDuplicatesCheck {
		r.DefinitionsOnlyOnce = config.BoolPtr(false)
	}
	if options.NoUnusedCheck {
		r.DefinedPropertiesAreUsed = config.BoolPtr(false)
	}
	if options.NoUndefinedCheck {
		r.UsedPropertiesAreDefined = config.BoolPtr(false)
	}
	if options.RawPropertyNames {
		r.RawPropertyNames = config.BoolPtr(true)
	}

	return merged
}

// ruleOptions builds engine options from the validated rule configuration and the resolved files.
func ruleOptions(r *config.Rule, definitionFiles, usageFiles []string) rule.Options {
	return rule.Options{
		DefinitionFiles:    definitionFiles,
		UsageFiles:         usageFiles,
		DefinitionsCharset: r.PropertiesEncoding,
		UsagesCharset:      r.SourceEncoding,
		Templates:          r.Templates,
		Placeholder:        r.Placeholder,
		PropertyNameRegexp: r.PropertyNameRegexp,
		Checks: reconcile.Checks{
			Duplicates: r.CheckDuplicates(),
			Unused:     r.CheckUnused(),
			Undefined:  r.CheckUndefined(),
		},
		RawPropertyNames: !r.QuotePropertyNames(),
		Threads:          r.Threads,
	}
}

// jsonReport is the JSON document with the repository the check ran on.
type jsonReport struct {
	findings.Report
	Repository *git.RepositoryMetadata `json:"repository,omitempty"`
}

// reportTarget describes where and how the report of a run is written.
type reportTarget struct {
	format     string
	outputPath string
	basedir    string
	version    string
	metadata   *git.RepositoryMetadata
}

// write renders violations in the configured format to stdout, or to outputPath when set.
func (t reportTarget) write(stdout io.Writer, passed bool, violations []findings.Finding) error {
	data, err := t.render(passed, violations)
	if err != nil {
		return err
	}

	if t.outputPath == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}

	fullPath, _, err := files.DetermineFileFullPath(t.outputPath, reportNames[t.format])
	if err != nil {
		return err
	}
	return files.WriteFile(fullPath, data)
}

func (t reportTarget) render(passed bool, violations []findings.Finding) ([]byte, error) {
	switch t.format {
	case FormatPlain, "":
		return []byte(findings.Render(violations)), nil
	case FormatJSON:
		report := jsonReport{
			Report:     findings.NewReport(t.version, passed, violations),
			Repository: t.metadata,
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal findings report: %w", err)
		}
		return append(data, '\n'), nil
	case FormatSarif:
		report, err := sarif.NewReport(t.version, t.basedir, violations)
		if err != nil {
			return nil, err
		}
		report.AddRepositoryMetadata(t.metadata)
		var buf bytes.Buffer
		if err := report.Write(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", t.format)
	}
}
