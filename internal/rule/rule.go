// Package rule runs the property usage check: it reads definitions, scans usages and reconciles both.
package rule

import (
	"context"
	"fmt"

	"github.com/scan-io-git/propusage/internal/observe"
	"github.com/scan-io-git/propusage/internal/properties"
	"github.com/scan-io-git/propusage/internal/reconcile"
	"github.com/scan-io-git/propusage/internal/template"
	"github.com/scan-io-git/propusage/internal/usage"
	sharederrors "github.com/scan-io-git/propusage/pkg/shared/errors"
	"github.com/scan-io-git/propusage/pkg/shared/files"
)

// Options configures one run. File lists are already resolved to paths.
type Options struct {
	DefinitionFiles    []string
	UsageFiles         []string
	DefinitionsCharset string
	UsagesCharset      string
	Templates          []string
	Placeholder        string
	PropertyNameRegexp string
	Checks             reconcile.Checks
	RawPropertyNames   bool
	Threads            int
}

// DefaultOptions returns options with every check enabled and the default template.
func DefaultOptions() Options {
	return Options{
		DefinitionsCharset: files.DefaultCharset,
		UsagesCharset:      files.DefaultCharset,
		Templates:          []string{template.DefaultTemplate},
		Placeholder:        template.DefaultPlaceholder,
		PropertyNameRegexp: template.DefaultPropertyNameRegexp,
		Checks:             reconcile.AllChecks(),
		Threads:            1,
	}
}

// Result is the outcome of a run.
type Result struct {
	Findings reconcile.Findings
	Index    *properties.Index
	Checks   reconcile.Checks
	Passed   bool

	DefinitionFiles int
	UsageFiles      int
}

// Err returns ErrReconciliation when an enabled check failed.
func (r *Result) Err() error {
	if r.Passed {
		return nil
	}
	return sharederrors.ErrReconciliation
}

// Engine runs the check with fixed options.
type Engine struct {
	opts   Options
	logger observe.Logger
}

// New creates an Engine. A nil logger discards output.
func New(opts Options, logger observe.Logger) *Engine {
	return &Engine{
		opts:   opts,
		logger: observe.OrNop(logger),
	}
}

// Run executes the check. Configuration problems are reported before any file is read;
// an unreadable file aborts the run.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	opts := e.opts
	e.logger.Debug("running property usage check",
		"definitions", len(opts.DefinitionFiles),
		"usages", len(opts.UsageFiles),
		"templates", opts.Templates,
		"placeholder", opts.Placeholder,
		"property_name_regexp", opts.PropertyNameRegexp,
		"checks", fmt.Sprintf("%+v", opts.Checks),
	)

	compiler := template.NewCompiler(opts.Placeholder, opts.PropertyNameRegexp, opts.RawPropertyNames)
	if err := compiler.Validate(opts.Templates); err != nil {
		return nil, err
	}
	definitionsCharset, err := files.ResolveCharset(opts.DefinitionsCharset)
	if err != nil {
		return nil, sharederrors.WrapConfiguration(err)
	}
	usagesCharset, err := files.ResolveCharset(opts.UsagesCharset)
	if err != nil {
		return nil, sharederrors.WrapConfiguration(err)
	}

	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}

	idx, err := properties.NewReader(definitionsCharset, threads, e.logger).ReadFiles(ctx, opts.DefinitionFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to read property definitions: %w", err)
	}
	if opts.Checks.Duplicates {
		for _, key := range idx.Keys() {
			e.logger.Trace("property definitions", "key", key, "count", idx.Count(key))
		}
	}

	scanner := usage.NewScanner(usagesCharset, threads, e.logger)

	used := usage.NameSet{}
	if opts.Checks.Unused {
		bound, err := compiler.CompileBound(opts.Templates, idx.Keys())
		if err != nil {
			return nil, err
		}
		e.logger.Debug("compiled property-bound templates", "patterns", len(bound))
		used, err = scanner.ReadDefinedUsages(ctx, opts.UsageFiles, bound)
		if err != nil {
			return nil, fmt.Errorf("failed to scan defined property usages: %w", err)
		}
	}

	locations := usage.LocationSet{}
	if opts.Checks.Undefined {
		generic, err := compiler.CompileGeneric(opts.Templates)
		if err != nil {
			return nil, err
		}
		locations, err = scanner.ReadAllUsages(ctx, opts.UsageFiles, generic)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property usages: %w", err)
		}
	}

	findings := reconcile.Reconcile(idx, used, locations, opts.Checks)
	result := &Result{
		Findings:        findings,
		Index:           idx,
		Checks:          opts.Checks,
		Passed:          !findings.Failed(opts.Checks),
		DefinitionFiles: len(opts.DefinitionFiles),
		UsageFiles:      len(opts.UsageFiles),
	}

	e.logger.Debug("property usage check finished",
		"keys", idx.Len(),
		"duplicates", len(findings.DefinedMoreThanOnce),
		"unused", len(findings.NotUsed),
		"undefined", len(findings.NotDefined),
		"passed", result.Passed,
	)
	return result, nil
}
