package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/scan-io-git/propusage/internal/template"
	sharederrors "github.com/scan-io-git/propusage/pkg/shared/errors"
	"github.com/scan-io-git/propusage/pkg/shared/files"
)

var logLevels = map[string]struct{}{
	"TRACE": {},
	"DEBUG": {},
	"INFO":  {},
	"WARN":  {},
	"ERROR": {},
}

// ValidateConfig checks the whole configuration and reports every problem at once.
// The returned error matches ErrConfiguration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return sharederrors.Configurationf("YAML config: configuration object is nil")
	}

	var result *multierror.Error
	if err := ValidateLoggerConfig(&cfg.Logger); err != nil {
		result = multierror.Append(result, fmt.Errorf("logger directive is invalid: %w", err))
	}
	if err := ValidateRuleConfig(&cfg.Rule); err != nil {
		result = multierror.Append(result, fmt.Errorf("rule directive is invalid: %w", err))
	}

	if err := result.ErrorOrNil(); err != nil {
		return sharederrors.WrapConfiguration(err)
	}
	return nil
}

// ValidateLoggerConfig checks the logger section.
func ValidateLoggerConfig(l *Logger) error {
	if l.Level == "" {
		return nil
	}
	if _, ok := logLevels[strings.ToUpper(l.Level)]; !ok {
		return fmt.Errorf("unknown log level %q", l.Level)
	}
	return nil
}

// ValidateRuleConfig checks the rule section.
func ValidateRuleConfig(r *Rule) error {
	var result *multierror.Error

	result = multierror.Append(result, validateSpecs("definitions", r.Definitions)...)
	result = multierror.Append(result, validateSpecs("usages", r.Usages)...)

	templatesUsable := true
	if strings.TrimSpace(r.Placeholder) == "" {
		result = multierror.Append(result, fmt.Errorf("placeholder must not be blank"))
		templatesUsable = false
	}
	if strings.TrimSpace(r.PropertyNameRegexp) == "" {
		result = multierror.Append(result, fmt.Errorf("property_name_regexp must not be blank"))
		templatesUsable = false
	}
	if len(r.Templates) == 0 {
		result = multierror.Append(result, fmt.Errorf("at least one template is required"))
		templatesUsable = false
	}
	for i, tpl := range r.Templates {
		if strings.TrimSpace(tpl) == "" {
			result = multierror.Append(result, fmt.Errorf("templates[%d] must not be blank", i))
			templatesUsable = false
		}
	}
	if templatesUsable {
		compiler := template.NewCompiler(r.Placeholder, r.PropertyNameRegexp, !r.QuotePropertyNames())
		if err := compiler.Validate(r.Templates); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if _, err := files.ResolveCharset(r.PropertiesEncoding); err != nil {
		result = multierror.Append(result, fmt.Errorf("properties_encoding: %w", err))
	}
	if _, err := files.ResolveCharset(r.SourceEncoding); err != nil {
		result = multierror.Append(result, fmt.Errorf("source_encoding: %w", err))
	}

	if r.Threads < 1 || r.Threads > MaxThreads {
		result = multierror.Append(result, fmt.Errorf("threads must be between 1 and %d: %d", MaxThreads, r.Threads))
	}

	return result.ErrorOrNil()
}

func validateSpecs(name string, specs []string) []error {
	if len(specs) == 0 {
		return []error{fmt.Errorf("at least one %s spec is required", name)}
	}
	var errs []error
	for i, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			errs = append(errs, fmt.Errorf("%s[%d] must not be blank", name, i))
		}
	}
	return errs
}
