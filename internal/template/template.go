// Package template turns usage templates into regular expressions.
//
// A usage template is a regular expression containing one placeholder token. The placeholder is
// replaced either by a concrete property name, to test whether that property is used, or by a
// key-syntax pattern that captures any property name in group 1.
package template

import (
	"regexp"
	"strings"

	sharederrors "github.com/scan-io-git/propusage/pkg/shared/errors"
)

const (
	// DefaultPlaceholder is the token replaced in templates.
	DefaultPlaceholder = "REPLACE_THIS"
	// DefaultPropertyNameRegexp captures a property name when searching for all usages.
	DefaultPropertyNameRegexp = `([a-z0-9\-\.]+?)`
	// DefaultTemplate matches the property name in double quotes.
	DefaultTemplate = `"` + DefaultPlaceholder + `"`
)

// BoundPattern is a template compiled for one property.
type BoundPattern struct {
	Property string
	Regexp   *regexp.Regexp
}

// Compiler substitutes the placeholder and compiles the result.
type Compiler struct {
	placeholder        string
	propertyNameRegexp string
	rawPropertyNames   bool
}

// NewCompiler creates a Compiler. Empty arguments fall back to the defaults.
// Property names are regex-quoted before substitution unless rawPropertyNames is set, in which
// case a name such as "a.b" also matches "axb".
func NewCompiler(placeholder, propertyNameRegexp string, rawPropertyNames bool) *Compiler {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	if propertyNameRegexp == "" {
		propertyNameRegexp = DefaultPropertyNameRegexp
	}
	return &Compiler{
		placeholder:        placeholder,
		propertyNameRegexp: propertyNameRegexp,
		rawPropertyNames:   rawPropertyNames,
	}
}

// Validate checks every template compiles in both modes, so configuration problems surface before any file is read.
func (c *Compiler) Validate(templates []string) error {
	if len(templates) == 0 {
		return sharederrors.Configurationf("no usage templates configured")
	}
	for _, tpl := range templates {
		if _, err := c.Bind(tpl, "property.name"); err != nil {
			return err
		}
	}
	_, err := c.CompileGeneric(templates)
	return err
}

func (c *Compiler) checkPlaceholder(tpl string) error {
	if n := strings.Count(tpl, c.placeholder); n != 1 {
		return sharederrors.Configurationf("template %q must contain placeholder %q exactly once, found %d", tpl, c.placeholder, n)
	}
	return nil
}

// Bind compiles tpl for one property name.
func (c *Compiler) Bind(tpl, property string) (BoundPattern, error) {
	if err := c.checkPlaceholder(tpl); err != nil {
		return BoundPattern{}, err
	}

	name := property
	if !c.rawPropertyNames {
		name = regexp.QuoteMeta(property)
	}
	expr := strings.Replace(tpl, c.placeholder, name, 1)
	re, err := regexp.Compile(expr)
	if err != nil {
		return BoundPattern{}, sharederrors.Configurationf("template %q bound to property %q: %v", tpl, property, err)
	}
	return BoundPattern{Property: property, Regexp: re}, nil
}

// CompileBound compiles every template for every property.
func (c *Compiler) CompileBound(templates []string, properties []string) ([]BoundPattern, error) {
	patterns := make([]BoundPattern, 0, len(templates)*len(properties))
	for _, tpl := range templates {
		for _, property := range properties {
			p, err := c.Bind(tpl, property)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, p)
		}
	}
	return patterns, nil
}

// CompileGeneric compiles every template with the property name pattern in place of the placeholder.
// The property name must be captured by group 1 of the resulting expression.
func (c *Compiler) CompileGeneric(templates []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(templates))
	for _, tpl := range templates {
		if err := c.checkPlaceholder(tpl); err != nil {
			return nil, err
		}
		expr := strings.Replace(tpl, c.placeholder, c.propertyNameRegexp, 1)
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, sharederrors.Configurationf("template %q with property name pattern %q: %v", tpl, c.propertyNameRegexp, err)
		}
		if re.NumSubexp() < 1 {
			return nil, sharederrors.Configurationf("template %q with property name pattern %q has no capture group for the property name", tpl, c.propertyNameRegexp)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}
