package rule

import (
	"fmt"
	"strconv"

	"github.com/scan-io-git/propusage/internal/findings"
	"github.com/scan-io-git/propusage/internal/observe"
)

const severity = "error"

// Violations converts the findings of enabled checks into report entries.
func (r *Result) Violations() []findings.Finding {
	var list []findings.Finding

	if r.Checks.Duplicates {
		for _, key := range r.Findings.DuplicateKeys() {
			count := r.Findings.DefinedMoreThanOnce[key]
			f := newFinding(findings.RuleDuplicate, key, fmt.Sprintf("Property '%s' defined %d times", key, count))
			defs := r.Index.Definitions(key)
			for _, def := range defs {
				f.Locations = append(f.Locations, findings.Location{FilePath: def.File, Line: def.Line})
			}
			if len(defs) > 0 {
				f.FilePath, f.StartLine = defs[0].File, defs[0].Line
			}
			f.Properties = []findings.Property{{Name: "count", Value: strconv.Itoa(count)}}
			list = append(list, f)
		}
	}

	if r.Checks.Unused {
		for _, key := range r.Findings.NotUsed {
			f := newFinding(findings.RuleUnused, key, fmt.Sprintf("Property '%s' not used", key))
			if defs := r.Index.Definitions(key); len(defs) > 0 {
				f.FilePath, f.StartLine = defs[0].File, defs[0].Line
			}
			list = append(list, f)
		}
	}

	if r.Checks.Undefined {
		for _, loc := range r.Findings.NotDefined {
			f := newFinding(findings.RuleUndefined, loc.Property,
				fmt.Sprintf("Property '%s' used without defining it (%s:%d)", loc.Property, loc.File, loc.Row))
			f.FilePath, f.StartLine = loc.File, loc.Row
			list = append(list, f)
		}
	}

	findings.Sort(list)
	return list
}

func newFinding(ruleID, key, description string) findings.Finding {
	f := findings.Finding{
		RuleID:      ruleID,
		Description: description,
		Severity:    severity,
		Tool:        findings.Tool,
		Key:         key,
	}
	if rule, ok := findings.RuleByID(ruleID); ok {
		f.Title = rule.Title
	}
	return f
}

// LogViolations writes one error entry per violation.
func LogViolations(logger observe.Logger, list []findings.Finding) {
	logger = observe.OrNop(logger)
	for _, f := range list {
		logger.Error(f.Description, "rule", f.RuleID, "key", f.Key, "file", f.FilePath, "line", f.StartLine)
	}
}
