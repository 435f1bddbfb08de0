// Package reconcile compares property definitions with their usages.
package reconcile

import (
	"sort"

	"github.com/scan-io-git/propusage/internal/properties"
	"github.com/scan-io-git/propusage/internal/usage"
)

// Checks selects which findings are computed and can fail a run.
type Checks struct {
	Duplicates bool // keys defined more than once
	Unused     bool // defined keys never used
	Undefined  bool // used keys never defined
}

// AllChecks enables every check.
func AllChecks() Checks {
	return Checks{Duplicates: true, Unused: true, Undefined: true}
}

// Findings holds the results of one reconciliation. Disabled checks leave their field empty.
type Findings struct {
	DefinedMoreThanOnce map[string]int   `json:"defined_more_than_once"`
	NotUsed             []string         `json:"not_used"`
	NotDefined          []usage.Location `json:"not_defined"`
}

// Empty reports whether no finding was produced.
func (f Findings) Empty() bool {
	return len(f.DefinedMoreThanOnce) == 0 && len(f.NotUsed) == 0 && len(f.NotDefined) == 0
}

// Failed reports whether an enabled check has findings.
func (f Findings) Failed(checks Checks) bool {
	return checks.Duplicates && len(f.DefinedMoreThanOnce) > 0 ||
		checks.Unused && len(f.NotUsed) > 0 ||
		checks.Undefined && len(f.NotDefined) > 0
}

// DuplicateKeys returns the keys of DefinedMoreThanOnce in sorted order.
func (f Findings) DuplicateKeys() []string {
	keys := make([]string, 0, len(f.DefinedMoreThanOnce))
	for key := range f.DefinedMoreThanOnce {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Reconcile computes the findings of the enabled checks. It does not modify its inputs.
// used may be nil when the unused check is off, locations may be nil when the undefined check is off.
func Reconcile(idx *properties.Index, used usage.NameSet, locations usage.LocationSet, checks Checks) Findings {
	f := Findings{
		DefinedMoreThanOnce: map[string]int{},
		NotUsed:             []string{},
		NotDefined:          []usage.Location{},
	}

	if checks.Duplicates {
		for key, count := range idx.Counts() {
			if count > 1 {
				f.DefinedMoreThanOnce[key] = count
			}
		}
	}

	if checks.Unused {
		for _, key := range idx.Keys() {
			if !used.Has(key) {
				f.NotUsed = append(f.NotUsed, key)
			}
		}
	}

	if checks.Undefined {
		for _, loc := range locations.Sorted() {
			if !idx.Has(loc.Property) {
				f.NotDefined = append(f.NotDefined, loc)
			}
		}
	}

	return f
}
