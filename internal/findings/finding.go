package findings

import (
	"sort"
)

// Rule identifiers of the three finding categories.
const (
	RuleDuplicate = "PROPUSAGE-DUPLICATE"
	RuleUnused    = "PROPUSAGE-UNUSED"
	RuleUndefined = "PROPUSAGE-UNDEFINED"
)

// Tool is the name reported as the producer of findings.
const Tool = "propusage"

// Rule describes a finding category.
type Rule struct {
	ID          string
	Title       string
	Description string
}

// Rules lists the finding categories in report order.
var Rules = []Rule{
	{
		ID:          RuleDuplicate,
		Title:       "Property defined more than once",
		Description: "A property key is defined on more than one line across the definitions files.",
	},
	{
		ID:          RuleUnused,
		Title:       "Property not used",
		Description: "A property key is defined but none of the usage templates matched it in the usage files.",
	},
	{
		ID:          RuleUndefined,
		Title:       "Property used without defining it",
		Description: "A property key referenced in a usage file is not defined in any definitions file.",
	},
}

// RuleByID returns the rule with the given id.
func RuleByID(id string) (Rule, bool) {
	for _, r := range Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Property is a simple name/value pair used for custom metadata.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Location is a file position related to a finding.
type Location struct {
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
}

// Finding is one reported violation.
type Finding struct {
	RuleID      string `json:"rule_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Tool        string `json:"tool"`

	// Key is the property the finding is about.
	Key string `json:"key"`

	FilePath  string `json:"file_path,omitempty"`
	StartLine int    `json:"start_line,omitempty"`

	// Locations lists every related position, e.g. all definitions of a duplicated key.
	Locations  []Location `json:"locations,omitempty"`
	Properties []Property `json:"properties,omitempty"`
}

// Sort orders findings by rule (in Rules order), key, file and line.
func Sort(list []Finding) {
	order := make(map[string]int, len(Rules))
	for i, r := range Rules {
		order[r.ID] = i
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if order[a.RuleID] != order[b.RuleID] {
			return order[a.RuleID] < order[b.RuleID]
		}
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.StartLine < b.StartLine
	})
}

// CountByRule returns the number of findings per rule id.
func CountByRule(list []Finding) map[string]int {
	counts := make(map[string]int, len(Rules))
	for _, r := range Rules {
		counts[r.ID] = 0
	}
	for _, f := range list {
		counts[f.RuleID]++
	}
	return counts
}
