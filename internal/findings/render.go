package findings

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Report is the JSON document written for a run.
type Report struct {
	RunID     string         `json:"run_id"`
	Tool      string         `json:"tool"`
	Version   string         `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	Passed    bool           `json:"passed"`
	Summary   map[string]int `json:"summary"`
	Findings  []Finding      `json:"findings"`
}

// NewReport builds a report with a fresh run id.
func NewReport(version string, passed bool, list []Finding) Report {
	if list == nil {
		list = []Finding{}
	}
	return Report{
		RunID:     uuid.NewString(),
		Tool:      Tool,
		Version:   version,
		CreatedAt: time.Now().UTC(),
		Passed:    passed,
		Summary:   CountByRule(list),
		Findings:  list,
	}
}

// JSON encodes the report with indentation.
func (r Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal findings report: %w", err)
	}
	return data, nil
}

// Render produces a human-readable report grouped by file.
func Render(list []Finding) string {
	var output strings.Builder

	if len(list) == 0 {
		output.WriteString("No property definition or usage problems found.\n")
		return output.String()
	}

	counts := CountByRule(list)
	output.WriteString(fmt.Sprintf("Found %d problems (%d duplicate, %d unused, %d undefined).\n\n",
		len(list), counts[RuleDuplicate], counts[RuleUnused], counts[RuleUndefined]))

	byPath := make(map[string][]Finding)
	for _, f := range list {
		byPath[f.FilePath] = append(byPath[f.FilePath], f)
	}
	paths := make([]string, 0, len(byPath))
	for path := range byPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		issues := byPath[path]
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].StartLine < issues[j].StartLine
		})

		output.WriteString(fmt.Sprintf("%s\n", path))
		for _, f := range issues {
			output.WriteString(fmt.Sprintf("  %d: %s [%s]\n", f.StartLine, f.Description, f.RuleID))
		}
		output.WriteString("\n")
	}
	return output.String()
}
