package sarif

import (
	"bytes"
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/propusage/internal/findings"
	"github.com/scan-io-git/propusage/internal/git"
	"github.com/scan-io-git/propusage/pkg/shared/files"
)

const (
	informationURI = "https://github.com/scan-io-git/propusage"
	defaultLevel   = "error"
)

// Report is a SARIF 2.1.0 document built from property findings.
type Report struct {
	*sarif.Report
	sourceFolder string
}

// ToolMetadata identifies the producer of a report.
type ToolMetadata struct {
	Name    string
	Version *string
}

// NewReport converts findings into a single-run SARIF report.
// File paths under sourceFolder are written relative to it.
func NewReport(version, sourceFolder string, list []findings.Finding) (*Report, error) {
	reportSarif, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(findings.Tool, informationURI)
	if version != "" {
		run.Tool.Driver.WithVersion(version)
	}

	for _, r := range findings.Rules {
		run.AddRule(r.ID).
			WithName(r.Title).
			WithShortDescription(sarif.NewMultiformatMessageString(r.Title)).
			WithDescription(r.Description).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: defaultLevel})
	}

	r := &Report{Report: reportSarif, sourceFolder: sourceFolder}
	for _, f := range list {
		run.AddResult(r.newResult(f))
	}
	reportSarif.AddRun(run)
	return r, nil
}

func (r *Report) newResult(f findings.Finding) *sarif.Result {
	level := f.Severity
	if level == "" {
		level = defaultLevel
	}

	result := sarif.NewRuleResult(f.RuleID).
		WithMessage(sarif.NewTextMessage(f.Description)).
		WithLevel(level)

	if f.FilePath != "" {
		result.WithLocations([]*sarif.Location{r.newLocation(f.FilePath, f.StartLine)})
	}
	if len(f.Locations) > 1 {
		related := make([]*sarif.Location, 0, len(f.Locations))
		for i, loc := range f.Locations {
			related = append(related, r.newLocation(loc.FilePath, loc.Line).WithId(i))
		}
		result.WithRelatedLocations(related)
	}

	result.Properties = sarif.Properties{"key": f.Key}
	for _, p := range f.Properties {
		result.Properties[p.Name] = p.Value
	}
	return result
}

func (r *Report) newLocation(path string, line int) *sarif.Location {
	region := sarif.NewRegion()
	if line > 0 {
		region.WithStartLine(line)
	}
	return sarif.NewLocation().WithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(ArtifactURI(path, r.sourceFolder))).
			WithRegion(region),
	)
}

// AddRepositoryMetadata records the repository, revision and branch the check ran on.
// Metadata without a repository URL is ignored since SARIF requires one.
func (r *Report) AddRepositoryMetadata(md *git.RepositoryMetadata) {
	if md == nil || md.RepositoryURL == nil || len(r.Runs) == 0 {
		return
	}
	details := sarif.NewVersionControlDetails().WithRepositoryURI(*md.RepositoryURL)
	if md.CommitHash != nil {
		details.WithRevisionID(*md.CommitHash)
	}
	if md.BranchName != nil {
		details.WithBranch(*md.BranchName)
	}
	r.Runs[0].AddVersionControlProvenance(details)
}

// ExtractToolNameAndVersion returns the driver metadata of the first run.
func (r Report) ExtractToolNameAndVersion() (*ToolMetadata, error) {
	if len(r.Runs) == 0 || r.Runs[0].Tool.Driver == nil {
		return nil, fmt.Errorf("report has no tool driver")
	}
	return &ToolMetadata{
		Name:    r.Runs[0].Tool.Driver.Name,
		Version: r.Runs[0].Tool.Driver.Version,
	}, nil
}

// CountResultsByRule returns the number of results per rule id across all runs.
func (r Report) CountResultsByRule() map[string]int {
	counts := make(map[string]int)
	for _, run := range r.Runs {
		for _, result := range run.Results {
			if result.RuleID != nil {
				counts[*result.RuleID]++
			}
		}
	}
	return counts
}

// Write renders the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	if err := r.Report.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}

// WriteFile renders the report into outputFile, creating parent folders as needed.
func (r *Report) WriteFile(outputFile string) error {
	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		return err
	}
	return files.WriteFile(outputFile, buf.Bytes())
}
