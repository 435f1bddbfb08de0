// Package usage searches usage (source) files for property references.
package usage

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/scan-io-git/propusage/internal/observe"
	"github.com/scan-io-git/propusage/internal/template"
	"github.com/scan-io-git/propusage/pkg/shared"
	sharederrors "github.com/scan-io-git/propusage/pkg/shared/errors"
	"github.com/scan-io-git/propusage/pkg/shared/files"
)

// Location is a property reference found on one line of a usage file.
type Location struct {
	Property string `json:"property"`
	Row      int    `json:"row"`
	File     string `json:"file"`
}

// LocationSet is a set of locations; equal locations collapse.
type LocationSet map[Location]struct{}

// Add inserts loc.
func (s LocationSet) Add(loc Location) {
	s[loc] = struct{}{}
}

// Sorted returns the locations ordered by file, row and property.
func (s LocationSet) Sorted() []Location {
	out := make([]Location, 0, len(s))
	for loc := range s {
		out = append(out, loc)
	}
	SortLocations(out)
	return out
}

// SortLocations orders locations by file, row and property.
func SortLocations(locs []Location) {
	sort.Slice(locs, func(i, j int) bool {
		a, b := locs[i], locs[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Property < b.Property
	})
}

// NameSet is a set of property names.
type NameSet map[string]struct{}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Scanner reads usage files and applies compiled templates to them.
type Scanner struct {
	charset encoding.Encoding
	threads int
	logger  observe.Logger
}

// NewScanner creates a Scanner decoding files with charset. threads bounds concurrent file reads.
func NewScanner(charset encoding.Encoding, threads int, logger observe.Logger) *Scanner {
	return &Scanner{
		charset: charset,
		threads: threads,
		logger:  observe.OrNop(logger),
	}
}

func (s *Scanner) readLines(path string) ([]string, error) {
	s.logger.Debug("reading usage file", "file", path)
	lines, err := files.ReadLines(path, s.charset)
	if err != nil {
		return nil, sharederrors.WrapIO(path, err)
	}
	return lines, nil
}

// ReadDefinedUsages returns the properties whose bound pattern matches at least one file.
// Each file is matched as a single string with its lines joined without separators, so a
// pattern may match across what were line breaks. Only presence is recorded.
func (s *Scanner) ReadDefinedUsages(ctx context.Context, paths []string, patterns []template.BoundPattern) (NameSet, error) {
	perFile := make([][]string, len(paths))
	err := shared.ForEachWithBoundedGoroutines(ctx, s.threads, paths, func(_ context.Context, i int, path string) error {
		lines, err := s.readLines(path)
		if err != nil {
			return err
		}
		content := strings.Join(lines, "")

		var found []string
		for _, p := range patterns {
			if p.Regexp.MatchString(content) {
				s.logger.Trace("property used", "property", p.Property, "file", path, "pattern", p.Regexp.String())
				found = append(found, p.Property)
			}
		}
		perFile[i] = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	used := make(NameSet)
	for _, found := range perFile {
		for _, property := range found {
			used[property] = struct{}{}
		}
	}
	return used, nil
}

// ReadAllUsages returns every property reference captured by the generic patterns, line by line.
// Every match on a line yields a location; the property name is taken from group 1.
func (s *Scanner) ReadAllUsages(ctx context.Context, paths []string, patterns []*regexp.Regexp) (LocationSet, error) {
	perFile := make([][]Location, len(paths))
	err := shared.ForEachWithBoundedGoroutines(ctx, s.threads, paths, func(_ context.Context, i int, path string) error {
		lines, err := s.readLines(path)
		if err != nil {
			return err
		}
		perFile[i] = MatchLines(path, lines, patterns)
		return nil
	})
	if err != nil {
		return nil, err
	}

	locations := make(LocationSet)
	for _, locs := range perFile {
		for _, loc := range locs {
			s.logger.Trace("property reference", "property", loc.Property, "file", loc.File, "row", loc.Row)
			locations.Add(loc)
		}
	}
	return locations, nil
}

// MatchLines applies patterns to each line and returns the captured property names with 1-based rows.
func MatchLines(file string, lines []string, patterns []*regexp.Regexp) []Location {
	var locs []Location
	for _, re := range patterns {
		for i, line := range lines {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				if len(m) < 2 || m[1] == "" {
					continue
				}
				locs = append(locs, Location{Property: m[1], Row: i + 1, File: file})
			}
		}
	}
	return locs
}
