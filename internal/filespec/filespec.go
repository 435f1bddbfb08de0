// Package filespec expands file specs (files, directories and globs) into absolute file paths.
package filespec

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-zglob"

	"github.com/scan-io-git/propusage/internal/observe"
	sharederrors "github.com/scan-io-git/propusage/pkg/shared/errors"
)

// DefaultExcludes are path components skipped while scanning directories and expanding globs.
var DefaultExcludes = []string{".git", ".svn", ".hg", ".bzr", "CVS", "node_modules", ".DS_Store"}

// Resolver resolves specs relative to a base directory.
type Resolver struct {
	basedir  string
	excludes map[string]struct{}
	logger   observe.Logger
}

// NewResolver creates a Resolver. Relative specs are joined to basedir.
func NewResolver(basedir string, logger observe.Logger) *Resolver {
	excludes := make(map[string]struct{}, len(DefaultExcludes))
	for _, name := range DefaultExcludes {
		excludes[name] = struct{}{}
	}
	return &Resolver{
		basedir:  filepath.Clean(basedir),
		excludes: excludes,
		logger:   observe.OrNop(logger),
	}
}

// Resolve expands every spec and returns absolute, deduplicated, sorted file paths.
// A spec that matches nothing contributes no files; a blank spec is a configuration error.
func (r *Resolver) Resolve(specs []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			return nil, sharederrors.Configurationf("file spec %q is blank", spec)
		}

		found, err := r.resolveOne(spec)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			seen[path] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for path := range seen {
		result = append(result, path)
	}
	sort.Strings(result)

	r.logger.Debug("resolved file specs", "specs", specs, "files", len(result))
	return result, nil
}

func (r *Resolver) resolveOne(spec string) ([]string, error) {
	path := spec
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.basedir, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	switch {
	case err == nil && info.Mode().IsRegular():
		r.logger.Debug("file spec is a file", "spec", spec)
		return []string{path}, nil
	case err == nil && info.IsDir():
		r.logger.Debug("file spec is a directory", "spec", spec)
		return r.walk(path)
	case err == nil:
		r.logger.Error("file spec is not a file or directory", "spec", spec, "mode", info.Mode().String())
		return nil, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, sharederrors.WrapIO(path, err)
	}

	r.logger.Debug("file spec does not exist, assuming wildcards", "spec", spec)
	return r.glob(path)
}

// walk lists every regular file under root, skipping excluded names.
func (r *Resolver) walk(root string) ([]string, error) {
	var result []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return sharederrors.WrapIO(path, err)
		}
		if path != root && r.isExcludedName(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if isRegularFile(path, d) {
			result = append(result, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// glob expands pattern with ** support.
func (r *Resolver) glob(pattern string) ([]string, error) {
	matches, err := zglob.Glob(pattern)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, sharederrors.Configurationf("invalid file spec %q: %v", pattern, err)
	}

	result := make([]string, 0, len(matches))
	for _, match := range matches {
		match = filepath.Clean(match)
		if r.isExcludedPath(match) {
			continue
		}
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		result = append(result, match)
	}
	r.logger.Trace("expanded glob", "pattern", pattern, "matches", result)
	return result, nil
}

func (r *Resolver) isExcludedName(name string) bool {
	_, ok := r.excludes[name]
	return ok
}

// isExcludedPath checks the components of path below basedir, or the whole path when it lies outside.
func (r *Resolver) isExcludedPath(path string) bool {
	rel, err := filepath.Rel(r.basedir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = path
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if r.isExcludedName(part) {
			return true
		}
	}
	return false
}

func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
