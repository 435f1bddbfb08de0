package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/scan-io-git/propusage/internal/observe"
	"github.com/scan-io-git/propusage/pkg/shared/files"
)

// ResolveBasedir picks the directory relative file specs are resolved against.
// An explicit basedir wins; otherwise the enclosing git worktree root of workDir is used,
// falling back to workDir itself. Metadata is nil when no repository was found.
func ResolveBasedir(basedir, workDir string, logger observe.Logger) (string, *RepositoryMetadata, error) {
	logger = observe.OrNop(logger)

	start := workDir
	if basedir != "" {
		expanded, err := files.ExpandPath(basedir)
		if err != nil {
			return "", nil, fmt.Errorf("failed to expand basedir %q: %w", basedir, err)
		}
		if err := files.ValidateFolder(expanded); err != nil {
			return "", nil, fmt.Errorf("invalid basedir: %w", err)
		}
		start = expanded
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve basedir %q: %w", start, err)
	}

	md, err := CollectRepositoryMetadata(abs)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotRepository):
		logger.Debug("no enclosing git repository", "folder", abs)
		md = nil
	default:
		logger.Warn("failed to collect repository metadata", "folder", abs, "error", err)
		md = nil
	}

	if basedir != "" {
		return abs, md, nil
	}
	if md != nil {
		logger.Debug("using git worktree root as basedir", "basedir", md.RepoRootFolder)
		return md.RepoRootFolder, md, nil
	}
	return abs, nil, nil
}
