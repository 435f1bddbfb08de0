package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// findGitRepositoryPath returns the worktree root of the repository enclosing sourceFolder.
func findGitRepositoryPath(sourceFolder string) (string, error) {
	if sourceFolder == "" {
		return "", ErrSourceFolderNotSet
	}

	repo, err := git.PlainOpenWithOptions(sourceFolder, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", ErrNotRepository
		}
		return "", fmt.Errorf("failed to open repository at %q: %w", sourceFolder, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}
	return filepath.Clean(wt.Filesystem.Root()), nil
}
