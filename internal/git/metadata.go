package git

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// RepositoryMetadata describes the repository a check ran in.
type RepositoryMetadata struct {
	BranchName     *string `json:"branch_name,omitempty"`
	CommitHash     *string `json:"commit_hash,omitempty"`
	RepositoryURL  *string `json:"repository_url,omitempty"`
	Subfolder      string  `json:"subfolder,omitempty"`
	RepoRootFolder string  `json:"repo_root_folder"`
}

// CollectRepositoryMetadata collects branch name, commit hash, origin URL, subfolder and
// repository root folder for sourceFolder.
// When sourceFolder is not inside a repository the returned metadata only carries RepoRootFolder
// and the error is ErrNotRepository.
func CollectRepositoryMetadata(sourceFolder string) (*RepositoryMetadata, error) {
	if sourceFolder == "" {
		return &RepositoryMetadata{}, ErrSourceFolderNotSet
	}

	if absSource, err := filepath.Abs(sourceFolder); err == nil {
		sourceFolder = absSource
	}

	md := &RepositoryMetadata{
		RepoRootFolder: filepath.Clean(sourceFolder),
	}

	repoRootFolder, err := findGitRepositoryPath(sourceFolder)
	if err != nil {
		return md, err
	}

	md.RepoRootFolder = repoRootFolder

	repo, err := git.PlainOpen(repoRootFolder)
	if err != nil {
		return md, fmt.Errorf("failed to open repository: %w", err)
	}

	if rel, err := filepath.Rel(repoRootFolder, sourceFolder); err == nil && rel != "." {
		md.Subfolder = filepath.ToSlash(rel)
	}

	if head, err := repo.Head(); err == nil {
		if head.Name().IsBranch() {
			branchName := head.Name().Short()
			md.BranchName = &branchName
		}

		hash := head.Hash().String()
		md.CommitHash = &hash
	}

	if remote, err := repo.Remote("origin"); err == nil {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 {
			repositoryURL := NormalizeRemoteURL(cfg.URLs[0])
			md.RepositoryURL = &repositoryURL
		}
	}

	return md, nil
}
