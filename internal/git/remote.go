package git

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var scpLikeURL = regexp.MustCompile(`^(?:[^@/]+@)?([^:/]+):([^/].*)$`)

// NormalizeRemoteURL turns a remote URL into a browsable https URL where possible.
// Credentials and the .git suffix are removed; "git@host:path" and ssh:// remotes map to https.
// Anything that does not parse is returned unchanged.
func NormalizeRemoteURL(raw string) string {
	spec := strings.TrimSpace(raw)
	if spec == "" {
		return ""
	}

	// preparse special type of URLs like "git@<host>:<path>"
	if !strings.Contains(spec, "://") {
		parts := scpLikeURL.FindStringSubmatch(spec)
		if len(parts) != 3 {
			return raw
		}
		spec = fmt.Sprintf("ssh://%s/%s", parts[1], parts[2])
	}

	u, err := url.Parse(spec)
	if err != nil || u.Host == "" {
		return raw
	}

	switch u.Scheme {
	case "ssh", "git", "git+ssh":
		u.Scheme = "https"
		u.Host = u.Hostname()
	case "http", "https":
	default:
		return raw
	}

	u.User = nil
	u.Path = strings.TrimSuffix(strings.TrimSuffix(u.Path, "/"), ".git")
	return u.String()
}

// ApplyEnvironment fills fields a checkout could not provide, such as the branch of a detached HEAD
// in CI, from values found in the environment. Fields already set are kept.
func (md *RepositoryMetadata) ApplyEnvironment(branch, commit, repositoryURL string) {
	if md == nil {
		return
	}
	if md.BranchName == nil && branch != "" {
		md.BranchName = &branch
	}
	if md.CommitHash == nil && commit != "" {
		md.CommitHash = &commit
	}
	if md.RepositoryURL == nil && repositoryURL != "" {
		normalized := NormalizeRemoteURL(repositoryURL)
		md.RepositoryURL = &normalized
	}
}
