// Package ci reads the revision a pipeline checked out from the environment of well-known CI providers.
package ci

import (
	"os"
	"strings"
)

// Kind represents the type of CI.
type Kind int

const (
	// Unknown indicates the CI provider could not be identified.
	Unknown Kind = iota
	// GitHub identifies GitHub Actions.
	GitHub
	// GitLab identifies GitLab CI.
	GitLab
	// Bitbucket identifies Bitbucket Pipelines.
	Bitbucket
)

// LookupFunc fetches environment variables and defaults to os.Getenv.
type LookupFunc func(string) string

// Environment is the revision information a CI job exposes.
type Environment struct {
	Kind          Kind
	Branch        string // short branch name, empty for tag and merge request pipelines
	CommitHash    string
	RepositoryURL string
}

func (k Kind) String() string {
	switch k {
	case GitHub:
		return "github"
	case GitLab:
		return "gitlab"
	case Bitbucket:
		return "bitbucket"
	default:
		return "unknown"
	}
}

// Detect returns the environment of the current process.
func Detect() Environment {
	return DetectWithLookup(os.Getenv)
}

// DetectWithLookup infers the CI provider from well-known variables and reads its revision.
// Outside CI the returned Environment has Kind Unknown and no values.
func DetectWithLookup(lookup LookupFunc) Environment {
	if lookup == nil {
		lookup = os.Getenv
	}

	switch {
	case lookup("GITHUB_REPOSITORY") != "" || lookup("GITHUB_SHA") != "":
		return githubEnvironment(lookup)
	case strings.EqualFold(lookup("GITLAB_CI"), "true") || lookup("CI_PROJECT_PATH") != "":
		return gitlabEnvironment(lookup)
	case lookup("BITBUCKET_WORKSPACE") != "" || lookup("BITBUCKET_REPO_SLUG") != "":
		return bitbucketEnvironment(lookup)
	default:
		return Environment{Kind: Unknown}
	}
}

// See https://docs.github.com/en/actions/reference/workflows-and-actions/variables.
func githubEnvironment(lookup LookupFunc) Environment {
	env := Environment{
		Kind:       GitHub,
		CommitHash: lookup("GITHUB_SHA"),
	}
	if strings.HasPrefix(lookup("GITHUB_REF"), "refs/heads/") {
		env.Branch = lookup("GITHUB_REF_NAME")
	}
	if server, repo := lookup("GITHUB_SERVER_URL"), lookup("GITHUB_REPOSITORY"); server != "" && repo != "" {
		env.RepositoryURL = strings.TrimSuffix(server, "/") + "/" + repo
	}
	return env
}

// See https://docs.gitlab.com/ci/variables/predefined_variables/.
func gitlabEnvironment(lookup LookupFunc) Environment {
	env := Environment{
		Kind:          GitLab,
		CommitHash:    lookup("CI_COMMIT_SHA"),
		RepositoryURL: lookup("CI_PROJECT_URL"),
	}
	// tag and merge request pipelines set CI_COMMIT_REF_NAME to something other than a branch
	if lookup("CI_COMMIT_TAG") == "" && lookup("CI_MERGE_REQUEST_REF_PATH") == "" {
		env.Branch = lookup("CI_COMMIT_BRANCH")
		if env.Branch == "" {
			env.Branch = lookup("CI_COMMIT_REF_NAME")
		}
	}
	return env
}

// See https://support.atlassian.com/bitbucket-cloud/docs/variables-and-secrets/.
func bitbucketEnvironment(lookup LookupFunc) Environment {
	return Environment{
		Kind:          Bitbucket,
		Branch:        lookup("BITBUCKET_BRANCH"),
		CommitHash:    lookup("BITBUCKET_COMMIT"),
		RepositoryURL: lookup("BITBUCKET_GIT_HTTP_ORIGIN"),
	}
}
