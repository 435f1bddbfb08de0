package ci

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(vars map[string]string) LookupFunc {
	return func(key string) string {
		return vars[key]
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "github", GitHub.String())
	assert.Equal(t, "gitlab", GitLab.String())
	assert.Equal(t, "bitbucket", Bitbucket.String())
	assert.Equal(t, "unknown", Unknown.String())
}

func TestDetectWithLookup(t *testing.T) {
	testCases := []struct {
		name string
		vars map[string]string
		want Environment
	}{
		{
			name: "Outside CI",
			vars: map[string]string{"HOME": "/root"},
			want: Environment{Kind: Unknown},
		},
		{
			name: "GitHub branch push",
			vars: map[string]string{
				"GITHUB_REPOSITORY": "acme/app",
				"GITHUB_SERVER_URL": "https://github.com/",
				"GITHUB_SHA":        "0123abcd",
				"GITHUB_REF":        "refs/heads/main",
				"GITHUB_REF_NAME":   "main",
			},
			want: Environment{Kind: GitHub, Branch: "main", CommitHash: "0123abcd", RepositoryURL: "https://github.com/acme/app"},
		},
		{
			name: "GitHub pull request",
			vars: map[string]string{
				"GITHUB_REPOSITORY": "acme/app",
				"GITHUB_SHA":        "0123abcd",
				"GITHUB_REF":        "refs/pull/42/merge",
				"GITHUB_REF_NAME":   "42/merge",
			},
			want: Environment{Kind: GitHub, CommitHash: "0123abcd"},
		},
		{
			name: "GitLab branch pipeline",
			vars: map[string]string{
				"GITLAB_CI":          "true",
				"CI_COMMIT_SHA":      "4567ef",
				"CI_COMMIT_REF_NAME": "develop",
				"CI_PROJECT_URL":     "https://gitlab.example.com/group/app",
			},
			want: Environment{Kind: GitLab, Branch: "develop", CommitHash: "4567ef", RepositoryURL: "https://gitlab.example.com/group/app"},
		},
		{
			name: "GitLab tag pipeline",
			vars: map[string]string{
				"CI_PROJECT_PATH":    "group/app",
				"CI_COMMIT_TAG":      "v1.0.0",
				"CI_COMMIT_REF_NAME": "v1.0.0",
			},
			want: Environment{Kind: GitLab},
		},
		{
			name: "Bitbucket",
			vars: map[string]string{
				"BITBUCKET_WORKSPACE":       "acme",
				"BITBUCKET_BRANCH":          "release",
				"BITBUCKET_COMMIT":          "89abcd",
				"BITBUCKET_GIT_HTTP_ORIGIN": "http://bitbucket.org/acme/app",
			},
			want: Environment{Kind: Bitbucket, Branch: "release", CommitHash: "89abcd", RepositoryURL: "http://bitbucket.org/acme/app"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectWithLookup(lookupFrom(tc.vars)))
		})
	}
}
