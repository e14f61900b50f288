// Package github provides the GitHub API client and authentication.
// It abstracts client creation with authentication through the GITHUB_TOKEN
// environment variable or the OS keyring, and re-exports the go-github types
// the rest of the codebase needs so other packages don't import go-github
// directly.
package github

import (
	"context"
	"net/http"
	"os"

	"github.com/google/go-github/v74/github"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/keyring/ghtoken"
	"golang.org/x/oauth2"
)

const KeyService = "pinbump/pinbump"

type (
	Client            = github.Client
	Commit            = github.Commit
	GitObject         = github.GitObject
	Reference         = github.Reference
	RepositoryRelease = github.RepositoryRelease
	Response          = github.Response
	Tag               = github.Tag
)

// New creates a GitHub API client.
// Authentication falls back from the GITHUB_TOKEN environment variable to the
// OS keyring, and finally to unauthenticated access.
func New(ctx context.Context, logE *logrus.Entry) *Client {
	return github.NewClient(getHTTPClientForGitHub(ctx, logE, getGitHubToken()))
}

// Ptr returns a pointer to the provided value.
func Ptr[T any](v T) *T {
	return github.Ptr(v)
}

func getGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

func checkKeyringEnabled() bool {
	return os.Getenv("PINBUMP_KEYRING_ENABLED") == "true"
}

func getHTTPClientForGitHub(ctx context.Context, logE *logrus.Entry, token string) *http.Client {
	if token == "" {
		if checkKeyringEnabled() {
			return oauth2.NewClient(ctx, ghtoken.NewTokenSource(logE, KeyService))
		}
		return http.DefaultClient
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
}
