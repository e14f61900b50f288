package run

import (
	"context"
	"errors"
	"testing"

	"github.com/pinbump/pinbump/pkg/github"
	"github.com/sirupsen/logrus"
)

type mockRepositoriesService struct {
	getCommitSHA1Func    func(ctx context.Context, owner, repo, ref, lastSHA string) (string, *github.Response, error)
	getLatestReleaseFunc func(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

func (m *mockRepositoriesService) GetCommitSHA1(ctx context.Context, owner, repo, ref, lastSHA string) (string, *github.Response, error) {
	if m.getCommitSHA1Func != nil {
		return m.getCommitSHA1Func(ctx, owner, repo, ref, lastSHA)
	}
	return "", nil, errors.New("not implemented")
}

func (m *mockRepositoriesService) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error) {
	if m.getLatestReleaseFunc != nil {
		return m.getLatestReleaseFunc(ctx, owner, repo)
	}
	return nil, nil, errors.New("not implemented")
}

type mockGitService struct {
	getRefFunc func(ctx context.Context, owner, repo, ref string) (*github.Reference, *github.Response, error)
	getTagFunc func(ctx context.Context, owner, repo, sha string) (*github.Tag, *github.Response, error)
}

func (m *mockGitService) GetRef(ctx context.Context, owner, repo, ref string) (*github.Reference, *github.Response, error) {
	if m.getRefFunc != nil {
		return m.getRefFunc(ctx, owner, repo, ref)
	}
	return nil, nil, errors.New("not implemented")
}

func (m *mockGitService) GetTag(ctx context.Context, owner, repo, sha string) (*github.Tag, *github.Response, error) {
	if m.getTagFunc != nil {
		return m.getTagFunc(ctx, owner, repo, sha)
	}
	return nil, nil, errors.New("not implemented")
}

func refTo(objectType, sha string) *github.Reference {
	return &github.Reference{
		Object: &github.GitObject{
			Type: github.Ptr(objectType),
			SHA:  github.Ptr(sha),
		},
	}
}

func TestController_resolve(t *testing.T) { //nolint:funlen
	t.Parallel()
	const (
		commitCheckoutV4 = "8ade135a41bc03ea155e62e844d188df1ea18608"
		commitLatest     = "11111111111111111111111111111111111111ab"
		annotatedTagSHA  = "2222222222222222222222222222222222222222"
		commitBranch     = "3333333333333333333333333333333333333333"
	)
	tests := []struct {
		name   string
		action *ActionReference
		update bool
		repos  *mockRepositoriesService
		git    *mockGitService
		exp    *ResolvedPin
		isErr  bool
	}{
		{
			name:   "pin mode resolves a tag pointing at a commit",
			action: &ActionReference{Owner: "actions", Repo: "checkout", Reference: "v4"},
			git: &mockGitService{
				getRefFunc: func(_ context.Context, _, _, ref string) (*github.Reference, *github.Response, error) {
					if ref != "tags/v4" {
						return nil, nil, errors.New("unexpected ref: " + ref)
					}
					return refTo("commit", commitCheckoutV4), nil, nil
				},
			},
			repos: &mockRepositoriesService{},
			exp:   &ResolvedPin{SHA: commitCheckoutV4, Label: "v4"},
		},
		{
			name:   "pin mode dereferences an annotated tag",
			action: &ActionReference{Owner: "actions", Repo: "checkout", Reference: "v4"},
			git: &mockGitService{
				getRefFunc: func(_ context.Context, _, _, _ string) (*github.Reference, *github.Response, error) {
					return refTo("tag", annotatedTagSHA), nil, nil
				},
				getTagFunc: func(_ context.Context, _, _, sha string) (*github.Tag, *github.Response, error) {
					if sha != annotatedTagSHA {
						return nil, nil, errors.New("unexpected sha: " + sha)
					}
					return &github.Tag{
						Object: &github.GitObject{SHA: github.Ptr(commitCheckoutV4)},
					}, nil, nil
				},
			},
			repos: &mockRepositoriesService{},
			exp:   &ResolvedPin{SHA: commitCheckoutV4, Label: "v4"},
		},
		{
			name:   "failed dereference falls back to the intermediate SHA",
			action: &ActionReference{Owner: "actions", Repo: "checkout", Reference: "v4"},
			git: &mockGitService{
				getRefFunc: func(_ context.Context, _, _, _ string) (*github.Reference, *github.Response, error) {
					return refTo("tag", annotatedTagSHA), nil, nil
				},
				getTagFunc: func(_ context.Context, _, _, _ string) (*github.Tag, *github.Response, error) {
					return nil, nil, errors.New("object deleted")
				},
			},
			repos: &mockRepositoriesService{},
			exp:   &ResolvedPin{SHA: annotatedTagSHA, Label: "v4"},
		},
		{
			name:   "branch falls back to the commits API",
			action: &ActionReference{Owner: "actions", Repo: "checkout", Reference: "main"},
			git: &mockGitService{
				getRefFunc: func(_ context.Context, _, _, _ string) (*github.Reference, *github.Response, error) {
					return nil, nil, errors.New("404 not found")
				},
			},
			repos: &mockRepositoriesService{
				getCommitSHA1Func: func(_ context.Context, _, _, ref, _ string) (string, *github.Response, error) {
					if ref != "main" {
						return "", nil, errors.New("unexpected ref: " + ref)
					}
					return commitBranch, nil, nil
				},
			},
			exp: &ResolvedPin{SHA: commitBranch, Label: "main"},
		},
		{
			name:   "resolution fails when all lookups fail",
			action: &ActionReference{Owner: "actions", Repo: "checkout", Reference: "v4"},
			git: &mockGitService{
				getRefFunc: func(_ context.Context, _, _, _ string) (*github.Reference, *github.Response, error) {
					return nil, nil, errors.New("404 not found")
				},
			},
			repos: &mockRepositoriesService{
				getCommitSHA1Func: func(_ context.Context, _, _, _, _ string) (string, *github.Response, error) {
					return "", nil, errors.New("404 not found")
				},
			},
			isErr: true,
		},
		{
			name:   "update mode resolves the latest release tag",
			action: &ActionReference{Owner: "actions", Repo: "checkout", Reference: "v4"},
			update: true,
			repos: &mockRepositoriesService{
				getLatestReleaseFunc: func(_ context.Context, _, _ string) (*github.RepositoryRelease, *github.Response, error) {
					return &github.RepositoryRelease{TagName: github.Ptr("v4.2.0")}, nil, nil
				},
			},
			git: &mockGitService{
				getRefFunc: func(_ context.Context, _, _, ref string) (*github.Reference, *github.Response, error) {
					if ref != "tags/v4.2.0" {
						return nil, nil, errors.New("unexpected ref: " + ref)
					}
					return refTo("commit", commitLatest), nil, nil
				},
			},
			exp: &ResolvedPin{SHA: commitLatest, Label: "v4.2.0"},
		},
		{
			name:   "update mode falls back to pin mode without releases",
			action: &ActionReference{Owner: "actions", Repo: "checkout", Reference: "v4"},
			update: true,
			repos: &mockRepositoriesService{
				getLatestReleaseFunc: func(_ context.Context, _, _ string) (*github.RepositoryRelease, *github.Response, error) {
					return nil, nil, errors.New("404 not found")
				},
			},
			git: &mockGitService{
				getRefFunc: func(_ context.Context, _, _, ref string) (*github.Reference, *github.Response, error) {
					if ref != "tags/v4" {
						return nil, nil, errors.New("unexpected ref: " + ref)
					}
					return refTo("commit", commitCheckoutV4), nil, nil
				},
			},
			exp: &ResolvedPin{SHA: commitCheckoutV4, Label: "v4"},
		},
		{
			name:   "update mode doesn't downgrade",
			action: &ActionReference{Owner: "actions", Repo: "checkout", Reference: "v4"},
			update: true,
			repos: &mockRepositoriesService{
				getLatestReleaseFunc: func(_ context.Context, _, _ string) (*github.RepositoryRelease, *github.Response, error) {
					return &github.RepositoryRelease{TagName: github.Ptr("v3.6.0")}, nil, nil
				},
			},
			git: &mockGitService{
				getRefFunc: func(_ context.Context, _, _, ref string) (*github.Reference, *github.Response, error) {
					if ref != "tags/v4" {
						return nil, nil, errors.New("unexpected ref: " + ref)
					}
					return refTo("commit", commitCheckoutV4), nil, nil
				},
			},
			exp: &ResolvedPin{SHA: commitCheckoutV4, Label: "v4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := &Controller{
				repositoriesService: tt.repos,
				gitService:          tt.git,
				param: &ParamRun{
					Update: tt.update,
				},
			}
			logE := logrus.NewEntry(logrus.New())
			got, err := c.resolve(t.Context(), logE, tt.action)
			if tt.isErr {
				if err == nil {
					t.Fatal("an error must be returned")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.SHA != tt.exp.SHA {
				t.Errorf("resolve() SHA = %v, want %v", got.SHA, tt.exp.SHA)
			}
			if got.Label != tt.exp.Label {
				t.Errorf("resolve() Label = %v, want %v", got.Label, tt.exp.Label)
			}
		})
	}
}

func Test_isDowngrade(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		current string
		latest  string
		exp     bool
	}{
		{
			name:    "newer release",
			current: "v4",
			latest:  "v4.2.0",
		},
		{
			name:    "older release",
			current: "v4",
			latest:  "v3.6.0",
			exp:     true,
		},
		{
			name:    "same version",
			current: "v4",
			latest:  "v4.0.0",
		},
		{
			name:    "current isn't a version",
			current: "main",
			latest:  "v1.0.0",
		},
		{
			name:    "latest isn't a version",
			current: "v4",
			latest:  "latest",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isDowngrade(tt.current, tt.latest); got != tt.exp {
				t.Errorf("isDowngrade(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.exp)
			}
		})
	}
}
