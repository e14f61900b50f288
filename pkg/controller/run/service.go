package run

import (
	"context"
	"fmt"

	"github.com/pinbump/pinbump/pkg/github"
)

// RepositoriesService is the part of the GitHub Repositories API this
// controller depends on.
type RepositoriesService interface {
	GetCommitSHA1(ctx context.Context, owner, repo, ref, lastSHA string) (string, *github.Response, error)
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

// GitService is the part of the GitHub Git Database API this controller
// depends on.
type GitService interface {
	GetRef(ctx context.Context, owner, repo, ref string) (*github.Reference, *github.Response, error)
	GetTag(ctx context.Context, owner, repo, sha string) (*github.Tag, *github.Response, error)
}

type GetCommitSHA1Result struct {
	SHA      string
	Response *github.Response
	err      error
}

type GetLatestReleaseResult struct {
	Release  *github.RepositoryRelease
	Response *github.Response
	err      error
}

// RepositoriesServiceImpl wraps a RepositoriesService with per-process
// caching. Results are cached per owner/repo/ref including errors, so a
// repository that can't be resolved is only asked once even when the same
// reference appears in many workflow files.
type RepositoriesServiceImpl struct {
	RepositoriesService RepositoriesService
	Commits             map[string]*GetCommitSHA1Result
	Releases            map[string]*GetLatestReleaseResult
}

func (r *RepositoriesServiceImpl) GetCommitSHA1(ctx context.Context, owner, repo, ref, lastSHA string) (string, *github.Response, error) {
	key := fmt.Sprintf("%s/%s/%s", owner, repo, ref)
	if a, ok := r.Commits[key]; ok {
		return a.SHA, a.Response, a.err
	}
	sha, resp, err := r.RepositoriesService.GetCommitSHA1(ctx, owner, repo, ref, lastSHA)
	r.Commits[key] = &GetCommitSHA1Result{
		SHA:      sha,
		Response: resp,
		err:      err,
	}
	return sha, resp, err //nolint:wrapcheck
}

func (r *RepositoriesServiceImpl) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error) {
	key := owner + "/" + repo
	if a, ok := r.Releases[key]; ok {
		return a.Release, a.Response, a.err
	}
	release, resp, err := r.RepositoriesService.GetLatestRelease(ctx, owner, repo)
	r.Releases[key] = &GetLatestReleaseResult{
		Release:  release,
		Response: resp,
		err:      err,
	}
	return release, resp, err //nolint:wrapcheck
}

type GetRefResult struct {
	Reference *github.Reference
	Response  *github.Response
	err       error
}

type GetTagResult struct {
	Tag      *github.Tag
	Response *github.Response
	err      error
}

// GitServiceImpl wraps a GitService with the same per-process caching as
// RepositoriesServiceImpl.
type GitServiceImpl struct {
	GitService GitService
	Refs       map[string]*GetRefResult
	Tags       map[string]*GetTagResult
}

func (g *GitServiceImpl) GetRef(ctx context.Context, owner, repo, ref string) (*github.Reference, *github.Response, error) {
	key := fmt.Sprintf("%s/%s/%s", owner, repo, ref)
	if a, ok := g.Refs[key]; ok {
		return a.Reference, a.Response, a.err
	}
	reference, resp, err := g.GitService.GetRef(ctx, owner, repo, ref)
	g.Refs[key] = &GetRefResult{
		Reference: reference,
		Response:  resp,
		err:       err,
	}
	return reference, resp, err //nolint:wrapcheck
}

func (g *GitServiceImpl) GetTag(ctx context.Context, owner, repo, sha string) (*github.Tag, *github.Response, error) {
	key := fmt.Sprintf("%s/%s/%s", owner, repo, sha)
	if a, ok := g.Tags[key]; ok {
		return a.Tag, a.Response, a.err
	}
	tag, resp, err := g.GitService.GetTag(ctx, owner, repo, sha)
	g.Tags[key] = &GetTagResult{
		Tag:      tag,
		Response: resp,
		err:      err,
	}
	return tag, resp, err //nolint:wrapcheck
}
