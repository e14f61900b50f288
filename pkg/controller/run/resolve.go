package run

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-version"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// ResolvedPin is the result of resolving one action reference.
// SHA is the full commit SHA and Label is the ref recorded in the trailing
// comment: the original reference, or the latest release tag in update mode.
type ResolvedPin struct {
	SHA   string
	Label string
}

const shortSHALength = 7

// resolve maps an action reference to a commit SHA.
// In update mode the latest release is looked up first and its tag resolved
// instead of the current reference. A repository without releases isn't an
// error, it just falls back to pinning the current reference.
func (c *Controller) resolve(ctx context.Context, logE *logrus.Entry, action *ActionReference) (*ResolvedPin, error) {
	if c.param.Update {
		if tag := c.latestReleaseTag(ctx, logE, action); tag != "" {
			sha, err := c.resolveRef(ctx, logE, action, tag)
			if err != nil {
				return nil, err
			}
			return &ResolvedPin{SHA: sha, Label: tag}, nil
		}
	}
	sha, err := c.resolveRef(ctx, logE, action, action.Reference)
	if err != nil {
		return nil, err
	}
	return &ResolvedPin{SHA: sha, Label: action.Reference}, nil
}

// latestReleaseTag returns the latest release tag of the action's repository,
// or an empty string when the repository has no releases or the lookup fails.
func (c *Controller) latestReleaseTag(ctx context.Context, logE *logrus.Entry, action *ActionReference) string {
	release, _, err := c.repositoriesService.GetLatestRelease(ctx, action.Owner, action.Repo)
	if err != nil {
		logerr.WithError(logE, err).Debug("get the latest release")
		return ""
	}
	tag := release.GetTagName()
	if tag == "" {
		return ""
	}
	if isDowngrade(action.Reference, tag) {
		logE.WithFields(logrus.Fields{
			"current": action.Reference,
			"latest":  tag,
		}).Debug("the latest release isn't newer than the current reference")
		return ""
	}
	return tag
}

// isDowngrade reports whether switching from current to latest would move to
// an older version. References that aren't semantic versions can't be
// compared, so they never count as downgrades.
func isDowngrade(current, latest string) bool {
	cv, err := version.NewVersion(current)
	if err != nil {
		return false
	}
	lv, err := version.NewVersion(latest)
	if err != nil {
		return false
	}
	return lv.LessThan(cv)
}

// resolveRef resolves a ref to a commit SHA, trying it as a tag first and
// falling back to treating it as a branch or short commit SHA.
// https://docs.github.com/en/rest/git/refs?apiVersion=2022-11-28#get-a-reference
// > The :ref in the URL must be formatted as heads/<branch name> for branches and tags/<tag name> for tags. If the :ref doesn't match an existing ref, a 404 is returned.
func (c *Controller) resolveRef(ctx context.Context, logE *logrus.Entry, action *ActionReference, ref string) (string, error) {
	sha, err := c.resolveTag(ctx, logE, action, ref)
	if err == nil {
		return sha, nil
	}
	logerr.WithError(logE, err).WithField("ref", ref).Debug("resolve the ref as a tag")
	sha, _, cErr := c.repositoriesService.GetCommitSHA1(ctx, action.Owner, action.Repo, ref, "")
	if cErr != nil {
		return "", fmt.Errorf("get a commit SHA for the ref %s: %w", ref, cErr)
	}
	return sha, nil
}

const objectTypeTag = "tag"

// resolveTag resolves a tag name to a commit SHA.
// A tag reference points either directly at a commit or at an annotated tag
// object, which takes one more lookup to dereference. If that dereference
// fails the intermediate object SHA is returned as is.
func (c *Controller) resolveTag(ctx context.Context, logE *logrus.Entry, action *ActionReference, tag string) (string, error) {
	ref, _, err := c.gitService.GetRef(ctx, action.Owner, action.Repo, "tags/"+tag)
	if err != nil {
		return "", fmt.Errorf("get a tag reference: %w", err)
	}
	obj := ref.GetObject()
	sha := obj.GetSHA()
	if sha == "" {
		return "", errors.New("the tag reference has no object SHA")
	}
	if obj.GetType() != objectTypeTag {
		return sha, nil
	}
	tagObj, _, err := c.gitService.GetTag(ctx, action.Owner, action.Repo, sha)
	if err != nil {
		logerr.WithError(logE, err).WithField("tag", tag).Debug("dereference an annotated tag object")
		return sha, nil
	}
	if s := tagObj.GetObject().GetSHA(); s != "" {
		return s, nil
	}
	return sha, nil
}
