package run

import (
	"fmt"
	"regexp"
	"strings"
)

// ActionReference is an action reference of the form owner/repo@ref found in
// a workflow file. Repo may contain slashes for actions that live in a
// subdirectory of a repository, e.g. github/codeql-action/analyze.
type ActionReference struct {
	Owner     string
	Repo      string
	Reference string
	// Line is the line number of the uses value in the workflow file.
	Line int
}

// Name returns the full action name including subdirectories.
func (a *ActionReference) Name() string {
	return a.Owner + "/" + a.Repo
}

func (a *ActionReference) String() string {
	return fmt.Sprintf("%s/%s@%s", a.Owner, a.Repo, a.Reference)
}

var fullCommitSHAPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// parseUses parses the value of a uses field.
// It returns nil if the value isn't a pinnable action reference: local path
// actions and other values without exactly one "@", and references that are
// already pinned to a full commit SHA.
func parseUses(value string) *ActionReference {
	v, _, _ := strings.Cut(value, "#")
	v = strings.TrimSpace(v)
	parts := strings.Split(v, "@")
	if len(parts) != 2 {
		return nil
	}
	ref := strings.TrimSpace(parts[1])
	if fullCommitSHAPattern.MatchString(ref) {
		// already pinned
		return nil
	}
	name := strings.Split(parts[0], "/")
	if len(name) < 2 {
		return nil
	}
	return &ActionReference{
		Owner:     name[0],
		Repo:      strings.Join(name[1:], "/"),
		Reference: ref,
	}
}
