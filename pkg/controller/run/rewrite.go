package run

import "strings"

// Change pairs the literal owner/repo@ref substring found in a workflow file
// with its pinned replacement.
type Change struct {
	Old string
	New string
}

const usesPrefix = "uses: "

// rewrite applies changes to the workflow file text.
// Replacement is a literal substring replacement of the field-prefixed form,
// so identical references anywhere in the file are all pinned identically.
// The text is returned unchanged if no change matches.
func rewrite(text string, changes []*Change) string {
	for _, change := range changes {
		text = strings.ReplaceAll(text, usesPrefix+change.Old, usesPrefix+change.New)
	}
	return text
}
