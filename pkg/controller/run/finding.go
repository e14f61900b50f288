package run

// Finding represents a single result of processing: either an unpinned
// action with its replacement, or a resolution error (Message is set).
type Finding struct {
	File    string
	Line    int
	Old     string
	New     string
	Message string
}
