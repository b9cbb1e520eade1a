package protocol

// Command is an opaque follow-up instruction executed by the document after a
// code action has been applied.
type Command struct {
	Title     string   `json:"title" yaml:"title"`
	Command   string   `json:"command" yaml:"command"`
	Arguments []string `json:"arguments,omitempty" yaml:"arguments"`
}

// IsZero reports whether the command carries nothing to execute.
func (c Command) IsZero() bool {
	return c.Command == ""
}

// FileChange is the ordered list of edits for one file.
type FileChange struct {
	File  FileKey    `json:"file"`
	Edits []TextEdit `json:"edits"`
}

// CodeActionItem is a named, applicable fix.
type CodeActionItem struct {
	Title   string       `json:"title"`
	Kind    string       `json:"kind,omitempty"`
	Command Command      `json:"command"`
	Changes []FileChange `json:"changes"`
}

// EditCount returns the number of text edits across all changes.
func (a *CodeActionItem) EditCount() int {
	n := 0
	for _, c := range a.Changes {
		n += len(c.Edits)
	}
	return n
}
