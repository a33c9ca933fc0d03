package github

// Issue is the subset of the GitHub issue payload the automation acts on.
// Labels are flattened to their names; the full label objects are never
// needed downstream.
type Issue struct {
	Number int      `json:"number"`
	State  string   `json:"state"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	User   string   `json:"-"`
	Labels []string `json:"-"`
}

// IssueUpdate describes a partial update to an issue. Nil fields are left
// untouched on the remote side.
type IssueUpdate struct {
	Labels []string `json:"labels,omitempty"`
	State  string   `json:"state,omitempty"`
}

// Label is a repository label definition, used by the init command to seed
// the project vocabulary.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// HasLabel reports whether the issue carries the named label.
func (i *Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// WithoutLabel returns a copy of the issue's label set with the named label
// removed. The receiver is not mutated.
func (i *Issue) WithoutLabel(name string) []string {
	out := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		if l != name {
			out = append(out, l)
		}
	}
	return out
}
