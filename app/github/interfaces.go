package github

import "context"

// Client defines the remote issue-tracking operations the automation
// consumes. All calls are synchronous and at-least-once; retry is the
// caller's concern. The in-process dispatcher and reconcilers depend on this
// interface so tests can substitute a fake.
type Client interface {
	GetIssue(ctx context.Context, number int) (*Issue, error)
	UpdateIssue(ctx context.Context, number int, update IssueUpdate) error
	CreateComment(ctx context.Context, number int, body string) error
	AddLabels(ctx context.Context, number int, names []string) error
	// RemoveLabel treats a missing label as a non-error no-op.
	RemoveLabel(ctx context.Context, number int, name string) error

	// Label administration, used by the init command.
	ListLabels(ctx context.Context) ([]Label, error)
	CreateLabel(ctx context.Context, label Label) error
	UpdateLabel(ctx context.Context, label Label) error
	DeleteLabel(ctx context.Context, name string) error
}

var _ Client = (*RESTClient)(nil)
