package chatops

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/linkhub-io/linkhub/app/github"
	"github.com/linkhub-io/linkhub/app/record"
	"github.com/linkhub-io/linkhub/app/reconcile"
)

// fakeClient serves a single canned issue and records every mutation.
type fakeClient struct {
	issue    *github.Issue
	updates  []github.IssueUpdate
	comments []string
	added    [][]string
	removed  []string
}

func (f *fakeClient) GetIssue(ctx context.Context, number int) (*github.Issue, error) {
	if f.issue == nil || f.issue.Number != number {
		return nil, errors.New("issue not found")
	}
	clone := *f.issue
	clone.Labels = append([]string(nil), f.issue.Labels...)
	return &clone, nil
}

func (f *fakeClient) UpdateIssue(ctx context.Context, number int, update github.IssueUpdate) error {
	f.updates = append(f.updates, update)
	return nil
}

func (f *fakeClient) CreateComment(ctx context.Context, number int, body string) error {
	f.comments = append(f.comments, body)
	return nil
}

func (f *fakeClient) AddLabels(ctx context.Context, number int, names []string) error {
	f.added = append(f.added, names)
	return nil
}

func (f *fakeClient) RemoveLabel(ctx context.Context, number int, name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func (f *fakeClient) ListLabels(ctx context.Context) ([]github.Label, error)    { return nil, nil }
func (f *fakeClient) CreateLabel(ctx context.Context, label github.Label) error { return nil }
func (f *fakeClient) UpdateLabel(ctx context.Context, label github.Label) error { return nil }
func (f *fakeClient) DeleteLabel(ctx context.Context, name string) error        { return nil }

func (f *fakeClient) mutationCount() int {
	return len(f.updates) + len(f.comments) + len(f.added) + len(f.removed)
}

type fixture struct {
	gh         *fakeClient
	dispatcher *Dispatcher
	sites      *record.Store[record.SiteRecord]
	categories *record.Store[record.CategoryRecord]
}

func newFixture(t *testing.T, issue *github.Issue) *fixture {
	t.Helper()

	sites := record.NewStore[record.SiteRecord](filepath.Join(t.TempDir(), "items"))
	categories := record.NewStore[record.CategoryRecord](filepath.Join(t.TempDir(), "category_items"))
	gh := &fakeClient{issue: issue}

	return &fixture{
		gh:         gh,
		dispatcher: NewDispatcher(gh, reconcile.NewSites(sites), reconcile.NewCategories(categories), "owner"),
		sites:      sites,
		categories: categories,
	}
}

const siteBody = "### 站点名称 (Name)\n\nExampleTool\n\n### 站点链接 (URL)\n\nhttps://example.com"

func TestUnauthorizedCommandIsSilentlyDropped(t *testing.T) {
	f := newFixture(t, &github.Issue{Number: 42, Body: siteBody, Labels: []string{"triage", "kind:site"}})

	err := f.dispatcher.Run(context.Background(), "42", "/approve", "random-user")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if f.gh.mutationCount() != 0 {
		t.Errorf("No collaborator mutation may occur for an unauthorized author, got %d calls",
			f.gh.mutationCount())
	}
	if f.sites.Exists("42") {
		t.Error("No record may be written for an unauthorized command")
	}
}

func TestNonCommandCommentIgnored(t *testing.T) {
	f := newFixture(t, &github.Issue{Number: 42, Body: siteBody, Labels: []string{"triage", "kind:site"}})

	if err := f.dispatcher.Run(context.Background(), "42", "looks good to me", "owner"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if f.gh.mutationCount() != 0 {
		t.Error("Plain comments must not trigger any side effect")
	}
}

func TestMissingContextIsConfigurationError(t *testing.T) {
	f := newFixture(t, nil)

	err := f.dispatcher.Run(context.Background(), "", "/approve", "owner")
	if !errors.Is(err, ErrMissingContext) {
		t.Fatalf("Expected ErrMissingContext, got %v", err)
	}
	if f.gh.mutationCount() != 0 {
		t.Error("No side effects may occur on a configuration error")
	}
}

func TestUnknownCommandIsNoOp(t *testing.T) {
	f := newFixture(t, &github.Issue{Number: 42, Body: siteBody, Labels: []string{"triage", "kind:site"}})

	if err := f.dispatcher.Run(context.Background(), "42", "/frobnicate", "owner"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if f.gh.mutationCount() != 0 {
		t.Error("Unknown commands must not post anything back")
	}
}

func TestApproveSiteEndToEnd(t *testing.T) {
	f := newFixture(t, &github.Issue{Number: 42, Body: siteBody, Labels: []string{"triage", "kind:site"}})

	if err := f.dispatcher.Run(context.Background(), "42", "/approve", "owner"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Remote labels: triage stripped, active added, issue left open.
	if len(f.gh.updates) != 1 {
		t.Fatalf("Expected one issue update, got %d", len(f.gh.updates))
	}
	update := f.gh.updates[0]
	if update.State != "" {
		t.Errorf("Site approval must not close the issue, got state %q", update.State)
	}
	wantLabels := map[string]bool{"kind:site": true, "status:active": true}
	for _, l := range update.Labels {
		if !wantLabels[l] {
			t.Errorf("Unexpected label %q in update", l)
		}
	}
	if len(update.Labels) != 2 {
		t.Errorf("Expected labels [kind:site status:active], got %v", update.Labels)
	}

	// The reconciler ran with the injected post-mutation labels.
	rec, err := f.sites.Load("42")
	if err != nil {
		t.Fatalf("Expected record written: %v", err)
	}
	if rec.ID != "42" || rec.Name != "ExampleTool" || rec.URL != "https://example.com" {
		t.Errorf("Unexpected record contents: %+v", rec)
	}
	if rec.Status != "active" {
		t.Errorf("Expected status active from injected labels, got %s", rec.Status)
	}
	if rec.FailCount != 0 {
		t.Errorf("Expected fail_count 0, got %d", rec.FailCount)
	}

	if len(f.gh.comments) != 1 {
		t.Fatalf("Expected one confirmation comment, got %d", len(f.gh.comments))
	}
}

func TestApproveCategoryClosesIssueAndKeepsRecord(t *testing.T) {
	body := "### 分类 ID (Category ID)\n\ntool\n\n### 分类名称 (中文)\n\n工具"
	f := newFixture(t, &github.Issue{Number: 10, Body: body, Labels: []string{"triage", "kind:category"}})

	if err := f.dispatcher.Run(context.Background(), "10", "/approve", "owner"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(f.gh.updates) != 1 || f.gh.updates[0].State != "closed" {
		t.Errorf("Category approval must close the issue, got %+v", f.gh.updates)
	}

	rec, err := f.categories.Load("10")
	if err != nil {
		t.Fatalf("Category record must survive the issue closing: %v", err)
	}
	if rec.ID != "tool" || rec.Status != "active" {
		t.Errorf("Unexpected category record: %+v", rec)
	}
}

func TestRejectDeletesStagedRecord(t *testing.T) {
	f := newFixture(t, &github.Issue{Number: 42, Body: siteBody, Labels: []string{"triage", "kind:site"}})

	if err := f.sites.Save("42", record.SiteRecord{ID: "42", Status: "triage"}); err != nil {
		t.Fatal(err)
	}

	if err := f.dispatcher.Run(context.Background(), "42", "/reject low quality", "owner"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if f.sites.Exists("42") {
		t.Error("Staged record must be deleted on reject")
	}
	if len(f.gh.updates) != 1 || f.gh.updates[0].State != "closed" {
		t.Errorf("Reject must close the issue, got %+v", f.gh.updates)
	}
	for _, l := range f.gh.updates[0].Labels {
		if l == "triage" {
			t.Error("Reject must strip the triage label")
		}
	}
	if len(f.gh.comments) != 1 {
		t.Fatalf("Expected one rejection comment, got %d", len(f.gh.comments))
	}
}

func TestCloseRunsCleanupWithoutLabelMutation(t *testing.T) {
	f := newFixture(t, &github.Issue{Number: 42, Body: siteBody, Labels: []string{"triage", "kind:site"}})

	if err := f.sites.Save("42", record.SiteRecord{ID: "42"}); err != nil {
		t.Fatal(err)
	}

	if err := f.dispatcher.Run(context.Background(), "42", "/close", "owner"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(f.gh.updates) != 1 {
		t.Fatalf("Expected one issue update, got %d", len(f.gh.updates))
	}
	if f.gh.updates[0].State != "closed" || f.gh.updates[0].Labels != nil {
		t.Errorf("Close must only change state, got %+v", f.gh.updates[0])
	}
	if f.sites.Exists("42") {
		t.Error("Staged record must be cleaned up on close")
	}
}
