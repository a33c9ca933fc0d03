package reconcile

import (
	"reflect"
	"testing"
	"time"

	"github.com/linkhub-io/linkhub/app/github"
	"github.com/linkhub-io/linkhub/app/record"
)

func testClock() time.Time {
	return time.Date(2026, 8, 29, 15, 45, 0, 0, time.UTC)
}

const siteBody = "### 站点名称 (Name)\n\nExampleTool\n\n" +
	"### 站点链接 (URL)\n\nhttps://example.com\n\n" +
	"### 分类 (Categories)\n\n- [x] tool (工具)\n- [ ] game (游戏)\n\n" +
	"### 站点描述 (Description)\n\nA useful tool"

func TestSitesSaveApproved(t *testing.T) {
	store := record.NewStore[record.SiteRecord](t.TempDir())
	reconciler := NewSites(store).WithClock(testClock)

	issue := &github.Issue{
		Number: 42,
		Body:   siteBody,
		Labels: []string{"kind:site", "status:active"},
	}

	outcome, err := reconciler.Run(issue, "open")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Kind != OutcomeSaved {
		t.Fatalf("Expected saved outcome, got %s (%s)", outcome.Kind, outcome.Reason)
	}

	rec, err := store.Load("42")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(outcome.Record, rec) {
		t.Errorf("Expected outcome to carry the saved record, got %+v", outcome.Record)
	}

	if rec.ID != "42" {
		t.Errorf("Expected id '42', got '%s'", rec.ID)
	}
	if rec.Name != "ExampleTool" {
		t.Errorf("Expected name 'ExampleTool', got '%s'", rec.Name)
	}
	if rec.URL != "https://example.com" {
		t.Errorf("Expected url 'https://example.com', got '%s'", rec.URL)
	}
	if !reflect.DeepEqual(rec.Categories, []string{"tool"}) {
		t.Errorf("Expected categories [tool], got %v", rec.Categories)
	}
	if rec.Status != "active" {
		t.Errorf("Expected status active, got %s", rec.Status)
	}
	if rec.FailCount != 0 {
		t.Errorf("Expected fail_count 0, got %d", rec.FailCount)
	}
	if rec.AddedAt != "2026-08-29" {
		t.Errorf("Expected added_at '2026-08-29', got '%s'", rec.AddedAt)
	}
	if rec.LastCheck != "2026-08-29 12:00" {
		t.Errorf("Expected last_check '2026-08-29 12:00', got '%s'", rec.LastCheck)
	}
}

func TestSitesSaveTriage(t *testing.T) {
	store := record.NewStore[record.SiteRecord](t.TempDir())
	reconciler := NewSites(store).WithClock(testClock)

	issue := &github.Issue{
		Number: 43,
		Body:   siteBody,
		Labels: []string{"kind:site", "triage"},
	}

	outcome, err := reconciler.Run(issue, "open")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != "triage" {
		t.Errorf("Expected triage status, got %s", outcome.Status)
	}

	rec, err := store.Load("43")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != "triage" {
		t.Errorf("Staged record should carry triage status, got %s", rec.Status)
	}
}

func TestSitesSkipNonSiteIssue(t *testing.T) {
	store := record.NewStore[record.SiteRecord](t.TempDir())
	reconciler := NewSites(store)

	issue := &github.Issue{Number: 5, Labels: []string{"kind:category"}}

	outcome, err := reconciler.Run(issue, "open")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Kind != OutcomeSkipped {
		t.Errorf("Expected skipped outcome, got %s", outcome.Kind)
	}
	if store.Exists("5") {
		t.Error("No record should be written for a non-site issue")
	}
}

func TestSitesSkipOpenCorrection(t *testing.T) {
	store := record.NewStore[record.SiteRecord](t.TempDir())
	reconciler := NewSites(store)

	issue := &github.Issue{
		Number: 6,
		Body:   siteBody,
		Labels: []string{"kind:correction", "triage"},
	}

	outcome, err := reconciler.Run(issue, "open")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Kind != OutcomeSkipped || outcome.Reason != ReasonOpenCorrection {
		t.Errorf("Open corrections belong to the merge flow, got %s (%s)", outcome.Kind, outcome.Reason)
	}
	if store.Exists("6") {
		t.Error("An open correction must not stage a record")
	}
}

func TestSitesDeleteOnClosed(t *testing.T) {
	store := record.NewStore[record.SiteRecord](t.TempDir())
	reconciler := NewSites(store)

	if err := store.Save("8", record.SiteRecord{ID: "8"}); err != nil {
		t.Fatal(err)
	}

	issue := &github.Issue{Number: 8, Labels: []string{"kind:site"}}

	outcome, err := reconciler.Run(issue, "closed")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Kind != OutcomeDeleted {
		t.Errorf("Expected deleted outcome, got %s", outcome.Kind)
	}
	if store.Exists("8") {
		t.Error("Record should be deleted for a closed issue")
	}

	// Absence of the file is not an error: same outcome on a second pass.
	outcome, err = reconciler.Run(issue, "closed")
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if outcome.Kind != OutcomeDeleted {
		t.Errorf("Expected deleted outcome on idempotent re-run, got %s", outcome.Kind)
	}
}

func TestSitesURLAliasChain(t *testing.T) {
	store := record.NewStore[record.SiteRecord](t.TempDir())
	reconciler := NewSites(store).WithClock(testClock)

	body := "### 站点名称 (Name)\n\nMigrated\n\n### 新站点链接\n\nhttps://new.example.com"
	issue := &github.Issue{Number: 9, Body: body, Labels: []string{"kind:site", "status:active"}}

	if _, err := reconciler.Run(issue, "open"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rec, err := store.Load("9")
	if err != nil {
		t.Fatal(err)
	}
	if rec.URL != "https://new.example.com" {
		t.Errorf("Expected new_site_url alias resolved, got '%s'", rec.URL)
	}
}
