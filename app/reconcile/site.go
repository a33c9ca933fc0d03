package reconcile

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/linkhub-io/linkhub/app/form"
	"github.com/linkhub-io/linkhub/app/github"
	"github.com/linkhub-io/linkhub/app/labels"
	"github.com/linkhub-io/linkhub/app/record"
)

// Sites maps a site submission or correction issue to its target record
// state. Callers pass the authoritative label snapshot on the issue itself;
// the reconciler never re-reads the remote issue within a run.
type Sites struct {
	store *record.Store[record.SiteRecord]
	now   func() time.Time
}

func NewSites(store *record.Store[record.SiteRecord]) *Sites {
	return &Sites{store: store, now: time.Now}
}

// Run evaluates the site state machine for one issue. issueState is the
// state of the triggering event ("open" or "closed"), which may differ from
// the fetched issue during a close event.
func (r *Sites) Run(issue *github.Issue, issueState string) (*Outcome, error) {
	isSite := labels.IsSiteKind(issue.Labels)
	isCorrection := labels.IsCorrectionKind(issue.Labels)

	if !isSite && !isCorrection {
		return skipped(ReasonNotSiteIssue), nil
	}

	// Corrections are finalized only through the approve-merge path; an
	// open correction never stages a record of its own.
	if isCorrection && issueState != "closed" {
		return skipped(ReasonOpenCorrection), nil
	}

	key := strconv.Itoa(issue.Number)

	if issueState == "closed" {
		if err := r.store.Delete(key); err != nil {
			return nil, fmt.Errorf("failed to delete site record for issue #%d: %w", issue.Number, err)
		}
		slog.Info("Deleted site record for closed issue", "issue", issue.Number)
		return &Outcome{Kind: OutcomeDeleted}, nil
	}

	status := labels.DeriveStatus(issue.Labels)
	data := form.Parse(issue.Body)
	now := r.now()

	rec := record.SiteRecord{
		ID:          key,
		Name:        form.First(data, "site_name", "name"),
		URL:         form.First(data, "site_url", "url", "new_site_url"),
		Categories:  form.Checkboxes(data["categories"]),
		Cover:       form.First(data, "cover_image", "cover"),
		Description: form.First(data, "description", "detailed_description"),
		Status:      string(status),
		AddedAt:     now.Format("2006-01-02"),
		LastCheck:   now.Format("2006-01-02") + " 12:00",
	}

	if err := r.store.Save(key, rec); err != nil {
		return nil, fmt.Errorf("failed to save site record for issue #%d: %w", issue.Number, err)
	}

	slog.Info("Saved site record", "issue", issue.Number, "name", rec.Name, "status", rec.Status)
	return &Outcome{Kind: OutcomeSaved, Status: status, Record: rec}, nil
}

// Store exposes the underlying record store for flows that operate on
// records directly (merge sync, health checks).
func (r *Sites) Store() *record.Store[record.SiteRecord] {
	return r.store
}

// WithClock returns a copy of the reconciler using the given clock.
// Intended for tests.
func (r *Sites) WithClock(now func() time.Time) *Sites {
	return &Sites{store: r.store, now: now}
}
