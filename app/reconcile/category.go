package reconcile

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/linkhub-io/linkhub/app/form"
	"github.com/linkhub-io/linkhub/app/github"
	"github.com/linkhub-io/linkhub/app/labels"
	"github.com/linkhub-io/linkhub/app/record"
)

// ErrMissingCategoryID is returned when a category proposal carries no
// category id field. The issue is left untouched and no file is written.
var ErrMissingCategoryID = errors.New("category id not found in issue form")

// Categories maps a category proposal or deletion-request issue to its
// target record state.
type Categories struct {
	store *record.Store[record.CategoryRecord]
}

func NewCategories(store *record.Store[record.CategoryRecord]) *Categories {
	return &Categories{store: store}
}

func (r *Categories) Run(issue *github.Issue, issueState string) (*Outcome, error) {
	isCategory := labels.IsCategoryKind(issue.Labels)
	isDeletion := labels.IsCategoryDeleteKind(issue.Labels)

	if !isCategory && !isDeletion {
		return skipped(ReasonNotCategoryIssue), nil
	}

	// Deletion requests are finalized only through the approve-deletion
	// path; the save path only cleans up after them once closed.
	if isDeletion && issueState != "closed" {
		return skipped(ReasonOpenDeletion), nil
	}

	key := strconv.Itoa(issue.Number)

	if issueState == "closed" {
		if err := r.store.Delete(key); err != nil {
			return nil, fmt.Errorf("failed to delete category record for issue #%d: %w", issue.Number, err)
		}
		slog.Info("Deleted category record for closed issue", "issue", issue.Number)
		return &Outcome{Kind: OutcomeDeleted}, nil
	}

	// Categories have no warning/broken/duplicate lifecycle: an issue is
	// either awaiting approval or active.
	status := labels.StatusValActive
	if issue.HasLabel(labels.Triage) {
		status = labels.StatusValTriage
	}

	data := form.Parse(issue.Body)

	id := form.First(data, "category_id", "id")
	if id == "" {
		return nil, ErrMissingCategoryID
	}

	rec := record.CategoryRecord{
		ID:          id,
		Name:        form.First(data, "chinese_name", "name"),
		NameEN:      form.First(data, "english_name", "name_en"),
		Icon:        data["icon"],
		Description: form.First(data, "chinese_description", "description"),
		DescEN:      form.First(data, "english_description", "desc_en"),
		Status:      string(status),
	}

	if err := r.store.Save(key, rec); err != nil {
		return nil, fmt.Errorf("failed to save category record for issue #%d: %w", issue.Number, err)
	}

	slog.Info("Saved category record", "issue", issue.Number, "id", rec.ID, "status", rec.Status)
	return &Outcome{Kind: OutcomeSaved, Status: status, Record: rec}, nil
}

func (r *Categories) Store() *record.Store[record.CategoryRecord] {
	return r.store
}
