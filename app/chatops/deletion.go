package chatops

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkhub-io/linkhub/app/form"
	"github.com/linkhub-io/linkhub/app/github"
)

// approveDeletion removes the category record named by a deletion-request
// issue. The scan walks the category directory in listing order; the first
// record whose id matches wins. Ids are expected to be unique, so the
// tie-break never fires in practice.
func (d *Dispatcher) approveDeletion(ctx context.Context, issue *github.Issue) error {
	data := form.Parse(issue.Body)

	targetID := form.First(data, "category_id", "id")
	if targetID == "" {
		return d.gh.CreateComment(ctx, issue.Number,
			"❌ **无法解析分类 ID** | Unable to resolve the category id from the form.")
	}

	entries, err := d.categories.Store().List()
	if err != nil {
		return fmt.Errorf("failed to scan category records: %w", err)
	}

	foundKey := ""
	for _, entry := range entries {
		if entry.Record.ID == targetID {
			foundKey = entry.Key
			break
		}
	}

	if foundKey == "" {
		return d.gh.CreateComment(ctx, issue.Number,
			fmt.Sprintf("❌ **分类未找到** | Category `%s` not found.", targetID))
	}

	if err := d.categories.Store().Delete(foundKey); err != nil {
		return fmt.Errorf("failed to delete category record %s: %w", foundKey, err)
	}
	slog.Info("Deleted category record", "id", targetID, "file", foundKey+".json")

	// Clean up any staged file belonging to the deletion-request issue
	// itself, then close it.
	if _, err := d.categories.Run(issue, "closed"); err != nil {
		slog.Warn("Failed to clean up deletion-request issue", "issue", issue.Number, "error", err)
	}

	if err := d.gh.UpdateIssue(ctx, issue.Number, github.IssueUpdate{State: "closed"}); err != nil {
		return fmt.Errorf("failed to close deletion issue #%d: %w", issue.Number, err)
	}

	return d.gh.CreateComment(ctx, issue.Number,
		fmt.Sprintf("✅ **分类已删除** | Category `%s` deleted.", targetID))
}
