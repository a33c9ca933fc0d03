package chatops

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkhub-io/linkhub/app/github"
	"github.com/linkhub-io/linkhub/app/labels"
)

// handleApprove branches on the issue's kind labels. Category proposals are
// closed on approval (the record outlives the issue); site submissions stay
// open as the record's anchor for corrections and health labels.
func (d *Dispatcher) handleApprove(ctx context.Context, issue *github.Issue) error {
	switch {
	case labels.IsCorrectionKind(issue.Labels):
		return d.runReported(ctx, issue, d.approveMerge,
			"❌ **更新失败** | Failed to apply the correction.")
	case labels.IsCategoryDeleteKind(issue.Labels):
		return d.runReported(ctx, issue, d.approveDeletion,
			"❌ **删除失败** | Failed to delete the category.")
	case labels.IsCategoryKind(issue.Labels):
		return d.approveCategory(ctx, issue)
	default:
		return d.approveSite(ctx, issue)
	}
}

// runReported executes an approval flow and converts its failure into a
// user-facing comment instead of crashing the dispatcher.
func (d *Dispatcher) runReported(ctx context.Context, issue *github.Issue,
	flow func(context.Context, *github.Issue) error, failMsg string) error {
	if err := flow(ctx, issue); err != nil {
		slog.Error("Approval flow failed", "issue", issue.Number, "error", err)
		if cErr := d.gh.CreateComment(ctx, issue.Number, failMsg); cErr != nil {
			slog.Error("Failed to post failure comment", "issue", issue.Number, "error", cErr)
		}
	}
	return nil
}

func (d *Dispatcher) approveSite(ctx context.Context, issue *github.Issue) error {
	newLabels := append(issue.WithoutLabel(labels.Triage), labels.StatusActive)

	err := d.gh.UpdateIssue(ctx, issue.Number, github.IssueUpdate{Labels: newLabels})
	if err != nil {
		return fmt.Errorf("failed to update labels on issue #%d: %w", issue.Number, err)
	}

	// Inject the post-mutation labels into the in-memory issue; re-fetching
	// here could observe the pre-update label set.
	issue.Labels = newLabels

	if _, err := d.sites.Run(issue, "open"); err != nil {
		return fmt.Errorf("failed to reconcile approved site #%d: %w", issue.Number, err)
	}

	return d.gh.CreateComment(ctx, issue.Number,
		"✅ **批准成功！** | Approved.\n状态已变更为 `active`。")
}

func (d *Dispatcher) approveCategory(ctx context.Context, issue *github.Issue) error {
	newLabels := append(issue.WithoutLabel(labels.Triage), labels.StatusActive)

	err := d.gh.UpdateIssue(ctx, issue.Number, github.IssueUpdate{
		Labels: newLabels,
		State:  "closed",
	})
	if err != nil {
		return fmt.Errorf("failed to update labels on issue #%d: %w", issue.Number, err)
	}

	// The record must survive the issue closing, so the reconciler runs
	// with open state and the injected post-mutation labels.
	issue.Labels = newLabels

	if _, err := d.categories.Run(issue, "open"); err != nil {
		return fmt.Errorf("failed to reconcile approved category #%d: %w", issue.Number, err)
	}

	return d.gh.CreateComment(ctx, issue.Number,
		"✅ **批准成功！** | Approved.\n状态已变更为 `active`。该申请已关闭并生效。")
}
