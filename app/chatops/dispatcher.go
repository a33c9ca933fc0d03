package chatops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/linkhub-io/linkhub/app/github"
	"github.com/linkhub-io/linkhub/app/reconcile"
)

// Moderator command surface.
const (
	CmdApprove = "/approve"
	CmdReject  = "/reject"
	CmdClose   = "/close"
	CmdLabel   = "/label"
	CmdUpdate  = "/update"
)

// ErrMissingContext signals incomplete invocation context (issue number,
// comment body, author, or repository owner). No side effects are taken.
var ErrMissingContext = errors.New("missing chatops context")

// Dispatcher parses moderator chat commands, authorizes the caller, and
// drives the reconcilers and remote label/state mutations.
type Dispatcher struct {
	gh         github.Client
	sites      *reconcile.Sites
	categories *reconcile.Categories
	owner      string
}

func NewDispatcher(gh github.Client, sites *reconcile.Sites,
	categories *reconcile.Categories, owner string) *Dispatcher {
	return &Dispatcher{
		gh:         gh,
		sites:      sites,
		categories: categories,
		owner:      owner,
	}
}

// Run handles one issue comment. Comments that are not commands and
// commands from anyone but the repository owner are dropped without posting
// anything back; arbitrary commenters must not trigger bot noise.
func (d *Dispatcher) Run(ctx context.Context, issueNumber, body, author string) error {
	body = strings.TrimSpace(body)

	if issueNumber == "" || body == "" || author == "" || d.owner == "" {
		return fmt.Errorf("%w: issue=%q author=%q owner=%q", ErrMissingContext, issueNumber, author, d.owner)
	}

	if !strings.HasPrefix(body, "/") {
		return nil
	}

	if author != d.owner {
		slog.Warn("Unauthorized chatops user", "author", author)
		return nil
	}

	number, err := strconv.Atoi(issueNumber)
	if err != nil {
		return fmt.Errorf("%w: invalid issue number %q", ErrMissingContext, issueNumber)
	}

	issue, err := d.gh.GetIssue(ctx, number)
	if err != nil {
		return fmt.Errorf("failed to load issue for command: %w", err)
	}

	fields := strings.Fields(body)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	slog.Info("Handling command", "command", cmd, "issue", number)

	switch cmd {
	case CmdApprove:
		return d.handleApprove(ctx, issue)
	case CmdReject:
		return d.handleReject(ctx, issue, args)
	case CmdClose:
		return d.handleClose(ctx, issue, args)
	case CmdLabel:
		return d.handleLabel(ctx, issue, args)
	case CmdUpdate:
		return d.gh.CreateComment(ctx, issue.Number,
			"🔄 **任务已加入队列** | Task queued.\n项目将在下次自动运行时更新。")
	default:
		slog.Warn("Unknown command", "command", cmd)
		return nil
	}
}

// reconcileClosed runs both reconcilers with closed state to delete any
// staged record for the issue. Each reconciler gates on its own kind labels,
// so at most one acts; the delete is idempotent either way.
func (d *Dispatcher) reconcileClosed(issue *github.Issue) error {
	if _, err := d.sites.Run(issue, "closed"); err != nil {
		return err
	}
	if _, err := d.categories.Run(issue, "closed"); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) handleReject(ctx context.Context, issue *github.Issue, args []string) error {
	newLabels := issue.WithoutLabel("triage")

	// Remote mutation happens-before the local reconciler run.
	err := d.gh.UpdateIssue(ctx, issue.Number, github.IssueUpdate{
		Labels: newLabels,
		State:  "closed",
	})
	if err != nil {
		return fmt.Errorf("failed to close rejected issue #%d: %w", issue.Number, err)
	}

	issue.Labels = newLabels
	if err := d.reconcileClosed(issue); err != nil {
		return fmt.Errorf("failed to clean up rejected issue #%d: %w", issue.Number, err)
	}

	msg := "🚫 **申请已拒绝** | Submission rejected."
	if reason := strings.Join(args, " "); reason != "" {
		msg += "\n\n**原因 | Reason:** " + reason
	}
	return d.gh.CreateComment(ctx, issue.Number, msg)
}

func (d *Dispatcher) handleClose(ctx context.Context, issue *github.Issue, args []string) error {
	err := d.gh.UpdateIssue(ctx, issue.Number, github.IssueUpdate{State: "closed"})
	if err != nil {
		return fmt.Errorf("failed to close issue #%d: %w", issue.Number, err)
	}

	if err := d.reconcileClosed(issue); err != nil {
		return fmt.Errorf("failed to clean up closed issue #%d: %w", issue.Number, err)
	}

	msg := "🔒 **Issue 已关闭** | Closed."
	if reason := strings.Join(args, " "); reason != "" {
		msg += "\n\n**原因 | Reason:** " + reason
	}
	return d.gh.CreateComment(ctx, issue.Number, msg)
}

func (d *Dispatcher) handleLabel(ctx context.Context, issue *github.Issue, args []string) error {
	if len(args) < 2 {
		return nil
	}

	action := strings.ToLower(args[0])
	names := args[1:]

	switch action {
	case "add":
		if err := d.gh.AddLabels(ctx, issue.Number, names); err != nil {
			return err
		}
	case "remove", "del":
		for _, name := range names {
			if err := d.gh.RemoveLabel(ctx, issue.Number, name); err != nil {
				return err
			}
		}
	default:
		return nil
	}

	return d.gh.CreateComment(ctx, issue.Number, "✅ **标签已更新** | Labels updated.")
}
