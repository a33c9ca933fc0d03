package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/linkhub-io/linkhub/app/cfg"
	"github.com/linkhub-io/linkhub/app/reconcile"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Reconcile the site record for the triggering issue event",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg.Get()

		number, err := strconv.Atoi(c.IssueNumber)
		if err != nil {
			return fmt.Errorf("ISSUE_NUMBER is required: %w", err)
		}

		issue, err := githubClient().GetIssue(cmd.Context(), number)
		if err != nil {
			return err
		}

		reconciler := reconcile.NewSites(siteStore())
		outcome, err := reconciler.Run(issue, c.IssueState)
		if err != nil {
			return err
		}

		if outcome.Kind == reconcile.OutcomeSkipped {
			slog.Info("Skipped site reconciliation", "issue", number, "reason", outcome.Reason)
		}
		return nil
	},
}
