package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/linkhub-io/linkhub/app/cfg"
	"github.com/linkhub-io/linkhub/app/reconcile"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Reconcile the category record for the triggering issue event",
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

		reconciler := reconcile.NewCategories(categoryStore())
		outcome, err := reconciler.Run(issue, c.IssueState)
		if err != nil {
			// A proposal without an id is a user mistake, not a job
			// failure; the issue is left untouched.
			if errors.Is(err, reconcile.ErrMissingCategoryID) {
				slog.Error("Category ID not found in issue form", "issue", number)
				return nil
			}
			return err
		}

		if outcome.Kind == reconcile.OutcomeSkipped {
			slog.Info("Skipped category reconciliation", "issue", number, "reason", outcome.Reason)
		}
		return nil
	},
}
