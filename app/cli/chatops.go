package cli

import (
	"github.com/spf13/cobra"

	"github.com/linkhub-io/linkhub/app/cfg"
	"github.com/linkhub-io/linkhub/app/chatops"
	"github.com/linkhub-io/linkhub/app/reconcile"
)

var chatopsCmd = &cobra.Command{
	Use:   "chatops",
	Short: "Handle a moderator command comment on an issue",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg.Get()

		dispatcher := chatops.NewDispatcher(
			githubClient(),
			reconcile.NewSites(siteStore()),
			reconcile.NewCategories(categoryStore()),
			c.Owner,
		)

		return dispatcher.Run(cmd.Context(), c.IssueNumber, c.CommentBody, c.CommentAuthor)
	},
}
