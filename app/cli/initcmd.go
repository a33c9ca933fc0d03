package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/linkhub-io/linkhub/app/github"
	"github.com/linkhub-io/linkhub/app/labels"
)

var initReset bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the repository label vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		gh := githubClient()

		existing, err := gh.ListLabels(ctx)
		if err != nil {
			return err
		}

		if initReset {
			slog.Info("Clearing existing labels", "count", len(existing))
			for _, label := range existing {
				if err := gh.DeleteLabel(ctx, label.Name); err != nil {
					return err
				}
			}
			existing = nil
		}

		existingNames := make(map[string]bool, len(existing))
		for _, label := range existing {
			existingNames[label.Name] = true
		}

		for _, seed := range labels.ProjectLabels {
			label := github.Label{
				Name:        seed.Name,
				Color:       seed.Color,
				Description: seed.Description,
			}

			if existingNames[seed.Name] {
				slog.Info("Syncing label", "name", seed.Name)
				if err := gh.UpdateLabel(ctx, label); err != nil {
					return err
				}
			} else {
				slog.Info("Creating label", "name", seed.Name)
				if err := gh.CreateLabel(ctx, label); err != nil {
					return err
				}
			}
		}

		slog.Info("Labels initialized")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initReset, "reset", false,
		"Delete every existing label before seeding")
}
