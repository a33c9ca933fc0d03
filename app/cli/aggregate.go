package cli

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/linkhub-io/linkhub/app/aggregate"
	"github.com/linkhub-io/linkhub/app/cfg"
)

var aggregateSkipTemplates bool

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Rebuild the published site and category collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg.Get()

		aggregator := aggregate.NewAggregator(siteStore(), categoryStore(), c.DataDir)

		sites, categories, err := aggregator.Run()
		if err != nil {
			return err
		}

		if !aggregateSkipTemplates {
			if err := aggregate.SyncTemplates(".", categories); err != nil {
				// Template drift is recoverable on the next run; the
				// collections are already written.
				slog.Error("Failed to sync issue templates", "error", err)
			}
		}

		if c.SiteURL != "" {
			sitemapPath := filepath.Join("public", "sitemap.xml")
			if err := aggregate.WriteSitemap(sites, c.SiteURL, sitemapPath); err != nil {
				return err
			}
			slog.Info("Sitemap updated", "path", sitemapPath, "sites", len(sites))
		}

		return nil
	},
}

func init() {
	aggregateCmd.Flags().BoolVar(&aggregateSkipTemplates, "skip-templates", false,
		"Skip rewriting the issue template category options")
}
