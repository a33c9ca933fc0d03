package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/linkhub-io/linkhub/app/cfg"
	"github.com/linkhub-io/linkhub/app/github"
	"github.com/linkhub-io/linkhub/app/logging"
	"github.com/linkhub-io/linkhub/app/record"
)

var logCleanup func() error

var rootCmd = &cobra.Command{
	Use:           "linkhub",
	Short:         "Issue-driven automation for the LinkHub link directory",
	Version:       cfg.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := cfg.Load()
		if err != nil {
			return err
		}
		logCleanup = logging.Setup(c.LogFile, c.Debug)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			logCleanup()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(siteCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(chatopsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(backupCmd)
}

func siteStore() *record.Store[record.SiteRecord] {
	return record.NewStore[record.SiteRecord](filepath.Join(cfg.Get().DataDir, "items"))
}

func categoryStore() *record.Store[record.CategoryRecord] {
	return record.NewStore[record.CategoryRecord](filepath.Join(cfg.Get().DataDir, "category_items"))
}

func githubClient() github.Client {
	c := cfg.Get()
	return github.NewRESTClient(c.APIBaseURL, c.Owner, c.Repo, c.GitHubToken, c.UserAgent)
}
