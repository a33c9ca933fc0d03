package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/linkhub-io/linkhub/app/cfg"
	"github.com/linkhub-io/linkhub/app/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe listed site URLs and update their lifecycle status",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg.Get()

		admins := []string{c.Owner}
		for _, a := range c.Admins {
			if a != c.Owner {
				admins = append(admins, a)
			}
		}

		prober := health.NewProber(
			siteStore(),
			githubClient(),
			time.Duration(c.HealthTimeout)*time.Second,
			c.HealthBatchSize,
			c.UserAgent,
			admins,
		)

		return prober.Run(cmd.Context())
	},
}
