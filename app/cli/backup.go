package cli

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Push a snapshot of the data directory to a backup branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		timestamp := strings.NewReplacer(":", "-", ".", "-").
			Replace(time.Now().UTC().Format(time.RFC3339))
		branch := "backup-" + timestamp

		slog.Info("Creating backup branch", "branch", branch)

		steps := [][]string{
			{"git", "checkout", "-b", branch},
			{"git", "add", "data/"},
			{"git", "commit", "-m", "Archive: Data Backup " + timestamp},
			{"git", "push", "origin", branch},
			{"git", "checkout", "-"},
		}

		for _, step := range steps {
			out, err := exec.CommandContext(cmd.Context(), step[0], step[1:]...).CombinedOutput()
			if err != nil {
				return fmt.Errorf("backup step %q failed: %w\n%s",
					strings.Join(step, " "), err, out)
			}
		}

		slog.Info("Backup complete", "branch", branch)
		return nil
	},
}
