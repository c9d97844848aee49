package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/compasshq/compass/internal/infrastructure/watch"
	"github.com/compasshq/compass/pkg/storage"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace for changes and report activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getProjectRoot()
		if err != nil {
			return err
		}
		services, err := loadServices()
		if err != nil {
			return err
		}
		if !services.Workspace.Repo.IsInitialized() {
			return MapError(fmt.Errorf("watch: workspace not initialized"))
		}

		dir := filepath.Join(root, storage.CompassDir)
		fmt.Printf("Watching %s for changes...\n", dir)

		watcher := watch.NewWorkspaceWatcher(dir, watchDebounce, func(change watch.ChangeEvent) {
			fmt.Printf("%s  %s %s\n", time.Now().Format("15:04:05"), change.ChangeType, change.File)

			switch change.File {
			case storage.IdeasFile:
				if ranked, err := services.Idea.Rank(); err == nil && len(ranked) > 0 {
					if score, serr := ranked[0].Score(); serr == nil && score != nil {
						fmt.Printf("  top idea: %s (%.1f)\n", ranked[0].Title, *score)
					}
				}
			case storage.FeaturesFile:
				if eligible, err := services.Release.Eligible(); err == nil {
					fmt.Printf("  %d features eligible for the next release\n", len(eligible))
				}
			}
		})

		return watcher.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Debounce window for change events")
	RootCmd.AddCommand(watchCmd)
}
