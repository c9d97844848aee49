package cli

import (
	"fmt"

	"github.com/compasshq/compass/pkg/domain"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize with external trackers through connector plugins",
}

var syncRunCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Run a configured integration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		results, err := services.Sync.Run(currentActor(), args[0])
		if err != nil {
			return MapError(fmt.Errorf("sync failed: %w", err))
		}
		for _, line := range results {
			fmt.Println(line)
		}
		if len(results) == 0 {
			fmt.Println("Nothing to sync.")
		}
		return nil
	},
}

var (
	syncBinary   string
	syncDisabled bool
	syncSettings map[string]string
)

var syncConfigureCmd = &cobra.Command{
	Use:   "configure <name>",
	Short: "Configure an integration backed by a connector plugin binary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		cfg := domain.IntegrationConfig{
			Name:     args[0],
			Binary:   syncBinary,
			Enabled:  !syncDisabled,
			Settings: syncSettings,
		}
		if err := services.Sync.Configure(cfg); err != nil {
			return MapError(fmt.Errorf("failed to configure integration: %w", err))
		}
		fmt.Printf("Integration %s configured\n", args[0])
		return nil
	},
}

var syncListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured integrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		configs, err := services.Sync.List()
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Integrations (%d)\n", len(configs))
		for _, c := range configs {
			state := "disabled"
			if c.Enabled {
				state = "enabled"
			}
			fmt.Printf("  %-16s [%-8s] %s\n", c.Name, state, c.Binary)
		}
		if len(configs) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

func init() {
	syncConfigureCmd.Flags().StringVar(&syncBinary, "binary", "", "Path to the connector plugin binary")
	syncConfigureCmd.Flags().BoolVar(&syncDisabled, "disabled", false, "Configure without enabling")
	syncConfigureCmd.Flags().StringToStringVar(&syncSettings, "setting", nil, "Connector settings as key=value pairs")

	syncCmd.AddCommand(syncRunCmd)
	syncCmd.AddCommand(syncConfigureCmd)
	syncCmd.AddCommand(syncListCmd)
	RootCmd.AddCommand(syncCmd)
}
