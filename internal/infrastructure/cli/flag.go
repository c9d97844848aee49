package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/compasshq/compass/pkg/domain/flag"
	"github.com/spf13/cobra"
)

var flagCmd = &cobra.Command{
	Use:   "flag",
	Short: "Manage feature flags",
}

var (
	flagDescription string
	flagFeatureID   string
	flagEnabled     bool
)

var flagSetCmd = &cobra.Command{
	Use:   "set <key>",
	Short: "Create or update a feature flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		f := flag.Flag{
			Key:         args[0],
			Description: flagDescription,
			FeatureID:   flagFeatureID,
			Enabled:     flagEnabled,
		}
		if err := services.Flag.Set(currentActor(), f); err != nil {
			return MapError(fmt.Errorf("failed to set flag: %w", err))
		}
		fmt.Printf("Flag %s saved\n", args[0])
		return nil
	},
}

var flagListJSON bool

var flagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all feature flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		flags, err := services.Flag.List()
		if err != nil {
			return MapError(err)
		}
		if flagListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(flags)
		}
		fmt.Printf("Flags (%d)\n", len(flags))
		for _, f := range flags {
			state := "off"
			if f.Enabled {
				state = "on"
			}
			fmt.Printf("  %-24s [%-3s] %s\n", f.Key, state, f.Description)
			for _, r := range f.Rollouts {
				fmt.Printf("    %s: %d%%\n", r.Environment, r.Percentage)
			}
		}
		if len(flags) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

var flagOnCmd = &cobra.Command{
	Use:   "on <key>",
	Short: "Enable a flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleFlag(args[0], true)
	},
}

var flagOffCmd = &cobra.Command{
	Use:   "off <key>",
	Short: "Disable a flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleFlag(args[0], false)
	},
}

func toggleFlag(key string, enabled bool) error {
	services, err := loadServices()
	if err != nil {
		return err
	}
	if err := services.Flag.Toggle(currentActor(), key, enabled); err != nil {
		return MapError(fmt.Errorf("failed to toggle flag: %w", err))
	}
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Printf("Flag %s %s\n", key, state)
	return nil
}

var rolloutPercentage int

var flagRolloutCmd = &cobra.Command{
	Use:   "rollout <key> <environment>",
	Short: "Set a percentage rollout for an environment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Flag.SetRollout(currentActor(), args[0], args[1], rolloutPercentage); err != nil {
			return MapError(fmt.Errorf("failed to set rollout: %w", err))
		}
		fmt.Printf("Flag %s rolls out to %d%% of %s\n", args[0], rolloutPercentage, args[1])
		return nil
	},
}

var flagEvalCmd = &cobra.Command{
	Use:   "eval <key> <environment> <subject>",
	Short: "Evaluate a flag for a subject in an environment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		served, err := services.Flag.Evaluate(args[0], args[1], args[2])
		if err != nil {
			return MapError(err)
		}
		if served {
			fmt.Println("on")
		} else {
			fmt.Println("off")
		}
		return nil
	},
}

func init() {
	flagSetCmd.Flags().StringVarP(&flagDescription, "description", "d", "", "What the flag gates")
	flagSetCmd.Flags().StringVar(&flagFeatureID, "feature", "", "Feature this flag gates")
	flagSetCmd.Flags().BoolVar(&flagEnabled, "enabled", false, "Enable the flag immediately")
	flagListCmd.Flags().BoolVar(&flagListJSON, "json", false, "Output in JSON format")
	flagRolloutCmd.Flags().IntVar(&rolloutPercentage, "percentage", 100, "Rollout percentage (0-100)")

	flagCmd.AddCommand(flagSetCmd)
	flagCmd.AddCommand(flagListCmd)
	flagCmd.AddCommand(flagOnCmd)
	flagCmd.AddCommand(flagOffCmd)
	flagCmd.AddCommand(flagRolloutCmd)
	flagCmd.AddCommand(flagEvalCmd)
	RootCmd.AddCommand(flagCmd)
}
