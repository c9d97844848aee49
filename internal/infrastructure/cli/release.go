package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/compasshq/compass/pkg/domain/release"
	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Compose and cut product releases",
}

var releaseType string

var releaseSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest the next version number",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		t, err := release.ParseType(releaseType)
		if err != nil {
			return err
		}
		version, err := services.Release.SuggestVersion(t)
		if err != nil {
			return MapError(err)
		}
		fmt.Println(version)
		return nil
	},
}

var releaseEligibleJSON bool

var releaseEligibleCmd = &cobra.Command{
	Use:   "eligible",
	Short: "List features eligible for the next release",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		features, err := services.Release.Eligible()
		if err != nil {
			return MapError(err)
		}
		if releaseEligibleJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(features)
		}
		fmt.Printf("Eligible features (%d)\n", len(features))
		for _, f := range features {
			fmt.Printf("  %-12s [%-11s] %s\n", f.ID, f.Status, f.Title)
		}
		if len(features) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

var (
	composeVersion  string
	composeFeatures []string
)

var releaseComposeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a draft release from eligible features",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		t, err := release.ParseType(releaseType)
		if err != nil {
			return err
		}
		draft, rollup, err := services.Release.Compose(currentActor(), composeVersion, t, composeFeatures)
		if err != nil {
			return MapError(fmt.Errorf("failed to compose release: %w", err))
		}
		fmt.Printf("Composed draft release %s (%s)\n", draft.Version, draft.ID)
		printRollup(rollup)
		return nil
	},
}

var releaseCutCmd = &cobra.Command{
	Use:   "cut <release-id>",
	Short: "Cut a draft release",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		cut, err := services.Release.Cut(currentActor(), args[0])
		if err != nil {
			return MapError(fmt.Errorf("failed to cut release: %w", err))
		}
		fmt.Printf("Cut release %s with %d features\n", cut.Version, len(cut.FeatureIDs))
		return nil
	},
}

var releaseListJSON bool

var releaseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all releases",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		releases, err := services.Release.List()
		if err != nil {
			return MapError(err)
		}
		if releaseListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(releases)
		}
		fmt.Printf("Releases (%d)\n", len(releases))
		fmt.Println(strings.Repeat("-", 40))
		for _, r := range releases {
			fmt.Printf("  %-12s %-10s [%-8s] %d features\n", r.ID, r.Version, r.Status, len(r.FeatureIDs))
		}
		if len(releases) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

var releaseRollupCmd = &cobra.Command{
	Use:   "rollup <release-id>",
	Short: "Show effort and completion rollup for a release",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		rollup, err := services.Release.Rollup(args[0])
		if err != nil {
			return MapError(err)
		}
		printRollup(rollup)
		return nil
	},
}

func printRollup(r *release.Rollup) {
	fmt.Printf("  features:   %d\n", r.FeatureCount)
	fmt.Printf("  tasks:      %d\n", r.TaskCount)
	fmt.Printf("  effort:     %d points\n", r.TotalEffort)
	fmt.Printf("  completion: %.1f%%\n", r.CompletionPct)
}

func init() {
	releaseSuggestCmd.Flags().StringVarP(&releaseType, "type", "t", "minor", "Release type (major, minor, patch, hotfix)")
	releaseComposeCmd.Flags().StringVarP(&releaseType, "type", "t", "minor", "Release type (major, minor, patch, hotfix)")
	releaseComposeCmd.Flags().StringVar(&composeVersion, "version", "", "Explicit version (defaults to the suggested next version)")
	releaseComposeCmd.Flags().StringSliceVar(&composeFeatures, "feature", nil, "Feature IDs to include (defaults to all eligible)")
	releaseEligibleCmd.Flags().BoolVar(&releaseEligibleJSON, "json", false, "Output in JSON format")
	releaseListCmd.Flags().BoolVar(&releaseListJSON, "json", false, "Output in JSON format")

	releaseCmd.AddCommand(releaseSuggestCmd)
	releaseCmd.AddCommand(releaseEligibleCmd)
	releaseCmd.AddCommand(releaseComposeCmd)
	releaseCmd.AddCommand(releaseCutCmd)
	releaseCmd.AddCommand(releaseListCmd)
	releaseCmd.AddCommand(releaseRollupCmd)
	RootCmd.AddCommand(releaseCmd)
}
