package cli

import (
	"fmt"
	"time"

	"github.com/compasshq/compass/pkg/domain/product"
	"github.com/spf13/cobra"
)

var sunsetCmd = &cobra.Command{
	Use:   "sunset",
	Short: "Plan and track product end-of-life",
}

var (
	sunsetReason         string
	sunsetEOL            string
	sunsetMigrationNotes string
)

var sunsetDeclareCmd = &cobra.Command{
	Use:   "declare",
	Short: "Declare the product is sunsetting",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if sunsetEOL == "" {
			return fmt.Errorf("--eol is required")
		}
		eol, err := time.Parse("2006-01-02", sunsetEOL)
		if err != nil {
			return fmt.Errorf("invalid end-of-life date: %w", err)
		}
		plan := product.SunsetPlan{
			Reason:         sunsetReason,
			EndOfLifeAt:    eol,
			MigrationNotes: sunsetMigrationNotes,
		}
		if err := services.Sunset.Declare(currentActor(), plan); err != nil {
			return MapError(fmt.Errorf("failed to declare sunset: %w", err))
		}
		fmt.Printf("Product sunsetting, end of life %s\n", eol.Format("2006-01-02"))
		return nil
	},
}

var sunsetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the sunset plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		plan, err := services.Sunset.Plan()
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("End of life: %s\n", plan.EndOfLifeAt.Format("2006-01-02"))
		if plan.Reason != "" {
			fmt.Printf("Reason: %s\n", plan.Reason)
		}
		for _, m := range plan.Milestones {
			mark := " "
			if m.Done {
				mark = "x"
			}
			fmt.Printf("  [%s] %s (due %s)\n", mark, m.Name, m.DueAt.Format("2006-01-02"))
		}
		return nil
	},
}

var sunsetMilestoneCmd = &cobra.Command{
	Use:   "milestone <name>",
	Short: "Mark a sunset milestone as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Sunset.CompleteMilestone(currentActor(), args[0]); err != nil {
			return MapError(fmt.Errorf("failed to complete milestone: %w", err))
		}
		fmt.Printf("Milestone %s completed\n", args[0])
		return nil
	},
}

var sunsetRetireCmd = &cobra.Command{
	Use:   "retire",
	Short: "Retire the product once its end of life has passed",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Sunset.Retire(currentActor()); err != nil {
			return MapError(fmt.Errorf("failed to retire product: %w", err))
		}
		fmt.Println("Product retired.")
		return nil
	},
}

func init() {
	sunsetDeclareCmd.Flags().StringVar(&sunsetReason, "reason", "", "Why the product is sunsetting")
	sunsetDeclareCmd.Flags().StringVar(&sunsetEOL, "eol", "", "End-of-life date (YYYY-MM-DD)")
	sunsetDeclareCmd.Flags().StringVar(&sunsetMigrationNotes, "migration-notes", "", "Notes for migrating customers")

	sunsetCmd.AddCommand(sunsetDeclareCmd)
	sunsetCmd.AddCommand(sunsetShowCmd)
	sunsetCmd.AddCommand(sunsetMilestoneCmd)
	sunsetCmd.AddCommand(sunsetRetireCmd)
	RootCmd.AddCommand(sunsetCmd)
}
