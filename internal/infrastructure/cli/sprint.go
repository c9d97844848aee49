package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/pkg/application"
)

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Plan and track sprints",
}

var (
	sprintGoal     string
	sprintStart    string
	sprintEnd      string
	sprintCapacity int
)

var sprintStartCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start a new sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		startsAt := time.Now()
		if sprintStart != "" {
			startsAt, err = time.Parse("2006-01-02", sprintStart)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
		}
		endsAt := startsAt.AddDate(0, 0, 14)
		if sprintEnd != "" {
			endsAt, err = time.Parse("2006-01-02", sprintEnd)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}
		}

		s, err := services.Sprint.Start(currentActor(), args[0], sprintGoal, startsAt, endsAt, sprintCapacity)
		if err != nil {
			return MapError(fmt.Errorf("failed to start sprint: %w", err))
		}
		fmt.Printf("Started sprint %s (%s) through %s\n", s.Name, s.ID, s.EndsAt.Format("2006-01-02"))
		return nil
	},
}

var sprintListJSON bool

var sprintListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		sprints, err := services.Sprint.List()
		if err != nil {
			return MapError(err)
		}
		if sprintListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sprints)
		}
		now := time.Now()
		fmt.Printf("Sprints (%d)\n", len(sprints))
		for _, s := range sprints {
			marker := " "
			if s.IsActive(now) {
				marker = "*"
			}
			fmt.Printf("%s %-12s %-20s %s to %s (%d features)\n",
				marker, s.ID, s.Name,
				s.StartsAt.Format("2006-01-02"), s.EndsAt.Format("2006-01-02"),
				len(s.FeatureIDs))
		}
		if len(sprints) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

var sprintCommitCmd = &cobra.Command{
	Use:   "commit <sprint-id> <feature-id>",
	Short: "Commit a feature to a sprint",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Sprint.Commit(currentActor(), args[0], args[1]); err != nil {
			return MapError(fmt.Errorf("failed to commit feature: %w", err))
		}
		fmt.Printf("Committed feature %s to sprint %s\n", args[1], args[0])
		return nil
	},
}

var sprintProgressCmd = &cobra.Command{
	Use:   "progress <sprint-id>",
	Short: "Show progress for a sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		p, err := services.Sprint.Progress(args[0])
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("  committed:  %d points\n", p.CommittedPoints)
		fmt.Printf("  completed:  %d points\n", p.CompletedPoints)
		fmt.Printf("  completion: %.1f%%\n", p.CompletionPct)
		if p.OverCapacity {
			fmt.Println("  warning: committed points exceed sprint capacity")
		}
		return nil
	},
}

var sprintVelocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Show velocity statistics over finished sprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		stats, err := services.Sprint.Velocity()
		if err != nil {
			return MapError(err)
		}
		if stats.Samples == 0 {
			fmt.Println("No finished sprints yet.")
			return nil
		}
		fmt.Printf("  mean:        %.1f points/sprint\n", stats.Mean)
		fmt.Printf("  std dev:     %.1f\n", stats.StdDev)
		fmt.Printf("  range:       %.1f to %.1f\n", stats.Min, stats.Max)
		fmt.Printf("  variability: %.2f\n", stats.Variability())
		fmt.Printf("  samples:     %d\n", stats.Samples)
		return nil
	},
}

var sprintActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the currently running sprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		s, err := services.Sprint.Active(time.Now())
		if errors.Is(err, application.ErrNoActiveSprint) {
			fmt.Println("No active sprint.")
			return nil
		}
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("%s  %s through %s\n", s.Name, s.StartsAt.Format("2006-01-02"), s.EndsAt.Format("2006-01-02"))
		if s.Goal != "" {
			fmt.Printf("Goal: %s\n", s.Goal)
		}
		return nil
	},
}

func init() {
	sprintStartCmd.Flags().StringVar(&sprintGoal, "goal", "", "Sprint goal")
	sprintStartCmd.Flags().StringVar(&sprintStart, "from", "", "Start date (YYYY-MM-DD, defaults to today)")
	sprintStartCmd.Flags().StringVar(&sprintEnd, "to", "", "End date (YYYY-MM-DD, defaults to two weeks out)")
	sprintStartCmd.Flags().IntVar(&sprintCapacity, "capacity", 0, "Capacity in points (0 means uncapped)")
	sprintListCmd.Flags().BoolVar(&sprintListJSON, "json", false, "Output in JSON format")

	sprintCmd.AddCommand(sprintStartCmd)
	sprintCmd.AddCommand(sprintListCmd)
	sprintCmd.AddCommand(sprintCommitCmd)
	sprintCmd.AddCommand(sprintProgressCmd)
	sprintCmd.AddCommand(sprintVelocityCmd)
	sprintCmd.AddCommand(sprintActiveCmd)
	RootCmd.AddCommand(sprintCmd)
}
