package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	timelineJSON  bool
	timelineFor   string
	timelineSince string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the audit event timeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		events, err := services.Audit.GetTimeline()
		if err != nil {
			return MapError(err)
		}
		if timelineFor != "" {
			events, err = services.Audit.GetTimelineFor("idea", timelineFor)
			if err != nil {
				return MapError(err)
			}
		}
		if timelineSince != "" {
			since, perr := time.Parse("2006-01-02", timelineSince)
			if perr != nil {
				return fmt.Errorf("invalid since date: %w", perr)
			}
			events, err = services.Audit.ActivitySince(since)
			if err != nil {
				return MapError(err)
			}
		}

		if timelineJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(events)
		}

		for _, ev := range events {
			fmt.Printf("%s  %-22s %-10s %s\n",
				ev.Timestamp.Format("2006-01-02 15:04"), ev.Type, ev.Actor, ev.AggregateID)
		}
		if len(events) == 0 {
			fmt.Println("No events recorded yet.")
		}
		return nil
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit log integrity and scoring activity",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the hash chain of the event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		violations, err := services.Audit.VerifyIntegrity()
		if err != nil {
			return MapError(err)
		}
		if len(violations) == 0 {
			fmt.Println("Event log integrity verified.")
			return nil
		}
		fmt.Printf("Found %d integrity violations:\n", len(violations))
		for _, v := range violations {
			fmt.Printf("  %s\n", v)
		}
		return fmt.Errorf("event log integrity check failed")
	},
}

var auditVelocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Show the scoring velocity in ideas scored per day",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		velocity, err := services.Audit.ScoringVelocity()
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("%.2f ideas scored per day\n", velocity)
		return nil
	},
}

func init() {
	timelineCmd.Flags().BoolVar(&timelineJSON, "json", false, "Output in JSON format")
	timelineCmd.Flags().StringVar(&timelineFor, "idea", "", "Only events for the given idea")
	timelineCmd.Flags().StringVar(&timelineSince, "since", "", "Only events since a date (YYYY-MM-DD)")

	auditCmd.AddCommand(auditVerifyCmd)
	auditCmd.AddCommand(auditVelocityCmd)
	RootCmd.AddCommand(timelineCmd)
	RootCmd.AddCommand(auditCmd)
}
