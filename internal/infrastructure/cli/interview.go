package cli

import (
	"fmt"

	"github.com/compasshq/compass/pkg/domain/interview"
	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Record customer interviews and link insights to ideas",
}

var interviewNotes string

var interviewRecordCmd = &cobra.Command{
	Use:   "record <customer>",
	Short: "Record a customer interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		iv, err := services.Interview.Record(currentActor(), args[0], interviewNotes)
		if err != nil {
			return MapError(fmt.Errorf("failed to record interview: %w", err))
		}
		fmt.Printf("Recorded interview %s with %s\n", iv.ID, iv.Customer)
		return nil
	},
}

var interviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded interviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		interviews, err := services.Interview.List()
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Interviews (%d)\n", len(interviews))
		for _, iv := range interviews {
			fmt.Printf("  %-12s %s  %s (%d insights)\n",
				iv.ID, iv.ConductedAt.Format("2006-01-02"), iv.Customer, len(iv.Insights))
		}
		if len(interviews) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

var (
	insightSentiment string
	insightIdeas     []string
)

var interviewInsightCmd = &cobra.Command{
	Use:   "insight <interview-id> <text>",
	Short: "Add an insight to an interview, optionally linked to ideas",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		sentiment, err := interview.ParseSentiment(insightSentiment)
		if err != nil {
			return err
		}
		if err := services.Interview.AddInsight(currentActor(), args[0], args[1], sentiment, insightIdeas); err != nil {
			return MapError(fmt.Errorf("failed to add insight: %w", err))
		}
		fmt.Printf("Added insight to interview %s\n", args[0])
		return nil
	},
}

var interviewEvidenceCmd = &cobra.Command{
	Use:   "evidence <idea-id>",
	Short: "Show interview insights linked to an idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		insights, err := services.Interview.EvidenceFor(args[0])
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Evidence for %s (%d insights)\n", args[0], len(insights))
		for _, in := range insights {
			fmt.Printf("  [%-8s] %s\n", in.Sentiment, in.Text)
		}
		if len(insights) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

func init() {
	interviewRecordCmd.Flags().StringVarP(&interviewNotes, "notes", "n", "", "Interview notes")
	interviewInsightCmd.Flags().StringVar(&insightSentiment, "sentiment", "neutral", "Sentiment (positive, neutral, negative)")
	interviewInsightCmd.Flags().StringSliceVar(&insightIdeas, "idea", nil, "Idea IDs this insight supports")

	interviewCmd.AddCommand(interviewRecordCmd)
	interviewCmd.AddCommand(interviewListCmd)
	interviewCmd.AddCommand(interviewInsightCmd)
	interviewCmd.AddCommand(interviewEvidenceCmd)
	RootCmd.AddCommand(interviewCmd)
}
