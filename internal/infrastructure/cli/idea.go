package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/prioritization"
	"github.com/spf13/cobra"
)

var ideaCmd = &cobra.Command{
	Use:   "idea",
	Short: "Capture and prioritize product ideas",
}

var ideaDescription string

var ideaCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Capture a new idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		created, err := services.Idea.Create(currentActor(), args[0], ideaDescription)
		if err != nil {
			return MapError(fmt.Errorf("failed to create idea: %w", err))
		}
		fmt.Printf("Created idea %s: %s\n", created.ID, created.Title)
		return nil
	},
}

var ideaListJSON bool

var ideaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all ideas",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		ideas, err := services.Idea.List()
		if err != nil {
			return MapError(err)
		}
		return outputIdeas(ideas, ideaListJSON)
	},
}

var (
	riceReach      int
	riceImpact     int
	riceConfidence int
	riceEffort     int
)

// riceRange rejects sub-score values outside the 1-5 scale before they reach
// the scoring engine, which deliberately does not validate.
func riceRange(name string, value int) error {
	if value < 1 || value > 5 {
		return NewCLIError(
			fmt.Sprintf("%s must be between 1 and 5, got %d", name, value),
			"All RICE sub-scores use a 1-5 scale",
			nil,
		)
	}
	return nil
}

var ideaScoreCmd = &cobra.Command{
	Use:   "score <idea-id>",
	Short: "Score an idea with the RICE model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		inputs := prioritization.RICEInputs{}
		if cmd.Flags().Changed("reach") {
			if err := riceRange("reach", riceReach); err != nil {
				return err
			}
			inputs.Reach = &riceReach
		}
		if cmd.Flags().Changed("impact") {
			if err := riceRange("impact", riceImpact); err != nil {
				return err
			}
			inputs.Impact = &riceImpact
		}
		if cmd.Flags().Changed("confidence") {
			if err := riceRange("confidence", riceConfidence); err != nil {
				return err
			}
			inputs.Confidence = &riceConfidence
		}
		if cmd.Flags().Changed("effort") {
			if err := riceRange("effort", riceEffort); err != nil {
				return err
			}
			inputs.Effort = &riceEffort
		}

		score, err := services.Idea.ScoreRICE(currentActor(), args[0], inputs)
		if err != nil {
			return MapError(fmt.Errorf("failed to score idea: %w", err))
		}
		if score == nil {
			fmt.Println("Inputs saved. Idea is not fully scored yet.")
			return nil
		}
		fmt.Printf("RICE score: %.1f\n", *score)
		return nil
	},
}

var (
	wsjfCostOfDelay int
	wsjfJobSize     int
)

var ideaWSJFCmd = &cobra.Command{
	Use:   "wsjf <idea-id>",
	Short: "Score an idea with the WSJF model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		inputs := prioritization.WSJFInputs{}
		if cmd.Flags().Changed("cost-of-delay") {
			inputs.CostOfDelay = &wsjfCostOfDelay
		}
		if cmd.Flags().Changed("job-size") {
			inputs.JobSize = &wsjfJobSize
		}

		score, err := services.Idea.ScoreWSJF(currentActor(), args[0], inputs)
		if err != nil {
			return MapError(fmt.Errorf("failed to score idea: %w", err))
		}
		if score == nil {
			fmt.Println("Inputs saved. Idea is not fully scored yet.")
			return nil
		}
		fmt.Printf("WSJF score: %.2f\n", *score)
		return nil
	},
}

var ideaPriorityCmd = &cobra.Command{
	Use:   "priority <idea-id> <low|medium|high>",
	Short: "Set an idea's manual priority",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		priority := prioritization.Priority(args[1])
		if err := services.Idea.SetPriority(currentActor(), args[0], priority); err != nil {
			return MapError(fmt.Errorf("failed to set priority: %w", err))
		}
		fmt.Printf("Priority for %s set to %s\n", args[0], priority)
		return nil
	},
}

var ideaVoteCmd = &cobra.Command{
	Use:   "vote <idea-id>",
	Short: "Vote for an idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		votes, err := services.Idea.Vote(currentActor(), args[0])
		if err != nil {
			return MapError(fmt.Errorf("failed to vote: %w", err))
		}
		fmt.Printf("Idea %s now has %d votes\n", args[0], votes)
		return nil
	},
}

var ideaRankJSON bool

var ideaRankCmd = &cobra.Command{
	Use:   "rank",
	Short: "List ideas ordered by RICE score",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		ranked, err := services.Idea.Rank()
		if err != nil {
			return MapError(err)
		}
		return outputIdeas(ranked, ideaRankJSON)
	},
}

var ideaPromoteCmd = &cobra.Command{
	Use:   "promote <idea-id>",
	Short: "Promote a planned idea into a feature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		feat, err := services.Idea.Promote(currentActor(), args[0])
		if err != nil {
			return MapError(fmt.Errorf("failed to promote idea: %w", err))
		}
		fmt.Printf("Promoted idea %s to feature %s\n", args[0], feat.ID)
		return nil
	},
}

var ideaArchiveCmd = &cobra.Command{
	Use:   "archive <idea-id>",
	Short: "Archive an idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Idea.Archive(currentActor(), args[0]); err != nil {
			return MapError(fmt.Errorf("failed to archive idea: %w", err))
		}
		fmt.Printf("Archived idea %s\n", args[0])
		return nil
	},
}

var ideaStatusCmd = &cobra.Command{
	Use:   "status <idea-id> <status>",
	Short: "Move an idea to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Idea.SetStatus(currentActor(), args[0], idea.Status(args[1])); err != nil {
			return MapError(fmt.Errorf("failed to set status: %w", err))
		}
		fmt.Printf("Idea %s moved to %s\n", args[0], args[1])
		return nil
	},
}

func outputIdeas(ideas []idea.Idea, jsonOut bool) error {
	if jsonOut {
		type ideaRow struct {
			idea.Idea
			Priority prioritization.DisplayPriority `json:"display_priority"`
		}
		rows := make([]ideaRow, len(ideas))
		for n, i := range ideas {
			rows[n] = ideaRow{Idea: i, Priority: i.Display()}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("Ideas (%d)\n", len(ideas))
	fmt.Println(strings.Repeat("-", 40))
	for _, i := range ideas {
		d := i.Display()
		score := "unscored"
		if d.Scored() {
			score = fmt.Sprintf("%.1f", *d.RICE)
		}
		fmt.Printf("  %-12s [%-9s] %-6s %-8s votes=%-3d %s\n", i.ID, i.Status, d.Manual, score, i.Votes, i.Title)
	}
	if len(ideas) == 0 {
		fmt.Println("  (none)")
	}
	return nil
}

func init() {
	ideaCreateCmd.Flags().StringVarP(&ideaDescription, "description", "d", "", "Longer description of the idea")

	ideaScoreCmd.Flags().IntVar(&riceReach, "reach", 0, "Reach (1-5)")
	ideaScoreCmd.Flags().IntVar(&riceImpact, "impact", 0, "Impact (1-5)")
	ideaScoreCmd.Flags().IntVar(&riceConfidence, "confidence", 0, "Confidence (1-5)")
	ideaScoreCmd.Flags().IntVar(&riceEffort, "effort", 0, "Effort (1-5)")

	ideaWSJFCmd.Flags().IntVar(&wsjfCostOfDelay, "cost-of-delay", 0, "Cost of delay")
	ideaWSJFCmd.Flags().IntVar(&wsjfJobSize, "job-size", 0, "Job size")

	ideaListCmd.Flags().BoolVar(&ideaListJSON, "json", false, "Output in JSON format")
	ideaRankCmd.Flags().BoolVar(&ideaRankJSON, "json", false, "Output in JSON format")

	ideaCmd.AddCommand(ideaCreateCmd)
	ideaCmd.AddCommand(ideaListCmd)
	ideaCmd.AddCommand(ideaScoreCmd)
	ideaCmd.AddCommand(ideaWSJFCmd)
	ideaCmd.AddCommand(ideaPriorityCmd)
	ideaCmd.AddCommand(ideaVoteCmd)
	ideaCmd.AddCommand(ideaRankCmd)
	ideaCmd.AddCommand(ideaPromoteCmd)
	ideaCmd.AddCommand(ideaArchiveCmd)
	ideaCmd.AddCommand(ideaStatusCmd)
	RootCmd.AddCommand(ideaCmd)
}
