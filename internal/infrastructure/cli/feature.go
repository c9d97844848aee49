package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/spf13/cobra"
)

var featureCmd = &cobra.Command{
	Use:   "feature",
	Short: "Manage features on the delivery board",
}

var featureDescription string

var featureCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a feature directly, without promoting an idea",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		created, err := services.Feature.Create(currentActor(), args[0], featureDescription)
		if err != nil {
			return MapError(fmt.Errorf("failed to create feature: %w", err))
		}
		fmt.Printf("Created feature %s: %s\n", created.ID, created.Title)
		return nil
	},
}

var featureListJSON bool

var featureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all features",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		features, err := services.Feature.List()
		if err != nil {
			return MapError(err)
		}
		if featureListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(features)
		}

		fmt.Printf("Features (%d)\n", len(features))
		fmt.Println(strings.Repeat("-", 40))
		for _, f := range features {
			release := ""
			if f.ReleaseID != nil {
				release = " release=" + *f.ReleaseID
			}
			fmt.Printf("  %-12s [%-11s] %s%s\n", f.ID, f.Status, f.Title, release)
		}
		if len(features) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

func createFeatureMoveCommand(use, short, event string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := loadServices()
			if err != nil {
				return err
			}
			status, err := services.Feature.Transition(currentActor(), args[0], event)
			if err != nil {
				return MapError(fmt.Errorf("failed to move feature: %w", err))
			}
			fmt.Printf("Feature %s is now %s\n", args[0], status)
			return nil
		},
	}
}

var featureTaskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks within a feature",
}

var taskEffort int

var featureTaskAddCmd = &cobra.Command{
	Use:   "add <feature-id> <title>",
	Short: "Add a task to a feature",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		var effort *int
		if cmd.Flags().Changed("effort") {
			effort = &taskEffort
		}
		task, err := services.Feature.AddTask(currentActor(), args[0], args[1], effort)
		if err != nil {
			return MapError(fmt.Errorf("failed to add task: %w", err))
		}
		fmt.Printf("Added task %s to feature %s\n", task.ID, args[0])
		return nil
	},
}

var featureTaskMoveCmd = &cobra.Command{
	Use:   "move <feature-id> <task-id> <event>",
	Short: "Transition a task (start, review, approve, cancel, reopen)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		status, err := services.Feature.MoveTask(currentActor(), args[0], args[1], args[2])
		if err != nil {
			return MapError(fmt.Errorf("failed to move task: %w", err))
		}
		fmt.Printf("Task %s is now %s\n", args[1], status)
		return nil
	},
}

var featureTaskAssignCmd = &cobra.Command{
	Use:   "assign <feature-id> <task-id> <assignee>",
	Short: "Assign a task to a person",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Feature.AssignTask(currentActor(), args[0], args[1], args[2]); err != nil {
			return MapError(fmt.Errorf("failed to assign task: %w", err))
		}
		fmt.Printf("Task %s assigned to %s\n", args[1], args[2])
		return nil
	},
}

var featureShowCmd = &cobra.Command{
	Use:   "show <feature-id>",
	Short: "Show a feature with its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		f, err := services.Feature.Get(args[0])
		if err != nil {
			return MapError(err)
		}
		printFeature(f)
		return nil
	},
}

func printFeature(f *feature.Feature) {
	fmt.Printf("%s  %s [%s]\n", f.ID, f.Title, f.Status)
	if f.Description != "" {
		fmt.Printf("  %s\n", f.Description)
	}
	for _, t := range f.Tasks {
		effort := ""
		if t.Effort != nil {
			effort = fmt.Sprintf(" effort=%d", *t.Effort)
		}
		assignee := ""
		if t.Assignee != "" {
			assignee = " @" + t.Assignee
		}
		fmt.Printf("  - %-12s [%-11s] %s%s%s\n", t.ID, t.Status, t.Title, effort, assignee)
	}
}

func init() {
	featureCreateCmd.Flags().StringVarP(&featureDescription, "description", "d", "", "Longer description of the feature")
	featureListCmd.Flags().BoolVar(&featureListJSON, "json", false, "Output in JSON format")
	featureTaskAddCmd.Flags().IntVar(&taskEffort, "effort", 0, "Effort estimate in points")

	featureTaskCmd.AddCommand(featureTaskAddCmd)
	featureTaskCmd.AddCommand(featureTaskMoveCmd)
	featureTaskCmd.AddCommand(featureTaskAssignCmd)

	featureCmd.AddCommand(featureCreateCmd)
	featureCmd.AddCommand(featureListCmd)
	featureCmd.AddCommand(featureShowCmd)
	featureCmd.AddCommand(createFeatureMoveCommand("start <feature-id>", "Start work on a feature", "start"))
	featureCmd.AddCommand(createFeatureMoveCommand("review <feature-id>", "Send a feature to review", "review"))
	featureCmd.AddCommand(createFeatureMoveCommand("approve <feature-id>", "Mark a feature as done", "approve"))
	featureCmd.AddCommand(createFeatureMoveCommand("cancel <feature-id>", "Cancel a feature", "cancel"))
	featureCmd.AddCommand(createFeatureMoveCommand("reopen <feature-id>", "Reopen a cancelled feature", "reopen"))
	featureCmd.AddCommand(featureTaskCmd)
	RootCmd.AddCommand(featureCmd)
}
