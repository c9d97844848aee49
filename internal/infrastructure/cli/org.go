package cli

import (
	"fmt"

	"github.com/compasshq/compass/pkg/domain/org"
	"github.com/spf13/cobra"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage the workspace organization",
}

var orgShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the organization and its members",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		o, err := services.Org.GetOrg()
		if err != nil {
			return MapError(err)
		}
		if o == nil {
			fmt.Println("Single-user workspace, no organization configured.")
			return nil
		}
		fmt.Printf("%s (%s)\n", o.Name, o.ID)
		fmt.Printf("Members (%d)\n", len(o.Members))
		for _, m := range o.Members {
			fmt.Printf("  %-20s %s\n", m.UserID, m.Role)
		}
		return nil
	},
}

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage organization members",
}

var memberRole string

var memberAddCmd = &cobra.Command{
	Use:   "add <user-id>",
	Short: "Add a member to the organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		role, err := org.ParseRole(memberRole)
		if err != nil {
			return err
		}
		if err := services.Org.AddMember(currentActor(), args[0], role); err != nil {
			return MapError(fmt.Errorf("failed to add member: %w", err))
		}
		fmt.Printf("Added %s as %s\n", args[0], role)
		return nil
	},
}

var memberRemoveCmd = &cobra.Command{
	Use:   "remove <user-id>",
	Short: "Remove a member from the organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if err := services.Org.RemoveMember(currentActor(), args[0]); err != nil {
			return MapError(fmt.Errorf("failed to remove member: %w", err))
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	memberAddCmd.Flags().StringVar(&memberRole, "role", "editor", "Role (owner, admin, editor, viewer)")

	memberCmd.AddCommand(memberAddCmd)
	memberCmd.AddCommand(memberRemoveCmd)
	orgCmd.AddCommand(orgShowCmd)
	orgCmd.AddCommand(memberCmd)
	RootCmd.AddCommand(orgCmd)
}
