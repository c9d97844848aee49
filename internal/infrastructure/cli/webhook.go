package cli

import (
	"fmt"
	"strings"

	"github.com/compasshq/compass/pkg/domain/events"
	"github.com/spf13/cobra"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage outgoing webhook endpoints",
}

var (
	webhookSecret string
	webhookEvents []string
)

var webhookAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a webhook endpoint",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		repo := services.Workspace.Repo

		endpoints, err := repo.LoadWebhooks()
		if err != nil {
			return MapError(err)
		}
		for _, ep := range endpoints {
			if ep.Name == args[0] {
				return fmt.Errorf("webhook %q already exists", args[0])
			}
		}
		endpoints = append(endpoints, events.WebhookEndpoint{
			Name:       args[0],
			URL:        args[1],
			Secret:     webhookSecret,
			EventTypes: webhookEvents,
			Enabled:    true,
		})
		if err := repo.SaveWebhooks(endpoints); err != nil {
			return MapError(err)
		}
		fmt.Printf("Added webhook %s\n", args[0])
		return nil
	},
}

var webhookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List webhook endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		endpoints, err := services.Workspace.Repo.LoadWebhooks()
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Webhooks (%d)\n", len(endpoints))
		for _, ep := range endpoints {
			state := "disabled"
			if ep.Enabled {
				state = "enabled"
			}
			filter := "all events"
			if len(ep.EventTypes) > 0 {
				filter = strings.Join(ep.EventTypes, ", ")
			}
			fmt.Printf("  %-16s [%-8s] %s (%s)\n", ep.Name, state, ep.URL, filter)
		}
		if len(endpoints) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

var webhookRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a webhook endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		repo := services.Workspace.Repo

		endpoints, err := repo.LoadWebhooks()
		if err != nil {
			return MapError(err)
		}
		kept := endpoints[:0]
		removed := false
		for _, ep := range endpoints {
			if ep.Name == args[0] {
				removed = true
				continue
			}
			kept = append(kept, ep)
		}
		if !removed {
			return fmt.Errorf("webhook %q not found", args[0])
		}
		if err := repo.SaveWebhooks(kept); err != nil {
			return MapError(err)
		}
		fmt.Printf("Removed webhook %s\n", args[0])
		return nil
	},
}

var webhookDeadLettersCmd = &cobra.Command{
	Use:   "dead-letters",
	Short: "List failed webhook deliveries",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		if services.Workspace.Notifier == nil {
			fmt.Println("No webhooks configured.")
			return nil
		}
		letters, err := services.Workspace.Notifier.DeadLetters()
		if err != nil {
			return MapError(err)
		}
		fmt.Printf("Dead letters (%d)\n", len(letters))
		for _, dl := range letters {
			fmt.Printf("  %s  %-22s %s (%d attempts): %s\n",
				dl.FailedAt.Format("2006-01-02 15:04"), dl.EventType, dl.URL, dl.Attempts, dl.Error)
		}
		if len(letters) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

func init() {
	webhookAddCmd.Flags().StringVar(&webhookSecret, "secret", "", "HMAC secret for signing payloads")
	webhookAddCmd.Flags().StringSliceVar(&webhookEvents, "event", nil, "Event types to deliver (defaults to all)")

	webhookCmd.AddCommand(webhookAddCmd)
	webhookCmd.AddCommand(webhookListCmd)
	webhookCmd.AddCommand(webhookRemoveCmd)
	webhookCmd.AddCommand(webhookDeadLettersCmd)
	RootCmd.AddCommand(webhookCmd)
}
