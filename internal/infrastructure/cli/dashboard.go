package cli

import (
	"fmt"
	"os"

	"github.com/compasshq/compass/internal/infrastructure/wiring"
	"github.com/compasshq/compass/pkg/domain/feature"
	"github.com/compasshq/compass/pkg/domain/idea"
	"github.com/compasshq/compass/pkg/domain/release"
	"github.com/compasshq/compass/pkg/infrastructure/dashboard"
	"github.com/spf13/cobra"
)

var dashboardAddr string

// servicesProvider adapts the application services to the dashboard.
type servicesProvider struct {
	services *wiring.AppServices
}

func (p *servicesProvider) RankedIdeas() ([]idea.Idea, error) {
	return p.services.Idea.Rank()
}

func (p *servicesProvider) Features() ([]feature.Feature, error) {
	return p.services.Feature.List()
}

func (p *servicesProvider) Releases() ([]release.Release, error) {
	return p.services.Release.List()
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the web dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("COMPASS_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		services, err := loadServices()
		if err != nil {
			return err
		}
		server, err := dashboard.NewServer(dashboardAddr, &servicesProvider{services: services}, services.Workspace.Publisher)
		if err != nil {
			return fmt.Errorf("start dashboard: %w", err)
		}
		return server.Start()
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardAddr, "addr", ":8090", "Address to listen on")
	RootCmd.AddCommand(dashboardCmd)
}
