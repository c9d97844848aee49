package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var initSlug string

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

var initCmd = &cobra.Command{
	Use:   "init <org-name> <product-name>",
	Short: "Initialize a new compass workspace",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		slug := initSlug
		if slug == "" {
			slug = slugify(args[1])
		}

		product, err := services.Org.InitWorkspace(args[0], args[1], slug, currentActor())
		if err != nil {
			return MapError(fmt.Errorf("failed to initialize workspace: %w", err))
		}

		fmt.Printf("Initialized compass workspace for %s / %s\n", args[0], product.Name)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initSlug, "slug", "", "Product slug (defaults to a slug derived from the name)")
	RootCmd.AddCommand(initCmd)
}
