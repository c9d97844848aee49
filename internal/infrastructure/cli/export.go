package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export workspace data",
}

var exportOutput string

func exportWriter() (*os.File, func(), error) {
	if exportOutput == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

var exportIdeasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Export ranked ideas as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		w, done, err := exportWriter()
		if err != nil {
			return err
		}
		defer done()
		if err := services.Export.IdeasCSV(currentActor(), w); err != nil {
			return MapError(fmt.Errorf("failed to export ideas: %w", err))
		}
		return nil
	},
}

var exportFeaturesCmd = &cobra.Command{
	Use:   "features",
	Short: "Export features as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		w, done, err := exportWriter()
		if err != nil {
			return err
		}
		defer done()
		if err := services.Export.FeaturesCSV(currentActor(), w); err != nil {
			return MapError(fmt.Errorf("failed to export features: %w", err))
		}
		return nil
	},
}

var exportSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export the full workspace as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		w, done, err := exportWriter()
		if err != nil {
			return err
		}
		defer done()
		if err := services.Export.JSON(currentActor(), w); err != nil {
			return MapError(fmt.Errorf("failed to export snapshot: %w", err))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import data into the workspace",
}

var importIdeasCmd = &cobra.Command{
	Use:   "ideas <file>",
	Short: "Import ideas from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		imported, err := services.Import.Ideas(currentActor(), data)
		if err != nil {
			return MapError(fmt.Errorf("failed to import ideas: %w", err))
		}
		fmt.Printf("Imported %d ideas\n", len(imported))
		return nil
	},
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "Output file (defaults to stdout)")

	exportCmd.AddCommand(exportIdeasCmd)
	exportCmd.AddCommand(exportFeaturesCmd)
	exportCmd.AddCommand(exportSnapshotCmd)
	importCmd.AddCommand(importIdeasCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
}
