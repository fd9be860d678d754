package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/levelupinstalling/levelup/internal/progress"
	"github.com/levelupinstalling/levelup/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static files",
	Long: `Renders the landing and contact pages in their initial state, writes the
stylesheet and copies the asset files into the output directory. The exported
menu and accordion work without JavaScript and the contact form opens the
visitor's mail client.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	c, err := loadContent(cfg)
	if err != nil {
		return err
	}
	st, err := site.New(c, nil, siteOptions(cfg, logger))
	if err != nil {
		return fmt.Errorf("creating site: %w", err)
	}

	exporter := &site.Exporter{
		Site:      st,
		OutputDir: cfg.OutputDir,
		Progress:  progress.NewReporter(),
	}
	n, err := exporter.Export()
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}

	fmt.Printf("Static site exported: %s (%d files)\n", cfg.OutputDir, n)
	return nil
}
