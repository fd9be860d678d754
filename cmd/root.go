package cmd

import (
	"github.com/spf13/cobra"

	"github.com/levelupinstalling/levelup/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "levelup",
	Short: "Level Up Installation Corp brochure site",
	Long: `levelup serves the Level Up brochure site with its interactive navigation,
services accordion and contact composer, exports it as static files, and
composes project inquiries from the terminal.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
