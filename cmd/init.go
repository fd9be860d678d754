package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/levelupinstalling/levelup/internal/config"
	"github.com/levelupinstalling/levelup/internal/content"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize levelup configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the site and generates a .levelup.yml file, plus an editable content file on request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := config.RunWizard(config.TerminalWizard(), cfgFile)
		if err != nil {
			return err
		}
		if !res.WriteContent {
			return nil
		}
		if err := content.Default().Save(res.Config.ContentFile); err != nil {
			return fmt.Errorf("writing starter content: %w", err)
		}
		fmt.Printf("Starter content written to %s\n", res.Config.ContentFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
