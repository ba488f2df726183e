package cmd

import (
	"github.com/spf13/cobra"

	"github.com/drivetrainhq/eagleview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize eagleview configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the view, labels and server, and generates a .eagleview.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
