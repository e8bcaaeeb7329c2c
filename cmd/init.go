package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/tock/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the user config file interactively",
	Long:  `Ask for the storage backend, theme, goals and break length and write them to the user config.yaml.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := config.InitPaths(); err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		written, err := config.RunSetup(force)
		if err != nil {
			return err
		}
		if !written {
			fmt.Fprintln(cmd.OutOrStdout(), subtleStyle.Render("setup cancelled, nothing written"))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("✓ Wrote"), config.GetConfigFile())
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
