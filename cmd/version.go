package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/util/sysinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "tock version %s\ncommit: %s\nbuilt: %s\n", config.Version, config.GitCommit, config.BuildDate)

		verbose, _ := cmd.Flags().GetBool("verbose")
		if !verbose {
			return nil
		}
		if err := loadConfig(cmd); err != nil {
			return err
		}
		info := sysinfo.NewSystemInfo()
		if isJSON(cmd) {
			return printJSON(cmd.OutOrStdout(), info.ToMap())
		}
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), info.String())
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "include terminal and environment details")
	rootCmd.AddCommand(versionCmd)
}
