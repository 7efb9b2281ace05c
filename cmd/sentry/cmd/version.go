package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the sentry CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sentry version %s\n", version)
		fmt.Println("Scheduled portfolio risk and performance monitoring")
		fmt.Println("https://github.com/rustyeddy/sentry")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
