package cmd

import (
	"fmt"

	"github.com/IDS-Mandujano/electronica-back/api/handlers"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(handlers.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
