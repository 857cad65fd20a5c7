package cmd

import (
	"fmt"

	"github.com/mtth/igloo/pkg/conf"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("igloo %s\n", conf.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
