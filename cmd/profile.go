package cmd

import (
	"fmt"

	"github.com/mtth/igloo/pkg/conf"
	"github.com/mtth/igloo/pkg/profile"
	"github.com/mtth/igloo/pkg/target"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved transfer profiles",
	Long: `Profiles map a name to a transfer url so frequent targets don't have
to be typed out. They are saved in $IGLOORC, or $HOME/.igloorc if the
former isn't set.`,
	SilenceUsage: true,
}

var profileAddCmd = &cobra.Command{
	Use:   "add url [name]",
	Short: "Save a url under a profile name",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		locator := args[0]
		name := profile.DefaultName
		if len(args) == 2 {
			name = args[1]
		}
		// Reject locators that could never connect
		if _, pErr := target.Parse(locator); pErr != nil {
			return pErr
		}
		return profile.NewStore(conf.GetRCPath()).Add(name, locator)
	},
	SilenceUsage: true,
}

var profileRemoveCmd = &cobra.Command{
	Use:     "remove name",
	Aliases: []string{"delete"},
	Short:   "Delete a profile entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return profile.NewStore(conf.GetRCPath()).Remove(args[0])
	},
	SilenceUsage: true,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display all existing profile entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, lErr := profile.NewStore(conf.GetRCPath()).List()
		if lErr != nil {
			return lErr
		}
		for _, entry := range entries {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", entry.Name, entry.Locator)
		}
		return nil
	},
	SilenceUsage: true,
}

var profilePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the profile file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), conf.GetRCPath())
	},
}

func init() {
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profilePathCmd)
	rootCmd.AddCommand(profileCmd)
}
