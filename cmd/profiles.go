// Package cmd implements the command-line interface for tvgrab.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tvgrab-cli/tvgrab/color"
	"github.com/tvgrab-cli/tvgrab/format"
	"github.com/tvgrab-cli/tvgrab/style"
)

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.SetOut(os.Stdout)
}

// profilesCmd lists the named quality profiles available to grab --profile.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the named quality profiles available for stream selection",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range format.ProfileNames() {
			cmd.Println(style.Fg(color.Cyan)(name))
		}
	},
}
