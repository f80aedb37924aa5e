// Package cmd implements the command-line interface for tvgrab.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tvgrab-cli/tvgrab/color"
	"github.com/tvgrab-cli/tvgrab/constant"
	"github.com/tvgrab-cli/tvgrab/key"
	"github.com/tvgrab-cli/tvgrab/log"
	"github.com/tvgrab-cli/tvgrab/style"
	"github.com/tvgrab-cli/tvgrab/util"
	"github.com/tvgrab-cli/tvgrab/version"
	"github.com/tvgrab-cli/tvgrab/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the tvgrab application.
var rootCmd = &cobra.Command{
	Use:   constant.Tvgrab,
	Short: "A command-line trailer resolver for the tv.apple.com catalog",
	Long: style.New().Italic(true).Foreground(color.HiCyan).
		Render("    - A command-line trailer resolver for the tv.apple.com catalog"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "✗ %s\n", util.Capitalize(strings.Trim(err.Error(), " \n")))
		os.Exit(1)
	}
}
