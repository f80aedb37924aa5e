// Package cmd implements the command-line interface for tvgrab.
package cmd

import (
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tvgrab-cli/tvgrab/filesystem"
	"github.com/tvgrab-cli/tvgrab/format"
	"github.com/tvgrab-cli/tvgrab/inline"
	"github.com/tvgrab-cli/tvgrab/key"
)

func init() {
	rootCmd.AddCommand(grabCmd)

	grabCmd.Flags().BoolP("default", "d", false, "Resolve the default playable instead of the trailer shelf")
	grabCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON document")
	grabCmd.Flags().Bool("probe", false, "Ping the content page before resolving (informational)")
	grabCmd.Flags().StringP("trailer", "t", "all", "Trailer shelf entry to resolve (t0, t1, ... or all)")
	grabCmd.Flags().StringP("format", "f", "", "Explicit stream selection expression, e.g. v0+a1+s0")
	grabCmd.Flags().StringP("profile", "p", "", "Named quality profile")
	grabCmd.Flags().String("audio-quality", "", "Preferred audio codec (atmos, dd51, aac, heaac, none)")
	grabCmd.Flags().String("audio-lang", "", "Preferred audio language (empty means original)")
	grabCmd.Flags().StringSlice("sub-lang", []string{}, "Subtitle languages to select")
	grabCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(viper.BindPFlag(key.SelectProfile, grabCmd.Flags().Lookup("profile")))
	lo.Must0(viper.BindPFlag(key.SelectAudioQuality, grabCmd.Flags().Lookup("audio-quality")))
	lo.Must0(viper.BindPFlag(key.SelectAudioLang, grabCmd.Flags().Lookup("audio-lang")))
	lo.Must0(viper.BindPFlag(key.SelectSubLang, grabCmd.Flags().Lookup("sub-lang")))

	lo.Must0(grabCmd.RegisterFlagCompletionFunc("profile", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return format.ProfileNames(), cobra.ShellCompDirectiveNoFileComp
	}))

	grabCmd.MarkFlagsMutuallyExclusive("format", "profile")
}

// grabCmd resolves a content page URL into playable metadata and stream selections.
var grabCmd = &cobra.Command{
	Use:   "grab <url>",
	Short: "Resolve a tv.apple.com page into playable metadata and stream selections",
	Long: `Resolve a tv.apple.com content page URL end to end: validate the URL,
acquire the storefront access token, fetch the trailer metadata and, when a
manifest parser is available, index the advertised streams and pick a format.

Stream selection either names streams explicitly (--format "v0+a1+s0") or
delegates to a profile (--profile 4K_DOVI_ATMOS) with graceful degradation.`,
	Example: "tvgrab grab https://tv.apple.com/us/movie/tetris/umc.cmc.4evmgcam356pzgxs2l7a18d7b --json",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			writer io.Writer = os.Stdout
			err    error
		)
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		}

		expression := mo.None[string]()
		if expr := lo.Must(cmd.Flags().GetString("format")); expr != "" {
			expression = mo.Some(expr)
		}

		profile := mo.None[string]()
		if p := viper.GetString(key.SelectProfile); p != "" {
			profile = mo.Some(p)
		}

		options := &inline.Options{
			Out:          writer,
			URL:          args[0],
			DefaultOnly:  lo.Must(cmd.Flags().GetBool("default")),
			Probe:        lo.Must(cmd.Flags().GetBool("probe")),
			Trailer:      lo.Must(cmd.Flags().GetString("trailer")),
			Json:         lo.Must(cmd.Flags().GetBool("json")),
			Expression:   expression,
			Profile:      profile,
			AudioQuality: viper.GetString(key.SelectAudioQuality),
			AudioLang:    viper.GetString(key.SelectAudioLang),
			SubLangs:     viper.GetStringSlice(key.SelectSubLang),
		}

		handleErr(inline.Run(options))
	},
}
