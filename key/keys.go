// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Storefront Context - these keys govern which regional catalog is used and how
// storefront codes map onto the numeric ids the UTS API expects.
const (
	StorefrontDefault = "storefront.default"
	StorefrontIDs     = "storefront.ids"
	LocaleDefault     = "locale.default"
)

// Network Behaviour - these keys configure the HTTP layer shared by the page
// and API fetchers.
const (
	NetworkTimeout       = "network.timeout"
	NetworkInsecureRetry = "network.insecure_retry"
)

// Selection Defaults - these keys hold the fallback quality intent applied when
// the user provides neither an explicit expression nor a profile.
const (
	SelectProfile      = "select.profile"
	SelectAudioQuality = "select.audio_quality"
	SelectAudioLang    = "select.audio_lang"
	SelectSubLang      = "select.sub_lang"
)

// Command Line Interface - these keys define the CLI presentation behaviour.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)
