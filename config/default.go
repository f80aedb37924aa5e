// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/tvgrab-cli/tvgrab/color"
	"github.com/tvgrab-cli/tvgrab/constant"
	"github.com/tvgrab-cli/tvgrab/key"
	"github.com/tvgrab-cli/tvgrab/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Tvgrab + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
	})
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.StorefrontDefault, constant.DefaultStorefront, "Storefront code assumed when a page URL does not carry one")
	// map[string]any, not map[string]int: viper's GetStringMap cast rejects
	// typed maps and would silently return an empty table.
	register(key.StorefrontIDs, map[string]any{
		"us": 143441,
		"fr": 143442,
		"de": 143443,
		"gb": 143444,
		"be": 143446,
	}, "Storefront code to numeric catalog id fallback table.\nUsed only when the landing page does not expose the id itself.\nBest-effort values; unknown codes fall back to the \"us\" id")
	register(key.LocaleDefault, constant.DefaultLocale, "Locale assumed when the landing page declares none")
	register(key.NetworkTimeout, 60, "Per-request deadline in seconds")
	register(key.NetworkInsecureRetry, true, "Retry a failed request once with certificate verification disabled.\nThe degrade is logged, never silent")
	register(key.SelectProfile, "", "Selection profile applied when no explicit -f expression is given.\nType \"tvgrab profiles\" to list available profiles")
	register(key.SelectAudioQuality, "AAC", "Audio codec preference for profile selection.\nAvailable options are: AAC, Atmos, DD5.1, none")
	register(key.SelectAudioLang, "original", "Audio language preference: \"original\" or a language code (e.g. en, cmn-Hans)")
	register(key.SelectSubLang, "none", "Subtitle language code, or \"none\"")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"purple": style.Fg(color.Purple),
	"blue":   style.Fg(color.Blue),
	"value":  func(k string) any { return viper.Get(k) },
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ value .Key }}
{{ blue "Default:" }} {{ .Value }}`))
