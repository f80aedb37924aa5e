// Package cmd implements the command-line interface for tvgrab.
package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/tvgrab-cli/tvgrab/inline"
	"github.com/spf13/cobra"
)

func init() {
	grabCmd.AddCommand(grabSchemaCmd)
}

// grabSchemaCmd generates the JSON Schema for the structured grab output.
var grabSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON Schema for the structured grab output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "item", "selection", "output", "contentmetadata":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
