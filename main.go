// Package main is the entry point for the tvgrab application.
package main

import (
	"github.com/samber/lo"
	"github.com/tvgrab-cli/tvgrab/cmd"
	"github.com/tvgrab-cli/tvgrab/config"
	"github.com/tvgrab-cli/tvgrab/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
