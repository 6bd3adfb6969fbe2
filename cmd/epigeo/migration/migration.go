// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package migration is a metapackage for commands
// that dealt with migration matrices.
package migration

import (
	"github.com/js-arias/command"
	"github.com/js-arias/epigeo/cmd/epigeo/migration/calendar"
	"github.com/js-arias/epigeo/cmd/epigeo/migration/fixed"
	"github.com/js-arias/epigeo/cmd/epigeo/migration/plot"
)

var Command = &command.Command{
	Usage: "migration <command> [<argument>...]",
	Short: "commands for migration matrices",
}

func init() {
	Command.Add(calendar.Command)
	Command.Add(fixed.Command)
	Command.Add(plot.Command)
}
