// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package snp is a metapackage for commands
// that dealt with SNP alignments.
package snp

import (
	"github.com/js-arias/command"
	"github.com/js-arias/epigeo/cmd/epigeo/snp/curate"
)

var Command = &command.Command{
	Usage: "snp <command> [<argument>...]",
	Short: "commands for SNP alignments",
}

func init() {
	Command.Add(curate.Command)
}
