// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Epigeo is a tool for genomic epidemiology
// and phylogeographic analysis.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/epigeo/cmd/epigeo/migration"
	"github.com/js-arias/epigeo/cmd/epigeo/snp"
	"github.com/js-arias/epigeo/cmd/epigeo/tree"
)

var app = &command.Command{
	Usage: "epigeo <command> [<argument>...]",
	Short: "a tool for genomic epidemiology and phylogeography",
}

func init() {
	app.Add(migration.Command)
	app.Add(snp.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
