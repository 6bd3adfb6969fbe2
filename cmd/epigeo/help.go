// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(matrixFilesGuide)
	app.Add(nodeFilesGuide)
	app.Add(snpFilesGuide)
}

var snpFilesGuide = &command.Command{
	Usage: "snp-files",
	Short: "about SNP alignment files",
	Long: `
The curation of a core SNP alignment requires four files.

The core SNP alignment is a FASTA file in which each column is a SNP, for
example the 'core.aln' file produced by snippy-core. All sequences must have
the same length.

The SNP table is a tab-delimited file, with a header, that describes each
column of the alignment, in the same order (for example, the 'core.tab' file
of snippy-core). The second column must be the coordinate of the SNP in the
reference genome. The last columns are annotations of the SNP, and they are
kept as the last columns when the outgroup bases are added. Here is an
example file with four annotation columns:

	CHR	POS	REF	S1	S2	LOCUS_TAG	GENE	PRODUCT	EFFECT
	NC_000962	1849	C	C	A	Rv0001	dnaA	DnaA	missense
	NC_000962	3446	T	T	C	Rv0002	dnaN	DnaN	synonymous

The outgroup file is a FASTA file with one or more full genome sequences
aligned to the reference genome, so the base of a SNP is the base at the SNP
coordinate.

The exclusion file is a BED-like, tab-delimited file without header. The
second and third columns are the first and last coordinates of an excluded
region (both included). Lines starting with '#' are ignored. Here is an
example file:

	# problematic regions
	NC_000962.3	33582	33794	PE_PGRS
	NC_000962.3	103710	104663	PPE
	`,
}

var nodeFilesGuide = &command.Command{
	Usage: "node-files",
	Short: "about node annotation files",
	Long: `
Migration matrices are built from a tree file and a node file with the
annotations of each node of the tree, for example, as summarized from a
BEAST analysis with discrete locations.

A node file is a CSV file with a header. The columns are read by position:

	- node      the name of the node, as found in the tree file.
	- height    the distance from the node to the youngest terminal.
	- length    the length of the branch to the parent node.
	- location  the location assigned to the node.
	- prob      the probability of the location (optional).
	- isolate   the isolate name (optional), "NA" for internal nodes.

Isolate names are required to build calendar matrices, and should start with
the sampling year. Missing numerical values can be indicated with "NA".

Here is an example file:

	node,height,length,location,prob,isolate
	1,0.0,12.5,Eurasia,1.0,2010_TB01
	2,3.0,9.5,Africa,1.0,2007_TB02
	3,12.5,30.2,Eurasia,0.85,NA
	4,42.7,NA,Eurasia,0.93,NA

Internal nodes of the tree must have names. Use 'epigeo tree number' to add
numbers to unlabeled internal nodes, and 'epigeo tree nodes' to see the names
expected by the tree.
	`,
}

var matrixFilesGuide = &command.Command{
	Usage: "matrix-files",
	Short: "about migration matrix files",
	Long: `
A migration matrix file is a CSV file with the number of lineages at each
year that go from one location to another one. A branch whose location is
different from the location of its parent node is counted as a transition for
its entire length.

The header contains the years, and each row a transition, identified as
"<from>_to_<to>". There is a row for each pair of locations (including pairs
of the same location), ordered by the source, and then by the destination
location.

Here is an example file:

	,2001,2002,2003,2004
	Africa_to_Africa,1,2,2,3
	Africa_to_Eurasia,0,1,1,0
	Eurasia_to_Africa,0,0,1,1
	Eurasia_to_Eurasia,1,1,1,2
	`,
}
