//go:build avogen
// +build avogen

package main

import (
	"flag"
	"strings"

	. "github.com/mmcloughlin/avo/build"
)

var (
	component = flag.String("component", "all", "component to generate")
)

// main emits the shuffle and digit conversion kernels so go:generate stays simple.
func main() {
	flag.Parse()

	comp := strings.ToLower(*component)

	Package("github.com/myrgy/parsing-int-series")
	ConstraintExpr("amd64")
	ConstraintExpr("!noasm")

	genConstants()

	if comp == "shuffle" || comp == "all" {
		genShuffleKernel()
	}

	if comp == "convert" || comp == "all" {
		genConvert1Kernel()
		genConvert2Kernel()
		genConvert3Kernel()
		genConvert4Kernel()
		genConvert8Kernel()
	}

	Generate()
}
