// Command peakdetect finds locally exclusive spike peaks in raw multichannel
// recordings.
//
// Usage:
//
//	peakdetect run --recording DIR --probe PROBE.json --noise-level 12.5 [flags]
//	peakdetect neighbors --probe PROBE.json [--radius-um 50]
//	peakdetect config [flags]
//
// Every flag can also be set through a PEAKDETECT_* environment variable
// or a YAML/JSON file passed with --config.
//
// Examples:
//
//	peakdetect run --recording rec/ --probe probe.json --noise-levels 9.1,8.7,10.2,... -o peaks.ndjson
//	PEAKDETECT_SIGN=both peakdetect run --config peakdetect.yaml
//	peakdetect neighbors --probe probe.json --radius-um 40
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}
