/*
Command dhchain evaluates kinematic chains from description files.

	dhchain poses --chain arm.yaml --config 30,45
	dhchain trajectory --chain arm.yaml --from 0,0 --to 90,-40 --steps 10
	dhchain scara --theta2 45 --bar 650 --theta3 180

Results are written to stdout in YAML (or JSON with --format json), traces
go to stderr.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
