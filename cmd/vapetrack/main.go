// Package main is the single-binary entrypoint for VapeTrack.
// Everything lives on-device: one binary, one SQLite file.
package main

import "github.com/vapetrack/vapetrack/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
