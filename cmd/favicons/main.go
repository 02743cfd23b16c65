// favicons - favicon and touch icon generator
//
// favicons renders a source image into browser, Apple touch, Coast and
// Windows tile icons with ImageMagick and updates HTML icon tags.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/favicons/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
