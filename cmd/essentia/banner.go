package main

import (
	"fmt"

	"github.com/muesli/termenv"
)

// printBanner writes the startup banner with the release version.
func printBanner(version string) {
	p := termenv.ColorProfile()
	name := termenv.String("essentia").Foreground(p.Color("#818cf8")).Bold()
	ver := termenv.String("v" + version).Foreground(p.Color("#a78bfa"))
	fmt.Printf("%s %s\n", name, ver)
}
