// Texture generator - writes the procedural phase textures as PNG files.
//
// Usage: go run ./cmd/texgen -out textures -size 64
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pthm-cable/mitosis/assets"
)

func main() {
	outDir := flag.String("out", "textures", "Output directory")
	size := flag.Int("size", 64, "Texture edge length in pixels")
	flag.Parse()

	paths, err := assets.WritePlaceholders(*outDir, *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write textures: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}
