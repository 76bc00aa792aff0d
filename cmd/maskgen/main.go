package main

import (
	"flag"
	"fmt"
	"os"

	"iso-landgen/internal/stencil"
	"iso-landgen/internal/terrain"
)

func main() {
	outDir := flag.String("o", "masks", "Directory to write the stencil set to")
	resolution := flag.Int("r", 1, "Resolution the stencils are drawn for")
	flag.Parse()

	files, err := stencil.Generate(*outDir, terrain.DefaultTables(), *resolution)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, f := range files {
		fmt.Printf("OK  %s\n", f)
	}
	fmt.Printf("\nDone. %d stencils written.\n", len(files))
}
