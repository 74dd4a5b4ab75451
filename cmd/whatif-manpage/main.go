package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/whatif/cmd/whatif"
	"github.com/arthur-debert/whatif/internal/version"
)

func main() {
	rootCmd := whatif.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "WHATIF",
		Section: "1",
		Source:  "whatif " + version.Version,
		Manual:  "whatif manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
