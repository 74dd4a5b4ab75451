package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/whatif/cmd/whatif"
	"github.com/arthur-debert/whatif/pkg/style"
)

func main() {
	rootCmd := whatif.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
