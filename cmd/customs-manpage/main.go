package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/customs/cmd/customs"
	"github.com/arthur-debert/customs/internal/version"
)

// Writes the root man page to stdout, or one page per command into the
// directory given as the only argument.
func main() {
	rootCmd := customs.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "CUSTOMS",
		Section: "1",
		Source:  "customs " + version.Version,
		Manual:  "customs manual",
	}

	var err error
	if len(os.Args) > 1 {
		if err = os.MkdirAll(os.Args[1], 0755); err == nil {
			err = doc.GenManTree(rootCmd, header, os.Args[1])
		}
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
