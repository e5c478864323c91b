package main

import (
	"os"

	"github.com/arthur-debert/customs/cmd/customs"
)

func main() {
	rootCmd := customs.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		customs.RenderError(rootCmd, err)
		os.Exit(1)
	}
}
