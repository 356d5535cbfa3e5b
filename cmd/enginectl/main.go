// enginectl is the operator CLI: connectivity checks, conversation
// export and glossary inspection against a running deployment's
// database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "enginectl",
		Short:   "Operator tooling for the tutoring engine",
		Version: version,
	}

	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(glossaryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
