package cmd

import (
	"fmt"

	"github.com/msh-project/msh/core/shell"
	"github.com/spf13/cobra"
)

var showBuiltins bool

func printBuiltins(cmd *cobra.Command) error {
	for _, name := range shell.ListBuiltins() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func init() {
	rootCmd.Flags().BoolVar(&showBuiltins, "builtins", false, "list the builtin commands and exit")
}
