package main

import (
	"fmt"
	"os"

	"github.com/authzed/multidict/pkg/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand("multidict")
	cmd.RegisterRootFlags(rootCmd)

	var groupConfig cmd.GroupConfig
	groupCmd := cmd.NewGroupCommand(rootCmd.Use, &groupConfig)
	if err := cmd.RegisterGroupFlags(groupCmd, &groupConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rootCmd.AddCommand(groupCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
