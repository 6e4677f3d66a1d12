package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	initConfig()

	root := &cobra.Command{
		Use:   "nokanban",
		Short: "A kanban board that lives in a local file until you share it",
		Long: `nokanban keeps a kanban board in an embedded sqlite file, no account
needed. Publishing uploads a snapshot to a shared server where anyone with
the link can read it and anyone with the 4-digit PIN can edit it.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		serveCmd(),
		showCmd(),
		newCmd(),
		exportCmd(),
		importCmd(),
		publishCmd(),
		addColumnCmd(),
		addCardCmd(),
		moveCardCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
