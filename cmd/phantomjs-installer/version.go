package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(a app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the installer version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "phantomjs-installer %s\n", Version)
		},
	}
}
