package main

import (
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.Version=... -X main.GitCommit=...".
var (
	Version   = "0.1.0-dev"
	GitCommit = "none"
)

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c.printf("rinha %s\n", Version)
			if GitCommit != "none" {
				c.printf("Git commit: %s\n", GitCommit)
			}
		},
	}
}
