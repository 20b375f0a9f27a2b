package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "passforge",
		Short:         "Generate random passwords with bcrypt hashes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd(), newVerifyCmd(), newTokenCmd())
	return root
}
