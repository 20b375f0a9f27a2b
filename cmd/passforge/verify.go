package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passforge-go/internal/crypto"
)

var errMismatch = errors.New("password does not match hash")

func newVerifyCmd() *cobra.Command {
	var hash string

	cmd := &cobra.Command{
		Use:   "verify <password>",
		Short: "Check a password against a bcrypt hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := crypto.VerifyPassword(args[0], hash)
			if err != nil {
				return err
			}
			if !ok {
				return errMismatch
			}

			cost, err := crypto.HashCost(hash)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "match (cost %d)\n", cost)
			return nil
		},
	}

	cmd.Flags().StringVar(&hash, "hash", "", "bcrypt hash to verify against")
	cmd.MarkFlagRequired("hash")
	return cmd
}
