package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passforge-go/internal/config"
	"github.com/vaultpass/passforge-go/internal/crypto"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		expiry  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the password records API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Parse()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("expiry") {
				expiry = cfg.JWTExpiry
			}

			token, err := crypto.GenerateToken(subject, cfg.JWTSecret, expiry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "operator name recorded in the token")
	cmd.Flags().DurationVar(&expiry, "expiry", 24*time.Hour, "token lifetime (defaults to JWT_EXPIRY)")
	cmd.MarkFlagRequired("subject")
	return cmd
}
