package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passforge-go/internal/config"
	"github.com/vaultpass/passforge-go/internal/crypto"
	"github.com/vaultpass/passforge-go/internal/model"
	"github.com/vaultpass/passforge-go/internal/service"
)

type generateFlags struct {
	count      int
	length     int
	cost       int
	uppercase  bool
	lowercase  bool
	numbers    bool
	special    bool
	easyToRead bool
	format     string
	workers    int
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags
	d := config.DefaultDefaults()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of passwords and their bcrypt hashes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Parse()
			if err != nil {
				return err
			}

			write, err := outputWriter(f.format)
			if err != nil {
				return err
			}

			workers := cfg.Workers
			if cmd.Flags().Changed("workers") {
				workers = f.workers
			}

			req := service.ResolveRequest(f.request(cmd), cfg.Defaults)
			svc := service.NewGeneratorService(crypto.NewGenerator(crypto.SecureSource{}), nil, workers)

			result, err := svc.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			for _, n := range result.Notices {
				fmt.Fprintln(cmd.ErrOrStderr(), "notice:", n.Message)
			}
			return write(cmd.OutOrStdout(), result.Passwords)
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.count, "count", "n", d.Count, "number of passwords (1-100)")
	fl.IntVarP(&f.length, "length", "l", d.Length, "password length (8-32)")
	fl.IntVarP(&f.cost, "cost", "c", d.CostFactor, "bcrypt cost factor (10-14)")
	fl.BoolVar(&f.uppercase, "uppercase", d.Uppercase, "include uppercase letters")
	fl.BoolVar(&f.lowercase, "lowercase", d.Lowercase, "include lowercase letters")
	fl.BoolVar(&f.numbers, "numbers", d.Numbers, "include numbers")
	fl.BoolVar(&f.special, "special", d.Special, "include special characters")
	fl.BoolVar(&f.easyToRead, "easy-to-read", d.EasyToRead, "leave out ambiguous characters such as 0, O, 1, l and I")
	fl.StringVarP(&f.format, "format", "f", formatText, "output format: text, csv or json")
	fl.IntVar(&f.workers, "workers", 1, "parallel hashing workers (defaults to WORKERS)")

	return cmd
}

// request sets only the flags given on the command line, so the
// environment-configured defaults apply to the rest.
func (f *generateFlags) request(cmd *cobra.Command) model.GenerateRequest {
	var req model.GenerateRequest
	changed := cmd.Flags().Changed

	if changed("count") {
		req.Count = &f.count
	}
	if changed("length") {
		req.Length = &f.length
	}
	if changed("cost") {
		req.CostFactor = &f.cost
	}
	if changed("uppercase") {
		req.Options.Uppercase = &f.uppercase
	}
	if changed("lowercase") {
		req.Options.Lowercase = &f.lowercase
	}
	if changed("numbers") {
		req.Options.Numbers = &f.numbers
	}
	if changed("special") {
		req.Options.Special = &f.special
	}
	if changed("easy-to-read") {
		req.Options.EasyToRead = &f.easyToRead
	}
	return req
}
