package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vaultpass/passforge-go/internal/model"
)

const (
	formatText = "text"
	formatCSV  = "csv"
	formatJSON = "json"
)

type writeFunc func(io.Writer, []model.GeneratedPassword) error

func outputWriter(format string) (writeFunc, error) {
	switch format {
	case formatText:
		return writeText, nil
	case formatCSV:
		return writeCSV, nil
	case formatJSON:
		return writeJSON, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, passwords []model.GeneratedPassword) error {
	if _, err := fmt.Fprint(w, "Generated Passwords and Hashes\n================================\n\n"); err != nil {
		return err
	}
	for i, p := range passwords {
		_, err := fmt.Fprintf(w, "Password #%d\nPassword: %s\nBCrypt Hash: %s\n\n", i+1, p.Password, p.Hash)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, passwords []model.GeneratedPassword) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Password", "BCrypt Hash"}); err != nil {
		return err
	}
	for _, p := range passwords {
		if err := cw.Write([]string{p.Password, p.Hash}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, passwords []model.GeneratedPassword) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(model.GenerateResponse{GeneratedPasswords: passwords})
}
