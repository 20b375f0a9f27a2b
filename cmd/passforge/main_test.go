package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vaultpass/passforge-go/internal/crypto"
	"github.com/vaultpass/passforge-go/internal/model"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("ENV", "")
	t.Setenv("STORE", "")
	t.Setenv("WORKERS", "")
	t.Setenv("JWT_SECRET", "test-secret")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestGenerateJSON(t *testing.T) {
	out, _, err := run(t, "generate", "-n", "2", "-l", "16", "-c", "10", "--special=false", "-f", "json")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var resp model.GenerateResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if len(resp.GeneratedPasswords) != 2 {
		t.Fatalf("got %d passwords, want 2", len(resp.GeneratedPasswords))
	}
	for _, p := range resp.GeneratedPasswords {
		if len(p.Password) != 16 {
			t.Errorf("password length = %d, want 16", len(p.Password))
		}
		if strings.ContainsAny(p.Password, "!@#$%^&*()_-+=<>?") {
			t.Errorf("password %q contains special characters", p.Password)
		}
	}
}

func TestGenerateCSV(t *testing.T) {
	out, _, err := run(t, "generate", "-n", "3", "-l", "8", "-c", "10", "-f", "csv")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parsing csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3", len(rows))
	}
	if rows[0][0] != "Password" || rows[0][1] != "BCrypt Hash" {
		t.Errorf("header = %v", rows[0])
	}
	for _, row := range rows[1:] {
		if ok, err := crypto.VerifyPassword(row[0], row[1]); err != nil || !ok {
			t.Errorf("row %v: hash does not verify (err=%v)", row, err)
		}
	}
}

func TestGenerateTextWithDefaultNotice(t *testing.T) {
	out, errOut, err := run(t, "generate", "-n", "1", "-l", "8", "-c", "10",
		"--uppercase=false", "--lowercase=false", "--numbers=false", "--special=false")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.Contains(out, "Password #1\nPassword: ") {
		t.Errorf("unexpected text output:\n%s", out)
	}
	if !strings.Contains(errOut, "notice:") {
		t.Errorf("expected a notice on stderr, got %q", errOut)
	}
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	tests := [][]string{
		{"generate", "-n", "0"},
		{"generate", "-l", "7"},
		{"generate", "-c", "15"},
		{"generate", "-f", "yaml"},
	}

	for _, args := range tests {
		if _, _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestVerify(t *testing.T) {
	hash, err := crypto.HashPassword("Secret123", 10)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	out, _, err := run(t, "verify", "--hash", hash, "Secret123")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "match (cost 10)") {
		t.Errorf("unexpected output %q", out)
	}

	if _, _, err := run(t, "verify", "--hash", hash, "wrong"); !errors.Is(err, errMismatch) {
		t.Errorf("verify wrong password: error = %v, want %v", err, errMismatch)
	}
}

func TestToken(t *testing.T) {
	out, _, err := run(t, "token", "--subject", "ops")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	claims, err := crypto.ValidateToken(strings.TrimSpace(out), "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "ops" {
		t.Errorf("subject = %q, want %q", claims.Subject, "ops")
	}

	if _, _, err := run(t, "token"); err == nil {
		t.Error("token without --subject: expected error")
	}
}
