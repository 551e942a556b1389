package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"jobboard.backend/pkg/crypto"
)

func TestResolvePassword(t *testing.T) {
	got, err := resolvePassword([]string{"abc"}, strings.NewReader("ignored\n"))
	if err != nil || got != "abc" {
		t.Fatalf("unexpected arg password: %q err=%v", got, err)
	}

	got, err = resolvePassword(nil, strings.NewReader("from-stdin\r\nrest"))
	if err != nil || got != "from-stdin" {
		t.Fatalf("unexpected stdin password: %q err=%v", got, err)
	}

	got, err = resolvePassword(nil, strings.NewReader("no-newline"))
	if err != nil || got != "no-newline" {
		t.Fatalf("unexpected stdin password without newline: %q err=%v", got, err)
	}

	if _, err := resolvePassword(nil, strings.NewReader("")); err == nil {
		t.Fatal("expected usage error for empty input")
	}
}

func withHooks(t *testing.T) *bytes.Buffer {
	t.Helper()
	origPrintf, origGenerate, origFatalf, origStdin, origArgs := printfFn, generateHashFn, fatalfFn, stdin, os.Args
	t.Cleanup(func() {
		printfFn, generateHashFn, fatalfFn, stdin, os.Args = origPrintf, origGenerate, origFatalf, origStdin, origArgs
	})

	var out bytes.Buffer
	printfFn = func(format string, a ...any) (int, error) {
		return fmt.Fprintf(&out, format, a...)
	}
	fatalfFn = func(format string, a ...any) {
		fmt.Fprintf(&out, "FATAL: "+format, a...)
	}
	return &out
}

func TestMain_PrintsVerifiableHash(t *testing.T) {
	out := withHooks(t)
	os.Args = []string{"genhash", "my-pass"}

	main()

	hash := strings.TrimSpace(out.String())
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("my-pass")); err != nil {
		t.Fatalf("hash mismatch: %v (output %q)", err, out.String())
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil || cost != crypto.DefaultCost {
		t.Fatalf("expected cost %d, got %d err=%v", crypto.DefaultCost, cost, err)
	}
}

func TestMain_ReadsStdin(t *testing.T) {
	out := withHooks(t)
	os.Args = []string{"genhash"}
	stdin = strings.NewReader("piped\n")
	generateHashFn = func(p string) (string, error) { return "hash-of-" + p, nil }

	main()

	if got := strings.TrimSpace(out.String()); got != "hash-of-piped" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestMain_ReportsFailures(t *testing.T) {
	out := withHooks(t)
	os.Args = []string{"genhash"}
	stdin = strings.NewReader("")

	main()
	if !strings.Contains(out.String(), "FATAL: usage") {
		t.Fatalf("expected usage failure, got %q", out.String())
	}

	out.Reset()
	os.Args = []string{"genhash", "pw"}
	generateHashFn = func(string) (string, error) { return "", errors.New("boom") }

	main()
	if !strings.Contains(out.String(), "FATAL: Failed to hash password: boom") {
		t.Fatalf("expected hash failure, got %q", out.String())
	}
}
