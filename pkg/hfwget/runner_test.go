// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunner(t *testing.T) {
	requireSh(t)

	t.Run("streams output", func(t *testing.T) {
		var out bytes.Buffer
		r := &ExecRunner{Stdout: &out, Stderr: &out}
		if err := r.Run(context.Background(), Command{Args: []string{"sh", "-c", "echo hello"}}); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if strings.TrimSpace(out.String()) != "hello" {
			t.Errorf("Expected hello, got %q", out.String())
		}
	})

	t.Run("nonzero exit is a CommandError", func(t *testing.T) {
		r := &ExecRunner{Quiet: true}
		err := r.Run(context.Background(), Command{Args: []string{"sh", "-c", "echo broken >&2; exit 3"}})
		var ce *CommandError
		if !errors.As(err, &ce) {
			t.Fatalf("Expected *CommandError, got %v", err)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
			t.Errorf("Expected exit code 3, got %v", err)
		}
		if !strings.Contains(ce.Output, "broken") {
			t.Errorf("Expected captured output, got %q", ce.Output)
		}
	})

	t.Run("arguments bypass the shell", func(t *testing.T) {
		if _, err := exec.LookPath("printf"); err != nil {
			t.Skip("printf not available")
		}
		dir := t.TempDir()
		marker := filepath.Join(dir, "pwned")
		var out bytes.Buffer
		r := &ExecRunner{Stdout: &out, Stderr: &out}
		// printf receives the metacharacters literally.
		arg := "x; touch " + marker
		if err := r.Run(context.Background(), Command{Args: []string{"printf", "%s", arg}}); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if out.String() != arg {
			t.Errorf("Expected %q, got %q", arg, out.String())
		}
		if _, err := os.Stat(marker); err == nil {
			t.Error("Metacharacters were interpreted by a shell")
		}
	})

	t.Run("missing executable", func(t *testing.T) {
		r := &ExecRunner{Quiet: true}
		if err := r.Run(context.Background(), Command{Args: []string{"definitely-not-a-real-binary-hfwget"}}); err == nil {
			t.Error("Expected error, got nil")
		}
	})

	t.Run("empty command", func(t *testing.T) {
		if err := (&ExecRunner{}).Run(context.Background(), Command{}); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

func TestExecute_WithExecRunner(t *testing.T) {
	requireSh(t)

	dir := t.TempDir()
	cmds := []Command{
		{Args: []string{"sh", "-c", "touch " + filepath.Join(dir, "one")}},
		{Args: []string{"sh", "-c", "exit 1"}},
		{Args: []string{"sh", "-c", "touch " + filepath.Join(dir, "three")}},
	}
	err := Execute(context.Background(), cmds, Settings{Workers: 1}, &ExecRunner{Quiet: true}, nil)

	var execErr *ExecuteError
	if !errors.As(err, &execErr) || execErr.Failed != 1 {
		t.Fatalf("Expected one failure, got %v", err)
	}
	for _, name := range []string{"one", "three"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to be created: %v", name, err)
		}
	}
}

func TestTailBuffer(t *testing.T) {
	tb := &tailBuffer{max: 4}
	tb.Write([]byte("ab"))
	tb.Write([]byte("cdef"))
	if got := tb.String(); got != "cdef" {
		t.Errorf("Expected cdef, got %q", got)
	}
	tb.Write([]byte("g"))
	if got := tb.String(); got != "defg" {
		t.Errorf("Expected defg, got %q", got)
	}
}
