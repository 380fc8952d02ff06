// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return lines
}

func TestDump(t *testing.T) {
	t.Run("one line per command in order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultDumpFile)
		cmds := BuildCommands(scenarioEntries, Settings{Token: "hf_tok"})
		cmds = append(cmds, commands(3)...)

		if err := Dump(path, cmds); err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
		lines := readLines(t, path)
		if len(lines) != len(cmds) {
			t.Fatalf("Expected %d lines, got %d", len(cmds), len(lines))
		}
		for i, c := range cmds {
			if lines[i] != c.String() {
				t.Errorf("Line %d: expected %q, got %q", i, c.String(), lines[i])
			}
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultDumpFile)
		if err := os.WriteFile(path, []byte("old 1\nold 2\nold 3\nold 4\nold 5\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := Dump(path, commands(2)); err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
		if lines := readLines(t, path); len(lines) != 2 {
			t.Errorf("Expected 2 lines, got %v", lines)
		}
	})

	t.Run("new file is private", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultDumpFile)
		if err := Dump(path, commands(1)); err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := fi.Mode().Perm(); perm&0o077 != 0 {
			t.Errorf("Expected no group/other permissions, got %v", perm)
		}
	})

	t.Run("empty command list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), DefaultDumpFile)
		if err := Dump(path, nil); err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
		if lines := readLines(t, path); len(lines) != 0 {
			t.Errorf("Expected empty file, got %v", lines)
		}
	})

	t.Run("unwritable path fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "dir", DefaultDumpFile)
		if err := Dump(path, commands(1)); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}
