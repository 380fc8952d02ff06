// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var scenarioEntries = []RemoteEntry{
	{URL: "https://huggingface.co/org/model/resolve/main/a.bin", RelativeDir: ""},
	{URL: "https://huggingface.co/org/model/resolve/main/sub/b.bin", RelativeDir: "sub"},
}

func TestBuildCommands(t *testing.T) {
	t.Run("one command per entry targeting its directory", func(t *testing.T) {
		cmds := BuildCommands(scenarioEntries, Settings{})
		want := []Command{
			{Args: []string{"wget", "-nd", "-P", ".", "https://huggingface.co/org/model/resolve/main/a.bin"}},
			{Args: []string{"wget", "-nd", "-P", "sub", "https://huggingface.co/org/model/resolve/main/sub/b.bin"}},
		}
		if !reflect.DeepEqual(cmds, want) {
			t.Errorf("Expected %v, got %v", want, cmds)
		}
		for i, name := range []string{"a.bin", "b.bin"} {
			url := cmds[i].Args[len(cmds[i].Args)-1]
			if !strings.HasSuffix(url, "/"+name) {
				t.Errorf("Command %d does not fetch %s: %s", i, name, url)
			}
		}
	})

	t.Run("pure and order preserving", func(t *testing.T) {
		cfg := Settings{Token: "hf_tok", OutputDir: "out"}
		first := BuildCommands(scenarioEntries, cfg)
		second := BuildCommands(scenarioEntries, cfg)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Expected identical output, got %v and %v", first, second)
		}
		for i, c := range first {
			if c.Args[len(c.Args)-1] != scenarioEntries[i].URL {
				t.Errorf("Command %d out of order: %v", i, c.Args)
			}
		}
	})

	t.Run("no header without token", func(t *testing.T) {
		for _, c := range BuildCommands(scenarioEntries, Settings{}) {
			if strings.Contains(c.String(), "Authorization") {
				t.Errorf("Unexpected Authorization in %s", c)
			}
		}
	})

	t.Run("header with exact token in every command", func(t *testing.T) {
		for _, c := range BuildCommands(scenarioEntries, Settings{Token: "hf_AbC123"}) {
			if c.Args[1] != "--header=Authorization: Bearer hf_AbC123" {
				t.Errorf("Expected header argument, got %q", c.Args[1])
			}
			if !strings.Contains(c.String(), "Authorization: Bearer hf_AbC123") {
				t.Errorf("Rendered command lacks token: %s", c)
			}
		}
	})

	t.Run("output dir and downloader", func(t *testing.T) {
		cmds := BuildCommands(scenarioEntries, Settings{OutputDir: "models", Downloader: "/usr/local/bin/wget"})
		if cmds[0].Args[0] != "/usr/local/bin/wget" {
			t.Errorf("Expected custom downloader, got %s", cmds[0].Args[0])
		}
		if got := cmds[0].Args[3]; got != "models" {
			t.Errorf("Expected models, got %s", got)
		}
		if got := cmds[1].Args[3]; got != filepath.Join("models", "sub") {
			t.Errorf("Expected models/sub, got %s", got)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if cmds := BuildCommands(nil, Settings{}); len(cmds) != 0 {
			t.Errorf("Expected no commands, got %v", cmds)
		}
	})
}

func TestCommand_String(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{"wget", "-nd", "-P", "sub", "https://h/o/r/resolve/main/a.bin"}, "wget -nd -P sub https://h/o/r/resolve/main/a.bin"},
		{"header is quoted", []string{"wget", "--header=Authorization: Bearer t"}, "wget '--header=Authorization: Bearer t'"},
		{"metacharacters are quoted", []string{"wget", "-P", "a;rm -rf x", "$(id)"}, "wget -P 'a;rm -rf x' '$(id)'"},
		{"single quote", []string{"wget", "-P", "it's"}, `wget -P 'it'"'"'s'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Command{Args: tt.args}).String(); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
