// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"path/filepath"

	"al.essio.dev/pkg/shellescape"
)

// Command is one download invocation as an argument vector.
//
// Commands are executed without a shell, so file names containing shell
// metacharacters reach the downloader verbatim. String renders the vector
// with POSIX single-quote escaping for dump files.
type Command struct {
	Args []string
}

// String returns the command as a single shell-safe line.
func (c Command) String() string {
	return shellescape.QuoteCommand(c.Args)
}

// BuildCommands returns one download command per entry, in entry order:
//
//	wget [--header=Authorization: Bearer <token>] -nd -P <dir> <url>
//
// The header argument is present exactly when cfg.Token is non-empty.
func BuildCommands(entries []RemoteEntry, cfg Settings) []Command {
	cfg = withDefaults(cfg)
	cmds := make([]Command, 0, len(entries))
	for _, e := range entries {
		args := []string{cfg.Downloader}
		if cfg.Token != "" {
			args = append(args, authHeader(cfg.Token))
		}
		args = append(args, "-nd", "-P", targetDir(cfg.OutputDir, e.RelativeDir), e.URL)
		cmds = append(cmds, Command{Args: args})
	}
	return cmds
}

func authHeader(token string) string {
	return "--header=Authorization: Bearer " + token
}

func targetDir(base, rel string) string {
	dir := filepath.Join(base, filepath.FromSlash(rel))
	if dir == "" {
		return "."
	}
	return dir
}
