// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import "time"

// Mode selects what the dispatcher does with the generated commands.
type Mode string

const (
	// ModeDownload runs every command as an external process.
	ModeDownload Mode = "download"
	// ModeDump writes every command to Settings.DumpFile, one per line.
	ModeDump Mode = "dump"
)

// Defaults used when the corresponding Settings field is empty.
const (
	DefaultRevision   = "main"
	DefaultWorkers    = 2
	DefaultDumpFile   = "wget_commands.txt"
	DefaultDownloader = "wget"
)

// Job names the Hub repository whose files should be fetched.
//
// Example:
//
//	job := hfwget.Job{
//	    Repo:     "openai-community/gpt2",
//	    Revision: "main",
//	}
type Job struct {
	// Repo is the repository ID in "owner/name" format.
	// This field is required.
	Repo string

	// IsDataset selects the datasets API instead of the models API.
	IsDataset bool

	// Revision is the branch, tag, or commit to resolve files against.
	// If empty, defaults to "main".
	Revision string
}

// Settings configures listing, command generation and dispatch.
//
// Example:
//
//	cfg := hfwget.DefaultSettings()
//	cfg.Workers = 4
//	cfg.Token = os.Getenv("HF_TOKEN")
type Settings struct {
	// Token is embedded as a bearer Authorization header in both the
	// tree API requests and every generated wget command.
	// When empty, no Authorization header is sent anywhere.
	Token string

	// Mode is either ModeDownload (default) or ModeDump.
	Mode Mode

	// Workers is the number of commands executed at once in download mode.
	// If <= 0, defaults to 2.
	Workers int

	// DumpFile is the file written in dump mode.
	// If empty, defaults to "wget_commands.txt".
	DumpFile string

	// OutputDir is prepended to every per-file target directory.
	// If empty, files land relative to the working directory.
	OutputDir string

	// Downloader is the executable placed at the head of each command.
	// If empty, defaults to "wget".
	Downloader string

	// Endpoint overrides the Hub base URL (mirrors, enterprise hubs).
	// If empty, DefaultEndpoint is used.
	Endpoint string

	// Quiet captures the output of each external process instead of
	// streaming it; captured output is attached to failures.
	Quiet bool
}

// RemoteEntry pairs a download URL with the local subdirectory (relative to
// Settings.OutputDir) the file should land in.
type RemoteEntry struct {
	URL         string `json:"url"`
	RelativeDir string `json:"relativeDir"`
}

// Plan is the resolved file list for a job.
type Plan struct {
	Repo     string        `json:"repo"`
	Revision string        `json:"revision"`
	Entries  []RemoteEntry `json:"entries"`
}

// ProgressEvent reports what the planner and dispatcher are doing.
//
// The Event field is one of:
//   - "scan_start": listing of the repository has begun
//   - "scan_done": listing finished; Total holds the file count
//   - "command_start": a command was handed to a worker
//   - "command_done": a command exited successfully
//   - "error": a command failed; Message holds the reason
//   - "done": every dispatched command has been observed
type ProgressEvent struct {
	Time     time.Time `json:"time"`
	Level    string    `json:"level,omitempty"`
	Event    string    `json:"event"`
	Repo     string    `json:"repo,omitempty"`
	Revision string    `json:"revision,omitempty"`

	// Index is the position of the command in the input sequence.
	Index int `json:"index,omitempty"`

	// Command is the rendered command line. Tokens are redacted.
	Command string `json:"command,omitempty"`

	Total   int    `json:"total,omitempty"`
	Done    int    `json:"done,omitempty"`
	Failed  int    `json:"failed,omitempty"`
	Message string `json:"message,omitempty"`
}

// ProgressFunc receives progress events. It is called from multiple
// goroutines and must be safe for concurrent use.
type ProgressFunc func(ProgressEvent)

// DefaultSettings returns Settings with every default filled in.
func DefaultSettings() Settings {
	return Settings{
		Mode:       ModeDownload,
		Workers:    DefaultWorkers,
		DumpFile:   DefaultDumpFile,
		Downloader: DefaultDownloader,
	}
}

// withDefaults fills empty fields of cfg.
func withDefaults(cfg Settings) Settings {
	if cfg.Mode == "" {
		cfg.Mode = ModeDownload
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.DumpFile == "" {
		cfg.DumpFile = DefaultDumpFile
	}
	if cfg.Downloader == "" {
		cfg.Downloader = DefaultDownloader
	}
	return cfg
}
