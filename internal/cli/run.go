// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/bodaay/hfwget/pkg/hfwget"
)

// run plans the job and dispatches it, choosing how progress is shown.
func run(ctx context.Context, job hfwget.Job, cfg hfwget.Settings, ro *RootOpts, log zerolog.Logger, stdout, stderr io.Writer) error {
	if cfg.Token == "" {
		log.Debug().Msg("no token set; private or gated repositories will fail to list")
	}
	if cfg.Mode == hfwget.ModeDump && cfg.Token != "" {
		log.Warn().Str("file", cfg.DumpFile).Msg("dump file will contain the access token")
	}

	var progress hfwget.ProgressFunc
	switch {
	case ro.JSONOut:
		progress = jsonProgress(stdout)
	case cfg.Quiet && cfg.Mode == hfwget.ModeDownload && isTerminal(stderr):
		bar := newBarProgress(stderr)
		defer bar.Close()
		progress = bar.Handler()
	default:
		progress = logProgress(log)
	}

	var files int
	counted := func(ev hfwget.ProgressEvent) {
		if ev.Event == "scan_done" {
			files = ev.Total
		}
		progress(ev)
	}

	log.Debug().Str("repo", job.Repo).Str("revision", job.Revision).Str("mode", string(cfg.Mode)).Int("workers", cfg.Workers).Msg("starting")
	if err := hfwget.Run(ctx, job, cfg, nil, counted); err != nil {
		return err
	}

	if !ro.JSONOut {
		ok := color.New(color.FgGreen)
		switch cfg.Mode {
		case hfwget.ModeDump:
			ok.Fprintf(stderr, "✓ Wrote %d commands to %s\n", files, cfg.DumpFile)
		default:
			ok.Fprintf(stderr, "✓ Downloaded %d files from %s@%s\n", files, job.Repo, job.Revision)
		}
	}
	return nil
}

// logProgress logs each event through the zerolog logger.
func logProgress(log zerolog.Logger) hfwget.ProgressFunc {
	return func(ev hfwget.ProgressEvent) {
		switch ev.Event {
		case "scan_start":
			log.Info().Str("repo", ev.Repo).Str("revision", ev.Revision).Msg("scanning")
		case "scan_done":
			log.Info().Int("files", ev.Total).Msg("scan complete")
		case "command_start":
			log.Debug().Int("index", ev.Index).Str("cmd", ev.Command).Msg("start")
		case "command_done":
			log.Info().Int("done", ev.Done).Int("total", ev.Total).Msg("downloaded")
		case "error":
			log.Error().Int("index", ev.Index).Str("cmd", ev.Command).Msg(ev.Message)
		case "done":
			log.Info().Int("failed", ev.Failed).Msg(ev.Message)
		}
	}
}

// jsonProgress returns a JSON-lines progress handler.
func jsonProgress(w io.Writer) hfwget.ProgressFunc {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	var mu sync.Mutex
	return func(ev hfwget.ProgressEvent) {
		mu.Lock()
		_ = enc.Encode(ev)
		mu.Unlock()
	}
}

// barProgress counts finished commands on a progress bar.
type barProgress struct {
	mu  sync.Mutex
	w   io.Writer
	bar *pb.ProgressBar
}

func newBarProgress(w io.Writer) *barProgress {
	return &barProgress{w: w}
}

func (b *barProgress) Handler() hfwget.ProgressFunc {
	return func(ev hfwget.ProgressEvent) {
		b.mu.Lock()
		defer b.mu.Unlock()
		switch ev.Event {
		case "scan_done":
			b.bar = pb.Simple.New(ev.Total).SetWriter(b.w).Start()
		case "command_done":
			if b.bar != nil {
				b.bar.Increment()
			}
		case "error":
			if b.bar != nil {
				b.bar.Increment()
			}
			color.New(color.FgRed).Fprintf(b.w, "\n✗ %s: %s\n", ev.Command, ev.Message)
		case "done":
			if b.bar != nil {
				b.bar.Finish()
				b.bar = nil
			}
		}
	}
}

// Close stops the bar if the run ended early.
func (b *barProgress) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		b.bar.Finish()
		b.bar = nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
