// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
)

// Run plans the job, builds one command per file and dispatches them
// according to cfg.Mode. In download mode each command runs through runner;
// a nil runner means an ExecRunner on the process' stdout and stderr.
func Run(ctx context.Context, job Job, cfg Settings, runner Runner, progress ProgressFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validate(job, cfg); err != nil {
		return err
	}
	cfg = withDefaults(cfg)
	mode, _ := ParseMode(string(cfg.Mode))
	if job.Revision == "" {
		job.Revision = DefaultRevision
	}

	plan, err := PlanRepo(ctx, job, cfg, progress)
	if err != nil {
		return err
	}
	cmds := BuildCommands(plan.Entries, cfg)

	switch mode {
	case ModeDump:
		return Dump(cfg.DumpFile, cmds)
	default:
		if runner == nil {
			runner = &ExecRunner{Quiet: cfg.Quiet}
		}
		return Execute(ctx, cmds, cfg, runner, emitter(job, progress))
	}
}

type taskResult struct {
	index int
	err   error
}

// Execute runs cmds on a pool of cfg.Workers slots and waits for all of them.
//
// A failing command never stops its siblings: every command is attempted and
// all failures are returned together as *ExecuteError once every dispatched
// command has finished.
//
// When ctx is canceled no further commands are started and Execute returns
// ctx.Err() without waiting. Processes already running are not signalled;
// their results are discarded.
func Execute(ctx context.Context, cmds []Command, cfg Settings, runner Runner, progress ProgressFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg = withDefaults(cfg)

	emit := func(ev ProgressEvent) {
		if progress == nil {
			return
		}
		if ev.Time.IsZero() {
			ev.Time = time.Now().UTC()
		}
		progress(ev)
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	// Buffered so abandoned workers never block after an interrupt.
	results := make(chan taskResult, len(cmds))
	// Running processes outlive cancellation of ctx.
	runCtx := context.WithoutCancel(ctx)

	dispatched := 0
	var stopErr error
	for i, c := range cmds {
		if err := sem.Acquire(ctx, 1); err != nil {
			stopErr = err
			break
		}
		dispatched++
		emit(ProgressEvent{Event: "command_start", Index: i, Command: redact(c.String(), cfg.Token), Total: len(cmds)})
		go func(i int, c Command) {
			defer sem.Release(1)
			results <- taskResult{index: i, err: runner.Run(runCtx, c)}
		}(i, c)
	}

	var errs []error
	done := 0
	for done < dispatched {
		select {
		case r := <-results:
			done++
			line := redact(cmds[r.index].String(), cfg.Token)
			if r.err != nil {
				cerr := asCommandError(r.err, r.index, line)
				errs = append(errs, cerr)
				emit(ProgressEvent{Level: "error", Event: "error", Index: r.index, Command: line, Done: done, Failed: len(errs), Total: len(cmds), Message: cerr.Err.Error()})
				continue
			}
			emit(ProgressEvent{Event: "command_done", Index: r.index, Command: line, Done: done, Failed: len(errs), Total: len(cmds)})
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if stopErr != nil {
		return stopErr
	}

	emit(ProgressEvent{Event: "done", Done: done, Failed: len(errs), Total: len(cmds), Message: fmt.Sprintf("%d commands, %d failed", len(cmds), len(errs))})
	if len(errs) > 0 {
		return &ExecuteError{Failed: len(errs), Total: len(cmds), Errs: errs}
	}
	return nil
}

func asCommandError(err error, index int, line string) *CommandError {
	if ce, ok := err.(*CommandError); ok {
		ce.Index = index
		ce.Command = line
		return ce
	}
	return &CommandError{Index: index, Command: line, Err: err}
}
