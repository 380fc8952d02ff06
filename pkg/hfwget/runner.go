// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
)

// Runner executes a single command.
type Runner interface {
	Run(ctx context.Context, c Command) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, c Command) error

func (f RunnerFunc) Run(ctx context.Context, c Command) error {
	return f(ctx, c)
}

// maxCapturedOutput bounds the output kept per command in quiet mode.
const maxCapturedOutput = 2 << 10

// ExecRunner runs commands as child processes, without a shell.
type ExecRunner struct {
	// Stdout and Stderr receive the process output when Quiet is false.
	// Nil means os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// Quiet captures the output; its tail is attached to the returned
	// *CommandError when the process fails.
	Quiet bool
}

// Run starts c and waits for it to exit. There is no timeout.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	if len(c.Args) == 0 {
		return errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)

	var tail *tailBuffer
	if r.Quiet {
		tail = &tailBuffer{max: maxCapturedOutput}
		cmd.Stdout = tail
		cmd.Stderr = tail
	} else {
		cmd.Stdout = r.Stdout
		if cmd.Stdout == nil {
			cmd.Stdout = os.Stdout
		}
		cmd.Stderr = r.Stderr
		if cmd.Stderr == nil {
			cmd.Stderr = os.Stderr
		}
	}

	if err := cmd.Run(); err != nil {
		ce := &CommandError{Err: err}
		if tail != nil {
			ce.Output = tail.String()
		}
		return ce
	}
	return nil
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
