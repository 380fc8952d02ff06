// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// PlanRepo lists every file of the repository and resolves it to a
// RemoteEntry. Listing failures abort before anything is resolved.
func PlanRepo(ctx context.Context, job Job, cfg Settings, progress ProgressFunc) (*Plan, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validate(job, cfg); err != nil {
		return nil, err
	}
	if job.Revision == "" {
		job.Revision = DefaultRevision
	}

	emit := emitter(job, progress)
	emit(ProgressEvent{Event: "scan_start", Message: "scanning repo"})

	fs := NewHubFS(job, cfg)
	paths, err := ListFiles(ctx, fs, fs.Root())
	if err != nil {
		return nil, err
	}
	entries, err := ResolveEntries(job, cfg, paths)
	if err != nil {
		return nil, err
	}

	emit(ProgressEvent{Event: "scan_done", Total: len(entries), Message: fmt.Sprintf("%d files", len(entries))})
	return &Plan{Repo: job.Repo, Revision: job.Revision, Entries: entries}, nil
}

// ResolveEntries maps full remote paths ("owner/name/dir/file") to download
// URLs and local directories. The local directory drops the owner and name
// segments and the file name, so "org/model/sub/b.bin" lands in "sub".
func ResolveEntries(job Job, cfg Settings, paths []string) ([]RemoteEntry, error) {
	if job.Revision == "" {
		job.Revision = DefaultRevision
	}
	entries := make([]RemoteEntry, 0, len(paths))
	for _, p := range paths {
		rel, ok := repoRelative(job.Repo, p)
		if !ok || rel == "" {
			return nil, fmt.Errorf("path %q is outside repository %q", p, job.Repo)
		}
		entries = append(entries, RemoteEntry{
			URL:         resolveURL(cfg.Endpoint, job, rel),
			RelativeDir: relativeDir(p),
		})
	}
	return entries, nil
}

// relativeDir drops the leading owner/name segments and the trailing file name.
func relativeDir(p string) string {
	segs := strings.Split(strings.Trim(p, "/"), "/")
	if len(segs) <= 3 {
		return ""
	}
	return strings.Join(segs[2:len(segs)-1], "/")
}

// emitter returns a ProgressFunc that stamps time, repo and revision.
func emitter(job Job, progress ProgressFunc) ProgressFunc {
	return func(ev ProgressEvent) {
		if progress == nil {
			return
		}
		if ev.Time.IsZero() {
			ev.Time = time.Now().UTC()
		}
		if ev.Repo == "" {
			ev.Repo = job.Repo
		}
		if ev.Revision == "" {
			ev.Revision = job.Revision
		}
		progress(ev)
	}
}
