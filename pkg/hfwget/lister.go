// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import "context"

// EntryType distinguishes files from directories in a listing.
type EntryType string

const (
	EntryFile      EntryType = "file"
	EntryDirectory EntryType = "directory"
)

// Entry is one item returned by a Lister. Name is the full path of the
// item, usable as the argument of a further List call.
type Entry struct {
	Name string
	Type EntryType
}

// Lister enumerates the direct children of a remote path.
type Lister interface {
	List(ctx context.Context, path string) ([]Entry, error)
}

// ListFiles walks the tree below root depth-first and returns the full path
// of every file, in the order the lister reports them. Directories are never
// part of the result and a path reported twice is kept once.
//
// Any listing error aborts the walk; no partial result is returned.
func ListFiles(ctx context.Context, l Lister, root string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	if err := walk(ctx, l, root, func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		files = append(files, name)
	}); err != nil {
		return nil, err
	}
	return files, nil
}

func walk(ctx context.Context, l Lister, path string, fn func(string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := l.List(ctx, path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Type == EntryDirectory {
			if err := walk(ctx, l, e.Name, fn); err != nil {
				return err
			}
			continue
		}
		fn(e.Name)
	}
	return nil
}
