// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"bufio"
	"fmt"
	"os"
)

// Dump writes one command per line to path, replacing any existing file.
// The file is created with mode 0600 since commands may carry a token.
func Dump(path string, cmds []Command) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create dump file: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, c := range cmds {
		if _, err := w.WriteString(c.String() + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("write dump file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write dump file: %w", err)
	}
	return f.Close()
}
