// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"fmt"
	"net/url"
	"strings"
)

// IsValidModelName checks if the model name is in "owner/name" format.
func IsValidModelName(modelName string) bool {
	if modelName == "" || !strings.Contains(modelName, "/") {
		return false
	}
	parts := strings.Split(modelName, "/")
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

// ParseMode converts a user supplied mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDownload:
		return ModeDownload, nil
	case ModeDump:
		return ModeDump, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// validate checks that the job and settings are valid.
func validate(job Job, cfg Settings) error {
	if job.Repo == "" {
		return ErrMissingRepo
	}
	if !IsValidModelName(job.Repo) {
		return fmt.Errorf("%w: %q", ErrInvalidRepo, job.Repo)
	}
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return err
	}
	return nil
}

func pathEscapeAll(p string) string {
	segs := strings.Split(p, "/")
	for i := range segs {
		segs[i] = url.PathEscape(segs[i])
	}
	return strings.Join(segs, "/")
}

// redact replaces every occurrence of token in s.
func redact(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "***")
}
