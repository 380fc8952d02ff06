// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configName = "hfwget"

// configCandidates lists the default config locations in lookup order.
func configCandidates() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	dir := filepath.Join(home, ".config")
	return []string{
		filepath.Join(dir, configName+".json"),
		filepath.Join(dir, configName+".yaml"),
		filepath.Join(dir, configName+".yml"),
	}
}

// findConfigFile returns explicit if set, otherwise the first existing
// default location, or "" when there is none.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, p := range configCandidates() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyConfigFile loads the config file and applies its values to every flag
// not set on the command line. Keys are flag names.
func applyConfigFile(cmd *cobra.Command, explicit string) error {
	path := findConfigFile(explicit)
	if path == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	default: // .json or unknown
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}

	var applyErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if applyErr != nil || f.Changed || f.Name == "config" || f.Name == "help" || f.Name == "version" {
			return
		}
		if !v.IsSet(f.Name) {
			return
		}
		if err := f.Value.Set(v.GetString(f.Name)); err != nil {
			applyErr = fmt.Errorf("config %s: invalid value for %q: %w", path, f.Name, err)
		}
	})
	return applyErr
}
