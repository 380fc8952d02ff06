// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bodaay/hfwget/pkg/hfwget"
)

// DefaultConfig returns the default configuration. Keys are flag names.
func DefaultConfig() map[string]any {
	return map[string]any{
		"mode":       string(hfwget.ModeDownload),
		"workers":    hfwget.DefaultWorkers,
		"revision":   hfwget.DefaultRevision,
		"output-dir": "",
		"dump-file":  hfwget.DefaultDumpFile,
		"wget":       hfwget.DefaultDownloader,
		"endpoint":   "",
		"log-level":  "info",
		"token":      "",
	}
}

func newConfigCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(newConfigInitCmd(out))
	cmd.AddCommand(newConfigShowCmd(out))
	cmd.AddCommand(newConfigPathCmd(out))

	return cmd
}

func newConfigInitCmd(out io.Writer) *cobra.Command {
	var (
		force   bool
		useYAML bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		Long: `Creates a default configuration file at ~/.config/hfwget.json (or .yaml)

The configuration file sets default values for the command flags.
CLI flags always override config file values; HF_TOKEN and HF_ENDPOINT
override the token and endpoint keys.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates := configCandidates()
			if len(candidates) == 0 {
				return fmt.Errorf("could not find home directory")
			}
			configPath := candidates[0]
			if useYAML {
				configPath = candidates[1]
			}

			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
			}
			if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
				return fmt.Errorf("could not create config directory: %w", err)
			}

			cfg := DefaultConfig()
			var (
				data []byte
				err  error
			)
			if useYAML {
				data, err = yaml.Marshal(cfg)
			} else {
				data, err = json.MarshalIndent(cfg, "", "  ")
			}
			if err != nil {
				return err
			}

			// May hold a token.
			if err := os.WriteFile(configPath, data, 0o600); err != nil {
				return fmt.Errorf("could not write config file: %w", err)
			}

			fmt.Fprintf(out, "✓ Created config file: %s\n", configPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")
	cmd.Flags().BoolVar(&useYAML, "yaml", false, "Create YAML config instead of JSON")

	return cmd
}

func newConfigShowCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := findConfigFile("")
			if configPath == "" {
				fmt.Fprintln(out, "No config file found.")
				fmt.Fprintln(out, "Run 'hfwget config init' to create one.")
				return nil
			}

			data, err := os.ReadFile(configPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Config file: %s\n\n", configPath)
			fmt.Fprintln(out, string(data))
			return nil
		},
	}
}

func newConfigPathCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, args []string) {
			if p := findConfigFile(""); p != "" {
				fmt.Fprintln(out, p)
				return
			}
			if candidates := configCandidates(); len(candidates) > 0 {
				fmt.Fprintln(out, candidates[0])
			}
		},
	}
}
