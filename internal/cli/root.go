// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bodaay/hfwget/internal/logging"
	"github.com/bodaay/hfwget/pkg/hfwget"
)

// ExitInterrupted is the exit status after a user interrupt.
const ExitInterrupted = 130

// RootOpts holds the options of the root command that are not part of
// hfwget.Job or hfwget.Settings.
type RootOpts struct {
	Mode     string
	JSONOut  bool
	Config   string
	LogLevel string
}

// Execute runs the CLI with the given version string.
func Execute(version string) error {
	ctx, cancel := signalContext(context.Background())
	defer cancel()

	root := newRootCmd(version, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nReceived interrupt, stopping execution.")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return err
	}
	return nil
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return 1
	}
}

func newRootCmd(version string, stdout, stderr io.Writer) *cobra.Command {
	ro := &RootOpts{}
	job := &hfwget.Job{}
	cfg := &hfwget.Settings{}

	root := &cobra.Command{
		Use:   "hfwget [flags] REPO",
		Short: "List a Hugging Face repository and fetch its files with wget",
		Long: `List every file of a Hugging Face Hub repository and either download
them with wget on a small worker pool, or dump the wget commands to a file.

Examples:
  hfwget openai-community/gpt2
  hfwget --workers 4 --token $HF_TOKEN meta-llama/Llama-2-7b-hf
  hfwget --mode dump --dump-file cmds.txt org/model`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyConfigFile(cmd, ro.Config)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			finalJob, finalCfg, err := finalize(cmd, ro, args, job, cfg)
			if err != nil {
				return err
			}
			log, err := logging.New(ro.LogLevel, stderr)
			if err != nil {
				return err
			}
			return run(cmd.Context(), finalJob, finalCfg, ro, log, stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetGlobalNormalizationFunc(normalizeFlagName)

	f := root.Flags()
	f.StringVarP(&ro.Mode, "mode", "m", string(hfwget.ModeDownload), "download: run wget commands, dump: write them to --dump-file")
	f.IntVarP(&cfg.Workers, "workers", "w", hfwget.DefaultWorkers, "Number of wget processes running at once")
	f.StringVarP(&cfg.Token, "token", "t", "", "Hugging Face access token (also reads HF_TOKEN env)")
	f.StringVarP(&job.Revision, "revision", "b", hfwget.DefaultRevision, "Revision/branch to download (e.g. main, refs/pr/1)")
	f.BoolVar(&job.IsDataset, "dataset", false, "Treat repo as a dataset")
	f.StringVarP(&cfg.OutputDir, "output-dir", "o", "", "Base directory for downloaded files (default: current directory)")
	f.StringVar(&cfg.DumpFile, "dump-file", hfwget.DefaultDumpFile, "File written in dump mode")
	f.StringVar(&cfg.Downloader, "wget", hfwget.DefaultDownloader, "wget executable to run")
	f.StringVar(&cfg.Endpoint, "endpoint", "", "Hub endpoint for mirrors (also reads HF_ENDPOINT env)")
	f.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Hide wget output and show a progress bar instead")
	f.BoolVar(&ro.JSONOut, "json", false, "Emit machine-readable JSON events")
	f.StringVar(&ro.Config, "config", "", "Path to config file (JSON or YAML)")
	f.StringVar(&ro.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	root.AddCommand(newConfigCmd(stdout))
	root.AddCommand(newVersionCmd(version))
	root.SetHelpCommand(&cobra.Command{Use: "help", Hidden: true})

	return root
}

// normalizeFlagName maps the legacy --flag and --auth_token names and accepts
// underscores in place of dashes.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "flag":
		name = "mode"
	case "auth_token", "auth-token":
		name = "token"
	}
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()
	return ctx, cancel
}

func finalize(cmd *cobra.Command, ro *RootOpts, args []string, job *hfwget.Job, cfg *hfwget.Settings) (hfwget.Job, hfwget.Settings, error) {
	j := *job
	c := *cfg

	// Token: flag > HF_TOKEN > config file
	c.Token = strings.TrimSpace(c.Token)
	if !cmd.Flags().Changed("token") {
		if env := strings.TrimSpace(os.Getenv("HF_TOKEN")); env != "" {
			c.Token = env
		}
	}
	if !cmd.Flags().Changed("endpoint") {
		if env := strings.TrimSpace(os.Getenv("HF_ENDPOINT")); env != "" {
			c.Endpoint = env
		}
	}

	mode, err := hfwget.ParseMode(ro.Mode)
	if err != nil {
		return j, c, err
	}
	c.Mode = mode

	if c.Workers < 1 {
		return j, c, fmt.Errorf("--workers must be at least 1, got %d", c.Workers)
	}

	if len(args) > 0 {
		j.Repo = strings.TrimSpace(args[0])
	}
	if j.Repo == "" {
		return j, c, fmt.Errorf("missing REPO (owner/name)")
	}
	if !hfwget.IsValidModelName(j.Repo) {
		return j, c, fmt.Errorf("invalid repo id %q (expected owner/name)", j.Repo)
	}
	return j, c, nil
}
