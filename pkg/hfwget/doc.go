// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

/*
Package hfwget lists the files of a HuggingFace Hub repository and fetches them
with wget, either by running the commands on a small worker pool or by dumping
them to a text file for later use.

# Quick Start

	job := hfwget.Job{Repo: "openai-community/gpt2"}
	cfg := hfwget.DefaultSettings()
	cfg.Token = os.Getenv("HF_TOKEN")

	if err := hfwget.Run(ctx, job, cfg, nil, nil); err != nil {
		log.Fatal(err)
	}

# Listing

ListFiles walks any Lister depth-first and returns a flat list of file paths.
HubFS is the Lister for the Hub tree API; its paths start with the repository
ID, e.g. "org/model/sub/b.bin". ResolveEntries turns those paths into download
URLs and local directories ("sub" for the example above).

# Commands

BuildCommands produces one argument vector per entry:

	wget [--header=Authorization: Bearer <token>] -nd -P <dir> <url>

Vectors are executed directly, never through a shell. Command.String renders
them with single-quote escaping, which is what Dump writes.

# Dispatch

Execute runs commands on Settings.Workers slots (2 by default). A failed
command does not stop the others; all failures come back as one
*ExecuteError after the pool drains. Canceling the context stops dispatch and
returns at once without killing processes that already started.

There is no retry, resume or checksum verification: wget owns the transfer.
*/
package hfwget
