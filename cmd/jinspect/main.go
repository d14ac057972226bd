// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jinspect inspects JSON documents: it summarizes, formats, queries,
// validates, and compares them, and serves or displays live analyses.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("jinspect"),
		kong.Description("Inspect, query, and compare JSON documents."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	env, err := cli.newEnv(ctx, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jinspect: %v\n", err)
		os.Exit(2)
	}
	if err := kctx.Run(env); err != nil {
		env.log.Debug().Err(err).Str("command", kctx.Command()).Msg("command failed")
		fmt.Fprintf(os.Stderr, "jinspect: %v\n", err)
		os.Exit(1)
	}
}
