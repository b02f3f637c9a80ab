// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

// Command llstack replays a stack scenario file and reports every step.
//
//	llstack -f scenario.yaml [-level info] [-watch]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"

	"trpc.group/trpc-go/llstack/config"
	"trpc.group/trpc-go/llstack/errs"
	"trpc.group/trpc-go/llstack/log"
	"trpc.group/trpc-go/llstack/scenario"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

const defaultLogLevel = "info"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("llstack", flag.ContinueOnError)
	fs.SetOutput(stdout)
	var (
		path  = fs.String("f", "", "scenario file (.yaml, .yml, .json or .toml)")
		level = fs.String("level", defaultLogLevel, "log level: debug, info, warn or error")
		watch = fs.Bool("watch", false, "run again each time the scenario file changes")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *path == "" {
		fmt.Fprintln(stdout, "llstack: -f is required")
		fs.Usage()
		return exitUsage
	}
	if _, ok := log.LevelNames[*level]; !ok {
		fmt.Fprintf(stdout, "llstack: unknown log level %q\n", *level)
		return exitUsage
	}

	logger := log.NewZapLog(log.Config{{Writer: log.OutputStderr, Level: *level}})
	log.SetLogger(logger)
	defer logger.Sync()

	if undo, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err == nil {
		defer undo()
	}

	runner := scenario.NewRunner(scenario.WithLogger(logger))
	sc, err := scenario.Load(*path)
	code := report(stdout, runner, sc, err)
	if !*watch {
		return code
	}

	code, err = watchAndRun(ctx, *path, stdout, runner, code)
	if err != nil {
		log.Errorf("watch %s: %v", *path, err)
		return exitFailed
	}
	return code
}

// watchAndRun reruns the scenario at path each time it changes, until ctx is
// done or watching fails. The watcher only hands new content over; runs happen
// on their own goroutine, and a change arriving during a run replaces any
// content still waiting. It returns the code of the last run.
func watchAndRun(ctx context.Context, path string, w io.Writer, r *scenario.Runner, code int) (int, error) {
	changes := make(chan []byte, 1)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(changes)
		return config.NewFileProvider().Watch(ctx, path, func(_ string, data []byte) {
			// this goroutine is the only sender, so after the drain there is room
			select {
			case <-changes:
			default:
			}
			changes <- data
		})
	})
	g.Go(func() error {
		for data := range changes {
			if ctx.Err() != nil {
				return nil
			}
			log.Infof("%s changed, running again", path)
			sc, err := scenario.Parse(path, data)
			code = report(w, r, sc, err)
		}
		return nil
	})
	err := g.Wait()
	return code, err
}

// report runs sc, unless loading it failed, and prints one line per step.
func report(w io.Writer, r *scenario.Runner, sc *scenario.Scenario, loadErr error) int {
	if loadErr != nil {
		fmt.Fprintf(w, "FAIL %v\n", loadErr)
		return exitFailed
	}
	rep, err := r.Run(sc)
	if rep == nil {
		fmt.Fprintf(w, "FAIL %s: %v\n", sc.Name, err)
		return exitFailed
	}
	for _, s := range rep.Steps {
		mark := "ok"
		if !s.Passed {
			mark = "!!"
		}
		fmt.Fprintf(w, "  [%s] %d %s %s\n", mark, s.Index, s.Op, s.Got)
	}
	if err != nil {
		fmt.Fprintf(w, "FAIL %s (%s elements, code %d): %d of %d steps failed\n",
			rep.Name, rep.Element, errs.Code(err), failed(rep), len(rep.Steps))
		return exitFailed
	}
	fmt.Fprintf(w, "PASS %s (%s elements, %d steps) %s\n", rep.Name, rep.Element, len(rep.Steps), rep.Final)
	return exitOK
}

func failed(rep *scenario.Report) int {
	n := 0
	for _, s := range rep.Steps {
		if !s.Passed {
			n++
		}
	}
	return n
}
