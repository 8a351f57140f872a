// Copyright 2026 The monadicast Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/trace"
	"strings"
	"sync"

	"github.com/go-json-experiment/json"
	"github.com/xyproto/env/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rusty-catz/monadicast"
	"github.com/rusty-catz/monadicast/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("c", env.Str("MONADICAST_CONFIG"), "configuration `file`")
	outDir := flag.String("o", "", "write lifted sources under `dir`, preserving relative paths")
	jobs := flag.Int("jobs", env.Int("MONADICAST_JOBS", 0), "files processed concurrently, 0 for one per CPU")
	jsonOut := flag.Bool("json", env.Bool("MONADICAST_JSON"), "render findings as JSON lines")
	logLevel := flag.String("log", env.Str("MONADICAST_LOG", "info"), "log `level` (debug, info, warn, error)")
	report := flag.Bool("report", false, "also report applied rewrites, not only declined ones")
	flag.Parse()

	logger := newLogger(*logLevel)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: monadicast [flags] <path>")
		flag.PrintDefaults()

		return 2
	}

	cfg := monadicast.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = monadicast.LoadConfig(*configPath); err != nil {
			logger.Error("configuration", slog.Any("error", err))

			return 2
		}
	}
	if *jsonOut {
		cfg.Output = config.FormatJSON
	}
	if *jobs > 0 {
		cfg.Jobs = *jobs
	}

	a := &app{
		cfg:      cfg,
		outDir:   *outDir,
		report:   *report,
		logger:   logger,
		out:      os.Stdout,
		findings: os.Stderr,
	}

	return a.run(context.Background(), flag.Arg(0))
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	err := l.UnmarshalText([]byte(level))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
	if err != nil {
		logger.Warn("unknown log level", slog.String("level", level))
	}

	return logger
}

// app is one batch invocation. Workers serialize writes to out and
// findings through mu.
type app struct {
	cfg    monadicast.Config
	outDir string
	report bool
	logger *slog.Logger

	out      io.Writer
	findings io.Writer
	mu       sync.Mutex
}

// run lifts every .go file under root. Without an output directory the
// lifted sources go to out, the way gofmt prints to standard output.
// A failing file is logged and counts toward the exit code, but never
// stops the batch.
func (a *app) run(ctx context.Context, root string) int {
	jobs := a.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(jobs)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return fs.SkipDir
			}

			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		g.Go(func() error {
			err := a.lift(ctx, root, path)
			if err != nil {
				a.logger.Error("lift failed", slog.String("file", path), slog.Any("error", err))
			}

			return err
		})

		return nil
	})

	liftErr := g.Wait()

	switch {
	case walkErr != nil:
		a.logger.Error("walking input", slog.String("path", root), slog.Any("error", walkErr))

		return 1

	case liftErr != nil:
		return 1
	}

	return 0
}

func (a *app) lift(ctx context.Context, root, path string) error {
	ctx, task := trace.NewTask(ctx, "LiftFile")
	defer task.End()

	m, err := monadicast.Parse(path, nil,
		monadicast.WithLogger(a.logger),
		monadicast.WithConfig(a.cfg),
		monadicast.WithReportApplied(a.report),
	)
	if err != nil {
		return err
	}

	src, err := m.Lift(ctx).Result()
	if err != nil {
		return err
	}

	if a.outDir != "" {
		if err := a.write(root, path, src); err != nil {
			return err
		}
	}

	return a.deliver(path, src, m.Diagnostics())
}

func (a *app) write(root, path, src string) error {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." { // root is the file itself
		rel = filepath.Base(path)
	}

	dst := filepath.Join(a.outDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	return os.WriteFile(dst, []byte(src), 0o644)
}

// deliver flushes one file's findings, source and status in a single
// critical section, so parallel workers do not interleave output.
func (a *app) deliver(path, src string, diags *monadicast.Diagnostics) error {
	var buf bytes.Buffer
	if err := a.render(diags, &buf); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := buf.WriteTo(a.findings); err != nil {
		return err
	}

	if a.outDir == "" {
		if _, err := io.WriteString(a.out, src); err != nil {
			return err
		}
	}

	a.logger.Info("lifted", slog.String("file", path), slog.Int("findings", diags.Len()))

	return nil
}

func (a *app) render(diags *monadicast.Diagnostics, w io.Writer) error {
	if diags.Len() == 0 {
		return nil
	}

	if a.cfg.Output != config.FormatJSON {
		return diags.WriteText(w)
	}

	for d := range diags.All() {
		if err := json.MarshalWrite(w, d); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}
