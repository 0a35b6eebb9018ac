// Copyright 2026 Packsmith Labs
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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/packsmith/entrykit"
	"github.com/packsmith/entrykit/core"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "entrykit",
		Usage: "Entrypoint and export map generator for dual-format TypeScript packages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the build configuration file",
				Value:   core.DefaultConfigFile,
			},
			&cli.BoolFlag{
				Name:  "pre",
				Usage: "Delete previous build output and write placeholder import files",
			},
			&cli.BoolFlag{
				Name:  "gen-maps",
				Usage: "Scan sources for secrets and regenerate the aggregated import files",
			},
			&cli.BoolFlag{
				Name:  "create-entrypoints",
				Usage: "Compile both formats and write stubs, manifest exports, and the ignore list",
			},
			&cli.BoolFlag{
				Name:  "tree-shaking",
				Usage: "Bundle every exported entrypoint and report unexpected side effects",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Action: run,
	}
}

func run(c *cli.Context) error {
	if !c.Bool("pre") && !c.Bool("gen-maps") && !c.Bool("create-entrypoints") && !c.Bool("tree-shaking") {
		return cli.ShowAppHelp(c)
	}

	ctx := context.Background()

	project, err := entrykit.OpenProject(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to open project: %w", err)
	}

	// Steps run in dependency order when several are requested.
	if c.Bool("pre") {
		if err := project.PreBuild(ctx); err != nil {
			return fmt.Errorf("pre-build failed: %w", err)
		}
	}
	if c.Bool("gen-maps") {
		if err := project.GenerateImportMaps(ctx); err != nil {
			return fmt.Errorf("import map generation failed: %w", err)
		}
	}
	if c.Bool("create-entrypoints") {
		if err := project.CreateEntrypoints(ctx); err != nil {
			return fmt.Errorf("entrypoint creation failed: %w", err)
		}
	}
	if c.Bool("tree-shaking") {
		if _, err := project.VerifyTreeShaking(ctx, os.Stdout); err != nil {
			return fmt.Errorf("tree-shaking verification failed: %w", err)
		}
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
