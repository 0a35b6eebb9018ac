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


package entrykit

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/packsmith/entrykit/build"
	"github.com/packsmith/entrykit/core"
	"github.com/packsmith/entrykit/manifest"
	"github.com/packsmith/entrykit/treeshake"
)

// Project is one TypeScript package under entrykit management. It bundles
// the loaded configuration with the build pipeline and the tree-shaking
// verifier so callers drive every step through a single handle.
type Project struct {
	cfg      *core.Config
	pipeline *build.Pipeline
	bundler  treeshake.Bundler
	strict   bool
	logger   *slog.Logger
}

// ProjectOption configures a Project.
type ProjectOption func(*projectOptions)

type projectOptions struct {
	logger   *slog.Logger
	compiler build.Compiler
	bundler  treeshake.Bundler
	strict   bool
}

// WithLogger sets the logger every step reports through.
func WithLogger(logger *slog.Logger) ProjectOption {
	return func(o *projectOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCompiler replaces the TypeScript compiler invocation.
func WithCompiler(compiler build.Compiler) ProjectOption {
	return func(o *projectOptions) {
		o.compiler = compiler
	}
}

// WithBundler replaces the bundler used for tree-shaking verification.
func WithBundler(bundler treeshake.Bundler) ProjectOption {
	return func(o *projectOptions) {
		o.bundler = bundler
	}
}

// WithStrictTreeShaking makes verification fail on flagged entrypoints
// instead of only reporting them.
func WithStrictTreeShaking() ProjectOption {
	return func(o *projectOptions) {
		o.strict = true
	}
}

// OpenProject loads the configuration at configPath and prepares the
// package it describes for building.
func OpenProject(configPath string, opts ...ProjectOption) (*Project, error) {
	// Apply options
	options := &projectOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Load configuration
	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Create build pipeline
	pipelineOpts := []build.Option{build.WithLogger(options.logger)}
	if options.compiler != nil {
		pipelineOpts = append(pipelineOpts, build.WithCompiler(options.compiler))
	}
	pipeline, err := build.NewPipeline(cfg, pipelineOpts...)
	if err != nil {
		return nil, err
	}

	bundler := options.bundler
	if bundler == nil {
		bundler = &treeshake.RollupBundler{Dir: cfg.RootDir()}
	}

	return &Project{
		cfg:      cfg,
		pipeline: pipeline,
		bundler:  bundler,
		strict:   options.strict,
		logger:   options.logger,
	}, nil
}

// Config returns the loaded build configuration.
func (p *Project) Config() *core.Config {
	return p.cfg
}

// PreBuild clears previous build output and writes placeholder aggregated
// files.
func (p *Project) PreBuild(ctx context.Context) error {
	return p.pipeline.PreBuild(ctx)
}

// GenerateImportMaps scans the sources for secrets and regenerates the
// aggregated import files.
func (p *Project) GenerateImportMaps(ctx context.Context) error {
	return p.pipeline.GenerateImportMaps(ctx)
}

// CreateEntrypoints compiles both formats and persists the entrypoint
// stubs, the manifest export map, the ignore list, and the export test
// harnesses.
func (p *Project) CreateEntrypoints(ctx context.Context) error {
	return p.pipeline.CreateEntrypoints(ctx)
}

// VerifyTreeShaking bundles every exported entrypoint and reports the ones
// a bundler cannot drop cleanly. The human-readable summary goes to out
// when it is non-nil. In strict mode a non-nil report comes back alongside
// the error so callers can still print details.
func (p *Project) VerifyTreeShaking(ctx context.Context, out io.Writer) (*treeshake.Report, error) {
	m, err := manifest.Load(p.cfg.Abs("package.json"))
	if err != nil {
		return nil, err
	}
	exports, err := m.ExportTargets()
	if err != nil {
		return nil, err
	}

	opts := []treeshake.Option{treeshake.WithLogger(p.logger)}
	if p.strict {
		opts = append(opts, treeshake.WithStrict(true))
	}
	verifier, err := treeshake.NewVerifier(p.bundler, opts...)
	if err != nil {
		return nil, err
	}

	report, verifyErr := verifier.Verify(ctx, p.cfg.RootDir(), p.treeShakeTargets(exports), p.externals(m))
	if report != nil && out != nil {
		report.WriteSummary(out)
	}
	return report, verifyErr
}

// treeShakeTargets maps manifest export entries to bundle targets. The
// compiled module behind an export is resolved through the entrypoint
// configuration so suppression markers are read from the real source
// module, not the redirect stub.
func (p *Project) treeShakeTargets(exports []manifest.ExportTarget) []treeshake.Target {
	targets := make([]treeshake.Target, 0, len(exports))
	for _, export := range exports {
		key := strings.TrimPrefix(export.Key, "./")
		if export.Key == "." {
			key = core.IndexEntrypoint
		}

		compiled := "dist/" + key + ".js"
		if source, ok := p.cfg.SourceModule(key); ok {
			compiled = "dist/" + source + ".js"
		}

		targets = append(targets, treeshake.Target{
			Entrypoint: export.Key,
			Input:      export.Import,
			Compiled:   compiled,
		})
	}
	return targets
}

// externals collects every module specifier the bundler must not inline:
// declared dependencies, peer dependencies, and configured internals.
func (p *Project) externals(m *manifest.Manifest) []string {
	var externals []string
	externals = append(externals, m.Dependencies()...)
	externals = append(externals, m.PeerDependencies()...)
	externals = append(externals, p.cfg.Internals...)
	return externals
}
