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


package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/packsmith/entrykit/artifact"
	"github.com/packsmith/entrykit/core"
	"github.com/packsmith/entrykit/manifest"
	"github.com/packsmith/entrykit/secrets"
)

// Pipeline runs the build steps for one package.
type Pipeline struct {
	cfg      *core.Config
	compiler Compiler
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithCompiler replaces the TypeScript compiler invocation.
// Default shells out to tsc in the package directory.
func WithCompiler(compiler Compiler) Option {
	return func(p *Pipeline) error {
		if compiler == nil {
			return ErrCompilerRequired
		}
		p.compiler = compiler
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline for the package described by cfg.
func NewPipeline(cfg *core.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	p := &Pipeline{
		cfg:      cfg,
		compiler: &ExecCompiler{Dir: cfg.RootDir()},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// PreBuild deletes every build output derivable from the configuration and
// writes placeholder aggregated files so a fresh compile can resolve them.
// Running it repeatedly is safe.
func (p *Pipeline) PreBuild(ctx context.Context) error {
	if err := RemoveAll(
		p.cfg.Abs(p.cfg.CjsDestination),
		p.cfg.Abs(p.cfg.CjsSource),
	); err != nil {
		return err
	}

	var stubs []string
	for _, key := range p.cfg.EntrypointKeys() {
		for _, name := range artifact.StubNames(key) {
			stubs = append(stubs, p.cfg.Abs(filepath.FromSlash(name)))
		}
	}
	if err := RemoveFiles(stubs...); err != nil {
		return err
	}

	p.logger.Debug("pre-build cleanup complete", "stubs", len(stubs))
	return artifact.PlaceholderMaps().WriteAll(ctx, p.cfg.RootDir())
}

// Compile runs the ESM and CJS compilations in parallel, then relocates the
// staged CJS output into the published layout.
func (p *Pipeline) Compile(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.compiler.Compile(ctx, CompileJob{ConfigPath: p.cfg.TsConfigPath, OutDir: "dist"})
	})
	g.Go(func() error {
		return p.compiler.Compile(ctx, CompileJob{ConfigPath: cjsConfigPath(p.cfg.TsConfigPath), OutDir: p.cfg.CjsSource})
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return RelocateCJS(p.cfg.Abs(p.cfg.CjsSource), p.cfg.Abs(p.cfg.CjsDestination))
}

// cjsConfigPath derives the CommonJS compiler configuration from the ESM
// one: tsconfig.json becomes tsconfig.cjs.json.
func cjsConfigPath(esm string) string {
	ext := filepath.Ext(esm)
	return strings.TrimSuffix(esm, ext) + ".cjs" + ext
}

// CreateEntrypoints compiles the package, renders the entrypoint stubs, and
// persists the stubs, the manifest, the ignore list, and the export test
// harnesses.
func (p *Pipeline) CreateEntrypoints(ctx context.Context) error {
	if err := p.Compile(ctx); err != nil {
		return err
	}

	m, err := manifest.Load(p.cfg.Abs("package.json"))
	if err != nil {
		return err
	}
	pkg, err := p.importPrefix(m)
	if err != nil {
		return err
	}

	result, err := artifact.Generate(p.cfg, pkg, nil)
	if err != nil {
		return err
	}
	stubs := result.Stubs

	m.Update(p.cfg, stubs.Names())

	root := p.cfg.RootDir()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return stubs.WriteAll(ctx, root) })
	g.Go(m.Save)
	g.Go(func() error {
		return manifest.WriteGitignore(filepath.Join(root, ".gitignore"), stubs.Names(), p.cfg.AdditionalGitignorePaths)
	})
	if p.cfg.ShouldTestExports {
		g.Go(func() error { return manifest.WriteTestExports(p.cfg, root, pkg) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	p.logger.Info("entrypoints created",
		"entrypoints", len(p.cfg.EntrypointKeys()),
		"files", stubs.Len(),
		"fingerprint", stubs.Fingerprint())
	return nil
}

// GenerateImportMaps scans the sources for secret identifiers and writes
// the aggregated import files.
func (p *Pipeline) GenerateImportMaps(ctx context.Context) error {
	ids, err := p.scanSecrets(ctx)
	if err != nil {
		return err
	}

	m, err := manifest.Load(p.cfg.Abs("package.json"))
	if err != nil {
		return err
	}
	pkg, err := p.importPrefix(m)
	if err != nil {
		return err
	}

	result, err := artifact.Generate(p.cfg, pkg, ids)
	if err != nil {
		return err
	}

	p.logger.Info("import maps generated",
		"secrets", len(ids),
		"fingerprint", result.Maps.Fingerprint())
	return result.Maps.WriteAll(ctx, p.cfg.RootDir())
}

func (p *Pipeline) scanSecrets(ctx context.Context) ([]string, error) {
	ccPath := p.cfg.Abs(p.cfg.TsConfigPath)
	cc, err := secrets.LoadCompilerConfig(ccPath)
	if err != nil {
		return nil, err
	}
	files, err := cc.ResolveSourceFiles(filepath.Dir(ccPath))
	if err != nil {
		return nil, err
	}

	scanner, err := secrets.NewScanner(secrets.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}
	defer scanner.Release()

	return scanner.Scan(ctx, files)
}

// importPrefix resolves the specifier prefix consumers import entrypoints
// under: the configured override, or the manifest name.
func (p *Pipeline) importPrefix(m *manifest.Manifest) (string, error) {
	if p.cfg.PackageSuffix != "" {
		return p.cfg.PackageSuffix, nil
	}
	return m.Name()
}
