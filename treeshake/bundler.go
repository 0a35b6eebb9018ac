package treeshake

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// BundleJob describes one bundler invocation.
type BundleJob struct {
	// Input is the module handed to the bundler, relative to the package
	// root.
	Input string

	// Externals are module specifiers the bundler must not resolve.
	Externals []string
}

// Bundler produces a bundle for one entrypoint and streams its log output,
// side-effect diagnostics included, to diag.
type Bundler interface {
	Bundle(ctx context.Context, job BundleJob, diag io.Writer) error
}

// RollupBundler runs the rollup CLI with side-effect logging enabled. The
// bundle itself goes to a throwaway temp file; only the log stream matters.
type RollupBundler struct {
	// Command is the rollup executable. Defaults to "rollup" on PATH.
	Command string

	// Dir is the package directory bundling runs in.
	Dir string
}

func (b *RollupBundler) Bundle(ctx context.Context, job BundleJob, diag io.Writer) error {
	out, err := os.CreateTemp("", "entrykit-bundle-*.js")
	if err != nil {
		return fmt.Errorf("create bundle output: %w", err)
	}
	out.Close()
	defer os.Remove(out.Name())

	args := []string{job.Input, "--format", "esm", "--file", out.Name(), "--experimentalLogSideEffects"}
	if len(job.Externals) > 0 {
		args = append(args, "--external", strings.Join(job.Externals, ","))
	}

	command := b.Command
	if command == "" {
		command = "rollup"
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = b.Dir
	cmd.Stdout = diag
	cmd.Stderr = io.MultiWriter(diag, &stderr)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("bundle %s: %w\n%s", job.Input, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
