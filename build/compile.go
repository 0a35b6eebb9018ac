package build

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CompileJob is one compiler invocation.
type CompileJob struct {
	// ConfigPath is the compiler configuration passed via -p.
	ConfigPath string

	// OutDir overrides the configured output directory when non-empty.
	OutDir string
}

// Compiler runs one TypeScript compilation.
type Compiler interface {
	Compile(ctx context.Context, job CompileJob) error
}

// ExecCompiler shells out to the TypeScript compiler.
type ExecCompiler struct {
	// Command is the compiler executable. Defaults to "tsc" on PATH.
	Command string

	// Dir is the package directory compilation runs in.
	Dir string
}

func (c *ExecCompiler) Compile(ctx context.Context, job CompileJob) error {
	command := c.Command
	if command == "" {
		command = "tsc"
	}
	args := []string{"-p", job.ConfigPath}
	if job.OutDir != "" {
		args = append(args, "--outDir", job.OutDir)
	}

	// tsc reports diagnostics on stdout
	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = c.Dir
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if text := strings.TrimSpace(output.String()); text != "" {
			return fmt.Errorf("compile %s: %w\n%s", job.ConfigPath, err, text)
		}
		return fmt.Errorf("compile %s: %w", job.ConfigPath, err)
	}
	return nil
}
