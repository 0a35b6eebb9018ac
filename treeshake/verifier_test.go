package treeshake

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBundler struct {
	diagnostics map[string]string // input → log stream
	err         error
	jobs        []BundleJob
}

func (b *fakeBundler) Bundle(_ context.Context, job BundleJob, diag io.Writer) error {
	b.jobs = append(b.jobs, job)
	if b.err != nil {
		return b.err
	}
	if out, ok := b.diagnostics[job.Input]; ok {
		io.WriteString(diag, out)
	}
	return nil
}

func TestVerifier_CleanEntrypoints(t *testing.T) {
	bundler := &fakeBundler{diagnostics: map[string]string{
		"./index.js":  "created /tmp/out.js in 80ms\n",
		"./agents.js": "",
	}}
	v, err := NewVerifier(bundler)
	require.NoError(t, err)

	targets := []Target{
		{Entrypoint: ".", Input: "./index.js", Compiled: "dist/index.js"},
		{Entrypoint: "./agents", Input: "./agents.js", Compiled: "dist/agents/index.js"},
	}
	report, err := v.Verify(context.Background(), t.TempDir(), targets, []string{"left-pad", "@scope/dep"})
	require.NoError(t, err)

	assert.True(t, report.Clean())
	require.Len(t, report.Entries, 2)
	assert.Empty(t, report.Entries[0].SideEffects)

	require.Len(t, bundler.jobs, 2)
	assert.Equal(t, []string{"left-pad", "@scope/dep"}, bundler.jobs[0].Externals)
	assert.Equal(t, "./agents.js", bundler.jobs[1].Input)
}

func TestVerifier_FlagsSideEffects(t *testing.T) {
	bundler := &fakeBundler{diagnostics: map[string]string{
		"./index.js": "bundling...\n(!) First side effect in dist/index.js is at (4:0)\ndone\n",
	}}
	v, err := NewVerifier(bundler)
	require.NoError(t, err)

	targets := []Target{{Entrypoint: ".", Input: "./index.js", Compiled: "dist/index.js"}}
	report, err := v.Verify(context.Background(), t.TempDir(), targets, nil)
	require.NoError(t, err, "advisory verification never fails on findings")

	require.Len(t, report.Flagged(), 1)
	entry := report.Flagged()[0]
	assert.Equal(t, ".", entry.Entrypoint)
	assert.Equal(t, []string{"(!) First side effect in dist/index.js is at (4:0)"}, entry.SideEffects)
	assert.False(t, entry.Suppressed)
}

func TestVerifier_SuppressionMarker(t *testing.T) {
	root := t.TempDir()
	compiled := filepath.Join(root, "dist", "index.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(compiled), 0o755))
	require.NoError(t, os.WriteFile(compiled,
		[]byte(SuppressionMarker+"\nglobalThis.patched = true;\n"), 0o644))

	bundler := &fakeBundler{diagnostics: map[string]string{
		"./index.js": "First side effect in dist/index.js is at (2:0)\n",
	}}
	v, err := NewVerifier(bundler)
	require.NoError(t, err)

	targets := []Target{{Entrypoint: ".", Input: "./index.js", Compiled: "dist/index.js"}}
	report, err := v.Verify(context.Background(), root, targets, nil)
	require.NoError(t, err)

	require.Len(t, report.Entries, 1)
	assert.True(t, report.Entries[0].Suppressed)
	assert.False(t, report.Entries[0].Flagged())
	assert.True(t, report.Clean(), "suppressed side effects do not flag the entrypoint")
}

func TestVerifier_MissingCompiledModule(t *testing.T) {
	bundler := &fakeBundler{diagnostics: map[string]string{
		"./index.js": "First side effect in dist/index.js is at (2:0)\n",
	}}
	v, err := NewVerifier(bundler)
	require.NoError(t, err)

	targets := []Target{{Entrypoint: ".", Input: "./index.js", Compiled: "dist/missing.js"}}
	report, err := v.Verify(context.Background(), t.TempDir(), targets, nil)
	require.NoError(t, err)
	assert.False(t, report.Entries[0].Suppressed, "an absent module cannot carry the marker")
}

func TestVerifier_Strict(t *testing.T) {
	bundler := &fakeBundler{diagnostics: map[string]string{
		"./index.js": "First side effect in dist/index.js is at (1:0)\n",
	}}
	v, err := NewVerifier(bundler, WithStrict(true))
	require.NoError(t, err)

	targets := []Target{{Entrypoint: ".", Input: "./index.js", Compiled: "dist/index.js"}}
	report, err := v.Verify(context.Background(), t.TempDir(), targets, nil)
	assert.ErrorIs(t, err, ErrSideEffects)
	require.NotNil(t, report, "strict mode still returns the report")
	assert.Len(t, report.Flagged(), 1)
}

func TestVerifier_BundlerFailureAborts(t *testing.T) {
	bundler := &fakeBundler{err: errors.New("rollup exploded")}
	v, err := NewVerifier(bundler)
	require.NoError(t, err)

	targets := []Target{
		{Entrypoint: ".", Input: "./index.js"},
		{Entrypoint: "./agents", Input: "./agents.js"},
	}
	_, err = v.Verify(context.Background(), t.TempDir(), targets, nil)
	assert.EqualError(t, err, "rollup exploded")
	assert.Len(t, bundler.jobs, 1, "verification stops at the first bundler failure")
}

func TestVerifier_RequiresBundler(t *testing.T) {
	_, err := NewVerifier(nil)
	assert.ErrorIs(t, err, ErrBundlerRequired)
}

func TestVerifier_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := NewVerifier(&fakeBundler{})
	require.NoError(t, err)

	_, err = v.Verify(ctx, t.TempDir(), []Target{{Entrypoint: "."}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport_WriteSummary(t *testing.T) {
	report := &Report{Entries: []EntryResult{
		{Entrypoint: "."},
		{Entrypoint: "./agents", SideEffects: []string{"First side effect in dist/agents.js is at (1:0)"}},
		{Entrypoint: "./load", SideEffects: []string{"First side effect in dist/load.js is at (1:0)"}, Suppressed: true},
	}}

	var buf bytes.Buffer
	report.WriteSummary(&buf)
	out := buf.String()

	assert.Contains(t, out, "✓ .")
	assert.Contains(t, out, "✗ ./agents has unexpected side effects")
	assert.Contains(t, out, "    First side effect in dist/agents.js is at (1:0)")
	assert.Contains(t, out, "• ./load side effects suppressed")
	assert.Contains(t, out, "1 of 3 entrypoints have unexpected side effects.")
}

func TestReport_WriteSummaryClean(t *testing.T) {
	report := &Report{Entries: []EntryResult{{Entrypoint: "."}}}

	var buf bytes.Buffer
	report.WriteSummary(&buf)
	assert.Contains(t, buf.String(), "All entrypoints tree-shake cleanly.")
}

func TestRollupBundler_MissingCommand(t *testing.T) {
	b := &RollupBundler{Command: "entrykit-no-such-binary", Dir: t.TempDir()}
	err := b.Bundle(context.Background(), BundleJob{Input: "./index.js"}, io.Discard)
	require.Error(t, err)
	assert.ErrorContains(t, err, "bundle ./index.js")
}
