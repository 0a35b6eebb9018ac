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


package treeshake

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/packsmith/entrykit/termcolor"
)

// SuppressionMarker acknowledges module-level side effects. A compiled
// entrypoint containing it anywhere is never flagged.
const SuppressionMarker = "/* __ENTRYKIT_ALLOW_SIDE_EFFECTS__ */"

// Target is one entrypoint to verify.
type Target struct {
	// Entrypoint is the export map key, "." or "./name".
	Entrypoint string

	// Input is the module handed to the bundler.
	Input string

	// Compiled is the module checked for the suppression marker.
	Compiled string
}

// EntryResult is the verification outcome for one entrypoint.
type EntryResult struct {
	Entrypoint  string
	Input       string
	SideEffects []string // captured diagnostics, empty when clean
	Suppressed  bool     // marker found in the compiled module
}

// Flagged reports whether the entrypoint has unsuppressed side effects.
func (r EntryResult) Flagged() bool {
	return len(r.SideEffects) > 0 && !r.Suppressed
}

// Report is the outcome of verifying every entrypoint.
type Report struct {
	Entries []EntryResult
}

// Flagged returns the entries with unsuppressed side effects.
func (r *Report) Flagged() []EntryResult {
	var flagged []EntryResult
	for _, entry := range r.Entries {
		if entry.Flagged() {
			flagged = append(flagged, entry)
		}
	}
	return flagged
}

// Clean reports whether no entrypoint is flagged.
func (r *Report) Clean() bool {
	return len(r.Flagged()) == 0
}

// WriteSummary renders a per-entrypoint verification summary.
func (r *Report) WriteSummary(w io.Writer) {
	for _, entry := range r.Entries {
		switch {
		case entry.Flagged():
			fmt.Fprintln(w, termcolor.Red("✗ "+entry.Entrypoint+" has unexpected side effects"))
			for _, line := range entry.SideEffects {
				fmt.Fprintln(w, "    "+line)
			}
		case len(entry.SideEffects) > 0:
			fmt.Fprintln(w, termcolor.Yellow("• "+entry.Entrypoint+" side effects suppressed"))
		default:
			fmt.Fprintln(w, termcolor.Green("✓ "+entry.Entrypoint))
		}
	}

	if flagged := r.Flagged(); len(flagged) > 0 {
		fmt.Fprintln(w, termcolor.Red(fmt.Sprintf(
			"%d of %d entrypoints have unexpected side effects.", len(flagged), len(r.Entries))))
		return
	}
	fmt.Fprintln(w, termcolor.Green("All entrypoints tree-shake cleanly."))
}

// Verifier bundles entrypoints one at a time and collects their side-effect
// diagnostics into a report.
type Verifier struct {
	bundler Bundler
	strict  bool
	logger  *slog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier) error

// WithStrict makes flagged entrypoints an error instead of advisory report
// content.
func WithStrict(strict bool) Option {
	return func(v *Verifier) error {
		v.strict = strict
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
		return nil
	}
}

// NewVerifier creates a verifier around the given bundler.
func NewVerifier(bundler Bundler, opts ...Option) (*Verifier, error) {
	if bundler == nil {
		return nil, ErrBundlerRequired
	}

	v := &Verifier{
		bundler: bundler,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Verify bundles each target in order with externals treated as
// unresolvable and returns the collected report. A bundler failure aborts
// the run. In strict mode a non-clean report is also returned with
// ErrSideEffects.
func (v *Verifier) Verify(ctx context.Context, root string, targets []Target, externals []string) (*Report, error) {
	report := &Report{}
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		capture := &SideEffectCapture{}
		job := BundleJob{Input: target.Input, Externals: externals}
		if err := v.bundler.Bundle(ctx, job, capture); err != nil {
			return nil, err
		}
		capture.Flush()

		result := EntryResult{
			Entrypoint:  target.Entrypoint,
			Input:       target.Input,
			SideEffects: capture.Lines(),
		}
		if len(result.SideEffects) > 0 {
			result.Suppressed = markerPresent(root, target.Compiled)
		}
		v.logger.Debug("entrypoint verified",
			"entrypoint", target.Entrypoint,
			"side_effects", len(result.SideEffects),
			"suppressed", result.Suppressed)

		report.Entries = append(report.Entries, result)
	}

	if v.strict && !report.Clean() {
		return report, fmt.Errorf("%w: %d flagged", ErrSideEffects, len(report.Flagged()))
	}
	return report, nil
}

// markerPresent reports whether the compiled module opts into side effects.
// An unreadable module cannot carry the marker.
func markerPresent(root, compiled string) bool {
	if compiled == "" {
		return false
	}
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(compiled)))
	if err != nil {
		return false
	}
	return strings.Contains(string(data), SuppressionMarker)
}
