// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Resolution is the caller's decision for an output path that already exists.
type Resolution int

const (
	// Overwrite replaces the existing file.
	Overwrite Resolution = iota
	// Rename writes to a timestamp-suffixed sibling path instead.
	Rename
	// Cancel aborts the whole run.
	Cancel
)

// OutputResolver decides what to do when the output path already exists.
// The pipeline itself never prompts; interactive behavior lives in the
// caller that injects the resolver.
type OutputResolver func(path string) (Resolution, error)

// ErrCancelled is returned when the resolver cancels the run. Callers treat
// it as a normal exit, not a failure to report.
var ErrCancelled = errors.New("operation cancelled")

// confirmOutput resolves the final output path. A nonexistent path passes
// through untouched; an existing one goes to the resolver.
func (r *Runner) confirmOutput(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", fmt.Errorf("checking output path %s: %w", path, err)
	}

	if r.ResolveOutput == nil {
		return path, nil
	}
	res, err := r.ResolveOutput(path)
	if err != nil {
		return "", err
	}
	switch res {
	case Overwrite:
		return path, nil
	case Rename:
		return timestampedPath(path), nil
	default:
		return "", ErrCancelled
	}
}

// timestampedPath appends the current Unix time to the file stem:
// output.md becomes output_1735689600.md in the same directory.
func timestampedPath(path string) string {
	dir := filepath.Dir(path)
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(dir, fmt.Sprintf("%s_%d.md", stem, time.Now().Unix()))
}

// writeOutput serializes the ordered results in a single pass: optional
// title heading, trimmed body, and the separator between sections only —
// never after the last one.
func writeOutput(path string, results []Result, separator string, addHeaders bool) error {
	var sb strings.Builder
	for i, res := range results {
		if addHeaders {
			fmt.Fprintf(&sb, "# %s\n\n", res.Title)
		}
		sb.WriteString(strings.TrimSpace(res.Markdown))
		sb.WriteString("\n\n")
		if i < len(results)-1 {
			sb.WriteString(separator)
			sb.WriteString("\n\n")
		}
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing output %s: %w", path, err)
	}
	return nil
}
