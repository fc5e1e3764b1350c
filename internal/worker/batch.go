package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/export"
)

// BatchOptions configures a multi-file conversion.
type BatchOptions struct {
	Inputs        []string
	OutDir        string // empty: write next to each input
	NoAsync       bool
	MaxConcurrent int
	Settings
}

// RunBatch converts every input to <out-dir>/<base><ext>. Results are in
// input order. Any failure aborts the batch and names the offending file.
func RunBatch(ctx context.Context, opts BatchOptions) ([]*Result, error) {
	if len(opts.Inputs) == 0 {
		return nil, nil
	}

	jobs, err := planJobs(opts)
	if err != nil {
		return nil, err
	}

	if !opts.NoAsync && opts.MaxConcurrent > 1 && len(jobs) > 1 {
		return runConcurrent(ctx, jobs, opts.MaxConcurrent)
	}
	return runSequential(ctx, jobs)
}

// planJobs maps inputs to output paths and rejects collisions.
func planJobs(opts BatchOptions) ([]Options, error) {
	format := opts.Format
	if format == "" {
		format = export.FormatJSON
	}

	settings := opts.Settings
	settings.Format = format
	if settings.Confirmer != nil {
		settings.Confirmer = &serialConfirmer{c: settings.Confirmer}
	}

	jobs := make([]Options, 0, len(opts.Inputs))
	owners := make(map[string]string, len(opts.Inputs))
	for _, in := range opts.Inputs {
		out := OutputPathFor(in, opts.OutDir, format)
		key := filepath.Clean(out)
		if prev, dup := owners[key]; dup {
			return nil, fmt.Errorf("%s and %s both write %s", prev, in, out)
		}
		owners[key] = in
		jobs = append(jobs, Options{InputPath: in, OutputPath: out, Settings: settings})
	}

	slog.Debug("batch planned", "files", len(jobs), "format", format, "out_dir", opts.OutDir)
	return jobs, nil
}

// OutputPathFor derives the output file for input: the input base name with
// its extension replaced, placed in outDir or beside the input.
func OutputPathFor(input, outDir string, format export.Format) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base+format.Extension())
}
