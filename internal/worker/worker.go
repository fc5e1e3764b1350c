package worker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/config"
	"github.com/SteveGJones/Active-Meeting-Listener/internal/export"
	"github.com/SteveGJones/Active-Meeting-Listener/internal/pipeline"
)

var (
	// ErrInputNotFound is returned when the caption file does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrIO wraps failures reading the input or writing the output.
	ErrIO = errors.New("i/o failure")
)

// Settings are shared by single-file and batch conversions.
type Settings struct {
	Format    export.Format // empty: infer from the output path
	Export    export.Options
	Overwrite string // config.OverwritePrompt, OverwriteAlways or OverwriteNever
	Force     bool
	Confirmer Confirmer
}

// Options configures a single conversion.
type Options struct {
	InputPath  string
	OutputPath string
	Settings
}

// Result describes one finished (or skipped) conversion.
type Result struct {
	InputPath  string
	OutputPath string
	Format     export.Format
	Stats      pipeline.Stats
	Skipped    bool
}

// Run converts one caption file into a speaker-turn document. Declining an
// overwrite is not an error: the result comes back with Skipped set.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{InputPath: opts.InputPath, OutputPath: opts.OutputPath}

	info, err := os.Stat(opts.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, opts.InputPath)
		}
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, opts.InputPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrIO, opts.InputPath)
	}

	format := opts.Format
	if format == "" {
		format = export.FormatFromPath(opts.OutputPath)
	}
	res.Format = format

	write, err := shouldWrite(opts)
	if err != nil {
		return nil, err
	}
	if !write {
		res.Skipped = true
		return res, nil
	}

	slog.Info("converting", "input", filepath.Base(opts.InputPath), "format", format)

	processed, err := pipeline.ProcessFile(opts.InputPath)
	if err != nil {
		if errors.Is(err, pipeline.ErrMalformedIdentifier) || errors.Is(err, pipeline.ErrInvalidNumericField) {
			return nil, fmt.Errorf("%s: %w", opts.InputPath, err)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, opts.InputPath, err)
	}
	res.Stats = processed.Stats

	data, err := export.Marshal(processed.Turns, format, opts.Export)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	if err := export.WriteFile(opts.OutputPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	slog.Info("output saved",
		"path", opts.OutputPath,
		"turns", processed.Stats.Turns,
		"speakers", processed.Stats.Speakers)
	return res, nil
}

// shouldWrite applies the overwrite policy when the output already exists.
func shouldWrite(opts Options) (bool, error) {
	info, err := os.Stat(opts.OutputPath)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %w", ErrIO, opts.OutputPath, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%w: output %s is a directory", ErrIO, opts.OutputPath)
	}

	if opts.Force {
		return true, nil
	}
	switch opts.Overwrite {
	case config.OverwriteAlways:
		return true, nil
	case config.OverwriteNever:
		slog.Info("output exists, skipping", "path", opts.OutputPath)
		return false, nil
	}

	if opts.Confirmer == nil {
		slog.Warn("output exists and cannot ask for confirmation, skipping", "path", opts.OutputPath)
		return false, nil
	}
	ok, err := opts.Confirmer.Confirm(fmt.Sprintf("Output file '%s' already exists. Overwrite? (y/n): ", opts.OutputPath))
	if err != nil {
		return false, err
	}
	if !ok {
		slog.Info("overwrite declined", "path", opts.OutputPath)
	}
	return ok, nil
}
