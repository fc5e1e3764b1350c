package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/worker"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <input.vtt>...",
	Short: "Convert many caption files",
	Long: `Convert several caption files in one run. Each input is written to
<out-dir>/<name>.<ext>, or next to the input when --out-dir is not given.
The first failing file stops the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	outDir        string
	noAsync       bool
	maxConcurrent int
)

func init() {
	addOutputFlags(batchCmd)
	batchCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "output directory (default: next to each input)")
	batchCmd.Flags().BoolVar(&noAsync, "no-async", false, "convert files one at a time")
	batchCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", 0, "files converted in parallel (default from config)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	settings, err := outputSettings(cmd)
	if err != nil {
		return err
	}

	inputs := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
		inputs = append(inputs, abs)
	}

	opts := worker.BatchOptions{
		Inputs:        inputs,
		NoAsync:       cfg.Batch.NoAsync,
		MaxConcurrent: cfg.Batch.MaxConcurrent,
		Settings:      settings,
	}
	if outDir != "" {
		if opts.OutDir, err = filepath.Abs(outDir); err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
	}
	if cmd.Flags().Changed("no-async") {
		opts.NoAsync = noAsync
	}
	if cmd.Flags().Changed("max-concurrent") {
		if maxConcurrent < 1 {
			return fmt.Errorf("--max-concurrent must be at least 1, got %d", maxConcurrent)
		}
		opts.MaxConcurrent = maxConcurrent
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := worker.RunBatch(ctx, opts)
	if err != nil {
		return err
	}

	written, skipped := 0, 0
	for _, res := range results {
		if res.Skipped {
			skipped++
		} else {
			written++
		}
	}
	slog.Info("batch complete", "written", written, "skipped", skipped)
	return nil
}
