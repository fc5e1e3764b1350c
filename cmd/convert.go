package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/config"
	"github.com/SteveGJones/Active-Meeting-Listener/internal/export"
	"github.com/SteveGJones/Active-Meeting-Listener/internal/worker"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.vtt> <output>",
	Short: "Convert one caption file",
	Long: `Convert a caption file into speaker turns. The output format comes from
--format, the config file, or the output extension (.json, .yaml, .srt,
.vtt, .txt), in that order. JSON is used when none of them decide.

If the output exists you are asked before it is replaced, unless --force
or --overwrite says otherwise. Declining leaves the file untouched.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

var (
	format       string
	indent       int
	charsPerLine int
	overwrite    string
	force        bool
)

func init() {
	addOutputFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

// addOutputFlags registers the serialization flags shared by root, convert
// and batch. Flag values only override the config when set explicitly.
func addOutputFlags(cmd *cobra.Command) {
	defaults := config.Default()

	cmd.Flags().StringVar(&format, "format", defaults.Output.Format, "output format: json, yaml, srt, vtt, txt (default: from output extension)")
	cmd.Flags().IntVar(&indent, "indent", defaults.Output.Indent, "JSON indent width, 0 for compact")
	cmd.Flags().IntVar(&charsPerLine, "chars-per-line", defaults.Output.CharsPerLine, "line wrap width for srt/vtt cues, 0 disables wrapping")
	cmd.Flags().StringVar(&overwrite, "overwrite", defaults.Output.Overwrite, "existing output policy: prompt, always, never")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing output without asking")
}

// outputSettings merges config values with explicitly set flags.
func outputSettings(cmd *cobra.Command) (worker.Settings, error) {
	merged := *cfg
	flags := cmd.Flags()
	if flags.Changed("format") {
		merged.Output.Format = strings.ToLower(strings.TrimSpace(format))
	}
	if flags.Changed("indent") {
		merged.Output.Indent = indent
	}
	if flags.Changed("chars-per-line") {
		merged.Output.CharsPerLine = charsPerLine
	}
	if flags.Changed("overwrite") {
		merged.Output.Overwrite = strings.ToLower(strings.TrimSpace(overwrite))
	}
	if err := merged.Validate(); err != nil {
		return worker.Settings{}, err
	}

	settings := worker.Settings{
		Export: export.Options{
			Indent:       merged.Output.Indent,
			CharsPerLine: merged.Output.CharsPerLine,
		},
		Overwrite: merged.Output.Overwrite,
		Force:     force,
		Confirmer: worker.NewTerminalConfirmer(),
	}
	if merged.Output.Format != "" {
		f, err := export.ParseFormat(merged.Output.Format)
		if err != nil {
			return worker.Settings{}, err
		}
		settings.Format = f
	}
	return settings, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	outputPath, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	settings, err := outputSettings(cmd)
	if err != nil {
		return err
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := worker.Run(ctx, worker.Options{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Settings:   settings,
	})
	if err != nil {
		return err
	}

	if res.Skipped {
		slog.Info("output left unchanged", "path", outputPath)
		return nil
	}
	if !quiet {
		slog.Info("done")
	}
	return nil
}
