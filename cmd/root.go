package cmd

import (
	"log/slog"
	"os"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/config"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "vtt2json <input.vtt> <output>",
	Short: "Convert meeting captions into speaker-attributed transcript turns",
	Long: `vtt2json reads a WebVTT caption file produced by a meeting transcription
tool, reassembles the fragmented cues into one record per caption event,
and merges consecutive events from the same speaker into turns.

Called with two arguments it behaves like "vtt2json convert".`,
	Args:              cobra.ExactArgs(2),
	PersistentPreRunE: loadConfig,
	RunE:              runConvert,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, path, exists, err := config.Load(configPath)
	if err != nil {
		setupLogging(slog.LevelInfo)
		return err
	}
	cfg = loaded
	setupLogging(cfg.SlogLevel())
	if exists {
		slog.Debug("config loaded", "path", path)
	}
	return nil
}

func setupLogging(level slog.Level) {
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/vtt2json/config.toml, then ./vtt2json.toml)")
	addOutputFlags(rootCmd)
}
