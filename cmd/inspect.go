package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/pipeline"
	"github.com/SteveGJones/Active-Meeting-Listener/internal/worker"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.vtt>",
	Short: "Show the speaker turns of a caption file as a table",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var previewWidth int

func init() {
	inspectCmd.Flags().IntVar(&previewWidth, "width", 60, "maximum width of the text column")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	res, err := pipeline.ProcessFile(args[0])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", worker.ErrInputNotFound, args[0])
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTurns(res, previewWidth, shouldColorize(out)))
	return nil
}

func renderTurns(res *pipeline.Result, width int, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	if colorize {
		tw.Style().Color.Header = text.Colors{text.Bold}
		tw.Style().Color.Footer = text.Colors{text.Faint}
	}

	tw.AppendHeader(table.Row{"#", "Events", "Start", "End", "Speaker", "Text"})
	for i, turn := range res.Turns {
		tw.AppendRow(table.Row{
			i + 1,
			strings.Join(turn.CollatedEvents, ","),
			turn.Start,
			turn.End,
			turn.SpeakerName(),
			turn.Text,
		})
	}
	tw.AppendFooter(table.Row{
		"",
		strconv.Itoa(res.Stats.Events) + " events",
		"",
		strconv.Itoa(res.Stats.Records) + " cues",
		strconv.Itoa(res.Stats.Speakers) + " speakers",
		strconv.Itoa(res.Stats.Turns) + " turns",
	})

	configs := []table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	}
	if width > 0 {
		configs = append(configs, table.ColumnConfig{Number: 6, WidthMax: width, WidthMaxEnforcer: text.Trim})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
