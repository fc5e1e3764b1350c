package worker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// TerminalConfirmer prompts on Out and reads the answer from In. Only "y"
// or "Y" counts as yes.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewTerminalConfirmer returns a confirmer bound to stdin and stdout.
func NewTerminalConfirmer() *TerminalConfirmer {
	return &TerminalConfirmer{In: os.Stdin, Out: os.Stdout}
}

func (c *TerminalConfirmer) Confirm(prompt string) (bool, error) {
	if f, ok := c.In.(*os.File); ok && !isTerminal(f) {
		slog.Warn("stdin is not a terminal, declining overwrite")
		return false, nil
	}

	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}

	fmt.Fprint(c.Out, prompt)
	line, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y", nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// serialConfirmer keeps concurrent batch jobs from interleaving prompts.
type serialConfirmer struct {
	mu sync.Mutex
	c  Confirmer
}

func (s *serialConfirmer) Confirm(prompt string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Confirm(prompt)
}
