package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// LineReader reads one line of operator input at a time.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader returns a liner-backed editor when both in and out are
// terminals, and a bufio.Scanner fallback otherwise so piped input and tests
// work.
func NewLineReader(in io.Reader, out io.Writer) LineReader {
	if fi, ok := in.(*os.File); ok {
		if fo, ok2 := out.(*os.File); ok2 {
			if isatty.IsTerminal(fi.Fd()) && isatty.IsTerminal(fo.Fd()) {
				l := liner.NewLiner()
				l.SetCtrlCAborts(true)
				return &linerReader{l: l, out: fo}
			}
		}
	}
	return &scannerReader{scanner: bufio.NewScanner(in), out: out}
}

type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (s *scannerReader) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprint(s.out, prompt); err != nil {
		return "", err
	}
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scannerReader) Close() error { return nil }

type linerReader struct {
	l   *liner.State
	out io.Writer
}

// splitPrompt separates the leading blank lines from the prompt text, since
// liner refuses prompts that contain control characters.
func splitPrompt(prompt string) (lead, text string) {
	text = strings.TrimLeft(prompt, "\r\n")
	lead = prompt[:len(prompt)-len(text)]
	return lead, strings.TrimRight(text, "\r\n")
}

func (lr *linerReader) ReadLine(prompt string) (string, error) {
	lead, text := splitPrompt(prompt)
	if lead != "" {
		if _, err := io.WriteString(lr.out, strings.ReplaceAll(lead, "\r", "")); err != nil {
			return "", err
		}
	}
	line, err := lr.l.Prompt(text)
	if err != nil {
		// Ctrl-C ends the session the same way Ctrl-D does.
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		lr.l.AppendHistory(line)
	}
	return line, nil
}

func (lr *linerReader) Close() error {
	return lr.l.Close()
}
