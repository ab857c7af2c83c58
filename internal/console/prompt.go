// Package console collects the run inputs from an interactive terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/manifoldco/promptui"
)

// Prompter asks the user for one line of input.
type Prompter interface {
	// Ask shows label and returns the answer. An empty answer yields def;
	// validate, when set, rejects the answer.
	Ask(label, def string, validate func(string) error) (string, error)
}

// LineReader is a Prompter reading every answer from one readline instance,
// so text pasted ahead of a question is kept for the next ones.
type LineReader struct {
	rl  *readline.Instance
	eof bool
}

// NewLineReader reads from in, or from the terminal when in is nil.
func NewLineReader(in io.ReadCloser, out io.Writer) (*LineReader, error) {
	cfg := &readline.Config{
		Stdout: out,
		// Ctrl-C and Ctrl-D are reported as errors, not echoed.
		InterruptPrompt: "\n",
		EOFPrompt:       "\n",
	}
	if in != nil {
		noop := func() error { return nil }
		cfg.Stdin = in
		cfg.FuncIsTerminal = func() bool { return false }
		cfg.FuncMakeRaw = noop
		cfg.FuncExitRaw = noop
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening the terminal: %w", err)
	}
	return &LineReader{rl: rl}, nil
}

func (l *LineReader) Ask(label, def string, validate func(string) error) (string, error) {
	// readline stops reading for good once it has seen the end of input.
	if l.eof {
		return "", io.EOF
	}

	l.rl.SetPrompt(promptLabel(label, def))
	line, err := l.rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrInterrupted
	case errors.Is(err, io.EOF):
		l.eof = true
		return "", io.EOF
	case err != nil:
		return "", err
	}

	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" && def != "" {
		line = def
	}

	if validate != nil {
		if err := validate(line); err != nil {
			return "", err
		}
	}
	return line, nil
}

// Close releases the terminal.
func (l *LineReader) Close() error {
	return l.rl.Close()
}

func promptLabel(label, def string) string {
	if label == "" {
		return ""
	}

	bold := promptui.Styler(promptui.FGBold)
	if def != "" {
		return fmt.Sprintf("%s %s (default %s): ", promptui.IconInitial, bold(label), def)
	}
	return fmt.Sprintf("%s %s: ", promptui.IconInitial, bold(label))
}
