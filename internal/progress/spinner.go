// Package progress shows a spinner while blocking provider calls run.
package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

const frameDelay = 100 * time.Millisecond

// Runner runs fn while progress is displayed. The indicator is stopped
// before Run returns, whatever fn does.
type Runner interface {
	Run(message string, fn func() error) error
}

// Spinner is a Runner backed by a terminal spinner.
type Spinner struct {
	writer  io.Writer
	enabled bool
}

// NewSpinner returns a Spinner writing to w. A disabled spinner only runs fn.
func NewSpinner(w io.Writer, enabled bool) *Spinner {
	return &Spinner{writer: w, enabled: enabled && w != nil}
}

func (s *Spinner) Run(message string, fn func() error) error {
	stop := s.start(message)
	defer stop()

	return fn()
}

func (s *Spinner) start(message string) func() {
	if s == nil || !s.enabled {
		return func() {}
	}

	sp := spinner.New(spinner.CharSets[14], frameDelay,
		spinner.WithWriter(s.writer),
		spinner.WithSuffix(" "+message),
	)
	sp.Start()

	return sp.Stop
}

// Nop runs fn without any output.
type Nop struct{}

func (Nop) Run(_ string, fn func() error) error { return fn() }

// Do runs fn through r and returns its value.
func Do[T any](r Runner, message string, fn func() (T, error)) (T, error) {
	if r == nil {
		r = Nop{}
	}

	var out T
	err := r.Run(message, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}
