// Package apa102 drives a fixed-length APA102-compatible LED strip by
// bit-banging its two-wire protocol over a pair of GPIO lines.
package apa102

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ledbar/gpio"
	"ledbar/pubsub"
)

var alog zerolog.Logger

func init() {
	alog = log.With().Str("component", "apa102").Logger()
}

// NumPixels is the length of the strip. The built-in animations are
// written against it: the center pair and the mirror arithmetic assume
// this exact length.
const NumPixels = 8

var (
	ErrPixelIndex = errors.New("pixel index out of range")
	ErrClosed     = errors.New("strip is closed")
)

// Config carries the wiring of a strip.
type Config struct {
	DataLine  int
	ClockLine int
	// ClearOnExit arms clear-on-exit at construction, as if
	// SetClearOnExit had been called on the fresh strip.
	ClearOnExit bool
}

type State string

const (
	StateUninitialized State = "uninitialized"
	StateReady         State = "ready"
	StateCleaningUp    State = "cleaning_up"
	StateExited        State = "exited"
)

// Frame is a snapshot of the strip as of one transmission.
type Frame struct {
	Pixels []Pixel   `json:"pixels"`
	At     time.Time `json:"at"`
}

// Strip is a handle on the LED strip. All operations are safe for
// concurrent use; mutations and transmissions serialize on an internal
// mutex so only one frame is ever on the wire at a time.
type Strip struct {
	data  gpio.Line
	clock gpio.Line

	mu          sync.Mutex
	buffer      [NumPixels]Pixel
	state       State
	clearOnExit bool

	frames    *pubsub.Pubsub[Frame]
	closeOnce sync.Once
	closeErr  error
	armOnce   sync.Once
}

// New acquires both lines from chip and configures them as outputs.
// The chip stays owned by the caller.
func New(chip gpio.Chip, cfg Config) (*Strip, error) {
	s := &Strip{
		state:  StateUninitialized,
		frames: pubsub.New[Frame](),
	}

	data, err := chip.Line(cfg.DataLine)
	if err != nil {
		return nil, fmt.Errorf("requesting data line %d: %w", cfg.DataLine, err)
	}
	clock, err := chip.Line(cfg.ClockLine)
	if err != nil {
		data.Close()
		return nil, fmt.Errorf("requesting clock line %d: %w", cfg.ClockLine, err)
	}

	if err := data.Output(); err != nil {
		data.Close()
		clock.Close()
		return nil, fmt.Errorf("configuring data line %d as output: %w", cfg.DataLine, err)
	}
	if err := clock.Output(); err != nil {
		data.Close()
		clock.Close()
		return nil, fmt.Errorf("configuring clock line %d as output: %w", cfg.ClockLine, err)
	}

	s.data = data
	s.clock = clock
	s.state = StateReady

	if cfg.ClearOnExit {
		s.SetClearOnExit()
	}

	alog.Debug().Int("data_line", cfg.DataLine).Int("clock_line", cfg.ClockLine).Msg("Strip ready")
	return s, nil
}

func (s *Strip) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel receiving every transmitted frame, plus
// an unsubscribe func that must be called when done with it.
func (s *Strip) Subscribe() (func(), <-chan Frame) {
	id, ch := s.frames.Subscribe()
	return func() {
		s.frames.Unsubscribe(id)
	}, ch
}

// SetClearOnExit makes Close black out the strip before releasing the
// lines, and registers an interrupt handler that closes the strip and
// terminates the process. Only the first call has any effect.
func (s *Strip) SetClearOnExit() {
	s.armOnce.Do(func() {
		s.mu.Lock()
		s.clearOnExit = true
		s.mu.Unlock()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-ch
			alog.Info().Str("signal", sig.String()).Msg("Terminating, clearing strip")
			s.Close()
			os.Exit(0)
		}()
	})
}

// Close optionally clears the strip, then releases both lines. It is
// idempotent: later calls return the first result and the strip stays
// exited for good.
func (s *Strip) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state = StateCleaningUp
		if s.clearOnExit {
			s.buffer = [NumPixels]Pixel{}
			if err := s.show(); err != nil {
				s.closeErr = err
				alog.Err(err).Msg("Clearing strip during close failed")
			}
		}
		if err := s.data.Close(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
		if err := s.clock.Close(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
		s.state = StateExited
		alog.Debug().Msg("Strip closed")
	})
	return s.closeErr
}
