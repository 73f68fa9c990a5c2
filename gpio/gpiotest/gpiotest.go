// Package gpiotest provides a recording Chip so tests can assert the
// exact traffic a driver clocks out over its lines.
package gpiotest

import (
	"fmt"
	"sync"

	"ledbar/gpio"
)

// Event is one Set call observed on a line.
type Event struct {
	Offset int
	Level  gpio.Level
}

// Chip hands out lines that record every Output, Set and Close call.
type Chip struct {
	mu        sync.Mutex
	events    []Event
	outputs   []int
	closes    []int
	lineErrs  map[int]error
	setErr    error
	failAfter int
	sets      int
}

func New() *Chip {
	return &Chip{lineErrs: make(map[int]error), failAfter: -1}
}

// FailLine makes requesting the line at offset fail with err.
func (c *Chip) FailLine(offset int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lineErrs[offset] = err
}

// FailAfter makes every Set call after the first n fail with err.
func (c *Chip) FailAfter(n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failAfter = n
	c.setErr = err
}

func (c *Chip) Line(offset int) (gpio.Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.lineErrs[offset]; err != nil {
		return nil, err
	}
	return &line{chip: c, offset: offset}, nil
}

func (c *Chip) Close() error {
	return nil
}

// Events returns a copy of every Set recorded so far, in order.
func (c *Chip) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Outputs returns the offsets configured as outputs, in order.
func (c *Chip) Outputs() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, len(c.outputs))
	copy(out, c.outputs)
	return out
}

// Closes returns the offsets of lines that have been closed, in order.
func (c *Chip) Closes() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, len(c.closes))
	copy(out, c.closes)
	return out
}

// Reset drops the recorded events, so a test can scope its assertions
// to one phase of a scenario. The FailAfter counter restarts too.
func (c *Chip) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
	c.sets = 0
}

type line struct {
	chip   *Chip
	offset int
}

func (l *line) Output() error {
	l.chip.mu.Lock()
	defer l.chip.mu.Unlock()
	l.chip.outputs = append(l.chip.outputs, l.offset)
	return nil
}

func (l *line) Set(level gpio.Level) error {
	l.chip.mu.Lock()
	defer l.chip.mu.Unlock()
	if l.chip.failAfter >= 0 && l.chip.sets >= l.chip.failAfter {
		return l.chip.setErr
	}
	l.chip.sets++
	l.chip.events = append(l.chip.events, Event{Offset: l.offset, Level: level})
	return nil
}

func (l *line) Close() error {
	l.chip.mu.Lock()
	defer l.chip.mu.Unlock()
	l.chip.closes = append(l.chip.closes, l.offset)
	return nil
}

// FallingEdges extracts the data-line levels sampled at every
// high-to-low transition of the clock line, which is what a receiver
// shifting on the falling edge would see.
func FallingEdges(events []Event, dataOffset, clockOffset int) []gpio.Level {
	var bits []gpio.Level
	var data, clock gpio.Level
	for _, e := range events {
		switch e.Offset {
		case dataOffset:
			data = e.Level
		case clockOffset:
			if clock == gpio.High && e.Level == gpio.Low {
				bits = append(bits, data)
			}
			clock = e.Level
		}
	}
	return bits
}

// Bytes packs sampled bits MSB-first into bytes. The bit count must
// divide evenly into bytes.
func Bytes(bits []gpio.Level) []byte {
	if len(bits)%8 != 0 {
		panic(fmt.Sprintf("gpiotest: %d bits does not divide into bytes", len(bits)))
	}
	out := make([]byte, 0, len(bits)/8)
	for i := 0; i < len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b <<= 1
			if bits[i+j] == gpio.High {
				b |= 1
			}
		}
		out = append(out, b)
	}
	return out
}
