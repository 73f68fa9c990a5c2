package apa102

import (
	"fmt"
	"time"

	"ledbar/gpio"
)

const (
	// Start frame: 32 zero bits.
	sofBits = 32
	// End frame. Half a bit per pixel would do for genuine APA102s,
	// but SK9822-style clones want extra clock pulses before they
	// latch, so this stays generously above the minimum.
	eofBits = 36
	// The top three bits of a pixel's first byte are always set.
	brightnessMarker = 0xE0
)

// writeBit puts one bit on the data line and pulses the clock.
// Receivers shift on the falling edge.
func (s *Strip) writeBit(level gpio.Level) error {
	if err := s.data.Set(level); err != nil {
		return err
	}
	if err := s.clock.Set(gpio.High); err != nil {
		return err
	}
	return s.clock.Set(gpio.Low)
}

func (s *Strip) writeByte(b byte) error {
	for i := 7; i >= 0; i-- {
		if err := s.writeBit(gpio.Level(b&(1<<uint(i)) != 0)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Strip) writeZeros(n int) error {
	for i := 0; i < n; i++ {
		if err := s.writeBit(gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

// show clocks the whole buffer out: start frame, one 4-byte frame per
// pixel in marker/blue/green/red order, end frame. Callers hold mu.
func (s *Strip) show() error {
	if err := s.writeZeros(sofBits); err != nil {
		return fmt.Errorf("start frame: %w", err)
	}
	for i := range s.buffer {
		px := s.buffer[i]
		for _, b := range [4]byte{brightnessMarker | px.Brightness, px.B, px.G, px.R} {
			if err := s.writeByte(b); err != nil {
				return fmt.Errorf("pixel %d: %w", i, err)
			}
		}
	}
	if err := s.writeZeros(eofBits); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}

// Show transmits the buffer to the strip. It returns once the final
// bit has been clocked out.
func (s *Strip) Show() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return fmt.Errorf("%w: state is %s", ErrClosed, s.state)
	}
	if err := s.show(); err != nil {
		return err
	}
	s.publish()
	return nil
}

// publish hands a snapshot of the buffer to subscribers. Callers hold
// mu.
func (s *Strip) publish() {
	pixels := make([]Pixel, NumPixels)
	copy(pixels, s.buffer[:])
	s.frames.Publish(Frame{Pixels: pixels, At: time.Now()})
}
