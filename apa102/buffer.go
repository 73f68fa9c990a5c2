package apa102

import (
	"fmt"
)

// SetPixel stores c at index i with the given brightness fraction.
// Nothing is transmitted until Show.
func (s *Strip) SetPixel(i int, c RGB, brightness float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= NumPixels {
		return fmt.Errorf("%w: %d", ErrPixelIndex, i)
	}
	s.buffer[i] = EncodePixel(c, brightness)
	return nil
}

// SetAll stores the same color and brightness on every pixel.
func (s *Strip) SetAll(c RGB, brightness float64) {
	px := EncodePixel(c, brightness)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.buffer {
		s.buffer[i] = px
	}
}

// SetBrightness overwrites every pixel's brightness, leaving colors
// untouched.
func (s *Strip) SetBrightness(brightness float64) {
	b := EncodeBrightness(brightness)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.buffer {
		s.buffer[i].Brightness = b
	}
}

// SetPixelBrightness overwrites one pixel's brightness, leaving its
// color untouched.
func (s *Strip) SetPixelBrightness(i int, brightness float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= NumPixels {
		return fmt.Errorf("%w: %d", ErrPixelIndex, i)
	}
	s.buffer[i].Brightness = EncodeBrightness(brightness)
	return nil
}

// SetPixels replaces the whole buffer with already-encoded pixels,
// typically a stored preset. Brightness values above the 5-bit ceiling
// clamp to it.
func (s *Strip) SetPixels(pixels []Pixel) error {
	if len(pixels) != NumPixels {
		return fmt.Errorf("got %d pixels, strip has %d", len(pixels), NumPixels)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, px := range pixels {
		if px.Brightness > maxBrightness {
			px.Brightness = maxBrightness
		}
		s.buffer[i] = px
	}
	return nil
}

// Pixels returns a copy of the buffer. Mutating the copy does not
// touch the strip.
func (s *Strip) Pixels() []Pixel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Pixel, NumPixels)
	copy(out, s.buffer[:])
	return out
}
