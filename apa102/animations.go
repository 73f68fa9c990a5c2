package apa102

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// The center pair the ramps play on.
const (
	centerLeft  = 3
	centerRight = 4
)

// Clear blacks out every pixel and transmits.
func (s *Strip) Clear() error {
	s.SetAll(RGB{}, 0)
	return s.Show()
}

// Flash blinks pixel i the given number of times: lit at brightness for
// one interval, dark for the next. The color is stored once up front,
// each blink only touches brightness. Every toggle transmits, so a
// flash of n times is 2n transmissions.
func (s *Strip) Flash(i, times int, interval time.Duration, c RGB, brightness float64) error {
	if err := s.SetPixel(i, c, 0); err != nil {
		return err
	}
	for n := 0; n < times; n++ {
		if err := s.SetPixelBrightness(i, brightness); err != nil {
			return err
		}
		if err := s.Show(); err != nil {
			return err
		}
		time.Sleep(interval)
		if err := s.SetPixelBrightness(i, 0); err != nil {
			return err
		}
		if err := s.Show(); err != nil {
			return err
		}
		time.Sleep(interval)
	}
	return nil
}

// Startup ramps the center pair up from dark to half brightness, then
// lights the remaining pairs outward, then clears. The buffer is
// zeroed without a transmission first, so the whole animation is
// exactly 15 transmissions.
func (s *Strip) Startup(c RGB) error {
	s.SetAll(RGB{}, 0)
	if err := s.SetPixel(centerLeft, c, 0); err != nil {
		return err
	}
	if err := s.SetPixel(centerRight, c, 0); err != nil {
		return err
	}

	for i := 0; i <= 10; i++ {
		f := float64(i) * 0.05
		if err := s.SetPixelBrightness(centerLeft, f); err != nil {
			return err
		}
		if err := s.SetPixelBrightness(centerRight, f); err != nil {
			return err
		}
		if err := s.Show(); err != nil {
			return err
		}
		time.Sleep(100 * time.Millisecond)
	}

	for offset := 2; offset >= 0; offset-- {
		if err := s.SetPixel(offset, c, 0.5); err != nil {
			return err
		}
		if err := s.SetPixel(NumPixels-1-offset, c, 0.5); err != nil {
			return err
		}
		if err := s.Show(); err != nil {
			return err
		}
		time.Sleep(250 * time.Millisecond)
	}

	return s.Clear()
}

// Shutdown is the inverse of Startup: everything lit at full
// brightness, the outer pairs go dark inward, the center pair ramps
// down, then a final clear. 15 transmissions as well.
func (s *Strip) Shutdown(c RGB) error {
	s.SetAll(c, 1.0)
	if err := s.Show(); err != nil {
		return err
	}
	time.Sleep(50 * time.Millisecond)

	for offset := 0; offset <= 2; offset++ {
		if err := s.SetPixelBrightness(offset, 0); err != nil {
			return err
		}
		if err := s.SetPixelBrightness(NumPixels-1-offset, 0); err != nil {
			return err
		}
		if err := s.Show(); err != nil {
			return err
		}
		time.Sleep(250 * time.Millisecond)
	}

	for i := 1; i <= 10; i++ {
		f := float64(10-i) * 0.05
		if err := s.SetPixelBrightness(centerLeft, f); err != nil {
			return err
		}
		if err := s.SetPixelBrightness(centerRight, f); err != nil {
			return err
		}
		if err := s.Show(); err != nil {
			return err
		}
		time.Sleep(100 * time.Millisecond)
	}

	return s.Clear()
}

// Wipe lights the strip pixel by pixel, left to right, leaving it lit.
func (s *Strip) Wipe(c RGB, brightness float64, interval time.Duration) error {
	for i := 0; i < NumPixels; i++ {
		if err := s.SetPixel(i, c, brightness); err != nil {
			return err
		}
		if err := s.Show(); err != nil {
			return err
		}
		time.Sleep(interval)
	}
	return nil
}

// Rainbow rotates a hue gradient across the strip, one transmission
// per step.
func (s *Strip) Rainbow(steps int, interval time.Duration) error {
	for step := 0; step < steps; step++ {
		base := float64(step) / float64(steps) * 360
		for i := 0; i < NumPixels; i++ {
			hue := math.Mod(base+float64(i)*360/NumPixels, 360)
			r, g, b := colorful.Hsv(hue, 1, 1).RGB255()
			if err := s.SetPixel(i, RGB{R: r, G: g, B: b}, DefaultBrightness); err != nil {
				return err
			}
		}
		if err := s.Show(); err != nil {
			return err
		}
		time.Sleep(interval)
	}
	return nil
}
