package main

import (
	"fmt"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"ledbar/apa102"
)

// Defaults for the request fields callers may leave out.
const (
	DefaultFlashTimes      = 3
	DefaultFlashInterval   = 500 * time.Millisecond
	DefaultWipeInterval    = 100 * time.Millisecond
	DefaultRainbowSteps    = 32
	DefaultRainbowInterval = 50 * time.Millisecond
)

// ColorInput selects a color either as a hex string or as per-channel
// integers. Channels left out are 0; out-of-range channels clamp.
type ColorInput struct {
	Color string `json:"color,omitempty"`
	R     *int   `json:"r,omitempty"`
	G     *int   `json:"g,omitempty"`
	B     *int   `json:"b,omitempty"`
}

func (ci ColorInput) specified() bool {
	return ci.Color != "" || ci.R != nil || ci.G != nil || ci.B != nil
}

func clampChannel(v *int) uint8 {
	if v == nil {
		return 0
	}
	if *v < 0 {
		return 0
	}
	if *v > 255 {
		return 255
	}
	return uint8(*v)
}

// RGB resolves the input. A hex string wins over channel fields.
func (ci ColorInput) RGB() (apa102.RGB, error) {
	if ci.Color != "" {
		c, err := colorful.Hex(ci.Color)
		if err != nil {
			return apa102.RGB{}, fmt.Errorf("%w: bad color %q", ErrValidation, ci.Color)
		}
		r, g, b := c.RGB255()
		return apa102.RGB{R: r, G: g, B: b}, nil
	}
	return apa102.RGB{
		R: clampChannel(ci.R),
		G: clampChannel(ci.G),
		B: clampChannel(ci.B),
	}, nil
}

// RGBOr resolves the input, falling back when no color was given at
// all.
func (ci ColorInput) RGBOr(fallback apa102.RGB) (apa102.RGB, error) {
	if !ci.specified() {
		return fallback, nil
	}
	return ci.RGB()
}

// PixelRequest is the body of the pixel-setting endpoints.
type PixelRequest struct {
	ColorInput
	Brightness *float64 `json:"brightness,omitempty"`
}

func (pr PixelRequest) BrightnessOr(fallback float64) float64 {
	if pr.Brightness == nil {
		return fallback
	}
	return *pr.Brightness
}

// BrightnessRequest adjusts brightness strip-wide, or one pixel when
// index is given.
type BrightnessRequest struct {
	Brightness float64 `json:"brightness"`
	Index      *int    `json:"index,omitempty"`
}

type FlashRequest struct {
	PixelRequest
	Times      *int `json:"times,omitempty"`
	IntervalMS *int `json:"interval_ms,omitempty"`
}

func (fr FlashRequest) times() (int, error) {
	if fr.Times == nil {
		return DefaultFlashTimes, nil
	}
	if *fr.Times <= 0 {
		return 0, fmt.Errorf("%w: times must be positive", ErrValidation)
	}
	return *fr.Times, nil
}

// AnimationRequest parameterizes the named animations. Fields that do
// not apply to a given animation are ignored.
type AnimationRequest struct {
	PixelRequest
	IntervalMS *int `json:"interval_ms,omitempty"`
	Steps      *int `json:"steps,omitempty"`
}

func intervalOr(ms *int, fallback time.Duration) time.Duration {
	if ms == nil || *ms < 0 {
		return fallback
	}
	return time.Duration(*ms) * time.Millisecond
}

func stepsOr(steps *int, fallback int) int {
	if steps == nil || *steps <= 0 {
		return fallback
	}
	return *steps
}
