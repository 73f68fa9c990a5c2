package apa102_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledbar/apa102"
)

// brightnessOf pulls the 5-bit brightness of one pixel out of a
// transmission payload.
func brightnessOf(payload []byte, pixel int) byte {
	return payload[pixel*4] & 0x1F
}

func TestClear(t *testing.T) {
	strip, chip := newTestStrip(t)

	strip.SetAll(apa102.RGB{R: 255, G: 255, B: 255}, 1)
	chip.Reset()

	require.NoError(t, strip.Clear())
	assert.Equal(t, 1, countShows(t, chip))
	for i, px := range strip.Pixels() {
		assert.Equal(t, apa102.Pixel{}, px, "pixel %d", i)
	}
}

func TestFlashTransmissionCount(t *testing.T) {
	strip, chip := newTestStrip(t)

	require.NoError(t, strip.Flash(0, 3, time.Millisecond, apa102.RGB{R: 255}, 1.0))
	assert.Equal(t, 6, countShows(t, chip))

	// Lit on even toggles, dark on odd, finishing dark.
	assert.Equal(t, byte(31), brightnessOf(showPayload(t, chip, 0), 0))
	assert.Equal(t, byte(0), brightnessOf(showPayload(t, chip, 1), 0))
	assert.Equal(t, uint8(0), strip.Pixels()[0].Brightness)
}

func TestFlashBadIndex(t *testing.T) {
	strip, chip := newTestStrip(t)

	assert.ErrorIs(t, strip.Flash(apa102.NumPixels, 2, time.Millisecond, apa102.RGB{}, 1), apa102.ErrPixelIndex)
	assert.Equal(t, 0, countShows(t, chip), "nothing may reach the wire on a bad index")
}

func TestStartupChoreography(t *testing.T) {
	strip, chip := newTestStrip(t)

	strip.SetAll(apa102.RGB{R: 1, G: 1, B: 1}, 1)
	chip.Reset()

	require.NoError(t, strip.Startup(apa102.RGB{R: 255}))
	require.Equal(t, 15, countShows(t, chip))

	// The ramp starts dark and ends at half brightness on the center
	// pair only.
	first := showPayload(t, chip, 0)
	for px := 0; px < apa102.NumPixels; px++ {
		assert.Equal(t, byte(0), brightnessOf(first, px), "show 0 pixel %d", px)
	}
	ramped := showPayload(t, chip, 10)
	assert.Equal(t, byte(15), brightnessOf(ramped, 3))
	assert.Equal(t, byte(15), brightnessOf(ramped, 4))
	assert.Equal(t, byte(0), brightnessOf(ramped, 0))

	// Pairs light outward: (2,5) then (1,6) then (0,7).
	assert.Equal(t, byte(15), brightnessOf(showPayload(t, chip, 11), 2))
	assert.Equal(t, byte(15), brightnessOf(showPayload(t, chip, 11), 5))
	assert.Equal(t, byte(0), brightnessOf(showPayload(t, chip, 11), 0))
	assert.Equal(t, byte(15), brightnessOf(showPayload(t, chip, 13), 0))
	assert.Equal(t, byte(15), brightnessOf(showPayload(t, chip, 13), 7))

	// It ends cleared.
	last := showPayload(t, chip, 14)
	for px := 0; px < apa102.NumPixels; px++ {
		assert.Equal(t, byte(0), brightnessOf(last, px), "final show pixel %d", px)
	}
	for i, px := range strip.Pixels() {
		assert.Equal(t, apa102.Pixel{}, px, "pixel %d", i)
	}
}

func TestShutdownChoreography(t *testing.T) {
	strip, chip := newTestStrip(t)

	require.NoError(t, strip.Shutdown(apa102.RGB{B: 255}))
	require.Equal(t, 15, countShows(t, chip))

	// Opens with the whole strip at full brightness.
	first := showPayload(t, chip, 0)
	for px := 0; px < apa102.NumPixels; px++ {
		assert.Equal(t, byte(31), brightnessOf(first, px), "show 0 pixel %d", px)
	}

	// Pairs go dark inward: (0,7) first, center pair still lit.
	second := showPayload(t, chip, 1)
	assert.Equal(t, byte(0), brightnessOf(second, 0))
	assert.Equal(t, byte(0), brightnessOf(second, 7))
	assert.Equal(t, byte(31), brightnessOf(second, 3))

	// After the last inward step only the center pair remains, then it
	// ramps down from just under half.
	assert.Equal(t, byte(13), brightnessOf(showPayload(t, chip, 4), 3), "0.45 quantized")

	last := showPayload(t, chip, 14)
	for px := 0; px < apa102.NumPixels; px++ {
		assert.Equal(t, byte(0), brightnessOf(last, px), "final show pixel %d", px)
	}
}

func TestWipe(t *testing.T) {
	strip, chip := newTestStrip(t)

	require.NoError(t, strip.Wipe(apa102.RGB{G: 255}, 1, time.Millisecond))
	assert.Equal(t, apa102.NumPixels, countShows(t, chip))

	// The nth transmission has pixels 0..n lit and the rest dark.
	half := showPayload(t, chip, 3)
	assert.Equal(t, byte(31), brightnessOf(half, 3))
	assert.Equal(t, byte(0), brightnessOf(half, 4))

	for i, px := range strip.Pixels() {
		assert.Equal(t, apa102.Pixel{G: 255, Brightness: 31}, px, "pixel %d", i)
	}
}

func TestRainbow(t *testing.T) {
	strip, chip := newTestStrip(t)

	require.NoError(t, strip.Rainbow(5, time.Millisecond))
	assert.Equal(t, 5, countShows(t, chip))

	pixels := strip.Pixels()
	assert.NotEqual(t, pixels[0], pixels[3], "the gradient must vary across the strip")
	for i, px := range pixels {
		assert.Equal(t, uint8(6), px.Brightness, "pixel %d", i)
	}
}
