package apa102_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledbar/apa102"
	"ledbar/gpio"
	"ledbar/gpio/gpiotest"
)

const (
	testDataLine  = 23
	testClockLine = 24

	// 32 start bits, 32 per pixel, 36 end bits.
	bitsPerShow = 32 + 32*apa102.NumPixels + 36
)

func newTestStrip(t *testing.T) (*apa102.Strip, *gpiotest.Chip) {
	t.Helper()
	chip := gpiotest.New()
	strip, err := apa102.New(chip, apa102.Config{DataLine: testDataLine, ClockLine: testClockLine})
	require.NoError(t, err)
	t.Cleanup(func() {
		strip.Close()
	})
	return strip, chip
}

func clockedBits(chip *gpiotest.Chip) []gpio.Level {
	return gpiotest.FallingEdges(chip.Events(), testDataLine, testClockLine)
}

func countShows(t *testing.T, chip *gpiotest.Chip) int {
	t.Helper()
	bits := clockedBits(chip)
	require.Zero(t, len(bits)%bitsPerShow, "partial transmission on the wire")
	return len(bits) / bitsPerShow
}

// showPayload returns the 32 pixel-frame bytes of the nth transmission
// recorded on chip.
func showPayload(t *testing.T, chip *gpiotest.Chip, n int) []byte {
	t.Helper()
	bits := clockedBits(chip)
	start := n * bitsPerShow
	require.GreaterOrEqual(t, len(bits), start+bitsPerShow, "transmission %d not on the wire", n)
	return gpiotest.Bytes(bits[start+32 : start+32+32*apa102.NumPixels])
}

func TestNewConfiguresLines(t *testing.T) {
	strip, chip := newTestStrip(t)

	assert.Equal(t, []int{testDataLine, testClockLine}, chip.Outputs())
	assert.Equal(t, apa102.StateReady, strip.State())
}

func TestNewReleasesDataLineOnFailure(t *testing.T) {
	chip := gpiotest.New()
	chip.FailLine(testClockLine, errors.New("line held by another process"))

	_, err := apa102.New(chip, apa102.Config{DataLine: testDataLine, ClockLine: testClockLine})
	require.Error(t, err)
	assert.Equal(t, []int{testDataLine}, chip.Closes())
}

func TestShowBitCount(t *testing.T) {
	strip, chip := newTestStrip(t)

	require.NoError(t, strip.Show())
	assert.Len(t, clockedBits(chip), bitsPerShow)
}

func TestShowWireFormat(t *testing.T) {
	strip, chip := newTestStrip(t)

	require.NoError(t, strip.SetPixel(0, apa102.RGB{R: 255}, 1.0))
	require.NoError(t, strip.Show())

	bits := clockedBits(chip)
	require.Len(t, bits, bitsPerShow)

	for i, bit := range bits[:32] {
		assert.Equal(t, gpio.Low, bit, "start frame bit %d", i)
	}
	for i, bit := range bits[len(bits)-36:] {
		assert.Equal(t, gpio.Low, bit, "end frame bit %d", i)
	}

	// Full-brightness red pixel, then seven dark frames. Channel order
	// on the wire is marker, blue, green, red.
	want := append([]byte{0xFF, 0x00, 0x00, 0xFF}, bytes.Repeat([]byte{0xE0, 0x00, 0x00, 0x00}, 7)...)
	assert.Equal(t, want, showPayload(t, chip, 0))
}

func TestShowSetsDataBeforeClockPulse(t *testing.T) {
	strip, chip := newTestStrip(t)

	require.NoError(t, strip.Show())

	events := chip.Events()
	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, gpiotest.Event{Offset: testDataLine, Level: gpio.Low}, events[0])
	assert.Equal(t, gpiotest.Event{Offset: testClockLine, Level: gpio.High}, events[1])
	assert.Equal(t, gpiotest.Event{Offset: testClockLine, Level: gpio.Low}, events[2])
}

func TestShowPropagatesWriteFailure(t *testing.T) {
	strip, chip := newTestStrip(t)
	chip.FailAfter(100, errors.New("write failed"))

	require.Error(t, strip.Show())
}

func TestShowAfterClose(t *testing.T) {
	strip, _ := newTestStrip(t)

	require.NoError(t, strip.Close())
	assert.ErrorIs(t, strip.Show(), apa102.ErrClosed)
}
