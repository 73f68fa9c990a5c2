package apa102_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledbar/apa102"
)

func TestEncodeBrightness(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     uint8
	}{
		{"zero", 0, 0},
		{"full", 1, 31},
		{"half", 0.5, 15},
		{"default", apa102.DefaultBrightness, 6},
		{"one ramp step", 0.05, 1},
		{"negative clamps", -0.5, 0},
		{"above one clamps", 1.5, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apa102.EncodeBrightness(tt.fraction))
		})
	}
}

func TestEncodeBrightnessMonotonic(t *testing.T) {
	prev := apa102.EncodeBrightness(0)
	for f := 0.0; f <= 1.0; f += 0.01 {
		got := apa102.EncodeBrightness(f)
		assert.GreaterOrEqual(t, got, prev, "fraction %f", f)
		assert.LessOrEqual(t, got, uint8(31), "fraction %f", f)
		prev = got
	}
}

func TestEncodePixel(t *testing.T) {
	tests := []struct {
		name       string
		c          apa102.RGB
		brightness float64
		want       apa102.Pixel
	}{
		{
			name:       "channels pass through",
			c:          apa102.RGB{R: 12, G: 200, B: 255},
			brightness: 1,
			want:       apa102.Pixel{R: 12, G: 200, B: 255, Brightness: 31},
		},
		{
			name: "black stays black",
			want: apa102.Pixel{},
		},
		{
			name:       "default brightness",
			c:          apa102.RGB{R: 255, G: 255, B: 255},
			brightness: apa102.DefaultBrightness,
			want:       apa102.Pixel{R: 255, G: 255, B: 255, Brightness: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apa102.EncodePixel(tt.c, tt.brightness))
		})
	}
}
