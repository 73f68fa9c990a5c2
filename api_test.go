package main_test

import (
	ledbar "ledbar"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledbar/apa102"
)

func intp(v int) *int { return &v }

func TestColorInputRGB(t *testing.T) {
	tests := []struct {
		name  string
		input ledbar.ColorInput
		want  apa102.RGB
	}{
		{"hex", ledbar.ColorInput{Color: "#0080ff"}, apa102.RGB{G: 128, B: 255}},
		{"hex wins over channels", ledbar.ColorInput{Color: "#ff0000", G: intp(255)}, apa102.RGB{R: 255}},
		{"channels", ledbar.ColorInput{R: intp(1), G: intp(2), B: intp(3)}, apa102.RGB{R: 1, G: 2, B: 3}},
		{"channels clamp high", ledbar.ColorInput{R: intp(300)}, apa102.RGB{R: 255}},
		{"channels clamp low", ledbar.ColorInput{G: intp(-5)}, apa102.RGB{}},
		{"missing channels are zero", ledbar.ColorInput{B: intp(9)}, apa102.RGB{B: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.RGB()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorInputBadHex(t *testing.T) {
	_, err := ledbar.ColorInput{Color: "red"}.RGB()
	assert.ErrorIs(t, err, ledbar.ErrValidation)
}

func TestColorInputRGBOr(t *testing.T) {
	fallback := apa102.RGB{R: 7}

	got, err := ledbar.ColorInput{}.RGBOr(fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	got, err = ledbar.ColorInput{Color: "#00ff00"}.RGBOr(fallback)
	require.NoError(t, err)
	assert.Equal(t, apa102.RGB{G: 255}, got)
}

func TestPixelRequestBrightnessOr(t *testing.T) {
	var req ledbar.PixelRequest
	assert.Equal(t, 0.2, req.BrightnessOr(0.2))

	b := 0.9
	req.Brightness = &b
	assert.Equal(t, 0.9, req.BrightnessOr(0.2))
}
