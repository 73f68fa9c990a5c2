package apa102

// DefaultBrightness is the fraction surfaces fall back on when the
// caller does not pick one.
const DefaultBrightness = 0.2

// maxBrightness is the 5-bit ceiling of the per-pixel current control.
const maxBrightness = 31

// RGB is a caller-facing color with full-range byte channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Pixel is the wire-ready state of one LED.
type Pixel struct {
	R          uint8 `json:"r"`
	G          uint8 `json:"g"`
	B          uint8 `json:"b"`
	Brightness uint8 `json:"brightness"`
}

// EncodeBrightness quantizes a 0..1 fraction onto the strip's 5-bit
// brightness scale, rounding down. Fractions outside the range clamp
// to the nearest end.
func EncodeBrightness(fraction float64) uint8 {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return uint8(maxBrightness * fraction)
}

// EncodePixel builds the stored form of one pixel. Color channels pass
// through unchanged.
func EncodePixel(c RGB, brightness float64) Pixel {
	return Pixel{
		R:          c.R,
		G:          c.G,
		B:          c.B,
		Brightness: EncodeBrightness(brightness),
	}
}
