//go:build rpio && !periph

package gpio

import (
	"github.com/stianeikeland/go-rpio/v4"
)

// Open maps line offsets onto Broadcom pin numbers via /dev/gpiomem.
// The chip name is ignored, the Pi only has the one.
func Open(name string) (Chip, error) {
	if err := rpio.Open(); err != nil {
		return nil, err
	}
	return &rpioChip{}, nil
}

type rpioChip struct{}

func (c *rpioChip) Line(offset int) (Line, error) {
	return rpioLine{pin: rpio.Pin(offset)}, nil
}

func (c *rpioChip) Close() error {
	return rpio.Close()
}

type rpioLine struct {
	pin rpio.Pin
}

func (l rpioLine) Output() error {
	l.pin.Output()
	return nil
}

func (l rpioLine) Set(level Level) error {
	if level == High {
		l.pin.High()
	} else {
		l.pin.Low()
	}
	return nil
}

func (l rpioLine) Close() error {
	l.pin.Low()
	return nil
}
