//go:build periph

package gpio

import (
	"fmt"

	periphgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Open initializes the periph host drivers. Lines resolve through the
// pin registry by their "GPIOn" name and the chip name is ignored.
func Open(name string) (Chip, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initializing periph host: %w", err)
	}
	return &periphChip{}, nil
}

type periphChip struct{}

func (c *periphChip) Line(offset int) (Line, error) {
	pin := gpioreg.ByName(fmt.Sprintf("GPIO%d", offset))
	if pin == nil {
		return nil, fmt.Errorf("no pin registered for offset %d", offset)
	}
	return periphLine{pin: pin}, nil
}

func (c *periphChip) Close() error {
	return nil
}

type periphLine struct {
	pin periphgpio.PinIO
}

func (l periphLine) Output() error {
	return l.pin.Out(periphgpio.Low)
}

func (l periphLine) Set(level Level) error {
	if level == High {
		return l.pin.Out(periphgpio.High)
	}
	return l.pin.Out(periphgpio.Low)
}

func (l periphLine) Close() error {
	return l.pin.Halt()
}
