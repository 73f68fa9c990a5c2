//go:build linux && !rpio && !periph

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Open acquires the named GPIO character device, e.g. "gpiochip0".
func Open(name string) (Chip, error) {
	chip, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, fmt.Errorf("opening gpio chip %q: %w", name, err)
	}
	return &cdevChip{chip: chip}, nil
}

type cdevChip struct {
	chip *gpiocdev.Chip
}

func (c *cdevChip) Line(offset int) (Line, error) {
	line, err := c.chip.RequestLine(offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("requesting line %d: %w", offset, err)
	}
	return &cdevLine{line: line}, nil
}

func (c *cdevChip) Close() error {
	return c.chip.Close()
}

type cdevLine struct {
	line *gpiocdev.Line
}

// Direction is fixed when the line is requested, so there is nothing
// left to configure here.
func (l *cdevLine) Output() error {
	return nil
}

func (l *cdevLine) Set(level Level) error {
	value := 0
	if level == High {
		value = 1
	}
	return l.line.SetValue(value)
}

func (l *cdevLine) Close() error {
	return l.line.Close()
}
