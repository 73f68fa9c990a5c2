// Package gpio is a small digital-output abstraction over the platform
// GPIO stacks. The default backend talks to the Linux GPIO character
// device; alternative backends for go-rpio and periph sit behind the
// "rpio" and "periph" build tags, and an in-memory simulator covers
// machines without the hardware.
package gpio

// Level is the logical level of a digital line.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l == High {
		return "High"
	}
	return "Low"
}

// Chip is a handle on one GPIO controller.
type Chip interface {
	// Line acquires the line at the given offset on this chip.
	Line(offset int) (Line, error)
	Close() error
}

// Line is a single digital line.
type Line interface {
	// Output configures the line as an output.
	Output() error
	// Set drives the line to the given level.
	Set(level Level) error
	Close() error
}
