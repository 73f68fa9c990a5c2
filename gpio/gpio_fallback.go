//go:build !linux && !rpio && !periph

package gpio

import (
	"github.com/rs/zerolog/log"
)

// Open falls back to the simulator on platforms without a real GPIO
// stack.
func Open(name string) (Chip, error) {
	log.Debug().Str("chip", name).Msg("GPIO will be simulated")
	return NewSim(name), nil
}
