package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ledbar/apa102"
)

var dlog zerolog.Logger

func init() {
	dlog = log.With().Str("component", "demo").Logger()
}

// demoRest is how long the strip stays dark between demo animations.
const demoRest = 2 * time.Second

// RunDemo cycles through the built-in animations until ctx ends or the
// strip closes.
func RunDemo(ctx context.Context, strip *apa102.Strip, color apa102.RGB, brightness float64) error {
	queue := NewCircularList([]string{"startup", "wipe", "rainbow", "flash", "shutdown"})

	for {
		if ctx.Err() != nil {
			dlog.Info().Msg("Stopping demo")
			return nil
		}

		name := queue.Current()
		dlog.Info().Str("animation", name).Msg("Playing animation")

		var err error
		switch name {
		case "startup":
			err = strip.Startup(color)
		case "wipe":
			err = strip.Wipe(color, brightness, DefaultWipeInterval)
		case "rainbow":
			err = strip.Rainbow(DefaultRainbowSteps, DefaultRainbowInterval)
		case "flash":
			err = strip.Flash(apa102.NumPixels/2, DefaultFlashTimes, DefaultFlashInterval, color, brightness)
		case "shutdown":
			err = strip.Shutdown(color)
		}
		if err == nil {
			err = strip.Clear()
		}
		if err != nil {
			if errors.Is(err, apa102.ErrClosed) {
				dlog.Info().Msg("Strip closed, stopping demo")
				return nil
			}
			return err
		}

		dlog.Info().
			Str("period", demoRest.String()).
			Str("next_up", queue.PeekNext()).
			Msg("Resting")

		select {
		case <-ctx.Done():
		case <-time.After(demoRest):
		}

		queue.Advance()
	}
}
