package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ledbar/apa102"
	"ledbar/gpio"
)

func init() {
	InitializeLogger()
}

// Populated by ldflags (ugh)
var (
	version            string
	buildUnixTimestamp string
	commitHash         string
)

func main() {
	ts, _ := strconv.ParseInt(buildUnixTimestamp, 10, 64)
	buildTime := time.Unix(ts, 0)

	versionFlag := flag.Bool("version", false, "Print version")
	systemdFlag := flag.Bool("systemd", false, "Print systemd service file")
	configFlag := flag.String("config", "", "Path to config file")
	demoFlag := flag.Bool("demo", false, "Loop the built-in animations instead of serving")
	noEmbedFlag := flag.Bool("noembed", false, "Serve www/ from disk instead of the binary")
	flag.Parse()

	if *versionFlag {
		fmt.Println("Ledbar version:", version)
		fmt.Println("Built on:", buildTime)
		fmt.Println("Commit hash:", commitHash)
		return
	}

	if *systemdFlag {
		SystemdServiceFile()
		return
	}

	NoEmbed = *noEmbedFlag

	log.Info().
		Str("version", version).
		Str("build_timestamp", buildTime.Format(time.RFC3339)).
		Str("commit_hash", commitHash).
		Msg("Initializing Ledbar")

	flags := Flags{
		ConfigPath: *configFlag,
		Demo:       *demoFlag,
		NoEmbed:    *noEmbedFlag,
	}
	build := BuildInfo{
		Version:    version,
		CommitHash: commitHash,
		BuildTime:  buildTime,
	}

	fs := newLedbarOSFS()
	config, err := NewConfig(fs, flags, os.Getenv)
	if err != nil {
		log.Fatal().Err(err).Msg("Config initialization failed")
	}

	if level, err := config.LogLevel(); err != nil {
		log.Warn().Err(err).Msg("Bad log level, staying on the default")
	} else {
		zerolog.SetGlobalLevel(level)
	}

	simulated := false
	chip, err := gpio.Open(config.Chip())
	if err != nil {
		log.Warn().Err(err).Msg("GPIO unavailable, falling back to simulation")
		chip = gpio.NewSim(config.Chip())
		simulated = true
	}
	defer chip.Close()

	strip, err := apa102.New(chip, apa102.Config{
		DataLine:    config.DataLine(),
		ClockLine:   config.ClockLine(),
		ClearOnExit: config.ClearOnExit(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Strip initialization failed")
	}
	defer strip.Close()

	storage := NewStorage(fs, config)

	// The server keeps running on SIGINT so clear_on_exit=false leaves
	// the strip lit; only the demo loop hooks signals for itself.
	ctx := context.Background()
	if flags.Demo {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
	}

	history := NewFrameHistory(RecentFrameCount)
	go history.Follow(ctx, strip)

	if simulated || flags.Demo {
		go PreviewFrames(ctx, strip)
	}

	if err := strip.Startup(config.Color()); err != nil {
		log.Err(err).Msg("Startup animation failed")
	}

	if flags.Demo {
		if err := RunDemo(ctx, strip, config.Color(), config.Brightness()); err != nil {
			log.Err(err).Msg("Demo ended with error")
		}
		return
	}

	if err := StartServer(config, build, strip, storage, history); err != nil {
		log.Err(err).Msg("Server closed with error")
	}
}
