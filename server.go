package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"ledbar/apa102"
)

/////////////////////
// Response helpers

func RespondInternalServiceError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(err.Error()))
}

func RespondNotFoundError(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusNotFound)
	if body == "" {
		body = "Not found"
	}
	RespondText(w, body)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	RespondText(w, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusConflict)
	RespondText(w, message)
}

func RespondText(w http.ResponseWriter, body string) {
	w.Write([]byte(body))
}

func RespondJSON(w http.ResponseWriter, body any) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		RespondInternalServiceError(w, err)
	}
}

// RespondError picks the status code from the error's sentinel.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation) || errors.Is(err, apa102.ErrPixelIndex):
		RespondBadRequest(w, err.Error())
	case errors.Is(err, ErrNotExist):
		RespondNotFoundError(w, err.Error())
	case errors.Is(err, ErrExists) || errors.Is(err, apa102.ErrClosed):
		RespondConflict(w, err.Error())
	default:
		RespondInternalServiceError(w, err)
	}
}

// decodeBody JSON-decodes the request body into v. An empty body is
// allowed when allowEmpty is set, leaving v zeroed.
func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: bad JSON body: %s", ErrValidation, err)
}

type StateResponse struct {
	State   apa102.State   `json:"state"`
	Pixels  []apa102.Pixel `json:"pixels"`
	Version string         `json:"version"`
}

type IndexData struct {
	Version string
	State   apa102.State
	Presets []string
}

func NewRouter(config *Config, build BuildInfo, strip *apa102.Strip, storage *Storage, history *FrameHistory) (chi.Router, error) {
	indexTemplate, err := GetIndexTemplate()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(LoggerMiddleware(&log.Logger))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		presets, err := storage.ListPresets()
		if err != nil {
			RespondInternalServiceError(w, err)
			return
		}

		indexTemplate.Execute(w, IndexData{
			Version: build.Version,
			State:   strip.State(),
			Presets: presets,
		})
	})

	r.Get("/api/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Cache-Control", "no-cache, no-store")
		RespondJSON(w, StateResponse{
			State:   strip.State(),
			Pixels:  strip.Pixels(),
			Version: build.Version,
		})
	})

	// POST whole-strip color
	r.Post("/api/pixels", func(w http.ResponseWriter, r *http.Request) {
		var req PixelRequest
		if err := decodeBody(r, &req, false); err != nil {
			RespondError(w, err)
			return
		}

		color, err := req.RGB()
		if err != nil {
			RespondError(w, err)
			return
		}

		strip.SetAll(color, req.BrightnessOr(config.Brightness()))
		if err := strip.Show(); err != nil {
			RespondError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	// POST single pixel
	r.Post("/api/pixels/{index}", func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			RespondBadRequest(w, "index must be an integer")
			return
		}

		var req PixelRequest
		if err := decodeBody(r, &req, false); err != nil {
			RespondError(w, err)
			return
		}

		color, err := req.RGB()
		if err != nil {
			RespondError(w, err)
			return
		}

		if err := strip.SetPixel(index, color, req.BrightnessOr(config.Brightness())); err != nil {
			RespondError(w, err)
			return
		}
		if err := strip.Show(); err != nil {
			RespondError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/api/brightness", func(w http.ResponseWriter, r *http.Request) {
		var req BrightnessRequest
		if err := decodeBody(r, &req, false); err != nil {
			RespondError(w, err)
			return
		}

		if req.Index != nil {
			if err := strip.SetPixelBrightness(*req.Index, req.Brightness); err != nil {
				RespondError(w, err)
				return
			}
		} else {
			strip.SetBrightness(req.Brightness)
		}
		if err := strip.Show(); err != nil {
			RespondError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/api/clear", func(w http.ResponseWriter, r *http.Request) {
		if err := strip.Clear(); err != nil {
			RespondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/api/flash/{index}", func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			RespondBadRequest(w, "index must be an integer")
			return
		}

		var req FlashRequest
		if err := decodeBody(r, &req, true); err != nil {
			RespondError(w, err)
			return
		}

		times, err := req.times()
		if err != nil {
			RespondError(w, err)
			return
		}
		color, err := req.RGBOr(config.Color())
		if err != nil {
			RespondError(w, err)
			return
		}

		interval := intervalOr(req.IntervalMS, DefaultFlashInterval)
		if err := strip.Flash(index, times, interval, color, req.BrightnessOr(config.Brightness())); err != nil {
			RespondError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	// Animations run on the caller's time; the response comes back
	// once the last frame is on the wire.
	r.Post("/api/animations/{name}", func(w http.ResponseWriter, r *http.Request) {
		var req AnimationRequest
		if err := decodeBody(r, &req, true); err != nil {
			RespondError(w, err)
			return
		}

		color, err := req.RGBOr(config.Color())
		if err != nil {
			RespondError(w, err)
			return
		}
		brightness := req.BrightnessOr(config.Brightness())

		name := chi.URLParam(r, "name")
		var runErr error
		switch name {
		case "startup":
			runErr = strip.Startup(color)
		case "shutdown":
			runErr = strip.Shutdown(color)
		case "wipe":
			runErr = strip.Wipe(color, brightness, intervalOr(req.IntervalMS, DefaultWipeInterval))
		case "rainbow":
			runErr = strip.Rainbow(stepsOr(req.Steps, DefaultRainbowSteps), intervalOr(req.IntervalMS, DefaultRainbowInterval))
		default:
			RespondBadRequest(w, fmt.Sprintf("unknown animation %q", name))
			return
		}
		if runErr != nil {
			RespondError(w, runErr)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	// GET presets
	r.Get("/api/presets", func(w http.ResponseWriter, r *http.Request) {
		presets, err := storage.ListPresets()
		if err != nil {
			RespondInternalServiceError(w, err)
			return
		}
		RespondJSON(w, presets)
	})

	// GET single preset
	r.Get("/api/presets/{name}", func(w http.ResponseWriter, r *http.Request) {
		preset, err := storage.ReadPreset(chi.URLParam(r, "name"))
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, preset)
	})

	// PUT single preset, creating or replacing
	r.Put("/api/presets/{name}", func(w http.ResponseWriter, r *http.Request) {
		var preset Preset
		if err := decodeBody(r, &preset, false); err != nil {
			RespondError(w, err)
			return
		}

		if err := storage.WritePreset(chi.URLParam(r, "name"), preset); err != nil {
			RespondError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	r.Delete("/api/presets/{name}", func(w http.ResponseWriter, r *http.Request) {
		if err := storage.DeletePreset(chi.URLParam(r, "name")); err != nil {
			RespondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// POST save the strip's current state as a preset. Refuses to
	// clobber unless ?replace=1.
	r.Post("/api/presets/{name}/save", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		preset := Preset{Pixels: strip.Pixels()}

		replace := r.URL.Query().Get("replace")
		var err error
		if replace == "1" || replace == "true" {
			err = storage.WritePreset(name, preset)
		} else {
			err = storage.CreatePreset(name, preset)
		}
		if err != nil {
			RespondError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	// POST apply a preset to the strip
	r.Post("/api/presets/{name}/apply", func(w http.ResponseWriter, r *http.Request) {
		preset, err := storage.ReadPreset(chi.URLParam(r, "name"))
		if err != nil {
			RespondError(w, err)
			return
		}

		if err := strip.SetPixels(preset.Pixels); err != nil {
			RespondError(w, err)
			return
		}
		if err := strip.Show(); err != nil {
			RespondError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/api/presets/{name}/rename", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			To string `json:"to"`
		}
		if err := decodeBody(r, &req, false); err != nil {
			RespondError(w, err)
			return
		}

		if err := storage.RenamePreset(chi.URLParam(r, "name"), req.To); err != nil {
			RespondError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/api/frames/recent", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Cache-Control", "no-cache, no-store")
		RespondJSON(w, history.Recent())
	})

	r.Get("/api/events", createWebsocketHandler(strip))

	return r, nil
}

func StartServer(config *Config, build BuildInfo, strip *apa102.Strip, storage *Storage, history *FrameHistory) error {
	r, err := NewRouter(config, build, strip, storage, history)
	if err != nil {
		return err
	}

	address := config.Address()
	log.Info().Str("listen", address).Msg("launching server")
	return http.ListenAndServe(address, r)
}
