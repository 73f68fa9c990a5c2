package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"ledbar/apa102"
)

var (
	ErrNotExist   = errors.New("doesn't exist")
	ErrExists     = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
)

// PresetsDir is the subdirectory under the data dir where the presets
// go, one JSON file each.
const PresetsDir = "presets"

var badNameRegex = regexp.MustCompile(`[<>:"/\\|?\*]`)

func ValidatePresetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: preset name cannot be blank", ErrValidation)
	}

	m := badNameRegex.FindAllString(name, -1)

	if len(m) > 0 {
		return fmt.Errorf("%w: preset name contains disallowed characters %s", ErrValidation, strings.Join(m, " "))
	}

	return nil
}

// Preset is one stored strip state: exactly one pixel entry per LED.
type Preset struct {
	Pixels []apa102.Pixel `json:"pixels"`
}

func (p Preset) Validate() error {
	if len(p.Pixels) != apa102.NumPixels {
		return fmt.Errorf("%w: preset has %d pixels, want %d", ErrValidation, len(p.Pixels), apa102.NumPixels)
	}
	return nil
}

type Storage struct {
	config *Config
	fs     afero.Fs
}

func NewStorage(fs LedbarFS, config *Config) *Storage {
	subFS := afero.NewBasePathFs(fs, config.DataDir())

	return &Storage{
		config: config,
		fs:     subFS,
	}
}

func presetPath(name string) string {
	return filepath.Join(PresetsDir, name+".json")
}

func (s *Storage) ListPresets() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, PresetsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var presets []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			presets = append(presets, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}

	return presets, nil
}

// PresetExists returns an error if the named preset does not exist
func (s *Storage) PresetExists(name string) error {
	if err := ValidatePresetName(name); err != nil {
		return err
	}

	if _, err := s.fs.Stat(presetPath(name)); err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return fmt.Errorf("preset %q %w", name, ErrNotExist)
		}
		return err
	}

	return nil
}

// PresetNotExists returns an error if the named preset already exists
func (s *Storage) PresetNotExists(name string) error {
	if err := ValidatePresetName(name); err != nil {
		return err
	}

	if _, err := s.fs.Stat(presetPath(name)); !errors.Is(err, afero.ErrFileNotFound) {
		if err == nil {
			return fmt.Errorf("%w: preset %q", ErrExists, name)
		}
		return err
	}

	return nil
}

// WritePreset stores the preset, creating or replacing it.
func (s *Storage) WritePreset(name string, preset Preset) error {
	if err := ValidatePresetName(name); err != nil {
		return err
	}
	if err := preset.Validate(); err != nil {
		return err
	}

	if err := s.fs.MkdirAll(PresetsDir, 0755); err != nil {
		return err
	}

	f, err := s.fs.Create(presetPath(name))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(preset); err != nil {
		return err
	}

	return f.Sync()
}

// CreatePreset stores a new preset, refusing to replace an existing
// one.
func (s *Storage) CreatePreset(name string, preset Preset) error {
	if err := s.PresetNotExists(name); err != nil {
		return err
	}

	return s.WritePreset(name, preset)
}

func (s *Storage) ReadPreset(name string) (Preset, error) {
	if err := s.PresetExists(name); err != nil {
		return Preset{}, err
	}

	f, err := s.fs.Open(presetPath(name))
	if err != nil {
		return Preset{}, err
	}
	defer f.Close()

	var preset Preset
	err = json.NewDecoder(f).Decode(&preset)
	return preset, err
}

func (s *Storage) DeletePreset(name string) error {
	if err := s.PresetExists(name); err != nil {
		return err
	}

	return s.fs.Remove(presetPath(name))
}

func (s *Storage) RenamePreset(from, to string) error {
	if err := s.PresetExists(from); err != nil {
		return err
	}
	if err := s.PresetNotExists(to); err != nil {
		return err
	}

	return s.fs.Rename(presetPath(from), presetPath(to))
}
