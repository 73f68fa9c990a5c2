package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// LedbarFS is an Afero FS with the extra lookups the config layer
// needs, so tests can swap in a memory filesystem.
type LedbarFS interface {
	afero.Fs
	Abs(string) (string, error)
	HomeDir() (string, error)
}

type ledbarOSFS struct {
	afero.Fs
}

func newLedbarOSFS() LedbarFS {
	return &ledbarOSFS{
		afero.NewOsFs(),
	}
}

func (f *ledbarOSFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (f *ledbarOSFS) HomeDir() (string, error) {
	return os.UserHomeDir()
}

type ledbarMemFS struct {
	afero.Fs
}

func NewLedbarMemFS() LedbarFS {
	return &ledbarMemFS{
		afero.NewMemMapFs(),
	}
}

func (f *ledbarMemFS) Abs(path string) (string, error) {
	return path, nil
}

func (f *ledbarMemFS) HomeDir() (string, error) {
	return "/", nil
}
