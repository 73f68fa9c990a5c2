package gpio

import (
	"sync"
)

// Sim is an in-memory Chip that accepts every operation, for running on
// machines that do not have the hardware attached.
type Sim struct {
	name string

	mu     sync.Mutex
	levels map[int]Level
}

func NewSim(name string) *Sim {
	return &Sim{name: name, levels: make(map[int]Level)}
}

func (s *Sim) Name() string {
	return s.name
}

func (s *Sim) Line(offset int) (Line, error) {
	return &simLine{sim: s, offset: offset}, nil
}

func (s *Sim) Close() error {
	return nil
}

// Level reports the last level driven on the line at offset.
func (s *Sim) Level(offset int) Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels[offset]
}

type simLine struct {
	sim    *Sim
	offset int
}

func (l *simLine) Output() error {
	return nil
}

func (l *simLine) Set(level Level) error {
	l.sim.mu.Lock()
	l.sim.levels[l.offset] = level
	l.sim.mu.Unlock()
	return nil
}

func (l *simLine) Close() error {
	return nil
}
