package config

import "sync/atomic"

// Switch is the process-wide dry-run flag
type Switch struct {
	on atomic.Bool
}

// NewSwitch returns a switch set to on
func NewSwitch(on bool) *Switch {
	s := &Switch{}
	s.Set(on)
	return s
}

func (s *Switch) Set(on bool) {
	s.on.Store(on)
}

func (s *Switch) Enabled() bool {
	return s.on.Load()
}
