package config

import "sync/atomic"

// Live holds the active configuration. Hot reloads publish a whole new
// snapshot atomically, so request handlers read a consistent config without
// locking.
type Live struct {
	p atomic.Pointer[Config]
}

func NewLive(cfg *Config) *Live {
	l := &Live{}
	l.p.Store(cfg)
	return l
}

// Load returns the current snapshot. Callers must treat it as read-only.
func (l *Live) Load() *Config {
	return l.p.Load()
}

// Store publishes a new snapshot. In-flight requests keep the one they
// already loaded.
func (l *Live) Store(cfg *Config) {
	l.p.Store(cfg)
}
