package session

import "go.uber.org/zap"

// Config carries Session's few construction-time knobs. There is no
// file/env-parsing config layer here: a session is wired up once, in
// process, by whoever owns the transport and triple source, so a plain
// struct literal is the whole of it.
type Config struct {
	// Logger receives session lifecycle events (key agreement, teardown).
	// Defaults to zap.NewNop() if nil.
	Logger *zap.Logger
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
