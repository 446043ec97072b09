// Package config holds the driver's own configuration: timer durations,
// the engine/host targets to connect to, and the log level. This is a
// single flat layer — one driver instance, not a multi-scope editor
// settings system.
package config

// Config is the driver's configuration surface.
type Config struct {
	// TokenTimerSeconds and IdleTimerSeconds set the two named timer
	// durations: the reducer schedules the token timer through
	// coreaction.StartTimer, and the driver arms the idle timer itself.
	TokenTimerSeconds float64 `toml:"token_timer_seconds"`
	IdleTimerSeconds  float64 `toml:"idle_timer_seconds"`

	// EngineTarget and HostTarget name the real EngineTransport and
	// HostText endpoints — e.g. an engine subprocess socket path and a
	// host accessibility bundle identifier. The composition root only
	// logs them; it always runs on the in-memory adapters, set or blank.
	EngineTarget string `toml:"engine_target"`
	HostTarget   string `toml:"host_target"`

	LogLevel string `toml:"log_level"`

	// MailboxCapacity bounds the driver's event queue depth.
	MailboxCapacity int `toml:"mailbox_capacity"`
}

// Default returns the configuration used when no file is present and no
// field is overridden.
func Default() Config {
	return Config{
		TokenTimerSeconds: 0.2,
		IdleTimerSeconds:  2.0,
		LogLevel:          "info",
		MailboxCapacity:   256,
	}
}

// WithDefaults returns a copy of c with every zero-valued field filled
// in from Default(), so a partially-specified TOML file only needs to
// name the fields it overrides.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.TokenTimerSeconds <= 0 {
		c.TokenTimerSeconds = d.TokenTimerSeconds
	}
	if c.IdleTimerSeconds <= 0 {
		c.IdleTimerSeconds = d.IdleTimerSeconds
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.MailboxCapacity <= 0 {
		c.MailboxCapacity = d.MailboxCapacity
	}
	return c
}
