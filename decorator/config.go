package decorator

// Config describes the decorators of an application so they can be set up from a file.
type Config struct {
	// Access is the tier keyword used by access controllers: "high", "mid", "low" or "no".
	Access string `yaml:"access" validate:"oneof=high mid low no" default:"no"`

	// Secret is the credential expected by credential gates.
	Secret string `yaml:"secret" validate:"required" mask:"true"`

	// Repetitions is how many times repeat timers invoke the wrapped function per call.
	Repetitions int `yaml:"repetitions" validate:"gt=0" default:"1"`

	// PerCallParity makes parity gates sample the clock on every call instead of at wrap time.
	PerCallParity bool `yaml:"per_call_parity" default:"false"`
}

// Tier returns the parsed access tier.
func (c Config) Tier() Tier {
	return ParseTier(c.Access)
}

// GateOptions returns the parity gate options implied by the config.
func (c Config) GateOptions() []GateOption {
	if c.PerCallParity {
		return []GateOption{WithPerCallSampling()}
	}
	return nil
}
