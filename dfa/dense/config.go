package dense

// Config configures DFA determinization.
type Config struct {
	// MaxStates is the maximum number of DFA states to materialize.
	// Subset construction is worst-case exponential in the NFA size; this
	// budget turns blow-ups into ErrTooManyStates instead of unbounded
	// memory growth.
	//
	// Default: 65,536
	MaxStates int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates: 65_536,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxStates <= 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be positive",
		}
	}
	return nil
}
