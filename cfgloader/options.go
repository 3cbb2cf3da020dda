package cfgloader

// Options holds configuration options for Load and MustLoad.
type Options struct {
	// Silent disables printing the loaded config.
	Silent bool

	// Dir is the directory holding the ${ENVIRONMENT}.yaml files. Default is "./config".
	Dir string
}

// Option is a functional option for configuring Load behavior.
type Option func(*Options)

// WithSilent disables config printing.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithDir reads config files from dir instead of "./config".
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}
