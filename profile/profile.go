package profile

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Profiler holds the settings of one profiling session.
type Profiler struct {
	Mode  string
	Dir   string
	Quiet bool
}

// Option configures a [Profiler].
type Option func(Profiler) Profiler

// WithMode selects the profile kind, one of [Modes].
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(p Profiler) Profiler {
		p.Dir = dir

		return p
	}
}

// WithQuiet suppresses the library's own start/stop messages.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Start begins profiling with the given options. An empty or unknown mode,
// or a build without the pprof tag, yields a no-op [Stopper]. Stop is always
// safe to call.
func Start(opts ...Option) Stopper {
	var p Profiler
	for _, opt := range opts {
		p = opt(p)
	}

	return p.Start()
}

// Start begins profiling with p's settings.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return nop{}
	}

	return start(p)
}

type nop struct{}

func (nop) Stop() {}
