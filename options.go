package pagehighlight

// Option configures Find and Highlight.
type Option interface {
	apply(*config)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

type config struct {
	scope Scope
}

func newConfig(opts []Option) config {
	cfg := config{scope: ScopeCompat}
	for _, o := range opts {
		o.apply(&cfg)
	}
	return cfg
}

// WithScope selects which occurrences are reported. Unknown scopes fall back to ScopeCompat.
func WithScope(s Scope) Option {
	return optionFunc(func(c *config) {
		if s.IsValid() {
			c.scope = s
		}
	})
}
