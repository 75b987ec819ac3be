package memo

// Option configures a [Table].
type Option[K any] func(config[K]) config[K]

type config[K any] struct {
	hash  Hasher[K]
	equal Equal[K]
}

func apply[K any](c config[K], opts ...Option[K]) config[K] {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// WithHasher replaces the default hasher.
// A nil hasher is ignored.
func WithHasher[K any](h Hasher[K]) Option[K] {
	return func(c config[K]) config[K] {
		if h != nil {
			c.hash = h
		}

		return c
	}
}

// WithEqual replaces the default deep-equality comparison.
// A nil function is ignored.
func WithEqual[K any](eq Equal[K]) Option[K] {
	return func(c config[K]) config[K] {
		if eq != nil {
			c.equal = eq
		}

		return c
	}
}
