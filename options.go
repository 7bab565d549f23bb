package hybridguard

import (
	"crypto/rand"
	"io"
	"time"
)

// config holds construction-time configuration shared by Pipeline and Guard.
type config struct {
	rand  io.Reader
	clock func() time.Time
}

func defaultConfig() config {
	return config{
		rand:  rand.Reader,
		clock: time.Now,
	}
}

// Option configures a Pipeline or Guard at construction time.
type Option func(*config)

// WithRand sets the randomness source used for encapsulation seeds and
// keystore salts. Defaults to crypto/rand. Randomness is the only
// non-deterministic input anywhere in the pipeline, so substituting a fixed
// reader makes encryption fully reproducible, which is intended for tests.
func WithRand(r io.Reader) Option {
	return func(c *config) {
		c.rand = r
	}
}

// WithClock sets the time source used for envelope timestamps.
// Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}
