package teos

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// config holds per-call configuration of envelope operations.
type config struct {
	logger        logrus.FieldLogger
	metrics       *Metrics
	pskGeneration uint32
	expiresAt     *time.Time
	ttl           time.Duration
	now           func() time.Time
	mlsAEAD       string
}

// Option configures an envelope operation.
type Option func(*config)

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func newConfig(opts []Option) *config {
	cfg := &config{
		logger:        discardLogger,
		pskGeneration: DefaultPSKGeneration,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger. Default: a logger that discards everything.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records operation counters into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithPSKGeneration sets the PSK generation used for key derivation on
// create. Extraction always uses the generation stored in the envelope.
// Default: 1
func WithPSKGeneration(generation uint32) Option {
	return func(c *config) {
		c.pskGeneration = generation
	}
}

// WithExpiresAt stamps an advisory expiry on PSK envelopes.
func WithExpiresAt(t time.Time) Option {
	return func(c *config) {
		c.expiresAt = &t
	}
}

// WithTTL stamps an advisory expiry of creation time + ttl on PSK envelopes.
// WithExpiresAt takes precedence.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithClock overrides the clock used for AAD timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMLSAEAD names the AEAD the MLS layer sealed with, for openers whose
// exporter key was used with a cipher other than the one stamped in
// Base.Algorithm (AES-GCM peers). It only affects MLS envelopes; the stamped
// algorithm is still what gets signed. Default: the stamped algorithm.
func WithMLSAEAD(algorithm string) Option {
	return func(c *config) {
		c.mlsAEAD = algorithm
	}
}

// expiry returns the expiry to stamp in Unix milliseconds, or nil.
func (c *config) expiry(created time.Time) *int64 {
	var t time.Time
	switch {
	case c.expiresAt != nil:
		t = *c.expiresAt
	case c.ttl > 0:
		t = created.Add(c.ttl)
	default:
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
