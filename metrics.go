package teos

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of envelope operations.
// A nil *Metrics records nothing.
type Metrics struct {
	EnvelopesCreated *prometheus.CounterVec
	EnvelopesOpened  *prometheus.CounterVec
	CodecOperations  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EnvelopesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teos_envelopes_created_total",
				Help: "Total number of envelopes created",
			},
			[]string{"mode"},
		),
		EnvelopesOpened: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teos_envelopes_opened_total",
				Help: "Total number of envelope open attempts",
			},
			[]string{"mode", "result"}, // ok, auth_failed, crypto_failed, format_failed
		),
		CodecOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teos_codec_operations_total",
				Help: "Total number of envelope serialize/deserialize calls",
			},
			[]string{"op", "result"}, // serialize|deserialize, ok|error
		),
	}
}

func (m *Metrics) observeCreate(mode Mode) {
	if m == nil {
		return
	}
	m.EnvelopesCreated.WithLabelValues(string(mode)).Inc()
}

func (m *Metrics) observeOpen(mode Mode, err error) {
	if m == nil {
		return
	}
	m.EnvelopesOpened.WithLabelValues(string(mode), openResult(err)).Inc()
}

func (m *Metrics) observeCodec(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.CodecOperations.WithLabelValues(op, result).Inc()
}

func openResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSignatureInvalid):
		return "auth_failed"
	case errors.Is(err, ErrCryptoProvider):
		return "crypto_failed"
	default:
		return "format_failed"
	}
}
