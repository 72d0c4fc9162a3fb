package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NethermindEth/l1sender/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusFactory(t *testing.T) {
	registry := metrics.PrometheusRegistry()
	factory := metrics.PrometheusFactory(registry, "l1sender")

	sent := factory.NewCounterVec(metrics.Opts{
		Subsystem: "sender",
		Name:      "sent_total",
		Help:      "Transactions sent.",
	}, []string{"action"})
	sent.WithLabelValues("commit").Inc()
	sent.WithLabelValues("commit").Add(2)

	inFlight := factory.NewGauge(metrics.Opts{Subsystem: "sender", Name: "in_flight"})
	inFlight.Set(4)
	inFlight.Dec()

	lastBlock := factory.NewGaugeVec(metrics.Opts{Subsystem: "sender", Name: "last_block"}, []string{"action"})
	lastBlock.WithLabelValues("execute").Set(42)

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "l1sender_sender_sent_total")
	assert.Contains(t, names, "l1sender_sender_in_flight")

	srv := httptest.NewServer(metrics.PrometheusHandler(registry))
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `l1sender_sender_sent_total{action="commit"} 3`)
	assert.Contains(t, string(body), "l1sender_sender_in_flight 3")
	assert.Contains(t, string(body), `l1sender_sender_last_block{action="execute"} 42`)
}

func TestNoopFactory(t *testing.T) {
	factory := metrics.NoopFactory()
	factory.NewCounter(metrics.Opts{}).Inc()
	factory.NewCounterVec(metrics.Opts{}, nil).WithLabelValues("x").Add(1)
	factory.NewGauge(metrics.Opts{}).Set(1)
	factory.NewGaugeVec(metrics.Opts{}, nil).WithLabelValues("x").Inc()
	factory.NewHistogram(metrics.Opts{}).Observe(1)
	factory.NewHistogramVec(metrics.Opts{}, nil).WithLabelValues("x").Observe(1)
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	factory := metrics.PrometheusFactory(metrics.PrometheusRegistry(), "l1sender")
	factory.NewCounter(metrics.Opts{Subsystem: "sender", Name: "sent"})
	assert.Panics(t, func() {
		factory.NewCounter(metrics.Opts{Subsystem: "sender", Name: "sent"})
	})
}
