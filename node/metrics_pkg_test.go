package node

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/metrics"
	"github.com/NethermindEth/l1sender/mocks"
	"github.com/NethermindEth/l1sender/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSenderMetrics(t *testing.T) {
	registry := metrics.PrometheusRegistry()
	listener := makeSenderMetrics(metrics.PrometheusFactory(registry, metricsNamespace))

	listener.OnSent(core.Commit, false)
	listener.OnSent(core.Commit, true)
	listener.OnConfirmed(core.Execute, 42)
	listener.OnFailed(core.Verify)
	listener.OnDeferred("max_txs_in_flight")
	listener.OnInFlight(3)
	listener.OnTick(5*time.Millisecond, errors.New("tick"))

	families, err := registry.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		for _, m := range family.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[family.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[family.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["l1sender_sender_sent"])
	assert.Equal(t, 1.0, values["l1sender_sender_confirmed"])
	assert.Equal(t, 42.0, values["l1sender_sender_last_confirmed_block"])
	assert.Equal(t, 1.0, values["l1sender_sender_failed"])
	assert.Equal(t, 1.0, values["l1sender_sender_deferred"])
	assert.Equal(t, 3.0, values["l1sender_sender_in_flight"])
	assert.Equal(t, 1.0, values["l1sender_sender_tick_errors"])
}

func TestL1Metrics(t *testing.T) {
	registry := metrics.PrometheusRegistry()
	listener := makeL1Metrics(metrics.PrometheusFactory(registry, metricsNamespace))

	listener.OnL1Call("eth_sendRawTransaction", time.Millisecond, nil)
	listener.OnL1Call("eth_sendRawTransaction", time.Millisecond, errors.New("boom"))

	families, err := registry.Gather()
	require.NoError(t, err)

	counters := make(map[string]float64)
	for _, family := range families {
		for _, m := range family.GetMetric() {
			if m.GetCounter() != nil {
				counters[family.GetName()] += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, counters["l1sender_l1_requests"])
	assert.Equal(t, 1.0, counters["l1sender_l1_failed_requests"])
}

func TestMetricsService(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	t.Cleanup(mockCtrl.Finish)

	reader := mocks.NewMockReader(mockCtrl)
	reader.EXPECT().Halted().Return(false)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	registry := metrics.PrometheusRegistry()
	makeSenderMetrics(metrics.PrometheusFactory(registry, metricsNamespace)).OnInFlight(2)
	service := makeMetrics(listener, registry, NewReadinessHandlers(reader), utils.NewNopZapLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- service.Run(ctx)
	}()

	url := "http://" + listener.Addr().String()
	get := func(path string) (int, string) {
		resp, err := http.Get(url + path) //nolint:noctx
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	code, body := get("/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "l1sender_sender_in_flight 2")

	code, _ = get("/ready")
	assert.Equal(t, http.StatusOK, code)

	cancel()
	require.NoError(t, <-done)
}
