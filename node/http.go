package node

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/NethermindEth/l1sender/metrics"
	"github.com/NethermindEth/l1sender/service"
	"github.com/NethermindEth/l1sender/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc"
)

const httpShutdownTimeout = 5 * time.Second

// httpService serves handler on listener until the context passed to Run is cancelled.
type httpService struct {
	name     string
	srv      *http.Server
	listener net.Listener
	log      utils.SimpleLogger
}

var _ service.Service = (*httpService)(nil)

func newHTTPService(name string, listener net.Listener, handler http.Handler, log utils.SimpleLogger) *httpService {
	return &httpService{
		name: name,
		srv: &http.Server{
			Addr:    listener.Addr().String(),
			Handler: handler,
			// ReadTimeout also sets ReadHeaderTimeout and IdleTimeout.
			ReadTimeout: 30 * time.Second,
		},
		listener: listener,
		log:      log,
	}
}

func (h *httpService) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)

	var wg conc.WaitGroup
	defer wg.Wait()
	wg.Go(func() {
		if err := h.srv.Serve(h.listener); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})
	h.log.Infow("Serving "+h.name, "addr", h.srv.Addr)

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		return h.srv.Shutdown(shutdownCtx)
	}
}

// makeMetrics serves the prometheus metrics next to the health and status endpoints.
func makeMetrics(listener net.Listener, registry *prometheus.Registry, readiness *ReadinessHandlers,
	log utils.SimpleLogger,
) *httpService {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.PrometheusHandler(registry))
	mux.HandleFunc("/live", readiness.HandleLive)
	mux.HandleFunc("/ready", readiness.HandleReady)
	mux.HandleFunc("/status", readiness.HandleStatus)
	return newHTTPService("metrics", listener, mux, log)
}

func makePPROF(listener net.Listener, log utils.SimpleLogger) *httpService {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return newHTTPService("pprof", listener, mux, log)
}
