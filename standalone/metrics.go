package standalone

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/user-none/padnav/standalone/nav"
	"github.com/user-none/padnav/standalone/types"
)

// Metrics counts navigation activity
type Metrics struct {
	reg *prometheus.Registry

	intents       *prometheus.CounterVec
	focusMoves    prometheus.Counter
	absorbed      prometheus.Counter
	panics        *prometheus.CounterVec
	modalCaptures prometheus.Counter
}

// NewMetrics creates the counters on a private registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		reg: reg,
		intents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "padnav",
			Name:      "intents_total",
			Help:      "Navigation intents dispatched, by intent.",
		}, []string{"intent"}),
		focusMoves: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "padnav",
			Name:      "focus_moves_total",
			Help:      "Device focus changes.",
		}),
		absorbed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "padnav",
			Name:      "intents_absorbed_total",
			Help:      "Intents that had nowhere to go.",
		}),
		panics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "padnav",
			Name:      "callback_panics_total",
			Help:      "Recovered panics in element and collaborator callbacks.",
		}, []string{"callback"}),
		modalCaptures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "padnav",
			Name:      "modal_captures_total",
			Help:      "Dialogs that took over device input.",
		}),
	}
}

// Registry returns the registry holding the counters
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Hooks returns controller hooks that count activity and then call next
func (m *Metrics) Hooks(next nav.Hooks) nav.Hooks {
	return nav.Hooks{
		OnIntent: func(in types.Intent) {
			m.intents.WithLabelValues(in.String()).Inc()
			if next.OnIntent != nil {
				next.OnIntent(in)
			}
		},
		OnMove: func(from, to *nav.Node) {
			m.focusMoves.Inc()
			if next.OnMove != nil {
				next.OnMove(from, to)
			}
		},
		OnAbsorbed: func(in types.Intent) {
			m.absorbed.Inc()
			if next.OnAbsorbed != nil {
				next.OnAbsorbed(in)
			}
		},
		OnCapture: func() {
			m.modalCaptures.Inc()
			if next.OnCapture != nil {
				next.OnCapture()
			}
		},
		OnPanic: func(callback string) {
			m.panics.WithLabelValues(callback).Inc()
			if next.OnPanic != nil {
				next.OnPanic(callback)
			}
		},
		OnPageChanged: next.OnPageChanged,
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving metrics", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		return nil
	}
}
