package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

// Metrics owns the bot's Prometheus collectors and the registry they are exposed from.
type Metrics struct {
	registry *prometheus.Registry

	commandTotal     *prometheus.CounterVec
	commandErrors    *prometheus.CounterVec
	commandDuration  *prometheus.HistogramVec
	providerRequests *prometheus.CounterVec
	remindersPending prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commandTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "command_total",
				Help: "Total number of bot commands handled by command",
			},
			[]string{"command"},
		),
		commandErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "command_errors",
				Help: "Total number of bot command errors by command",
			},
			[]string{"command"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "command_duration_seconds",
				Help:    "Duration of bot command execution in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		providerRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_requests_total",
				Help: "Total number of external service requests by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		remindersPending: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "reminders_pending",
				Help: "Number of reminders waiting to be delivered",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.commandTotal,
		m.commandErrors,
		m.commandDuration,
		m.providerRequests,
		m.remindersPending,
	)

	return m
}

func (m *Metrics) ObserveCommand(command string, elapsed time.Duration, err error) {
	m.commandTotal.WithLabelValues(command).Inc()
	m.commandDuration.WithLabelValues(command).Observe(elapsed.Seconds())

	if err != nil {
		m.commandErrors.WithLabelValues(command).Inc()
	}
}

func (m *Metrics) ObserveRequest(provider string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	m.providerRequests.WithLabelValues(provider, outcome).Inc()
}

// RemindersPending is handed to the scheduler, which sets it on every change.
func (m *Metrics) RemindersPending() prometheus.Gauge {
	return m.remindersPending
}

type Server struct {
	*http.Server
}

func NewServer(addr string, m *Metrics) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", healthzHandler)

	return &Server{&http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}}
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Run serves until ctx is done, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("metrics server shutdown")
		}
	}()

	log.Info().Str("addr", s.Addr).Msg("metrics server listening")

	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("metrics server stopped")
	}
}
