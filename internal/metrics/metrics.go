// Package metrics exposes the Prometheus series this core's session and
// pool state is observed through.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pfcp_sessions_active",
			Help: "Number of PFCP sessions currently held by this core.",
		},
	)

	RulePoolUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfcp_rule_pool_used_total",
			Help: "Cumulative rule ids allocated, by rule kind.",
		},
		[]string{"kind"},
	)

	HashEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pfcp_hash_entries",
			Help: "Entries currently published in a global lookup hash.",
		},
		[]string{"table"},
	)

	UEIPPoolAvailable = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pfcp_ue_ip_pool_available",
			Help: "Free UE IP slots remaining in a subnet's pool.",
		},
		[]string{"subnet"},
	)

	DecodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfcp_decode_errors_total",
			Help: "Decode errors observed, by information element.",
		},
		[]string{"ie"},
	)

	ConfigErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfcp_config_errors_total",
			Help: "Configuration errors observed, by offending key.",
		},
		[]string{"key"},
	)
)

// RecordRuleAlloc records a rule id allocation for the given kind
// ("pdr", "far", "urr", "qer", "bar").
func RecordRuleAlloc(kind string) {
	RulePoolUsed.WithLabelValues(kind).Inc()
}

// SetHashEntries sets the current size of a global hash ("pdr" or "far").
func SetHashEntries(table string, n int) {
	HashEntries.WithLabelValues(table).Set(float64(n))
}

// SetUEIPPoolAvailable sets the free-slot count for a subnet, identified
// by its APN.
func SetUEIPPoolAvailable(subnet string, n int) {
	UEIPPoolAvailable.WithLabelValues(subnet).Set(float64(n))
}

// RecordDecodeError increments the decode-error counter for an IE name.
func RecordDecodeError(ie string) {
	DecodeErrors.WithLabelValues(ie).Inc()
}

// RecordConfigError increments the config-error counter for a YAML key.
func RecordConfigError(key string) {
	ConfigErrors.WithLabelValues(key).Inc()
}

// Server is a minimal Prometheus metrics HTTP server.
type Server struct {
	port   int
	server *http.Server
	logger *zap.Logger
}

// NewServer creates a metrics server bound to port.
func NewServer(port int, logger *zap.Logger) *Server {
	return &Server{port: port, logger: logger}
}

// Start serves /metrics until the process is stopped or Stop is called.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.logger.Info("starting metrics server", zap.Int("port", s.port))
	return s.server.ListenAndServe()
}

// Stop closes the metrics server.
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}
