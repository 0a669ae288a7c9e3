// Package host serves loom documents to remote diff producers over
// WebSocket.
//
// Each connection gets its own document, interpreter, delegation
// manager, and trigger queue: the producer sends binary edit-stream
// frames, the host applies them and streams normalized triggers back.
// Fatal apply errors (unknown node id, stack faults) are reported as
// fatal error frames and the connection is closed; the producer must
// resync from scratch, since a partially applied stream leaves the
// tree corrupted.
package host

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/pkg/interp"
	"github.com/loomui/loom/pkg/wire"
)

const tracerName = "github.com/loomui/loom/pkg/host"

// Host accepts document connections and routes HTTP endpoints.
type Host struct {
	config   Config
	logger   *slog.Logger
	metrics  *metrics
	tracer   trace.Tracer
	upgrader websocket.Upgrader
}

// New creates a host with the given options applied over DefaultConfig.
func New(opts ...Option) *Host {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		config:  config,
		logger:  logger,
		metrics: newMetrics(config.MetricsNamespace, config.MetricsRegistry),
		tracer:  otel.Tracer(tracerName),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Router returns the host's HTTP routes: the document WebSocket at
// /loom, Prometheus metrics at /metrics, and a health probe.
func (h *Host) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/loom", h.handleWS)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

// handleWS upgrades the request and runs the connection until it closes.
func (h *Host) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	h.metrics.activeConns.Inc()
	defer h.metrics.activeConns.Dec()

	sess := newSession(h, conn)
	sess.run(r.Context())
}

// errorCodeFor maps an apply failure to a wire error code.
func errorCodeFor(err error) wire.ErrorCode {
	switch {
	case errors.Is(err, interp.ErrUnknownNodeID):
		return wire.CodeUnknownNode
	case errors.Is(err, interp.ErrStackUnderflow), errors.Is(err, interp.ErrStackResidue):
		return wire.CodeStackFault
	case errors.Is(err, interp.ErrUnsupportedReplaceArity):
		return wire.CodeReplaceArity
	default:
		return wire.CodeApplyFailed
	}
}

// spanAttrs builds the common span attributes for a stream application.
func spanAttrs(seq uint64, edits int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64("loom.stream.seq", int64(seq)),
		attribute.Int("loom.stream.edits", edits),
	}
}

// recordSpanError marks the span failed.
func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
