package host

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/loomui/loom/pkg/dom"
	"github.com/loomui/loom/pkg/interp"
	"github.com/loomui/loom/pkg/trigger"
	"github.com/loomui/loom/pkg/wire"
)

// session is one live document connection. It owns the document, the
// interpreter, and the delegation state; all tree mutation happens on
// its read goroutine, honoring the single-owner rule. Only the trigger
// pump crosses goroutines, through the queue.
type session struct {
	host   *Host
	conn   *websocket.Conn
	logger *slog.Logger

	doc       *dom.Document
	interp    *interp.Interpreter
	delegator *trigger.Delegator
	queue     *trigger.Queue

	writeMu sync.Mutex
	closed  sync.Once
}

func newSession(h *Host, conn *websocket.Conn) *session {
	logger := h.logger.With("remote", conn.RemoteAddr().String())
	doc := dom.NewDocument(h.config.RootTag)
	queue := trigger.NewQueue()
	delegator := trigger.NewDelegator(doc.Root(), queue, logger)

	return &session{
		host:      h,
		conn:      conn,
		logger:    logger,
		doc:       doc,
		interp:    interp.New(doc, delegator, logger),
		delegator: delegator,
		queue:     queue,
	}
}

// run drives the connection: the trigger pump in a goroutine, the read
// loop on the calling goroutine. It returns when the connection closes.
func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.triggerLoop(ctx)
	s.readLoop(ctx)
}

// readLoop reads frames until the connection fails or a fatal apply
// error abandons the document.
func (s *session) readLoop(ctx context.Context) {
	defer s.close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.host.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := wire.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			s.sendError(wire.CodeInvalidFrame, err.Error(), false)
			continue
		}

		switch frame.Type {
		case wire.FrameEdits:
			if fatal := s.handleEditsFrame(ctx, frame.Payload); fatal {
				return
			}
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type.String())
		}
	}
}

// handleEditsFrame decodes and applies one edit stream. It reports
// whether the failure was fatal to the connection.
func (s *session) handleEditsFrame(ctx context.Context, payload []byte) bool {
	stream, err := wire.DecodeStream(payload)
	if err != nil {
		s.logger.Error("stream decode error", "error", err)
		s.sendError(wire.CodeInvalidFrame, err.Error(), false)
		return false
	}

	_, span := s.host.tracer.Start(ctx, "loom.apply",
		trace.WithAttributes(spanAttrs(stream.Seq, len(stream.Edits))...))
	defer span.End()

	start := time.Now()
	err = s.interp.Apply(stream)
	s.host.metrics.applyDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		recordSpanError(span, err)
		s.host.metrics.streamsTotal.WithLabelValues("error").Inc()
		s.logger.Error("apply failed, abandoning document",
			"seq", stream.Seq, "error", err)
		// Partial application corrupted the tree; the producer must
		// resync over a fresh connection.
		s.sendError(errorCodeFor(err), err.Error(), true)
		return true
	}

	s.host.metrics.streamsTotal.WithLabelValues("ok").Inc()
	s.host.metrics.editsApplied.Add(float64(len(stream.Edits)))
	return false
}

// triggerLoop pumps normalized triggers from the queue to the producer.
func (s *session) triggerLoop(ctx context.Context) {
	for {
		t, err := s.queue.Wait(ctx)
		if err != nil {
			return
		}

		frame := wire.NewFrame(wire.FrameTrigger, wire.EncodeTrigger(&t))
		if err := s.writeFrame(frame); err != nil {
			s.logger.Error("trigger write error", "error", err)
			s.host.metrics.writeErrors.Inc()
			return
		}
		s.host.metrics.triggersSent.WithLabelValues(t.Category).Inc()
	}
}

func (s *session) sendError(code wire.ErrorCode, message string, fatal bool) {
	em := &wire.ErrorMessage{Code: code, Message: message, Fatal: fatal}
	frame := wire.NewFrame(wire.FrameError, wire.EncodeErrorMessage(em))
	if err := s.writeFrame(frame); err != nil {
		s.logger.Error("error frame write failed", "error", err)
		s.host.metrics.writeErrors.Inc()
	}
}

func (s *session) writeFrame(f *wire.Frame) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.host.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

func (s *session) close() {
	s.closed.Do(func() {
		s.conn.Close()
	})
}
