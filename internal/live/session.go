package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"planet-designer/internal/planet"
	"planet-designer/internal/shared/config"
	"planet-designer/internal/shared/errors"
	"planet-designer/internal/shared/metrics"
)

const (
	MessageReport  = "report"
	MessageInvalid = "invalid"
	MessageError   = "error"
)

// Evaluator turns a proposed planet into a report or a validation failure
type Evaluator interface {
	Evaluate(ctx context.Context, req planet.EvaluateRequest) (*planet.Report, error)
}

// Update is one edit sent by the client. Seq is echoed back so the client can drop stale replies.
type Update struct {
	Seq uint64 `json:"seq"`
	planet.EvaluateRequest
}

// Message is sent for every Update. An invalid message carries the last accepted report,
// which stays the current planet until a valid edit arrives.
type Message struct {
	Type    string         `json:"type"`
	Seq     uint64         `json:"seq"`
	Report  *planet.Report `json:"report,omitempty"`
	Errors  []string       `json:"errors,omitempty"`
	Message string         `json:"message,omitempty"`
}

type Handler struct {
	evaluator       Evaluator
	metrics         *metrics.Collector
	upgrader        websocket.Upgrader
	maxMessageBytes int64
	writeTimeout    time.Duration
}

func NewHandler(evaluator Evaluator, m *metrics.Collector, cfg config.LiveConfig, allowedOrigin string) *Handler {
	return &Handler{
		evaluator: evaluator,
		metrics:   m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
		maxMessageBytes: cfg.MaxMessageBytes,
		writeTimeout:    cfg.WriteTimeout,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "live", "remote_addr", r.RemoteAddr)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error
		logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	h.metrics.SessionOpened()
	defer h.metrics.SessionClosed()
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Debug("Failed to close WebSocket", "error", err)
		}
	}()

	logger.Info("Live session opened")
	s := &session{handler: h, conn: conn, logger: logger}
	s.run(r.Context())
	logger.Info("Live session closed", "updates", s.updates)
}

type session struct {
	handler *Handler
	conn    *websocket.Conn
	logger  *slog.Logger
	current *planet.Report
	updates int
}

func (s *session) run(ctx context.Context) {
	if s.handler.maxMessageBytes > 0 {
		s.conn.SetReadLimit(s.handler.maxMessageBytes)
	}

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("Live session ended unexpectedly", "error", err)
			}
			return
		}

		if err := s.write(s.handle(ctx, data)); err != nil {
			s.logger.Warn("Failed to write live message", "error", err)
			return
		}
	}
}

func (s *session) handle(ctx context.Context, data []byte) Message {
	var update Update
	if err := json.Unmarshal(data, &update); err != nil {
		return Message{Type: MessageError, Seq: salvageSeq(data), Message: "invalid JSON message"}
	}
	s.updates++

	report, err := s.handler.evaluator.Evaluate(ctx, update.EvaluateRequest)
	if err != nil {
		if violations := errors.Violations(err); violations != nil {
			return Message{Type: MessageInvalid, Seq: update.Seq, Report: s.current, Errors: violations}
		}
		s.logger.Error("Live evaluation failed", "error", err, "seq", update.Seq)
		return Message{Type: MessageError, Seq: update.Seq, Message: "evaluation failed"}
	}

	s.current = report
	return Message{Type: MessageReport, Seq: update.Seq, Report: report}
}

// salvageSeq reads only the seq of a message that failed to decode, so the client
// can still match the error to its request. It returns 0 when seq is unreadable.
func salvageSeq(data []byte) uint64 {
	var partial struct {
		Seq uint64 `json:"seq"`
	}
	if err := json.Unmarshal(data, &partial); err != nil {
		return 0
	}
	return partial.Seq
}

func (s *session) write(msg Message) error {
	if s.handler.writeTimeout > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.handler.writeTimeout)); err != nil {
			return err
		}
	}
	return s.conn.WriteJSON(msg)
}
