package server

import (
	"context"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/lxzan/gws"

	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// sessionEvaluator is the gws session key holding a connection's evaluator.
const sessionEvaluator = "evaluator"

// handleWS upgrades the connection. Every text message is one line of input
// evaluated against the session's own variables; each gets one EvalResponse.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	socket, err := s.upgrader.Upgrade(w, r)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", logging.Err(err))
		return
	}
	go socket.ReadLoop()
}

// wsHandler implements gws.Event.
type wsHandler struct {
	s *Server
}

func (h *wsHandler) OnOpen(socket *gws.Conn) {
	socket.Session().Store(sessionEvaluator, h.s.factory.NewEvaluator())
	_ = socket.SetDeadline(time.Now().Add(2 * PingInterval))
	h.s.metrics.SessionOpened()
	h.s.logger.Debug("websocket session opened", logging.String("remote", socket.RemoteAddr().String()))
}

func (h *wsHandler) OnClose(socket *gws.Conn, err error) {
	h.s.metrics.SessionClosed()
	h.s.logger.Debug("websocket session closed", logging.Err(err))
}

func (h *wsHandler) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(2 * PingInterval))
	_ = socket.WritePong(payload)
}

func (h *wsHandler) OnPong(*gws.Conn, []byte) {}

func (h *wsHandler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	_ = socket.SetDeadline(time.Now().Add(2 * PingInterval))

	v, ok := socket.Session().Load(sessionEvaluator)
	if !ok {
		return
	}
	ev := v.(orchestration.Evaluator)

	ctx := h.s.requestContext()
	if h.s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.s.config.Timeout)
		defer cancel()
	}
	resp, _ := h.s.evaluate(ctx, ev, string(message.Bytes()))
	payload, err := json.Marshal(resp)
	if err != nil {
		h.s.logger.Error("failed to encode websocket response", err)
		return
	}
	if err := socket.WriteMessage(gws.OpcodeText, payload); err != nil {
		h.s.logger.Debug("websocket write failed", logging.Err(err))
	}
}
