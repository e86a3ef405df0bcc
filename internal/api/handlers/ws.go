package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/wonny/tearsheet/internal/analytics"
	"github.com/wonny/tearsheet/pkg/logger"
)

// WSHandler serves the interactive dashboard socket. Each message is a
// standalone request/response pair: the client names a panel and a scope,
// the server answers with the recomputed payload. No server-side push, no
// per-connection state beyond the socket itself.
type WSHandler struct {
	handler  *AnalyticsHandler
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewWSHandler creates a new websocket handler.
func NewWSHandler(h *AnalyticsHandler, log *logger.Logger) *WSHandler {
	return &WSHandler{
		handler: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger: log,
	}
}

type wsRequest struct {
	Panel    string   `json:"panel"`
	Strategy string   `json:"strategy,omitempty"` // empty: portfolio scope
	Products []string `json:"products,omitempty"` // strategies for portfolio scope
	Range    string   `json:"range,omitempty"`
	Window   int      `json:"window,omitempty"`
}

type wsResponse struct {
	Panel string      `json:"panel"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Serve upgrades the connection and answers panel requests until the
// client disconnects.
func (ws *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ws.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ws.logger.WithField("remote", conn.RemoteAddr().String()).Debug("websocket connected")

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ws.logger.WithError(err).Debug("websocket read failed")
			}
			return
		}

		resp := ws.answer(req)
		if err := conn.WriteJSON(resp); err != nil {
			ws.logger.WithError(err).Debug("websocket write failed")
			return
		}
	}
}

func (ws *WSHandler) answer(req wsRequest) wsResponse {
	h := ws.handler
	key := analytics.RangeKey(req.Range)

	var sc scope
	if req.Strategy == "" {
		sc = h.portfolioScope(strings.Join(req.Products, ","), key)
	} else {
		var err error
		sc, err = h.strategyScope(req.Strategy, strings.Join(req.Products, ","), key)
		if err != nil {
			return wsResponse{Panel: req.Panel, Error: err.Error()}
		}
	}

	window := req.Window
	if window < 2 {
		window = h.config.RollingWindow
	}

	switch req.Panel {
	case "series":
		return wsResponse{Panel: req.Panel, Data: h.seriesPayload(sc)}
	case "metrics":
		return wsResponse{Panel: req.Panel, Data: h.metricsPayload(sc)}
	case "comparison":
		return wsResponse{Panel: req.Panel, Data: h.comparisonPayload(sc)}
	case "rolling_sharpe":
		return wsResponse{Panel: req.Panel, Data: h.rollingSharpePayload(sc, window)}
	case "rolling_correlation":
		return wsResponse{Panel: req.Panel, Data: h.rollingCorrelationPayload(sc, window)}
	case "seasonality":
		return wsResponse{Panel: req.Panel, Data: h.seasonalityPayload(sc)}
	case "ranges":
		return wsResponse{Panel: req.Panel, Data: map[string]interface{}{
			"ranges": analytics.RangeKeys,
			"next":   analytics.NextRangeKey(key),
		}}
	default:
		return wsResponse{Panel: req.Panel, Error: "unknown panel"}
	}
}
