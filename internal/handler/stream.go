package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"loansim/internal/config"
	"loansim/internal/service"
)

const streamReadTimeout = 30 * time.Second

type StreamHandler struct {
	Simulations *service.SimulationService
	Config      config.StreamConfig
	Logger      *zap.Logger
}

func (h *StreamHandler) Register(r *gin.Engine) {
	if !h.Config.Enabled {
		return
	}
	r.GET("/api/v1/simulations/stream", h.stream)
}

type streamFrame struct {
	Type   string                      `json:"type"`
	Done   int                         `json:"done,omitempty"`
	Total  int                         `json:"total,omitempty"`
	Error  string                      `json:"error,omitempty"`
	Result *service.SimulationResponse `json:"result,omitempty"`
}

// stream upgrades the request to a websocket, reads a single simulation
// request and pushes progress frames while the Monte Carlo pass runs. The
// final frame carries the full result.
//
// @Summary Stream a simulation run
// @Description Websocket endpoint. Send one simulation request as the first text message; receive progress frames followed by a result frame.
// @Tags simulations
// @Router /api/v1/simulations/stream [get]
func (h *StreamHandler) stream(c *gin.Context) {
	if h.Simulations == nil {
		Error(c, http.StatusInternalServerError, "simulation service unavailable", nil)
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("stream accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	ctx := c.Request.Context()
	readCtx, cancelRead := context.WithTimeout(ctx, streamReadTimeout)
	_, payload, err := conn.Read(readCtx)
	cancelRead()
	if err != nil {
		conn.Close(websocket.StatusPolicyViolation, "request not received")
		return
	}

	var req service.SimulationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		h.writeFrame(ctx, conn, streamFrame{Type: "error", Error: "invalid request: " + err.Error()})
		conn.Close(websocket.StatusUnsupportedData, "invalid request")
		return
	}

	every := h.Config.ProgressEvery
	if every <= 0 {
		every = 500
	}
	progress := func(done, total int) {
		if done%every != 0 && done != total {
			return
		}
		h.writeFrame(ctx, conn, streamFrame{Type: "progress", Done: done, Total: total})
	}

	resp, err := h.Simulations.RunWithProgress(ctx, req, progress)
	if err != nil {
		h.writeFrame(ctx, conn, streamFrame{Type: "error", Error: err.Error()})
		if service.IsValidationError(err) {
			conn.Close(websocket.StatusUnsupportedData, "invalid parameters")
		} else {
			conn.Close(websocket.StatusInternalError, "simulation failed")
		}
		return
	}

	h.writeFrame(ctx, conn, streamFrame{Type: "result", Result: resp})
	conn.Close(websocket.StatusNormalClosure, "done")
}

func (h *StreamHandler) writeFrame(ctx context.Context, conn *websocket.Conn, frame streamFrame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, payload); err != nil && h.Logger != nil {
		h.Logger.Debug("stream write failed", zap.Error(err))
	}
}
