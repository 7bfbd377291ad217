package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"simtrack-svr/internal/dispatcher"
	"simtrack-svr/internal/pipeline"
)

// ingestRequest is the transport body for POST /fromSIM. Field names are
// fixed by the device-side firmware.
type ingestRequest struct {
	SimSid  string `json:"SimSid" binding:"required"`
	Command string `json:"Command" binding:"required"`
}

type handler struct {
	svc    *dispatcher.Service
	logger *slog.Logger
}

func NewRouter(svc *dispatcher.Service, lg *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	h := &handler{svc: svc, logger: lg}
	r.POST("/fromSIM", h.ingest)
	r.GET("/track/:simID", h.history)
	r.GET("/track/:simID/latest", h.latest)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func Start(addr string, svc *dispatcher.Service, lg *slog.Logger) error {
	return NewRouter(svc, lg).Run(addr)
}

func (h *handler) ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": err.Error(),
		})
		return
	}

	if _, err := h.svc.Ingest(c.Request.Context(), req.SimSid, req.Command); err != nil {
		status, kind := classifyIngestErr(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("ingest failed", "sim_id", req.SimSid, "err", err)
		}
		c.JSON(status, gin.H{"error": kind, "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": true})
}

// Decode and geo failures are the client's fault; anything else means the
// event could not be stored.
func classifyIngestErr(err error) (int, string) {
	switch {
	case errors.Is(err, pipeline.ErrDecode):
		return http.StatusBadRequest, "decode_error"
	case errors.Is(err, pipeline.ErrInvalidGeo):
		return http.StatusBadRequest, "invalid_geo_input"
	default:
		return http.StatusInternalServerError, "persistence_failure"
	}
}

func (h *handler) history(c *gin.Context) {
	simID := c.Param("simID")

	events, err := h.svc.History(c.Request.Context(), simID)
	if err != nil {
		h.logger.Error("history query failed", "sim_id", simID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "query_failure",
			"message": err.Error(),
		})
		return
	}
	if events == nil {
		events = []pipeline.TrackingEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *handler) latest(c *gin.Context) {
	simID := c.Param("simID")

	ev, ok, err := h.svc.Latest(c.Request.Context(), simID)
	if err != nil {
		h.logger.Error("latest lookup failed", "sim_id", simID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "query_failure",
			"message": err.Error(),
		})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "no events for sim " + simID,
		})
		return
	}
	c.JSON(http.StatusOK, ev)
}
