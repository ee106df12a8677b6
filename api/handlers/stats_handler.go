package handlers

import (
	"net/http"
	"time"

	"github.com/IDS-Mandujano/electronica-back/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler serves the revenue dashboard
type StatsHandler struct {
	service service.StatsService
	log     *logrus.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(svc service.StatsService, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{service: svc, log: log}
}

// Summary returns today's, this week's and this month's revenue
func (h *StatsHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "", "Error al calcular las estadísticas")
		return
	}
	respond(c, http.StatusOK, "", summary)
}

// Chart returns the revenue series selected by ?tipo=
func (h *StatsHandler) Chart(c *gin.Context) {
	chart, err := h.service.Chart(c.Request.Context(), c.DefaultQuery("tipo", service.ChartMonthly))
	if err != nil {
		respondError(c, h.log, err, "", "Error al calcular la gráfica")
		return
	}
	respond(c, http.StatusOK, "", chart)
}

// Version is reported by the health endpoint
var Version = "dev"

// Health reports liveness
func Health(c *gin.Context) {
	respond(c, http.StatusOK, "", gin.H{
		"status":    "UP",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
