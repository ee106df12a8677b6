package handlers

import (
	"net/http"

	"github.com/IDS-Mandujano/electronica-back/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Response is the envelope of every API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}

// bindJSON decodes the body into dst, answering 400 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return false
	}
	return true
}

// respondError maps service errors onto status codes. notFound and
// fallback are the messages for 404 and 500 respectively.
func respondError(c *gin.Context, log *logrus.Logger, err error, notFound, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		fail(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		fail(c, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrInsufficientStock):
		fail(c, http.StatusBadRequest, "Stock insuficiente")
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error(fallback)
		fail(c, http.StatusInternalServerError, fallback)
	}
}

// NoRoute answers unknown endpoints
func NoRoute(c *gin.Context) {
	fail(c, http.StatusNotFound, "Endpoint no encontrado")
}

// Recovery turns panics into a 500 envelope
func Recovery(log *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithField("panic", recovered).Error("Recovered from panic")
		fail(c, http.StatusInternalServerError, "Error interno del servidor")
	})
}
