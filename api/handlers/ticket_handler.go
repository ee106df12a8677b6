package handlers

import (
	"net/http"
	"strings"

	"github.com/IDS-Mandujano/electronica-back/internal/models"
	"github.com/IDS-Mandujano/electronica-back/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const ticketNotFound = "Servicio no encontrado"

// TicketHandler serves /api/servicios and its /api/tarjetas aliases
type TicketHandler struct {
	service service.TicketService
	log     *logrus.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(svc service.TicketService, log *logrus.Logger) *TicketHandler {
	return &TicketHandler{service: svc, log: log}
}

// Create opens a ticket
func (h *TicketHandler) Create(c *gin.Context) {
	var body ticketBody
	if !bindJSON(c, &body) {
		return
	}

	ticket, err := h.service.Create(c.Request.Context(), service.CreateTicketRequest{
		EquipmentID:     body.EquipmentID,
		TechnicianID:    body.TechnicianID,
		ReportedProblem: body.ReportedProblem,
	})
	if err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al crear el servicio")
		return
	}
	respond(c, http.StatusCreated, "Servicio creado correctamente", ticket)
}

// List returns every ticket, newest first
func (h *TicketHandler) List(c *gin.Context) {
	tickets, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al obtener los servicios")
		return
	}
	respond(c, http.StatusOK, "", tickets)
}

// Get returns one ticket
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al obtener el servicio")
		return
	}
	respond(c, http.StatusOK, "", ticket)
}

// UpdateDiagnosis records the technician's findings. estado is required
// here and a body without it is rejected with 400; the /api/tarjetas
// update treats the same body as a read.
func (h *TicketHandler) UpdateDiagnosis(c *gin.Context) {
	var body diagnosisBody
	if !bindJSON(c, &body) {
		return
	}

	req := service.UpdateDiagnosisRequest{
		Diagnosis:         body.Diagnosis,
		EstimatedDelivery: body.EstimatedDelivery.ptr(),
	}
	if body.Status != nil {
		req.Status = models.TicketStatus(*body.Status)
	}

	ticket, err := h.service.UpdateDiagnosis(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al actualizar el diagnóstico")
		return
	}
	respond(c, http.StatusOK, "Diagnóstico actualizado", ticket)
}

// UpdateCard is the /api/tarjetas/{id} update. Without a status nothing is
// written and the current ticket is returned.
func (h *TicketHandler) UpdateCard(c *gin.Context) {
	var body diagnosisBody
	if !bindJSON(c, &body) {
		return
	}

	if body.Status == nil || strings.TrimSpace(*body.Status) == "" {
		h.Get(c)
		return
	}

	diagnosis := ""
	if body.Diagnosis != nil {
		diagnosis = *body.Diagnosis
	}
	ticket, err := h.service.UpdateDiagnosis(c.Request.Context(), c.Param("id"), service.UpdateDiagnosisRequest{
		Diagnosis:         &diagnosis,
		Status:            models.TicketStatus(*body.Status),
		EstimatedDelivery: body.EstimatedDelivery.ptr(),
	})
	if err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al actualizar la tarjeta")
		return
	}
	respond(c, http.StatusOK, "Tarjeta actualizada", ticket)
}

// Finalize delivers the ticket with its final cost
func (h *TicketHandler) Finalize(c *gin.Context) {
	var body finalizeBody
	if !bindJSON(c, &body) {
		return
	}
	if body.RepairCost == nil {
		fail(c, http.StatusBadRequest, "El costo de reparación es requerido")
		return
	}

	ticket, err := h.service.FinalizeDelivery(c.Request.Context(), c.Param("id"), service.FinalizeRequest{
		RepairCost:   *body.RepairCost,
		DeliveryDate: body.DeliveryDate.ptr(),
	})
	if err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al finalizar el servicio")
		return
	}
	respond(c, http.StatusOK, "Servicio finalizado", ticket)
}

// Delete removes a ticket
func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al eliminar el servicio")
		return
	}
	respond(c, http.StatusOK, "Servicio eliminado", nil)
}

// DeliveryHandler serves /api/finalizado, the manager's delivery records
type DeliveryHandler struct {
	service service.TicketService
	log     *logrus.Logger
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(svc service.TicketService, log *logrus.Logger) *DeliveryHandler {
	return &DeliveryHandler{service: svc, log: log}
}

// List returns finished and delivered tickets
func (h *DeliveryHandler) List(c *gin.Context) {
	tickets, err := h.service.ListFinalized(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al obtener los servicios finalizados")
		return
	}
	respond(c, http.StatusOK, "", tickets)
}

// Get returns one delivery record
func (h *DeliveryHandler) Get(c *gin.Context) {
	ticket, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al obtener el servicio")
		return
	}
	respond(c, http.StatusOK, "", ticket)
}

// Create finalizes the ticket named by registroTarjetaId. A missing cost
// is recorded as zero.
func (h *DeliveryHandler) Create(c *gin.Context) {
	var body deliveryCreateBody
	if !bindJSON(c, &body) {
		return
	}
	id := strings.TrimSpace(body.TicketID)
	if id == "" {
		fail(c, http.StatusBadRequest, "registroTarjetaId es requerido")
		return
	}

	cost := decimal.Zero
	if body.RepairCost != nil {
		cost = *body.RepairCost
	}
	ticket, err := h.service.FinalizeDelivery(c.Request.Context(), id, service.FinalizeRequest{
		RepairCost:   cost,
		DeliveryDate: body.DeliveryDate.ptr(),
	})
	if err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al registrar la entrega")
		return
	}
	respond(c, http.StatusCreated, "Entrega registrada", ticket)
}

// Update amends a delivery record
func (h *DeliveryHandler) Update(c *gin.Context) {
	var body deliveryUpdateBody
	if !bindJSON(c, &body) {
		return
	}

	ticket, err := h.service.UpdateDelivery(c.Request.Context(), c.Param("id"), service.DeliveryPatch{
		RepairCost:   body.RepairCost,
		Diagnosis:    body.ChangedProblem,
		DeliveryDate: body.DeliveryDate.ptr(),
	})
	if err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al actualizar la entrega")
		return
	}
	respond(c, http.StatusOK, "Entrega actualizada", ticket)
}

// Delete removes the underlying ticket
func (h *DeliveryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, ticketNotFound, "Error al eliminar el servicio")
		return
	}
	respond(c, http.StatusOK, "Servicio eliminado", nil)
}
