package handlers

import (
	"net/http"

	"github.com/IDS-Mandujano/electronica-back/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const partNotFound = "Producto no encontrado"

// InventoryHandler serves parts, material usage and boards for sale
type InventoryHandler struct {
	service service.InventoryService
	log     *logrus.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(svc service.InventoryService, log *logrus.Logger) *InventoryHandler {
	return &InventoryHandler{service: svc, log: log}
}

// ListParts returns every part
func (h *InventoryHandler) ListParts(c *gin.Context) {
	parts, err := h.service.ListParts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, partNotFound, "Error al obtener el inventario")
		return
	}
	respond(c, http.StatusOK, "", parts)
}

// GetPart returns one part
func (h *InventoryHandler) GetPart(c *gin.Context) {
	part, err := h.service.GetPart(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, partNotFound, "Error al obtener el producto")
		return
	}
	respond(c, http.StatusOK, "", part)
}

// CreatePart adds a part
func (h *InventoryHandler) CreatePart(c *gin.Context) {
	var body partBody
	if !bindJSON(c, &body) {
		return
	}

	part, err := h.service.CreatePart(c.Request.Context(), body.input())
	if err != nil {
		respondError(c, h.log, err, partNotFound, "Error al crear el producto")
		return
	}
	respond(c, http.StatusCreated, "Producto creado correctamente", part)
}

// UpdatePart writes the fields present in the body
func (h *InventoryHandler) UpdatePart(c *gin.Context) {
	var body partBody
	if !bindJSON(c, &body) {
		return
	}

	part, err := h.service.UpdatePart(c.Request.Context(), c.Param("id"), body.input())
	if err != nil {
		respondError(c, h.log, err, partNotFound, "Error al actualizar el producto")
		return
	}
	respond(c, http.StatusOK, "Producto actualizado", part)
}

// DeletePart removes a part
func (h *InventoryHandler) DeletePart(c *gin.Context) {
	if err := h.service.DeletePart(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, partNotFound, "Error al eliminar el producto")
		return
	}
	respond(c, http.StatusOK, "Producto eliminado", nil)
}

// UseMaterial consumes part stock for a ticket
func (h *InventoryHandler) UseMaterial(c *gin.Context) {
	var body useMaterialBody
	if !bindJSON(c, &body) {
		return
	}

	req := service.UseMaterialRequest{PartID: body.PartID, TicketID: body.TicketID}
	if body.Quantity != nil {
		req.Quantity = int(*body.Quantity)
	}

	part, err := h.service.UseMaterial(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, partNotFound, "Error al registrar el material")
		return
	}
	respond(c, http.StatusOK, "Material registrado correctamente", part)
}

// TicketMaterials lists the parts a ticket consumed
func (h *InventoryHandler) TicketMaterials(c *gin.Context) {
	rows, err := h.service.ListTicketMaterials(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, partNotFound, "Error al obtener los materiales")
		return
	}
	respond(c, http.StatusOK, "", rows)
}

// ListSaleCards returns the boards for sale
func (h *InventoryHandler) ListSaleCards(c *gin.Context) {
	cards, err := h.service.ListSaleCards(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Tarjeta no encontrada", "Error al obtener las tarjetas en venta")
		return
	}
	respond(c, http.StatusOK, "", cards)
}

// CreateSaleCard adds a board for sale
func (h *InventoryHandler) CreateSaleCard(c *gin.Context) {
	var body saleCardBody
	if !bindJSON(c, &body) {
		return
	}

	req := service.CreateSaleCardRequest{
		Model:       body.Model,
		Description: body.Description,
		SalePrice:   body.SalePrice,
	}
	if body.BrandID != nil {
		req.BrandID = int(*body.BrandID)
	}

	card, err := h.service.CreateSaleCard(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Tarjeta no encontrada", "Error al crear la tarjeta")
		return
	}
	respond(c, http.StatusCreated, "Tarjeta registrada correctamente", card)
}
