package routes

import (
	"github.com/IDS-Mandujano/electronica-back/api/handlers"
	"github.com/IDS-Mandujano/electronica-back/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Services are the handlers' dependencies
type Services struct {
	Tickets   service.TicketService
	Inventory service.InventoryService
	Stats     service.StatsService
}

// SetupRoutes sets up all the routes for the server. auth, when non-nil,
// guards every route except the health check.
func SetupRoutes(r *gin.Engine, svc Services, log *logrus.Logger, auth gin.HandlerFunc) {
	r.NoRoute(handlers.NoRoute)

	api := r.Group("/api")
	api.GET("/health", handlers.Health)

	if auth != nil {
		api.Use(auth)
	}

	tickets := handlers.NewTicketHandler(svc.Tickets, log)
	deliveries := handlers.NewDeliveryHandler(svc.Tickets, log)
	inventory := handlers.NewInventoryHandler(svc.Inventory, log)
	stats := handlers.NewStatsHandler(svc.Stats, log)

	servicios := api.Group("/servicios")
	servicios.GET("", tickets.List)
	servicios.POST("", tickets.Create)
	servicios.GET("/:id", tickets.Get)
	servicios.DELETE("/:id", tickets.Delete)
	servicios.PUT("/:id/diagnostico", tickets.UpdateDiagnosis)
	servicios.PUT("/:id/finalizar", tickets.Finalize)
	servicios.GET("/:id/materiales", inventory.TicketMaterials)

	tarjetas := api.Group("/tarjetas")
	tarjetas.GET("", tickets.List)
	tarjetas.POST("", tickets.Create)
	tarjetas.GET("/:id", tickets.Get)
	tarjetas.PUT("/:id", tickets.UpdateCard)

	finalizado := api.Group("/finalizado")
	finalizado.GET("", deliveries.List)
	finalizado.POST("", deliveries.Create)
	finalizado.GET("/:id", deliveries.Get)
	finalizado.PUT("/:id", deliveries.Update)
	finalizado.DELETE("/:id", deliveries.Delete)

	productos := api.Group("/productos")
	productos.GET("", inventory.ListParts)
	productos.POST("", inventory.CreatePart)
	productos.POST("/uso", inventory.UseMaterial)
	productos.GET("/:id", inventory.GetPart)
	productos.PUT("/:id", inventory.UpdatePart)
	productos.DELETE("/:id", inventory.DeletePart)

	inventario := api.Group("/inventario")
	inventario.GET("/refacciones", inventory.ListParts)
	inventario.POST("/refacciones", inventory.CreatePart)
	inventario.GET("/tarjetas-venta", inventory.ListSaleCards)
	inventario.POST("/tarjetas-venta", inventory.CreateSaleCard)

	statsGroup := api.Group("/stats")
	statsGroup.GET("/summary", stats.Summary)
	statsGroup.GET("/chart", stats.Chart)
}
