package routes

import (
	"github.com/gin-gonic/gin"

	"safetour/internal/handlers"
)

// SetupTrackingRoutes configures the public tracking endpoints.
func SetupTrackingRoutes(rg *gin.RouterGroup, trackingHandler *handlers.TrackingHandler) {
	rg.GET("/fences", trackingHandler.ListFences)
	rg.GET("/user/:id/last", trackingHandler.GetLastPosition)
	rg.POST("/register", trackingHandler.RegisterUser)
}

// SetupAlertRoutes configures SOS and incident reporting endpoints.
func SetupAlertRoutes(rg *gin.RouterGroup, alertHandler *handlers.AlertHandler) {
	rg.POST("/sos", alertHandler.TriggerSOS)
	rg.POST("/incidents", alertHandler.ReportIncident)
}

// SetupAdminRoutes configures the operator endpoints.
func SetupAdminRoutes(rg *gin.RouterGroup, adminHandler *handlers.AdminHandler) {
	admin := rg.Group("/admin")
	{
		admin.GET("/kpis", adminHandler.GetKPIs)
		admin.GET("/tourists", adminHandler.ListTourists)
		admin.GET("/alerts", adminHandler.ListAlerts)
	}
}
