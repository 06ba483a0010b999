package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Жизненный цикл вспышки
	outbreaks := api.Group("/outbreaks")
	{
		outbreaks.POST("", h.reportOutbreak)
		outbreaks.GET("", h.listOutbreaks)
		outbreaks.GET("/:id", h.getOutbreak)
		outbreaks.GET("/:id/summary", h.outbreakSummary)
		outbreaks.POST("/:id/assign", h.assignInvestigator)
		outbreaks.POST("/:id/start", h.startInvestigation)
		outbreaks.POST("/:id/investigation", h.submitInvestigation)
		outbreaks.POST("/:id/resolve", h.resolveOutbreak)
		outbreaks.POST("/:id/close", h.closeOutbreak)

		outbreaks.POST("/:id/links", h.addTracingLink)
		outbreaks.GET("/:id/links", h.listTracingLinks)
		outbreaks.GET("/:id/window", h.tracingWindow)
		outbreaks.GET("/:id/network", h.outbreakNetwork)
	}

	samples := api.Group("/samples")
	{
		samples.GET("/stats", h.sampleStats)
		samples.PUT("/:fieldId/status", h.updateSampleStatus)
		samples.POST("/:fieldId/result", h.submitSampleResult)
	}

	api.GET("/tracing/network", h.regionalNetwork)

	analysis := api.Group("/analysis")
	{
		analysis.GET("/graph", h.regionGraph)
		analysis.GET("/rates", h.rates)
		analysis.POST("/hotspots", h.hotspots)
		analysis.POST("/hotspots/compare", h.compareHotspots)
		analysis.GET("/regions/locate", h.locateRegion)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
