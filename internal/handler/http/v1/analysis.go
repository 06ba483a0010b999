package v1

import (
	"net/http"
	"strconv"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/gin-gonic/gin"
)

// @Summary Get the region adjacency graph
// @Description Contiguity graph of the current woreda set, with regions excluded for invalid geometry
// @Tags Analysis
// @Produce json
// @Success 200 {object} GraphResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analysis/graph [get]
func (h *Handler) regionGraph(c *gin.Context) {
	log := h.logger.WithField("method", "regionGraph")

	res, err := h.analysisService.RegionGraph(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToGraphResponse(res))
}

// @Summary Get per-woreda rates
// @Description Susceptible, cases, deaths, outbreak count, attack rate and case fatality rate per woreda
// @Tags Analysis
// @Produce json
// @Param disease query string false "Disease code"
// @Param species query string false "Species"
// @Param from query string false "Period start (YYYY-MM-DD or RFC3339)"
// @Param to query string false "Period end (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} stats.RateTable
// @Failure 400 {object} map[string]string "Invalid filter"
// @Router /analysis/rates [get]
func (h *Handler) rates(c *gin.Context) {
	log := h.logger.WithField("method", "rates")

	from, err := parseDateQuery(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter := models.CaseFilter{
		DiseaseCode: c.Query("disease"),
		Species:     c.Query("species"),
		From:        from,
		To:          to,
	}

	table, err := h.analysisService.Rates(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// @Summary Detect hotspots
// @Description Local Moran's I with a conditional permutation test over the woreda adjacency graph
// @Tags Analysis
// @Accept json
// @Produce json
// @Param analysis body HotspotAnalysisRequest true "Hotspot analysis"
// @Success 200 {object} service.HotspotReport
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 422 {object} map[string]string "Analysis cannot be computed"
// @Router /analysis/hotspots [post]
func (h *Handler) hotspots(c *gin.Context) {
	var input HotspotAnalysisRequest
	log := h.logger.WithField("method", "hotspots")
	if !h.bind(c, log, &input) {
		return
	}

	report, err := h.analysisService.Hotspots(c.Request.Context(), DTOToHotspotRequest(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Compare hotspot analyses
// @Description Runs several analyses (e.g. per disease or period) concurrently, results in request order
// @Tags Analysis
// @Accept json
// @Produce json
// @Param analyses body CompareHotspotsRequest true "Analyses"
// @Success 200 {array} service.HotspotReport
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 422 {object} map[string]string "Analysis cannot be computed"
// @Router /analysis/hotspots/compare [post]
func (h *Handler) compareHotspots(c *gin.Context) {
	var input CompareHotspotsRequest
	log := h.logger.WithField("method", "compareHotspots")
	if !h.bind(c, log, &input) {
		return
	}

	reqs := make([]service.HotspotRequest, len(input.Analyses))
	for i, a := range input.Analyses {
		reqs[i] = DTOToHotspotRequest(a)
	}
	reports, err := h.analysisService.CompareHotspots(c.Request.Context(), reqs)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// @Summary Locate the woreda of a point
// @Description Finds the woreda whose boundary contains the coordinates, e.g. to fill region_code of a field report
// @Tags Analysis
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} models.Region
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 404 {object} map[string]string "No woreda contains the point"
// @Router /analysis/regions/locate [get]
func (h *Handler) locateRegion(c *gin.Context) {
	log := h.logger.WithField("method", "locateRegion")

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters are required"})
		return
	}

	region, err := h.analysisService.LocateRegion(c.Request.Context(), lat, lon)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, region)
}
