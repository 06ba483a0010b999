package v1

import (
	"net/http"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/gin-gonic/gin"
)

// @Summary Add a contact tracing link
// @Description Only outbreaks with a confirmed diagnosis can be traced
// @Tags Tracing
// @Accept json
// @Produce json
// @Param id path string true "Outbreak ID"
// @Param link body TracingLinkRequest true "Tracing link"
// @Success 201 {object} LinkResponse
// @Failure 400 {object} map[string]string "Invalid request or duplicate link"
// @Failure 404 {object} map[string]string "Outbreak not found"
// @Failure 409 {object} map[string]string "Outbreak is not confirmed"
// @Router /outbreaks/{id}/links [post]
func (h *Handler) addTracingLink(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "addTracingLink").WithField("id", id)

	var input TracingLinkRequest
	if !h.bind(c, log, &input) {
		return
	}
	link, err := h.tracingService.AddLink(c.Request.Context(), id, DTOToLinkModel(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToLinkResponse(link))
}

// @Summary List tracing links of an outbreak
// @Tags Tracing
// @Produce json
// @Param id path string true "Outbreak ID"
// @Success 200 {array} LinkResponse
// @Failure 404 {object} map[string]string "Outbreak not found"
// @Router /outbreaks/{id}/links [get]
func (h *Handler) listTracingLinks(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "listTracingLinks").WithField("id", id)

	links, err := h.tracingService.ListLinks(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToLinkResponses(links))
}

// @Summary Get the tracing window of an outbreak
// @Description Contact window derived from the disease incubation period
// @Tags Tracing
// @Produce json
// @Param id path string true "Outbreak ID"
// @Success 200 {object} tracing.Window
// @Failure 404 {object} map[string]string "Outbreak not found"
// @Router /outbreaks/{id}/window [get]
func (h *Handler) tracingWindow(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "tracingWindow").WithField("id", id)

	window, err := h.tracingService.TracingWindow(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, window)
}

// @Summary Get the contact network of an outbreak
// @Tags Tracing
// @Produce json
// @Param id path string true "Outbreak ID"
// @Success 200 {object} tracing.Network
// @Failure 404 {object} map[string]string "Outbreak not found"
// @Router /outbreaks/{id}/network [get]
func (h *Handler) outbreakNetwork(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "outbreakNetwork").WithField("id", id)

	network, err := h.tracingService.OutbreakNetwork(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, network)
}

// @Summary Get the regional contact network
// @Description Merged network of confirmed outbreaks reported in a woreda during a period
// @Tags Tracing
// @Produce json
// @Param region query string false "Woreda code"
// @Param from query string false "Period start (YYYY-MM-DD or RFC3339)"
// @Param to query string false "Period end (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} tracing.Network
// @Failure 400 {object} map[string]string "Invalid period"
// @Router /tracing/network [get]
func (h *Handler) regionalNetwork(c *gin.Context) {
	log := h.logger.WithField("method", "regionalNetwork")

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
	filter := models.TracingFilter{RegionCode: c.Query("region"), From: from, To: to}

	network, err := h.tracingService.RegionalNetwork(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, network)
}
