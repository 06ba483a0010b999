package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/outbreak"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @Summary Report a new outbreak
// @Description Register a suspected outbreak. It enters the triage queue as Unassigned.
// @Tags Outbreaks
// @Accept json
// @Produce json
// @Param outbreak body ReportOutbreakRequest true "Outbreak report"
// @Success 201 {object} OutbreakResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /outbreaks [post]
func (h *Handler) reportOutbreak(c *gin.Context) {
	var input ReportOutbreakRequest
	log := h.logger.WithField("method", "reportOutbreak")
	if !h.bind(c, log, &input) {
		return
	}

	agg, err := h.outbreakService.ReportOutbreak(c.Request.Context(), DTOToOutbreakModel(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToOutbreakResponse(agg))
}

// @Summary Get a list of outbreaks
// @Description Paginated outbreak queue, newest reports first. Filter by status to get the triage queue (Unassigned) or an investigator's queue.
// @Tags Outbreaks
// @Produce json
// @Param status query string false "Outbreak status"
// @Param investigator query string false "Investigator name"
// @Param region query string false "Woreda code"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} models.Outbreak
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /outbreaks [get]
func (h *Handler) listOutbreaks(c *gin.Context) {
	log := h.logger.WithField("method", "listOutbreaks")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	filter := models.OutbreakFilter{
		Status:       models.OutbreakStatus(c.Query("status")),
		Investigator: c.Query("investigator"),
		RegionCode:   c.Query("region"),
		Page:         page,
		PageSize:     pageSize,
	}
	outbreaks, err := h.outbreakService.ListOutbreaks(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, outbreaks)
}

// @Summary Get outbreak by ID
// @Description Get an outbreak with its case line-list and samples
// @Tags Outbreaks
// @Produce json
// @Param id path string true "Outbreak ID"
// @Success 200 {object} OutbreakResponse
// @Failure 400 {object} map[string]string "Invalid outbreak ID"
// @Failure 404 {object} map[string]string "Outbreak not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /outbreaks/{id} [get]
func (h *Handler) getOutbreak(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getOutbreak").WithField("id", id)

	agg, err := h.outbreakService.GetOutbreak(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToOutbreakResponse(agg))
}

// @Summary Get outbreak summary
// @Description Totals, attack rate and case fatality rate over the outbreak line-list
// @Tags Outbreaks
// @Produce json
// @Param id path string true "Outbreak ID"
// @Success 200 {object} stats.Summary
// @Failure 404 {object} map[string]string "Outbreak not found"
// @Router /outbreaks/{id}/summary [get]
func (h *Handler) outbreakSummary(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "outbreakSummary").WithField("id", id)

	summary, err := h.outbreakService.OutbreakSummary(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Assign an investigator
// @Tags Outbreaks
// @Accept json
// @Produce json
// @Param id path string true "Outbreak ID"
// @Param assignment body AssignInvestigatorRequest true "Investigator"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Outbreak not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /outbreaks/{id}/assign [post]
func (h *Handler) assignInvestigator(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "assignInvestigator").WithField("id", id)

	var input AssignInvestigatorRequest
	if !h.bind(c, log, &input) {
		return
	}
	t, err := h.outbreakService.AssignInvestigator(c.Request.Context(), id, input.Investigator)
	h.respondTransition(c, log, t, err)
}

// @Summary Start the field investigation
// @Tags Outbreaks
// @Accept json
// @Produce json
// @Param id path string true "Outbreak ID"
// @Param start body StartInvestigationRequest false "Investigation start date"
// @Success 200 {object} TransitionResponse
// @Failure 404 {object} map[string]string "Outbreak not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /outbreaks/{id}/start [post]
func (h *Handler) startInvestigation(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "startInvestigation").WithField("id", id)

	var input StartInvestigationRequest
	if c.Request.ContentLength > 0 && !h.bind(c, log, &input) {
		return
	}
	date := time.Now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}
	t, err := h.outbreakService.StartInvestigation(c.Request.Context(), id, date)
	h.respondTransition(c, log, t, err)
}

// @Summary Submit the investigation report
// @Description Records investigation details, the case line-list and collected samples
// @Tags Outbreaks
// @Accept json
// @Produce json
// @Param id path string true "Outbreak ID"
// @Param report body SubmitInvestigationRequest true "Investigation report"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Outbreak not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /outbreaks/{id}/investigation [post]
func (h *Handler) submitInvestigation(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "submitInvestigation").WithField("id", id)

	var input SubmitInvestigationRequest
	if !h.bind(c, log, &input) {
		return
	}
	t, err := h.outbreakService.SubmitInvestigation(c.Request.Context(), id, DTOToInvestigation(input))
	h.respondTransition(c, log, t, err)
}

// @Summary Resolve an outbreak
// @Tags Outbreaks
// @Produce json
// @Param id path string true "Outbreak ID"
// @Success 200 {object} TransitionResponse
// @Failure 404 {object} map[string]string "Outbreak not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /outbreaks/{id}/resolve [post]
func (h *Handler) resolveOutbreak(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "resolveOutbreak").WithField("id", id)

	t, err := h.outbreakService.ResolveOutbreak(c.Request.Context(), id)
	h.respondTransition(c, log, t, err)
}

// @Summary Close an outbreak as rejected
// @Tags Outbreaks
// @Accept json
// @Produce json
// @Param id path string true "Outbreak ID"
// @Param close body CloseOutbreakRequest true "Close reason"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /outbreaks/{id}/close [post]
func (h *Handler) closeOutbreak(c *gin.Context) {
	id, ok := parseOutbreakID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "closeOutbreak").WithField("id", id)

	var input CloseOutbreakRequest
	if !h.bind(c, log, &input) {
		return
	}
	t, err := h.outbreakService.CloseOutbreak(c.Request.Context(), id, input.Reason)
	h.respondTransition(c, log, t, err)
}

// @Summary Advance a sample through the lab pipeline
// @Tags Samples
// @Accept json
// @Produce json
// @Param fieldId path string true "Sample field ID"
// @Param status body SampleStatusRequest true "New sample status"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Sample not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /samples/{fieldId}/status [put]
func (h *Handler) updateSampleStatus(c *gin.Context) {
	fieldID := c.Param("fieldId")
	log := h.logger.WithField("method", "updateSampleStatus").WithField("field_id", fieldID)

	var input SampleStatusRequest
	if !h.bind(c, log, &input) {
		return
	}
	t, err := h.outbreakService.UpdateSampleStatus(c.Request.Context(), fieldID, models.SampleStatus(input.Status))
	h.respondTransition(c, log, t, err)
}

// @Summary Record a laboratory result
// @Description A positive result confirms the outbreak. Rejecting every sample closes it.
// @Tags Samples
// @Accept json
// @Produce json
// @Param fieldId path string true "Sample field ID"
// @Param result body SampleResultRequest true "Lab result"
// @Success 200 {object} TransitionResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Sample not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /samples/{fieldId}/result [post]
func (h *Handler) submitSampleResult(c *gin.Context) {
	fieldID := c.Param("fieldId")
	log := h.logger.WithField("method", "submitSampleResult").WithField("field_id", fieldID)

	var input SampleResultRequest
	if !h.bind(c, log, &input) {
		return
	}
	t, err := h.outbreakService.SubmitSampleResult(c.Request.Context(), DTOToSampleResult(fieldID, input))
	h.respondTransition(c, log, t, err)
}

// @Summary Sample status board
// @Description Number of samples at each lab pipeline stage
// @Tags Samples
// @Produce json
// @Success 200 {object} SampleStatsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /samples/stats [get]
func (h *Handler) sampleStats(c *gin.Context) {
	log := h.logger.WithField("method", "sampleStats")

	counts, err := h.outbreakService.SampleStatusCounts(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToSampleStats(counts))
}

func (h *Handler) respondTransition(c *gin.Context, log *logrus.Entry, t *outbreak.Transition, err error) {
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToTransitionResponse(t))
}
