package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bayillag/epigeo_surveillance/internal/config"
	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/bayillag/epigeo_surveillance/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	outbreakService service.OutbreakService
	tracingService  service.TracingService
	analysisService service.AnalysisService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(
	outbreakService service.OutbreakService,
	tracingService service.TracingService,
	analysisService service.AnalysisService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		outbreakService: outbreakService,
		tracingService:  tracingService,
		analysisService: analysisService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// bind читает JSON тела запроса и проверяет его validator'ом.
// При ошибке ответ уже отправлен.
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func parseOutbreakID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid outbreak ID"})
		return uuid.Nil, false
	}
	return id, true
}

// parseDateQuery принимает дату в формате 2006-01-02 или RFC3339
func parseDateQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q", key, raw)
	}
	t = t.UTC()
	return &t, nil
}

// respondError переводит доменные ошибки в HTTP-статусы
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	var (
		validationErr  *models.ValidationError
		transitionErr  *models.InvalidTransitionError
		computationErr *models.ComputationError
	)
	switch {
	case errors.As(err, &validationErr):
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	case errors.As(err, &transitionErr):
		log.WithError(err).Warn("Transition rejected")
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	case errors.Is(err, models.ErrConcurrentUpdate):
		log.WithError(err).Warn("Concurrent update")
		c.JSON(http.StatusConflict, gin.H{"error": "outbreak was modified concurrently, retry the request"})
	case errors.As(err, &computationErr):
		log.WithError(err).Warn("Computation rejected")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": computationErr.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		log.WithError(err).Error("Request timed out")
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	default:
		log.WithError(err).Error("Request failed in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
