package handler

import (
	"net/http"

	"coverage-planner-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PlanHandler обработчик планирования без сохранения
type PlanHandler struct {
	planningService *service.PlanningService
	dbCheck         func() error
	logger          *logrus.Logger
}

// NewPlanHandler создает новый обработчик. dbCheck может быть nil
func NewPlanHandler(planningService *service.PlanningService, dbCheck func() error, logger *logrus.Logger) *PlanHandler {
	return &PlanHandler{
		planningService: planningService,
		dbCheck:         dbCheck,
		logger:          logger,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *PlanHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/plan", h.Plan)
		api.GET("/health", h.CheckHealth)
	}
}

// Plan рассчитывает план покрытия и пакет миссии
// @Summary Планирование покрытия
// @Accept json
// @Produce json
// @Param request body service.PlanRequest true "Спецификация миссии и параметры полёта"
// @Success 200 {object} service.PlanResult
// @Failure 400 {object} gin.H
// @Failure 422 {object} gin.H
// @Router /plan [post]
func (h *PlanHandler) Plan(c *gin.Context) {
	h.logger.Info("Получен запрос на планирование покрытия")

	var req service.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Ошибка разбора JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат JSON"})
		return
	}

	result, err := h.planningService.Plan(c.Request.Context(), "http", "", req)
	if err != nil {
		h.logger.Errorf("Ошибка планирования: %v", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckHealth проверяет состояние сервиса
func (h *PlanHandler) CheckHealth(c *gin.Context) {
	health := h.planningService.CheckHealth(c.Request.Context())

	if h.dbCheck != nil {
		if err := h.dbCheck(); err != nil {
			h.logger.Errorf("База данных недоступна: %v", err)
			health.Components["database"] = "unhealthy"
			health.Status = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}
		health.Components["database"] = "healthy"
	}

	c.JSON(http.StatusOK, health)
}
