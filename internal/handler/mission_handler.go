package handler

import (
	"net/http"
	"strconv"

	"coverage-planner-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MissionHandler обрабатывает HTTP запросы для работы с миссиями
type MissionHandler struct {
	missionService *service.MissionService
	logger         *logrus.Logger
}

// NewMissionHandler создает новый экземпляр MissionHandler
func NewMissionHandler(missionService *service.MissionService, logger *logrus.Logger) *MissionHandler {
	return &MissionHandler{
		missionService: missionService,
		logger:         logger,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *MissionHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/missions", h.CreateMission)
		api.GET("/missions", h.ListMissions)
		api.GET("/missions/area", h.GetMissionsByArea)
		api.GET("/missions/:id", h.GetMission)
		api.PATCH("/missions/:id/status", h.UpdateMissionStatus)
		api.DELETE("/missions/:id", h.DeleteMission)
		api.GET("/missions/:id/artifacts/:name", h.GetArtifact)
	}
}

// CreateMission планирует и сохраняет миссию
func (h *MissionHandler) CreateMission(c *gin.Context) {
	h.logger.Info("Получен запрос на создание миссии")

	var req service.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Ошибка разбора JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат JSON"})
		return
	}

	mission, err := h.missionService.CreateMission(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorf("Ошибка создания миссии: %v", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mission)
}

// ListMissions возвращает список миссий с пагинацией
func (h *MissionHandler) ListMissions(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 || size > 100 {
		size = 10
	}

	missions, total, err := h.missionService.ListMissions(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.ListMissionsResponse{
		Missions: missions,
		Total:    total,
		Page:     page,
		Size:     size,
	})
}

// GetMission возвращает миссию по ID
func (h *MissionHandler) GetMission(c *gin.Context) {
	missionID := c.Param("id")
	h.logger.Infof("Получен запрос на получение миссии с ID: %s", missionID)

	mission, err := h.missionService.GetMissionByID(c.Request.Context(), missionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, mission)
}

// UpdateMissionStatus меняет статус миссии
func (h *MissionHandler) UpdateMissionStatus(c *gin.Context) {
	missionID := c.Param("id")

	var req service.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Поле status обязательно"})
		return
	}

	if err := h.missionService.UpdateMissionStatus(c.Request.Context(), missionID, req.Status); err != nil {
		h.logger.Errorf("Ошибка смены статуса миссии: %v", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": missionID, "status": req.Status})
}

// DeleteMission удаляет миссию по ID
func (h *MissionHandler) DeleteMission(c *gin.Context) {
	missionID := c.Param("id")
	h.logger.Infof("Получен запрос на удаление миссии с ID: %s", missionID)

	if err := h.missionService.DeleteMission(c.Request.Context(), missionID); err != nil {
		h.logger.Errorf("Ошибка удаления миссии: %v", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Миссия успешно удалена"})
}

// GetMissionsByArea возвращает миссии в указанной области
func (h *MissionHandler) GetMissionsByArea(c *gin.Context) {
	coords := make(map[string]float64, 4)
	for _, key := range []string{"ne_lat", "ne_lon", "sw_lat", "sw_lon"} {
		raw := c.Query(key)
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Отсутствуют обязательные параметры: ne_lat, ne_lon, sw_lat, sw_lon",
			})
			return
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат " + key})
			return
		}
		coords[key] = value
	}

	missions, err := h.missionService.GetMissionsByArea(c.Request.Context(),
		coords["ne_lat"], coords["ne_lon"], coords["sw_lat"], coords["sw_lon"])
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.GetMissionsByAreaResponse{
		Missions: missions,
		Total:    len(missions),
	})
}

// GetArtifact отдает сгенерированный файл миссии
func (h *MissionHandler) GetArtifact(c *gin.Context) {
	missionID := c.Param("id")
	name := c.Param("name")

	data, contentType, err := h.missionService.GetArtifact(c.Request.Context(), missionID, name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Data(http.StatusOK, contentType, data)
}
