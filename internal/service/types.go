package service

import (
	"errors"
	"time"

	"coverage-planner-go/pkg/models"
)

// ErrInvalidRequest запрос не удалось интерпретировать (нет спецификации, неизвестный режим и т.п.)
var ErrInvalidRequest = errors.New("invalid request")

// ErrIntakeUnavailable сервис разбора текстовых запросов недоступен или вернул ошибку
var ErrIntakeUnavailable = errors.New("intake service unavailable")

// Coordinates представляет географические координаты
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PlanRequest запрос на планирование миссии
type PlanRequest struct {
	Name              string              `json:"name,omitempty"`
	UserRequest       string              `json:"user_request,omitempty"`
	MissionSpec       *models.MissionSpec `json:"mission_spec,omitempty"`
	CruiseSpeedMps    *float64            `json:"cruise_speed_mps,omitempty"`
	MaxSegmentTimeMin *float64            `json:"max_segment_time_min,omitempty"`
	Origin            *models.Origin      `json:"origin,omitempty"`
	Projection        string              `json:"projection,omitempty"`
}

// PlanResult результат планирования: план покрытия, пакет миссии и бриф
type PlanResult struct {
	MissionID        string                  `json:"mission_id"`
	MissionSpec      models.MissionSpec      `json:"mission_spec"`
	FlightParameters models.FlightParameters `json:"flight_parameters"`
	CoveragePlan     models.CoveragePlan     `json:"coverage_plan"`
	MissionPackage   models.MissionPackage   `json:"mission_package"`
	MissionBrief     string                  `json:"mission_brief"`
}

// LegResponse галс миссии в локальных и географических координатах
type LegResponse struct {
	LegID           int          `json:"leg_id"`
	Start           models.Point `json:"start"`
	End             models.Point `json:"end"`
	StartCoordinate Coordinates  `json:"start_coordinate"`
	EndCoordinate   Coordinates  `json:"end_coordinate"`
}

// MissionResponse ответ с информацией о миссии
type MissionResponse struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	Status            string                 `json:"status"`
	UserRequest       string                 `json:"user_request,omitempty"`
	MissionSpec       *models.MissionSpec    `json:"mission_spec,omitempty"`
	Origin            models.Origin          `json:"origin"`
	Projection        string                 `json:"projection"`
	CoverageSummary   models.CoverageSummary `json:"coverage_summary"`
	MaxSegmentTimeMin float64                `json:"max_segment_time_min"`
	Legs              []LegResponse          `json:"legs,omitempty"`
	Artifacts         []string               `json:"artifacts"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// UpdateStatusRequest запрос на смену статуса миссии
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetMissionsByAreaResponse ответ со списком миссий в области
type GetMissionsByAreaResponse struct {
	Missions []MissionResponse `json:"missions"`
	Total    int               `json:"total"`
}

// ListMissionsResponse ответ со списком миссий
type ListMissionsResponse struct {
	Missions []MissionResponse `json:"missions"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
}

// HealthResponse состояние сервиса и его зависимостей
type HealthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components"`
}
