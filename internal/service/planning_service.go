package service

import (
	"context"
	"fmt"
	"time"

	"coverage-planner-go/internal/autopilot"
	"coverage-planner-go/internal/brief"
	"coverage-planner-go/internal/client"
	"coverage-planner-go/internal/config"
	"coverage-planner-go/internal/coverage"
	"coverage-planner-go/internal/geo"
	"coverage-planner-go/internal/metrics"
	"coverage-planner-go/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Version версия сервиса в ответах health
const Version = "1.0.0"

// SpecParser превращает текстовый запрос в спецификацию миссии
type SpecParser interface {
	ParseRequest(ctx context.Context, userRequest string) (*models.MissionSpec, error)
	CheckHealth(ctx context.Context) (*client.HealthResponse, error)
}

// PlanningService сервис планирования покрытия без сохранения
type PlanningService struct {
	intake   SpecParser
	defaults config.PlannerConfig
	metrics  *metrics.Collector
	logger   *logrus.Logger
}

// NewPlanningService создает сервис планирования. intake и collector могут быть nil
func NewPlanningService(intake SpecParser, defaults config.PlannerConfig, collector *metrics.Collector, logger *logrus.Logger) *PlanningService {
	return &PlanningService{
		intake:   intake,
		defaults: defaults,
		metrics:  collector,
		logger:   logger,
	}
}

// Plan строит план покрытия, пакет миссии и бриф. surface попадает в метрики
func (s *PlanningService) Plan(ctx context.Context, surface, missionID string, req PlanRequest) (result *PlanResult, err error) {
	started := time.Now()
	defer func() {
		numLegs := 0
		if result != nil {
			numLegs = result.CoveragePlan.Summary.NumLegs
		}
		s.metrics.ObservePlan(surface, started, numLegs, err)
	}()

	if missionID == "" {
		missionID = uuid.New().String()
	}

	spec, err := s.resolveSpec(ctx, req)
	if err != nil {
		return nil, err
	}

	params := s.flightParameters(req)
	origin := s.origin(req)

	projection := req.Projection
	if projection == "" {
		projection = s.defaults.Projection
	}
	mode, err := geo.ParseProjectionMode(projection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	s.logger.WithFields(logrus.Fields{
		"mission_id": missionID,
		"length_m":   spec.Area.LengthM,
		"width_m":    spec.Area.WidthM,
		"projection": mode,
	}).Info("Начинаем планирование покрытия")

	plan, err := coverage.Plan(spec.Geometry(), params)
	if err != nil {
		s.logger.Warnf("Планирование миссии %s отклонено: %v", missionID, err)
		return nil, fmt.Errorf("plan coverage: %w", err)
	}

	pkg, err := autopilot.BuildPackage(spec, plan, origin, geo.NewProjector(mode))
	if err != nil {
		s.logger.Warnf("Проекция миссии %s отклонена: %v", missionID, err)
		return nil, fmt.Errorf("build mission package: %w", err)
	}

	missionBrief, err := brief.Render(missionID, spec, plan)
	if err != nil {
		return nil, fmt.Errorf("render mission brief: %w", err)
	}

	s.logger.Infof("План миссии %s готов: %d галсов (%s), %.2f мин, %d батарей",
		missionID, plan.Summary.NumLegs, plan.Summary.SweepDirection,
		plan.Summary.TotalFlightTimeMin, plan.Summary.NumBatterySegments)

	return &PlanResult{
		MissionID:        missionID,
		MissionSpec:      spec,
		FlightParameters: params,
		CoveragePlan:     plan,
		MissionPackage:   pkg,
		MissionBrief:     missionBrief,
	}, nil
}

// resolveSpec берет спецификацию из запроса или отправляет текст в сервис разбора
func (s *PlanningService) resolveSpec(ctx context.Context, req PlanRequest) (models.MissionSpec, error) {
	if req.MissionSpec != nil {
		return *req.MissionSpec, nil
	}
	if req.UserRequest == "" {
		return models.MissionSpec{}, fmt.Errorf("%w: mission_spec or user_request is required", ErrInvalidRequest)
	}
	if s.intake == nil {
		return models.MissionSpec{}, fmt.Errorf("%w: no intake service configured", ErrIntakeUnavailable)
	}

	s.logger.Info("Отправляем текстовый запрос в сервис разбора")
	spec, err := s.intake.ParseRequest(ctx, req.UserRequest)
	if err != nil {
		s.logger.Errorf("Ошибка при обращении к сервису разбора: %v", err)
		return models.MissionSpec{}, fmt.Errorf("%w: %v", ErrIntakeUnavailable, err)
	}
	return *spec, nil
}

func (s *PlanningService) flightParameters(req PlanRequest) models.FlightParameters {
	params := s.defaults.FlightParameters()
	if req.CruiseSpeedMps != nil {
		params.CruiseSpeedMps = *req.CruiseSpeedMps
	}
	if req.MaxSegmentTimeMin != nil {
		params.MaxSegmentTimeMin = *req.MaxSegmentTimeMin
	}
	return params
}

func (s *PlanningService) origin(req PlanRequest) models.Origin {
	if req.Origin != nil {
		return *req.Origin
	}
	return s.defaults.Origin()
}

// CheckHealth проверяет состояние сервиса и сервиса разбора
func (s *PlanningService) CheckHealth(ctx context.Context) *HealthResponse {
	resp := &HealthResponse{
		Status:     "healthy",
		Version:    Version,
		Components: map[string]string{"planner": "healthy"},
	}

	if s.intake == nil {
		resp.Components["intake"] = "disabled"
		return resp
	}

	health, err := s.intake.CheckHealth(ctx)
	if err != nil {
		s.logger.Errorf("Сервис разбора недоступен: %v", err)
		resp.Components["intake"] = "unhealthy"
		resp.Status = "degraded"
		return resp
	}
	resp.Components["intake"] = health.Status
	return resp
}
