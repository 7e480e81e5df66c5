package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"coverage-planner-go/internal/model"
	"coverage-planner-go/internal/repository"
	"coverage-planner-go/internal/storage"
	"coverage-planner-go/pkg/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MissionService сервис для работы с сохраненными миссиями
type MissionService struct {
	missionRepo repository.MissionRepository
	store       storage.ArtifactStore
	planner     *PlanningService
	logger      *logrus.Logger
}

// NewMissionService создает новый сервис для работы с миссиями
func NewMissionService(missionRepo repository.MissionRepository, store storage.ArtifactStore, planner *PlanningService, logger *logrus.Logger) *MissionService {
	return &MissionService{
		missionRepo: missionRepo,
		store:       store,
		planner:     planner,
		logger:      logger,
	}
}

// CreateMission планирует миссию, сохраняет артефакты и запись в базе данных
func (s *MissionService) CreateMission(ctx context.Context, req PlanRequest) (*MissionResponse, error) {
	missionID := uuid.New().String()

	result, err := s.planner.Plan(ctx, "mission", missionID, req)
	if err != nil {
		return nil, err
	}

	if err := SaveArtifacts(ctx, s.store, result); err != nil {
		s.logger.Errorf("Ошибка сохранения артефактов миссии %s: %v", missionID, err)
		s.cleanupArtifacts(missionID)
		return nil, fmt.Errorf("failed to save mission artifacts: %w", err)
	}

	mission, err := newMissionModel(req, result)
	if err != nil {
		s.cleanupArtifacts(missionID)
		return nil, err
	}

	s.logger.Infof("Сохраняем миссию в БД. Количество галсов: %d", len(mission.Legs))
	if err := s.missionRepo.Create(ctx, mission); err != nil {
		s.logger.Errorf("Ошибка сохранения миссии в БД: %v", err)
		s.cleanupArtifacts(missionID)
		return nil, fmt.Errorf("failed to save mission to database: %w", err)
	}

	s.logger.Infof("Миссия %s успешно сохранена с %d галсами", missionID, len(mission.Legs))
	return modelToResponse(mission), nil
}

// GetMissionByID получает миссию по ID
func (s *MissionService) GetMissionByID(ctx context.Context, missionID string) (*MissionResponse, error) {
	mission, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		if !errors.Is(err, repository.ErrMissionNotFound) {
			s.logger.Errorf("Ошибка получения миссии: %v", err)
		}
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}
	return modelToResponse(mission), nil
}

// GetMissionsByArea получает миссии, чьи галсы попадают в заданную область
func (s *MissionService) GetMissionsByArea(ctx context.Context, neLat, neLon, swLat, swLon float64) ([]MissionResponse, error) {
	s.logger.Infof("Получаем миссии в области: NE(%.6f, %.6f) SW(%.6f, %.6f)", neLat, neLon, swLat, swLon)

	if neLat < swLat || neLon < swLon {
		return nil, fmt.Errorf("%w: north-east corner must be above and right of south-west corner", ErrInvalidRequest)
	}

	ne := repository.Coordinates{Lat: neLat, Lon: neLon}
	sw := repository.Coordinates{Lat: swLat, Lon: swLon}

	missions, err := s.missionRepo.GetByArea(ctx, ne, sw)
	if err != nil {
		s.logger.Errorf("Ошибка получения миссий по области: %v", err)
		return nil, fmt.Errorf("failed to get missions by area: %w", err)
	}

	responses := make([]MissionResponse, len(missions))
	for i, mission := range missions {
		responses[i] = *modelToResponse(mission)
	}

	s.logger.Infof("Найдено %d миссий в области", len(responses))
	return responses, nil
}

// ListMissions получает список миссий с пагинацией
func (s *MissionService) ListMissions(ctx context.Context, page, pageSize int) ([]MissionResponse, int64, error) {
	s.logger.Infof("Получаем список миссий: страница %d, размер %d", page, pageSize)

	missions, total, err := s.missionRepo.List(ctx, page, pageSize)
	if err != nil {
		s.logger.Errorf("Ошибка получения списка миссий: %v", err)
		return nil, 0, fmt.Errorf("failed to list missions: %w", err)
	}

	responses := make([]MissionResponse, len(missions))
	for i, mission := range missions {
		responses[i] = *modelToResponse(mission)
	}
	return responses, total, nil
}

// UpdateMissionStatus меняет статус миссии
func (s *MissionService) UpdateMissionStatus(ctx context.Context, missionID, status string) error {
	if !model.ValidMissionStatus(status) {
		return fmt.Errorf("%w: unknown mission status %q", ErrInvalidRequest, status)
	}

	if err := s.missionRepo.UpdateStatus(ctx, missionID, status); err != nil {
		return fmt.Errorf("failed to update mission status: %w", err)
	}

	s.logger.Infof("Статус миссии %s изменен на %s", missionID, status)
	return nil
}

// DeleteMission удаляет миссию и её артефакты
func (s *MissionService) DeleteMission(ctx context.Context, missionID string) error {
	s.logger.Infof("Удаляем миссию %s", missionID)

	if err := s.missionRepo.Delete(ctx, missionID); err != nil {
		return fmt.Errorf("failed to delete mission from database: %w", err)
	}

	if err := s.store.Delete(ctx, missionID); err != nil {
		s.logger.Warnf("Не удалось удалить артефакты миссии %s: %v", missionID, err)
	}

	s.logger.Infof("Миссия %s успешно удалена", missionID)
	return nil
}

// GetArtifact возвращает содержимое артефакта и его MIME-тип
func (s *MissionService) GetArtifact(ctx context.Context, missionID, name string) ([]byte, string, error) {
	if _, err := s.missionRepo.GetByID(ctx, missionID); err != nil {
		return nil, "", fmt.Errorf("failed to get mission: %w", err)
	}

	data, err := s.store.Get(ctx, missionID, name)
	if err != nil {
		return nil, "", err
	}
	return data, storage.ContentType(name), nil
}

// SaveArtifacts пишет waypoints.json, autopilot_config.json и mission_brief.md
func SaveArtifacts(ctx context.Context, store storage.ArtifactStore, result *PlanResult) error {
	waypoints, err := json.MarshalIndent(result.MissionPackage.Waypoints, "", "  ")
	if err != nil {
		return fmt.Errorf("encode waypoints: %w", err)
	}
	autopilotConfig, err := json.MarshalIndent(result.MissionPackage.Config, "", "  ")
	if err != nil {
		return fmt.Errorf("encode autopilot config: %w", err)
	}

	artifacts := map[string][]byte{
		storage.WaypointsFile:       waypoints,
		storage.AutopilotConfigFile: autopilotConfig,
		storage.MissionBriefFile:    []byte(result.MissionBrief),
	}
	for _, name := range storage.ArtifactNames() {
		if err := store.Save(ctx, result.MissionID, name, artifacts[name]); err != nil {
			return err
		}
	}
	return nil
}

func (s *MissionService) cleanupArtifacts(missionID string) {
	s.logger.Infof("Удаляем артефакты миссии %s из-за ошибки сохранения", missionID)
	if err := s.store.Delete(context.Background(), missionID); err != nil {
		s.logger.Warnf("Не удалось удалить артефакты миссии %s: %v", missionID, err)
	}
}

// newMissionModel преобразует результат планирования в модель базы данных
func newMissionModel(req PlanRequest, result *PlanResult) (*model.Mission, error) {
	specJSON, err := json.Marshal(result.MissionSpec)
	if err != nil {
		return nil, fmt.Errorf("encode mission spec: %w", err)
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("Mission %s", result.MissionID[:8])
	}

	summary := result.CoveragePlan.Summary
	metadata := result.MissionPackage.Metadata
	mission := &model.Mission{
		ID:                 result.MissionID,
		Name:               name,
		UserRequest:        req.UserRequest,
		MissionSpecJSON:    string(specJSON),
		Status:             model.MissionStatusPlanned,
		OriginLat:          metadata.Origin.Latitude,
		OriginLon:          metadata.Origin.Longitude,
		Projection:         metadata.Projection,
		SweepDirection:     string(summary.SweepDirection),
		SwathWidthM:        summary.SwathWidthM,
		LegSpacingM:        summary.LegSpacingM,
		NumLegs:            summary.NumLegs,
		LegLengthM:         summary.LegLengthM,
		TotalPathLengthM:   summary.TotalPathLengthM,
		CruiseSpeedMps:     summary.CruiseSpeedMps,
		MaxSegmentTimeMin:  result.FlightParameters.MaxSegmentTimeMin,
		TotalFlightTimeMin: summary.TotalFlightTimeMin,
		NumBatterySegments: summary.NumBatterySegments,
	}

	// Путевые точки идут парами: начало и конец каждого галса
	waypoints := result.MissionPackage.Waypoints
	for i, leg := range result.CoveragePlan.Legs {
		start, end := waypoints[2*i], waypoints[2*i+1]
		mission.Legs = append(mission.Legs, model.Leg{
			MissionID: result.MissionID,
			LegID:     leg.LegID,
			StartXM:   leg.Start.XM,
			StartYM:   leg.Start.YM,
			EndXM:     leg.End.XM,
			EndYM:     leg.End.YM,
			StartLat:  start.Latitude,
			StartLon:  start.Longitude,
			EndLat:    end.Latitude,
			EndLon:    end.Longitude,
		})
	}

	return mission, nil
}

// modelToResponse преобразует модель базы данных в ответ API
func modelToResponse(mission *model.Mission) *MissionResponse {
	response := &MissionResponse{
		ID:          mission.ID,
		Name:        mission.Name,
		Status:      mission.Status,
		UserRequest: mission.UserRequest,
		Origin:      models.Origin{Latitude: mission.OriginLat, Longitude: mission.OriginLon},
		Projection:  mission.Projection,
		CoverageSummary: models.CoverageSummary{
			SweepDirection:     models.SweepDirection(mission.SweepDirection),
			SwathWidthM:        mission.SwathWidthM,
			LegSpacingM:        mission.LegSpacingM,
			NumLegs:            mission.NumLegs,
			LegLengthM:         mission.LegLengthM,
			TotalPathLengthM:   mission.TotalPathLengthM,
			CruiseSpeedMps:     mission.CruiseSpeedMps,
			TotalFlightTimeMin: mission.TotalFlightTimeMin,
			NumBatterySegments: mission.NumBatterySegments,
		},
		MaxSegmentTimeMin: mission.MaxSegmentTimeMin,
		Artifacts:         storage.ArtifactNames(),
		CreatedAt:         mission.CreatedAt,
		UpdatedAt:         mission.UpdatedAt,
	}

	var spec models.MissionSpec
	if err := json.Unmarshal([]byte(mission.MissionSpecJSON), &spec); err == nil {
		response.MissionSpec = &spec
		response.CoverageSummary.FrontlapPercent = spec.Geometry().FrontlapPercent
	}

	for _, leg := range mission.Legs {
		response.Legs = append(response.Legs, LegResponse{
			LegID:           leg.LegID,
			Start:           models.Point{XM: leg.StartXM, YM: leg.StartYM},
			End:             models.Point{XM: leg.EndXM, YM: leg.EndYM},
			StartCoordinate: Coordinates{Lat: leg.StartLat, Lon: leg.StartLon},
			EndCoordinate:   Coordinates{Lat: leg.EndLat, Lon: leg.EndLon},
		})
	}

	return response
}
