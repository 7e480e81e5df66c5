package repository

import (
	"context"
	"errors"
	"fmt"

	"coverage-planner-go/internal/model"

	"gorm.io/gorm"
)

// ErrMissionNotFound миссия отсутствует в хранилище
var ErrMissionNotFound = errors.New("mission not found")

// MissionRepository интерфейс для работы с миссиями
type MissionRepository interface {
	Create(ctx context.Context, mission *model.Mission) error
	GetByID(ctx context.Context, id string) (*model.Mission, error)
	GetByArea(ctx context.Context, northEast, southWest Coordinates) ([]*model.Mission, error)
	List(ctx context.Context, page, pageSize int) ([]*model.Mission, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// Coordinates представляет координаты точки
type Coordinates struct {
	Lat float64
	Lon float64
}

// Contains проверяет попадание точки в прямоугольник southWest..northEast
func Contains(northEast, southWest Coordinates, lat, lon float64) bool {
	return lat >= southWest.Lat && lat <= northEast.Lat &&
		lon >= southWest.Lon && lon <= northEast.Lon
}

type missionRepository struct {
	db *gorm.DB
}

// NewMissionRepository создает новый instance MissionRepository
func NewMissionRepository(db *gorm.DB) MissionRepository {
	return &missionRepository{
		db: db,
	}
}

// Create сохраняет миссию вместе с галсами в одной транзакции
func (r *missionRepository) Create(ctx context.Context, mission *model.Mission) error {
	legs := mission.Legs
	mission.Legs = nil
	defer func() { mission.Legs = legs }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mission).Error; err != nil {
			return fmt.Errorf("failed to create mission: %w", err)
		}

		for i := range legs {
			legs[i].ID = 0
			legs[i].MissionID = mission.ID
		}
		if len(legs) > 0 {
			if err := tx.CreateInBatches(&legs, 500).Error; err != nil {
				return fmt.Errorf("failed to create legs: %w", err)
			}
		}
		return nil
	})
}

// GetByID получает миссию по ID
func (r *missionRepository) GetByID(ctx context.Context, id string) (*model.Mission, error) {
	var mission model.Mission
	err := r.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("leg_id ASC") }).
		Where("id = ?", id).
		First(&mission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mission %s: %w", id, ErrMissionNotFound)
		}
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}
	return &mission, nil
}

// GetByArea получает миссии, у которых хотя бы один галс касается области
func (r *missionRepository) GetByArea(ctx context.Context, northEast, southWest Coordinates) ([]*model.Mission, error) {
	var missions []*model.Mission

	db := r.db.WithContext(ctx)
	inArea := db.Model(&model.Leg{}).
		Select("mission_id").
		Where("(start_lat BETWEEN ? AND ? AND start_lon BETWEEN ? AND ?) OR "+
			"(end_lat BETWEEN ? AND ? AND end_lon BETWEEN ? AND ?)",
			southWest.Lat, northEast.Lat, southWest.Lon, northEast.Lon,
			southWest.Lat, northEast.Lat, southWest.Lon, northEast.Lon)

	err := db.Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("leg_id ASC") }).
		Where("id IN (?)", inArea).
		Order("created_at DESC").
		Find(&missions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get missions by area: %w", err)
	}

	return missions, nil
}

// List получает список миссий с пагинацией, без галсов
func (r *missionRepository) List(ctx context.Context, page, pageSize int) ([]*model.Mission, int64, error) {
	var missions []*model.Mission
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Mission{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count missions: %w", err)
	}

	offset := (page - 1) * pageSize
	err := db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&missions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list missions: %w", err)
	}

	return missions, total, nil
}

// UpdateStatus меняет статус миссии
func (r *missionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Mission{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update mission status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("mission %s: %w", id, ErrMissionNotFound)
	}
	return nil
}

// Delete удаляет миссию и её галсы
func (r *missionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mission_id = ?", id).Delete(&model.Leg{}).Error; err != nil {
			return fmt.Errorf("failed to delete legs: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&model.Mission{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete mission: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("mission %s: %w", id, ErrMissionNotFound)
		}
		return nil
	})
}
