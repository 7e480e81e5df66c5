package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"coverage-planner-go/internal/model"
)

// memoryRepository хранит миссии в памяти процесса (режим без PostgreSQL)
type memoryRepository struct {
	mu       sync.RWMutex
	missions map[string]*model.Mission
}

// NewMemoryRepository создает MissionRepository без базы данных
func NewMemoryRepository() MissionRepository {
	return &memoryRepository{missions: make(map[string]*model.Mission)}
}

func (r *memoryRepository) Create(ctx context.Context, mission *model.Mission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.missions[mission.ID]; exists {
		return fmt.Errorf("failed to create mission: duplicate id %s", mission.ID)
	}

	now := time.Now()
	mission.CreatedAt, mission.UpdatedAt = now, now
	for i := range mission.Legs {
		mission.Legs[i].ID = uint(i + 1)
		mission.Legs[i].MissionID = mission.ID
		mission.Legs[i].CreatedAt, mission.Legs[i].UpdatedAt = now, now
	}
	r.missions[mission.ID] = cloneMission(mission)
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*model.Mission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	mission, ok := r.missions[id]
	if !ok {
		return nil, fmt.Errorf("mission %s: %w", id, ErrMissionNotFound)
	}
	return cloneMission(mission), nil
}

func (r *memoryRepository) GetByArea(ctx context.Context, northEast, southWest Coordinates) ([]*model.Mission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var missions []*model.Mission
	for _, mission := range r.sorted() {
		for _, leg := range mission.Legs {
			if Contains(northEast, southWest, leg.StartLat, leg.StartLon) ||
				Contains(northEast, southWest, leg.EndLat, leg.EndLon) {
				missions = append(missions, cloneMission(mission))
				break
			}
		}
	}
	return missions, nil
}

func (r *memoryRepository) List(ctx context.Context, page, pageSize int) ([]*model.Mission, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sorted()
	total := int64(len(all))

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []*model.Mission{}, total, nil
	}
	end := offset + pageSize
	if end > len(all) {
		end = len(all)
	}

	missions := make([]*model.Mission, 0, end-offset)
	for _, mission := range all[offset:end] {
		listed := cloneMission(mission)
		listed.Legs = nil
		missions = append(missions, listed)
	}
	return missions, total, nil
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	mission, ok := r.missions[id]
	if !ok {
		return fmt.Errorf("mission %s: %w", id, ErrMissionNotFound)
	}
	mission.Status = status
	mission.UpdatedAt = time.Now()
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.missions[id]; !ok {
		return fmt.Errorf("mission %s: %w", id, ErrMissionNotFound)
	}
	delete(r.missions, id)
	return nil
}

// sorted возвращает миссии от новых к старым; вызывать под блокировкой
func (r *memoryRepository) sorted() []*model.Mission {
	all := make([]*model.Mission, 0, len(r.missions))
	for _, mission := range r.missions {
		all = append(all, mission)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

func cloneMission(mission *model.Mission) *model.Mission {
	clone := *mission
	clone.Legs = append([]model.Leg(nil), mission.Legs...)
	return &clone
}
