package storage

import (
	"context"
	"errors"
	"fmt"
)

// Имена артефактов миссии
const (
	WaypointsFile       = "waypoints.json"
	AutopilotConfigFile = "autopilot_config.json"
	MissionBriefFile    = "mission_brief.md"
)

// ErrArtifactNotFound артефакт отсутствует в хранилище
var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactStore хранилище артефактов миссии (missions/<id>/<name>)
type ArtifactStore interface {
	Save(ctx context.Context, missionID, name string, data []byte) error
	Get(ctx context.Context, missionID, name string) ([]byte, error)
	Delete(ctx context.Context, missionID string) error
}

// ArtifactNames список артефактов, которые сохраняются для каждой миссии
func ArtifactNames() []string {
	return []string{WaypointsFile, AutopilotConfigFile, MissionBriefFile}
}

// ContentType MIME-тип артефакта по имени
func ContentType(name string) string {
	if name == MissionBriefFile {
		return "text/markdown; charset=utf-8"
	}
	return "application/json"
}

// validateKey пропускает только известные имена артефактов и непустой ID
func validateKey(missionID, name string) error {
	if err := validateMissionID(missionID); err != nil {
		return err
	}
	for _, known := range ArtifactNames() {
		if name == known {
			return nil
		}
	}
	return fmt.Errorf("artifact %q: %w", name, ErrArtifactNotFound)
}

func validateMissionID(missionID string) error {
	if missionID == "" {
		return errors.New("mission id is empty")
	}
	for _, r := range missionID {
		if !(r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return fmt.Errorf("mission id %q contains invalid characters", missionID)
		}
	}
	return nil
}
