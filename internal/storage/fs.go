package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FSStore хранит артефакты в локальной директории
type FSStore struct {
	baseDir string
	logger  *logrus.Logger
}

// NewFSStore создает хранилище в baseDir/missions
func NewFSStore(baseDir string, logger *logrus.Logger) (*FSStore, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "missions"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FSStore{baseDir: baseDir, logger: logger}, nil
}

func (s *FSStore) missionDir(missionID string) string {
	return filepath.Join(s.baseDir, "missions", missionID)
}

// Save записывает артефакт через временный файл
func (s *FSStore) Save(ctx context.Context, missionID, name string, data []byte) error {
	if err := validateKey(missionID, name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := s.missionDir(missionID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.logger.Errorf("Ошибка создания директории %s: %v", dir, err)
		return fmt.Errorf("failed to create mission directory: %w", err)
	}

	path := filepath.Join(dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move %s into place: %w", name, err)
	}

	s.logger.Debugf("Артефакт сохранен: %s (%d байт)", path, len(data))
	return nil
}

// Get читает артефакт
func (s *FSStore) Get(ctx context.Context, missionID, name string) ([]byte, error) {
	if err := validateKey(missionID, name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.missionDir(missionID), name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s/%s: %w", missionID, name, ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Delete удаляет директорию миссии целиком
func (s *FSStore) Delete(ctx context.Context, missionID string) error {
	if err := validateMissionID(missionID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.RemoveAll(s.missionDir(missionID)); err != nil {
		return fmt.Errorf("failed to remove mission directory: %w", err)
	}
	return nil
}
