package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// MinIOConfig параметры подключения к MinIO
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinIOStore хранит артефакты в бакете MinIO
type MinIOStore struct {
	client *minio.Client
	bucket string
	logger *logrus.Logger
}

// NewMinIOStore подключается к MinIO и создает бакет при необходимости
func NewMinIOStore(ctx context.Context, cfg MinIOConfig, logger *logrus.Logger) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Infof("Создан бакет MinIO %s", cfg.Bucket)
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// ObjectKey ключ объекта артефакта в бакете
func ObjectKey(missionID, name string) string {
	return path.Join("missions", missionID, name)
}

// Save загружает артефакт в бакет
func (s *MinIOStore) Save(ctx context.Context, missionID, name string, data []byte) error {
	if err := validateKey(missionID, name); err != nil {
		return err
	}

	key := ObjectKey(missionID, name)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ContentType(name),
		UserMetadata: map[string]string{
			"mission-id": missionID,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Debugf("Артефакт загружен в MinIO: %s (%d байт)", key, len(data))
	return nil
}

// Get скачивает артефакт из бакета
func (s *MinIOStore) Get(ctx context.Context, missionID, name string) ([]byte, error) {
	if err := validateKey(missionID, name); err != nil {
		return nil, err
	}

	key := ObjectKey(missionID, name)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%s: %w", key, ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Delete удаляет все артефакты миссии
func (s *MinIOStore) Delete(ctx context.Context, missionID string) error {
	if err := validateMissionID(missionID); err != nil {
		return err
	}

	for _, name := range ArtifactNames() {
		key := ObjectKey(missionID, name)
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}
