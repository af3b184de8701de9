package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
	"github.com/kingrain94/waapify-relay/internal/domain"
	"github.com/kingrain94/waapify-relay/internal/repository"
	"github.com/kingrain94/waapify-relay/pkg/logger"
)

//go:generate mockery --name ObjectStore --output ../mocks
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// LatestKey returns the greatest key under prefix, or "" when none exists.
	LatestKey(ctx context.Context, prefix string) (string, error)
}

// Snapshot is the credential state written to object storage.
type Snapshot struct {
	CreatedAt       time.Time               `json:"created_at"`
	Installations   []domain.Installation   `json:"installations"`
	ProviderConfigs []domain.ProviderConfig `json:"provider_configs"`
}

type BackupService struct {
	repo   repository.PostgresRepository
	store  ObjectStore
	prefix string
	logger *logger.Logger
	now    func() time.Time
}

func NewBackupService(repo repository.PostgresRepository, store ObjectStore, prefix string, logger *logger.Logger) *BackupService {
	return &BackupService{
		repo:   repo,
		store:  store,
		prefix: prefix,
		logger: logger,
		now:    time.Now,
	}
}

func (s *BackupService) Snapshot(ctx context.Context) (*dto.BackupResponse, error) {
	installations, err := s.repo.Installation().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list installations: %w", err)
	}
	configs, err := s.repo.ProviderConfig().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider configs: %w", err)
	}

	createdAt := s.now().UTC()
	body, err := json.Marshal(Snapshot{
		CreatedAt:       createdAt,
		Installations:   installations,
		ProviderConfigs: configs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := fmt.Sprintf("%s%s/snapshot-%s.json", s.prefix, createdAt.Format("2006/01/02"), createdAt.Format("20060102T150405Z"))
	if err := s.store.Put(ctx, key, body); err != nil {
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.logger.Info("Snapshot stored",
		zap.String("key", key),
		zap.Int("installations", len(installations)),
		zap.Int("provider_configs", len(configs)))

	return &dto.BackupResponse{
		Key:             key,
		Installations:   len(installations),
		ProviderConfigs: len(configs),
		CreatedAt:       createdAt,
	}, nil
}

// RestoreIfEmpty loads the latest snapshot when no installation exists. It
// returns the number of restored installations.
func (s *BackupService) RestoreIfEmpty(ctx context.Context) (int, error) {
	count, err := s.repo.Installation().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count installations: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	key, err := s.store.LatestKey(ctx, s.prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to find latest snapshot: %w", err)
	}
	if key == "" {
		return 0, nil
	}

	body, err := s.store.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to download snapshot %s: %w", key, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return 0, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}

	for i := range snapshot.Installations {
		if _, err := s.repo.Installation().Upsert(ctx, &snapshot.Installations[i]); err != nil {
			return i, err
		}
	}
	for i := range snapshot.ProviderConfigs {
		if err := s.repo.ProviderConfig().Save(ctx, &snapshot.ProviderConfigs[i]); err != nil {
			return len(snapshot.Installations), fmt.Errorf("failed to restore provider config: %w", err)
		}
	}

	s.logger.Info("Restored credentials from snapshot",
		zap.String("key", key),
		zap.Int("installations", len(snapshot.Installations)))
	return len(snapshot.Installations), nil
}
