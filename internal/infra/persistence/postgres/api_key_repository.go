package postgres

import (
	"context"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// apiKeyRepository implements the repository.APIKeyRepository interface.
type apiKeyRepository struct {
	db *gorm.DB
}

// NewAPIKeyRepository is the constructor for apiKeyRepository.
func NewAPIKeyRepository(db *gorm.DB) repository.APIKeyRepository {
	return &apiKeyRepository{
		db: db,
	}
}

// CreateAPIKey persists a new key. The database generates the key value.
func (repo *apiKeyRepository) CreateAPIKey(ctx context.Context, key *entity.APIKey) error {
	keyM := fromAPIKeyDomain(key)

	if err := repo.db.WithContext(ctx).Create(keyM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create api key")
	}

	key.ID = keyM.ID
	key.CreatedAt = keyM.CreatedAt
	key.UpdatedAt = keyM.UpdatedAt

	return nil
}

// FindAPIKeyByID retrieves a key by its value.
func (repo *apiKeyRepository) FindAPIKeyByID(ctx context.Context, id uuid.UUID) (*entity.APIKey, error) {
	var keyM model.APIKeyModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&keyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAPIKeyNotFound
		}

		return nil, errors.Wrap(err, "failed to find api key by id")
	}

	return toAPIKeyDomain(&keyM), nil
}

// FindAPIKeysByStore retrieves the store's keys, newest first.
func (repo *apiKeyRepository) FindAPIKeysByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.APIKey, error) {
	var keyModels []*model.APIKeyModel

	if err := repo.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&keyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find api keys by store")
	}

	keys := make([]*entity.APIKey, 0, len(keyModels))
	for _, keyM := range keyModels {
		keys = append(keys, toAPIKeyDomain(keyM))
	}

	return keys, nil
}

// UpdateAPIKey saves the mutable columns of a key.
func (repo *apiKeyRepository) UpdateAPIKey(ctx context.Context, key *entity.APIKey) error {
	result := repo.db.WithContext(ctx).
		Model(&model.APIKeyModel{}).
		Where("id = ? AND store_id = ?", key.ID, key.StoreID).
		Updates(map[string]any{
			"name":       key.Name,
			"status":     string(key.Status),
			"expired_at": key.ExpiredAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update api key")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAPIKeyNotFound
	}

	return nil
}

// DeleteAPIKey removes a key.
func (repo *apiKeyRepository) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.APIKeyModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete api key")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAPIKeyNotFound
	}

	return nil
}

func toAPIKeyDomain(data *model.APIKeyModel) *entity.APIKey {
	if data == nil {
		return nil
	}

	return &entity.APIKey{
		ID:        data.ID,
		StoreID:   data.StoreID,
		Name:      data.Name,
		Status:    entity.APIKeyStatus(data.Status),
		ExpiredAt: data.ExpiredAt,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromAPIKeyDomain(data *entity.APIKey) *model.APIKeyModel {
	return &model.APIKeyModel{
		ID:        data.ID,
		StoreID:   data.StoreID,
		Name:      data.Name,
		Status:    string(data.Status),
		ExpiredAt: data.ExpiredAt,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
