package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// apiKeyService implements the APIKeyUsecase interface.
type apiKeyService struct {
	keyRepo     repository.APIKeyRepository
	identity    usecase.IdentityUsecase
	auditLogger service.AuditLogger
	logger      *slog.Logger
	now         func() time.Time
}

// APIKeyServiceParams holds dependencies for APIKeyService, injected by Fx.
type APIKeyServiceParams struct {
	fx.In

	KeyRepo     repository.APIKeyRepository
	Identity    usecase.IdentityUsecase
	AuditLogger service.AuditLogger
	Logger      *slog.Logger
}

// NewAPIKeyService is the constructor for apiKeyService.
func NewAPIKeyService(params APIKeyServiceParams) usecase.APIKeyUsecase {
	return &apiKeyService{
		keyRepo:     params.KeyRepo,
		identity:    params.Identity,
		auditLogger: params.AuditLogger,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *apiKeyService) Create(ctx context.Context, principal entity.Principal, input *usecase.APIKeyInput) (*entity.APIKey, error) {
	storeID, err := srv.authorizeAdmin(ctx, principal)
	if err != nil {
		return nil, err
	}

	key := &entity.APIKey{StoreID: storeID, Status: entity.APIKeyStatusEnabled}
	if err := applyAPIKeyInput(key, input); err != nil {
		return nil, err
	}
	if key.Name == "" {
		return nil, domainerrors.ErrValidation.WithDetails("name is required")
	}

	if err := srv.keyRepo.CreateAPIKey(ctx, key); err != nil {
		return nil, errors.Wrap(err, "failed to create api key")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityAPIKey, key.ID.String(), entity.AuditActionCreate, nil, redactedKey(key)))

	return key, nil
}

func (srv *apiKeyService) List(ctx context.Context, principal entity.Principal) ([]*entity.APIKey, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}
	if err := srv.identity.AuthorizeStoreAccess(ctx, principal, storeID); err != nil {
		return nil, err
	}

	keys, err := srv.keyRepo.FindAPIKeysByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list api keys")
	}

	return keys, nil
}

func (srv *apiKeyService) Get(ctx context.Context, principal entity.Principal, keyID uuid.UUID) (*entity.APIKey, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}
	if err := srv.identity.AuthorizeStoreAccess(ctx, principal, storeID); err != nil {
		return nil, err
	}

	return srv.find(ctx, storeID, keyID)
}

func (srv *apiKeyService) Update(ctx context.Context, principal entity.Principal, keyID uuid.UUID, input *usecase.APIKeyInput) (*entity.APIKey, error) {
	storeID, err := srv.authorizeAdmin(ctx, principal)
	if err != nil {
		return nil, err
	}

	key, err := srv.find(ctx, storeID, keyID)
	if err != nil {
		return nil, err
	}
	before := redactedKey(key)

	if err := applyAPIKeyInput(key, input); err != nil {
		return nil, err
	}
	if key.Name == "" {
		return nil, domainerrors.ErrValidation.WithDetails("name cannot be empty")
	}

	if err := srv.keyRepo.UpdateAPIKey(ctx, key); err != nil {
		return nil, translateNotFound(err, repository.ErrAPIKeyNotFound, domainerrors.ErrAPIKeyNotFound, "failed to update api key")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityAPIKey, key.ID.String(), entity.AuditActionUpdate, before, redactedKey(key)))

	return key, nil
}

func (srv *apiKeyService) Delete(ctx context.Context, principal entity.Principal, keyID uuid.UUID) error {
	storeID, err := srv.authorizeAdmin(ctx, principal)
	if err != nil {
		return err
	}

	key, err := srv.find(ctx, storeID, keyID)
	if err != nil {
		return err
	}

	if err := srv.keyRepo.DeleteAPIKey(ctx, key.ID); err != nil {
		return translateNotFound(err, repository.ErrAPIKeyNotFound, domainerrors.ErrAPIKeyNotFound, "failed to delete api key")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityAPIKey, key.ID.String(), entity.AuditActionDelete, redactedKey(key), nil))

	return nil
}

// Validate checks a presented key. Every failure is a 401 naming the API key.
func (srv *apiKeyService) Validate(ctx context.Context, rawKey string) (*entity.APIKey, error) {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" {
		return nil, domainerrors.ErrAPIKeyRequired
	}

	keyID, err := uuid.Parse(rawKey)
	if err != nil {
		return nil, domainerrors.ErrAPIKeyMalformed
	}

	key, err := srv.keyRepo.FindAPIKeyByID(ctx, keyID)
	if errors.Is(err, repository.ErrAPIKeyNotFound) {
		return nil, domainerrors.ErrAPIKeyInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up api key")
	}

	if key.Status != entity.APIKeyStatusEnabled {
		return nil, domainerrors.ErrAPIKeyDisabled
	}
	if key.IsExpired(srv.now()) {
		return nil, domainerrors.ErrAPIKeyExpired
	}

	return key, nil
}

func (srv *apiKeyService) authorizeAdmin(ctx context.Context, principal entity.Principal) (uuid.UUID, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return uuid.Nil, err
	}
	if err := srv.identity.AuthorizeStoreAdmin(ctx, principal, storeID); err != nil {
		return uuid.Nil, err
	}

	return storeID, nil
}

func (srv *apiKeyService) find(ctx context.Context, storeID, keyID uuid.UUID) (*entity.APIKey, error) {
	key, err := srv.keyRepo.FindAPIKeyByID(ctx, keyID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrAPIKeyNotFound, domainerrors.ErrAPIKeyNotFound, "failed to load api key")
	}
	if key.StoreID != storeID {
		return nil, domainerrors.ErrAPIKeyNotFound
	}

	return key, nil
}

func applyAPIKeyInput(key *entity.APIKey, input *usecase.APIKeyInput) error {
	if input == nil {
		return nil
	}
	if input.Name != nil {
		key.Name = strings.TrimSpace(*input.Name)
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return domainerrors.ErrValidation.WithDetails("status must be Enabled or Disabled")
		}
		key.Status = *input.Status
	}
	if input.ExpiredAt != nil {
		if input.ExpiredAt.IsZero() {
			key.ExpiredAt = nil
		} else {
			expiredAt := *input.ExpiredAt
			key.ExpiredAt = &expiredAt
		}
	}

	return nil
}

// redactedKey keeps the credential out of the audit trail.
func redactedKey(key *entity.APIKey) map[string]any {
	return map[string]any{
		"name":       key.Name,
		"status":     key.Status,
		"expired_at": key.ExpiredAt,
	}
}
