package impl

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var logoExtensions = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/jpg":     "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// storeService implements the StoreUsecase interface.
type storeService struct {
	txManager   repository.TransactionManager
	storeRepo   repository.StoreRepository
	identity    usecase.IdentityUsecase
	storage     service.ArtifactStorage
	auditLogger service.AuditLogger
	logger      *slog.Logger
}

// StoreServiceParams holds dependencies for StoreService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	StoreRepo   repository.StoreRepository
	Identity    usecase.IdentityUsecase
	Storage     service.ArtifactStorage
	AuditLogger service.AuditLogger
	Logger      *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		txManager:   params.TxManager,
		storeRepo:   params.StoreRepo,
		identity:    params.Identity,
		storage:     params.Storage,
		auditLogger: params.AuditLogger,
		logger:      params.Logger,
	}
}

// List returns the member's own store, or every store an owner owns.
func (srv *storeService) List(ctx context.Context, principal entity.Principal) ([]*entity.Store, error) {
	switch p := principal.(type) {
	case *entity.MemberPrincipal:
		store, err := srv.storeRepo.FindStoreByID(ctx, p.Member.StoreID)
		if err != nil {
			return nil, translateNotFound(err, repository.ErrStoreNotFound, domainerrors.ErrStoreNotFound, "failed to load member store")
		}

		return []*entity.Store{store}, nil
	case *entity.OwnerPrincipal:
		stores, err := srv.storeRepo.FindStoresByOwner(ctx, p.Account.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list owned stores")
		}

		return stores, nil
	default:
		return nil, domainerrors.ErrUnauthenticated
	}
}

// Create opens another store for an owner, with the owner's admin member row.
func (srv *storeService) Create(ctx context.Context, principal entity.Principal, input *usecase.StoreInput) (*entity.Store, error) {
	owner, ok := principal.(*entity.OwnerPrincipal)
	if !ok {
		return nil, domainerrors.ErrOwnerOnly
	}

	store := &entity.Store{
		OwnerAccountID: owner.Account.ID,
		SerialPrefix:   entity.DefaultSerialPrefix,
	}
	applyStoreInput(store, input)
	if strings.TrimSpace(store.StoreName) == "" {
		return nil, domainerrors.ErrValidation.WithDetails("store_name is required")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewStoreRepository().CreateStore(ctx, store); err != nil {
			return errors.Wrap(err, "failed to create store")
		}
		if err := repoFactory.NewStoreMemberRepository().CreateMember(ctx, newOwnerAdminMember(owner.Account, store.ID)); err != nil {
			return errors.Wrap(err, "failed to create owner admin member")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.StoreLogo != nil {
		if err := srv.applyLogo(ctx, store, *input.StoreLogo); err != nil {
			return nil, err
		}
		if err := srv.storeRepo.UpdateStore(ctx, store); err != nil {
			return nil, errors.Wrap(err, "failed to save store logo")
		}
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), store.ID, entity.AuditEntityStore, store.ID.String(), entity.AuditActionCreate, nil, store))

	return store, nil
}

// Get returns a store the caller can access. Inaccessible stores are reported as missing.
func (srv *storeService) Get(ctx context.Context, principal entity.Principal, storeID uuid.UUID) (*entity.Store, error) {
	if err := srv.identity.AuthorizeStoreAccess(ctx, principal, storeID); err != nil {
		if errors.Is(err, domainerrors.ErrForbidden) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, err
	}

	store, err := srv.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrStoreNotFound, domainerrors.ErrStoreNotFound, "failed to load store")
	}

	return store, nil
}

// Update changes store settings. Only store admins may call it.
func (srv *storeService) Update(ctx context.Context, principal entity.Principal, storeID uuid.UUID, input *usecase.StoreInput) (*entity.Store, error) {
	if err := srv.identity.AuthorizeStoreAdmin(ctx, principal, storeID); err != nil {
		return nil, err
	}

	store, err := srv.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrStoreNotFound, domainerrors.ErrStoreNotFound, "failed to load store")
	}
	before := *store

	applyStoreInput(store, input)
	if strings.TrimSpace(store.StoreName) == "" {
		return nil, domainerrors.ErrValidation.WithDetails("store_name cannot be empty")
	}
	if input.StoreLogo != nil {
		if err := srv.applyLogo(ctx, store, *input.StoreLogo); err != nil {
			return nil, err
		}
	}

	if err := srv.storeRepo.UpdateStore(ctx, store); err != nil {
		return nil, errors.Wrap(err, "failed to update store")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), store.ID, entity.AuditEntityStore, store.ID.String(), entity.AuditActionUpdate, before, store))

	return store, nil
}

// Delete removes a store and its member rows. Only the owning account may call it.
func (srv *storeService) Delete(ctx context.Context, principal entity.Principal, storeID uuid.UUID) error {
	owner, ok := principal.(*entity.OwnerPrincipal)
	if !ok {
		return domainerrors.ErrOwnerOnly
	}

	store, err := srv.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return translateNotFound(err, repository.ErrStoreNotFound, domainerrors.ErrStoreNotFound, "failed to load store")
	}
	if !store.IsOwnedBy(owner.Account.ID) {
		return domainerrors.ErrOwnerOnly
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		memberRepo := repoFactory.NewStoreMemberRepository()
		members, err := memberRepo.FindMembersByStore(ctx, storeID)
		if err != nil {
			return errors.Wrap(err, "failed to list store members")
		}
		for _, member := range members {
			if err := memberRepo.DeleteMember(ctx, member.ID); err != nil {
				return errors.Wrap(err, "failed to delete store member")
			}
		}

		return repoFactory.NewStoreRepository().DeleteStore(ctx, storeID)
	})
	if err != nil {
		return translateNotFound(err, repository.ErrStoreNotFound, domainerrors.ErrStoreNotFound, "failed to delete store")
	}

	if key, ok := srv.storage.KeyFromURL(store.StoreLogo); ok {
		if err := srv.storage.Delete(ctx, key); err != nil {
			requestLogger(ctx, srv.logger).Warn("Failed to delete store logo", slog.String("key", key), slog.Any("error", err))
		}
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityStore, storeID.String(), entity.AuditActionDelete, store, nil))

	return nil
}

// applyLogo stores a data URI logo and replaces it by its URL. Plain URLs
// are kept as given.
func (srv *storeService) applyLogo(ctx context.Context, store *entity.Store, logo string) error {
	if !strings.HasPrefix(logo, "data:") {
		store.StoreLogo = logo

		return nil
	}

	contentType, data, err := decodeDataURI(logo)
	if err != nil {
		return domainerrors.ErrValidation.WithDetails("store_logo: " + err.Error())
	}
	ext, ok := logoExtensions[contentType]
	if !ok {
		return domainerrors.ErrValidation.WithDetails("store_logo: unsupported image type " + contentType)
	}

	url, err := srv.storage.Put(ctx, fmt.Sprintf("logos/store-logo-%s.%s", store.ID, ext), data, contentType)
	if err != nil {
		requestLogger(ctx, srv.logger).Error("Failed to upload store logo", slog.String("store_id", store.ID.String()), slog.Any("error", err))

		return domainerrors.ErrArtifactUploadFailed
	}
	store.StoreLogo = url

	return nil
}

// decodeDataURI parses "data:<type>;base64,<payload>".
func decodeDataURI(uri string) (string, []byte, error) {
	header, payload, found := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !found {
		return "", nil, errors.New("malformed data URI")
	}
	contentType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, errors.New("data URI must be base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.New("invalid base64 payload")
	}

	return strings.ToLower(contentType), data, nil
}

func applyStoreInput(store *entity.Store, input *usecase.StoreInput) {
	if input == nil {
		return
	}
	if input.StoreName != nil {
		store.StoreName = strings.TrimSpace(*input.StoreName)
	}
	if input.Address != nil {
		store.Address = *input.Address
	}
	if input.ContactPhone != nil {
		store.ContactPhone = *input.ContactPhone
	}
	if input.SerialPrefix != nil {
		store.SerialPrefix = strings.ToUpper(strings.TrimSpace(*input.SerialPrefix))
	}
	if input.SerialSuffix != nil {
		store.SerialSuffix = strings.ToUpper(strings.TrimSpace(*input.SerialSuffix))
	}
	if input.WhatsAppEnabled != nil {
		store.WhatsAppEnabled = *input.WhatsAppEnabled
	}
	if input.WhatsAppNumber != nil {
		store.WhatsAppNumber = *input.WhatsAppNumber
	}
}
