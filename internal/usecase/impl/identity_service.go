package impl

import (
	"context"
	"log/slog"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	accountRepo  repository.AccountRepository
	storeRepo    repository.StoreRepository
	memberRepo   repository.StoreMemberRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	StoreRepo    repository.StoreRepository
	MemberRepo   repository.StoreMemberRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		accountRepo:  params.AccountRepo,
		storeRepo:    params.StoreRepo,
		memberRepo:   params.MemberRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// ResolveIdentity decodes the token subject and builds the matching principal.
func (srv *identityService) ResolveIdentity(ctx context.Context, token string, storeHint uuid.UUID) (entity.Principal, error) {
	if token == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		requestLogger(ctx, srv.logger).Debug("Token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidToken
	}

	if claims.Subject.Kind == entity.AccountKindMember {
		return srv.resolveMember(ctx, claims.Subject.ID)
	}

	return srv.resolveOwner(ctx, claims.Subject.ID, storeHint)
}

// resolveMember scopes an employee to its own store. Store hints are ignored.
func (srv *identityService) resolveMember(ctx context.Context, memberID uuid.UUID) (entity.Principal, error) {
	member, err := srv.memberRepo.FindMemberByID(ctx, memberID)
	if errors.Is(err, repository.ErrStoreMemberNotFound) {
		return nil, domainerrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load store member for token")
	}

	return &entity.MemberPrincipal{Member: member}, nil
}

// resolveOwner picks the owner's store: the hinted one if accessible, else
// the first linked member row, else the first owned store.
func (srv *identityService) resolveOwner(ctx context.Context, accountID, storeHint uuid.UUID) (entity.Principal, error) {
	account, err := srv.accountRepo.FindAccountByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load owner account for token")
	}

	principal := &entity.OwnerPrincipal{Account: account}

	if storeHint != uuid.Nil {
		return srv.resolveOwnerHint(ctx, principal, storeHint)
	}

	member, err := srv.memberRepo.FindMemberByAccount(ctx, account.ID, uuid.Nil)
	switch {
	case err == nil:
		principal.Member = member
		principal.StoreID = member.StoreID
		principal.OwnsStore, err = srv.ownsStore(ctx, account.ID, member.StoreID)
		if err != nil {
			return nil, err
		}

		return principal, nil
	case !errors.Is(err, repository.ErrStoreMemberNotFound):
		return nil, errors.Wrap(err, "failed to load linked store member")
	}

	stores, err := srv.storeRepo.FindStoresByOwner(ctx, account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load owned stores")
	}
	if len(stores) > 0 {
		principal.StoreID = stores[0].ID
		principal.OwnsStore = true
	}

	return principal, nil
}

func (srv *identityService) resolveOwnerHint(ctx context.Context, principal *entity.OwnerPrincipal, storeID uuid.UUID) (entity.Principal, error) {
	owns, err := srv.ownsStore(ctx, principal.Account.ID, storeID)
	if err != nil {
		return nil, err
	}

	member, err := srv.memberRepo.FindMemberByAccount(ctx, principal.Account.ID, storeID)
	if err != nil && !errors.Is(err, repository.ErrStoreMemberNotFound) {
		return nil, errors.Wrap(err, "failed to load linked store member")
	}
	if member == nil && !owns {
		return nil, domainerrors.ErrNoStoreAccess
	}

	principal.Member = member
	principal.StoreID = storeID
	principal.OwnsStore = owns

	return principal, nil
}

func (srv *identityService) ownsStore(ctx context.Context, accountID, storeID uuid.UUID) (bool, error) {
	store, err := srv.storeRepo.FindStoreByID(ctx, storeID)
	if errors.Is(err, repository.ErrStoreNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to load store")
	}

	return store.IsOwnedBy(accountID), nil
}

// AuthorizeStoreAdmin admits store admins and the store's owner.
func (srv *identityService) AuthorizeStoreAdmin(ctx context.Context, principal entity.Principal, storeID uuid.UUID) error {
	switch p := principal.(type) {
	case *entity.MemberPrincipal:
		if p.Member.StoreID != storeID || !p.Member.IsAdmin() {
			return domainerrors.ErrNotStoreAdmin
		}

		return nil
	case *entity.OwnerPrincipal:
		owns, err := srv.ownsStore(ctx, p.Account.ID, storeID)
		if err != nil {
			return err
		}
		if owns {
			return nil
		}

		member, err := srv.linkedMember(ctx, p, storeID)
		if err != nil {
			return err
		}
		if !member.IsAdmin() {
			return domainerrors.ErrNotStoreAdmin
		}

		return nil
	default:
		return domainerrors.ErrUnauthenticated
	}
}

// AuthorizeStoreAccess admits any member of the store and the store's owner.
func (srv *identityService) AuthorizeStoreAccess(ctx context.Context, principal entity.Principal, storeID uuid.UUID) error {
	switch p := principal.(type) {
	case *entity.MemberPrincipal:
		if p.Member.StoreID != storeID {
			return domainerrors.ErrForbidden
		}

		return nil
	case *entity.OwnerPrincipal:
		owns, err := srv.ownsStore(ctx, p.Account.ID, storeID)
		if err != nil {
			return err
		}
		if owns {
			return nil
		}

		member, err := srv.linkedMember(ctx, p, storeID)
		if err != nil {
			return err
		}
		if member == nil {
			return domainerrors.ErrForbidden
		}

		return nil
	default:
		return domainerrors.ErrUnauthenticated
	}
}

// linkedMember returns the owner's member row in the store, nil when absent.
func (srv *identityService) linkedMember(ctx context.Context, p *entity.OwnerPrincipal, storeID uuid.UUID) (*entity.StoreMember, error) {
	if p.Member != nil && p.Member.StoreID == storeID {
		return p.Member, nil
	}

	member, err := srv.memberRepo.FindMemberByAccount(ctx, p.Account.ID, storeID)
	if errors.Is(err, repository.ErrStoreMemberNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load linked store member")
	}

	return member, nil
}
