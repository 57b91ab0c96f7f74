package impl

import (
	"context"
	"log/slog"
	"strings"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"
	"warranty/internal/usecase"
	"warranty/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/fx"
)

var knownPermissions = []string{
	entity.PermissionAll.String(),
	entity.PermissionProducts.String(),
	entity.PermissionWarranties.String(),
	entity.PermissionClaims.String(),
	entity.PermissionCustomers.String(),
}

// storeMemberService implements the StoreMemberUsecase interface.
type storeMemberService struct {
	memberRepo  repository.StoreMemberRepository
	identity    usecase.IdentityUsecase
	hasher      service.PasswordHasher
	auditLogger service.AuditLogger
	logger      *slog.Logger
}

// StoreMemberServiceParams holds dependencies for StoreMemberService, injected by Fx.
type StoreMemberServiceParams struct {
	fx.In

	MemberRepo  repository.StoreMemberRepository
	Identity    usecase.IdentityUsecase
	Hasher      service.PasswordHasher
	AuditLogger service.AuditLogger
	Logger      *slog.Logger
}

// NewStoreMemberService is the constructor for storeMemberService.
func NewStoreMemberService(params StoreMemberServiceParams) usecase.StoreMemberUsecase {
	return &storeMemberService{
		memberRepo:  params.MemberRepo,
		identity:    params.Identity,
		hasher:      params.Hasher,
		auditLogger: params.AuditLogger,
		logger:      params.Logger,
	}
}

func (srv *storeMemberService) List(ctx context.Context, principal entity.Principal) ([]*entity.StoreMember, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}
	if err := srv.identity.AuthorizeStoreAccess(ctx, principal, storeID); err != nil {
		return nil, err
	}

	members, err := srv.memberRepo.FindMembersByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store members")
	}

	return members, nil
}

func (srv *storeMemberService) Create(ctx context.Context, principal entity.Principal, input *usecase.StoreMemberInput) (*entity.StoreMember, error) {
	storeID, err := srv.authorizeAdmin(ctx, principal)
	if err != nil {
		return nil, err
	}

	if input.Email == nil || input.Password == nil || input.FullName == nil {
		return nil, domainerrors.ErrValidation.WithDetails("full_name, email and password are required")
	}

	member := &entity.StoreMember{
		StoreID:     storeID,
		Role:        entity.RoleStaff,
		Permissions: entity.Permissions{},
	}
	if err := srv.apply(member, input); err != nil {
		return nil, err
	}

	if err := srv.memberRepo.CreateMember(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrDuplicateMemberEmail
		}

		return nil, errors.Wrap(err, "failed to create store member")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityStoreMember, member.ID.String(), entity.AuditActionCreate, nil, member))
	requestLogger(ctx, srv.logger).Info("Store member created", slog.String("store_id", storeID.String()), slog.String("member_id", member.ID.String()))

	return member, nil
}

func (srv *storeMemberService) Update(ctx context.Context, principal entity.Principal, memberID uuid.UUID, input *usecase.StoreMemberInput) (*entity.StoreMember, error) {
	storeID, err := srv.authorizeAdmin(ctx, principal)
	if err != nil {
		return nil, err
	}

	member, err := srv.find(ctx, storeID, memberID)
	if err != nil {
		return nil, err
	}
	before := *member

	if err := srv.apply(member, input); err != nil {
		return nil, err
	}

	if err := srv.memberRepo.UpdateMember(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrDuplicateMemberEmail
		}

		return nil, errors.Wrap(err, "failed to update store member")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityStoreMember, member.ID.String(), entity.AuditActionUpdate, before, member))

	return member, nil
}

func (srv *storeMemberService) Delete(ctx context.Context, principal entity.Principal, memberID uuid.UUID) error {
	storeID, err := srv.authorizeAdmin(ctx, principal)
	if err != nil {
		return err
	}

	member, err := srv.find(ctx, storeID, memberID)
	if err != nil {
		return err
	}

	if err := srv.memberRepo.DeleteMember(ctx, member.ID); err != nil {
		return translateNotFound(err, repository.ErrStoreMemberNotFound, domainerrors.ErrStoreMemberNotFound, "failed to delete store member")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityStoreMember, member.ID.String(), entity.AuditActionDelete, member, nil))

	return nil
}

func (srv *storeMemberService) authorizeAdmin(ctx context.Context, principal entity.Principal) (uuid.UUID, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return uuid.Nil, err
	}
	if err := srv.identity.AuthorizeStoreAdmin(ctx, principal, storeID); err != nil {
		return uuid.Nil, err
	}

	return storeID, nil
}

// find loads a member of the store. Members of other stores are reported as missing.
func (srv *storeMemberService) find(ctx context.Context, storeID, memberID uuid.UUID) (*entity.StoreMember, error) {
	member, err := srv.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrStoreMemberNotFound, domainerrors.ErrStoreMemberNotFound, "failed to load store member")
	}
	if member.StoreID != storeID {
		return nil, domainerrors.ErrStoreMemberNotFound
	}

	return member, nil
}

func (srv *storeMemberService) apply(member *entity.StoreMember, input *usecase.StoreMemberInput) error {
	if input.FullName != nil {
		member.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Email != nil {
		member.Email = util.NormalizeEmail(*input.Email)
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return domainerrors.ErrValidation.WithDetails("role must be one of admin, manager, staff")
		}
		member.Role = *input.Role
	}
	if input.Permissions != nil {
		if unknown, ok := lo.Find(input.Permissions, func(p string) bool { return !lo.Contains(knownPermissions, p) }); ok {
			return domainerrors.ErrValidation.WithDetails("unknown permission " + unknown)
		}
		member.Permissions = lo.Uniq(input.Permissions)
	}
	if input.Password != nil {
		if len(*input.Password) < MinPasswordLength {
			return domainerrors.ErrValidation.WithDetails("password must be at least 8 characters")
		}
		hash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed
		}
		member.PasswordHash = hash
	}

	return nil
}
