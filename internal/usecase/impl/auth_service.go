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
	"go.uber.org/fx"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 8

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	storeRepo    repository.StoreRepository
	memberRepo   repository.StoreMemberRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	auditLogger  service.AuditLogger
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	StoreRepo    repository.StoreRepository
	MemberRepo   repository.StoreMemberRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	AuditLogger  service.AuditLogger
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		storeRepo:    params.StoreRepo,
		memberRepo:   params.MemberRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		auditLogger:  params.AuditLogger,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return requestLogger(ctx, srv.logger)
}

// Signup creates the owner account, its first store and the owner's admin
// member row in one transaction.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	email := util.NormalizeEmail(input.Email)
	if len(input.Password) < MinPasswordLength {
		return nil, domainerrors.ErrValidation.WithDetails("password must be at least 8 characters")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	storeName := strings.TrimSpace(input.StoreName)
	if storeName == "" {
		storeName = strings.TrimSpace(input.BusinessName)
	}
	if storeName == "" {
		storeName = strings.TrimSpace(input.FullName)
	}

	account := &entity.OwnerAccount{
		Email:            email,
		PasswordHash:     hash,
		FullName:         strings.TrimSpace(input.FullName),
		Phone:            input.Phone,
		BusinessName:     input.BusinessName,
		BusinessWhatsApp: input.BusinessWhatsApp,
	}
	store := &entity.Store{
		StoreName:    storeName,
		Address:      input.StoreAddress,
		ContactPhone: input.Phone,
		SerialPrefix: entity.DefaultSerialPrefix,
	}
	var member *entity.StoreMember

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewAccountRepository().CreateAccount(ctx, account); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrEmailExists
			}

			return errors.Wrap(err, "failed to create owner account")
		}

		store.OwnerAccountID = account.ID
		if err := repoFactory.NewStoreRepository().CreateStore(ctx, store); err != nil {
			return errors.Wrap(err, "failed to create first store")
		}

		member = newOwnerAdminMember(account, store.ID)
		if err := repoFactory.NewStoreMemberRepository().CreateMember(ctx, member); err != nil {
			return errors.Wrap(err, "failed to create owner admin member")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.auditLogger.Record(ctx, newAuditEntry(&account.ID, store.ID, entity.AuditEntityStore, store.ID.String(), entity.AuditActionCreate, nil, store))
	srv.log(ctx).Info("Owner account created", slog.String("account_id", account.ID.String()), slog.String("store_id", store.ID.String()))

	return srv.issue(service.TokenSubject{Kind: entity.AccountKindOwner, ID: account.ID}, &usecase.AuthOutput{
		AccountKind: entity.AccountKindOwner,
		Account:     account,
		Member:      member,
		Store:       store,
	})
}

// Login checks owner accounts first, then store members with the same email.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := util.NormalizeEmail(input.Email)

	account, err := srv.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to look up owner account")
	}
	if account != nil && srv.hasher.Check(input.Password, account.PasswordHash) {
		return srv.loginOwner(ctx, account, input.StoreID)
	}

	member, err := srv.memberRepo.FindMemberByEmail(ctx, email, input.StoreID)
	if err != nil && !errors.Is(err, repository.ErrStoreMemberNotFound) {
		return nil, errors.Wrap(err, "failed to look up store member")
	}
	if member != nil && srv.hasher.Check(input.Password, member.PasswordHash) {
		return srv.loginMember(ctx, member)
	}

	srv.log(ctx).Info("Login rejected", slog.String("email", email))

	return nil, domainerrors.ErrInvalidCredentials
}

func (srv *authService) loginOwner(ctx context.Context, account *entity.OwnerAccount, storeID uuid.UUID) (*usecase.AuthOutput, error) {
	output := &usecase.AuthOutput{AccountKind: entity.AccountKindOwner, Account: account}

	member, err := srv.memberRepo.FindMemberByAccount(ctx, account.ID, storeID)
	if err != nil && !errors.Is(err, repository.ErrStoreMemberNotFound) {
		return nil, errors.Wrap(err, "failed to load linked store member")
	}

	switch {
	case member != nil:
		output.Member = member
		output.Store, err = srv.storeRepo.FindStoreByID(ctx, member.StoreID)
		if err != nil && !errors.Is(err, repository.ErrStoreNotFound) {
			return nil, errors.Wrap(err, "failed to load member store")
		}
	default:
		stores, err := srv.storeRepo.FindStoresByOwner(ctx, account.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load owned stores")
		}
		if len(stores) > 0 {
			output.Store = stores[0]
		}
	}
	// An owner without a member row has to pick or create a store first.
	output.NeedsStore = member == nil

	return srv.issue(service.TokenSubject{Kind: entity.AccountKindOwner, ID: account.ID}, output)
}

func (srv *authService) loginMember(ctx context.Context, member *entity.StoreMember) (*usecase.AuthOutput, error) {
	store, err := srv.storeRepo.FindStoreByID(ctx, member.StoreID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrStoreNotFound, domainerrors.ErrStoreNotFound, "failed to load member store")
	}

	return srv.issue(service.TokenSubject{Kind: entity.AccountKindMember, ID: member.ID}, &usecase.AuthOutput{
		AccountKind: entity.AccountKindMember,
		Member:      member,
		Store:       store,
	})
}

func (srv *authService) issue(subject service.TokenSubject, output *usecase.AuthOutput) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.GenerateToken(subject)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	output.Token = token
	output.ExpiresIn = int64(srv.tokenService.TokenTTL().Seconds())

	return output, nil
}

// Me describes the principal and its resolved store.
func (srv *authService) Me(ctx context.Context, principal entity.Principal) (*usecase.MeOutput, error) {
	output := &usecase.MeOutput{AccountKind: principal.AccountKind(), Permissions: entity.Permissions{}}

	switch p := principal.(type) {
	case *entity.MemberPrincipal:
		output.Member = p.Member
		output.Permissions = p.Member.Permissions
	case *entity.OwnerPrincipal:
		output.Account = p.Account
		output.Member = p.Member
		if p.Member != nil {
			output.Permissions = p.Member.Permissions
		} else if p.OwnsStore {
			output.Permissions = entity.Permissions{entity.PermissionAll.String()}
		}
	}

	if storeID, ok := principal.StoreScope(); ok {
		store, err := srv.storeRepo.FindStoreByID(ctx, storeID)
		if err != nil && !errors.Is(err, repository.ErrStoreNotFound) {
			return nil, errors.Wrap(err, "failed to load current store")
		}
		output.Store = store
	}

	return output, nil
}

// newOwnerAdminMember is the member row an owner acts through inside its store.
func newOwnerAdminMember(account *entity.OwnerAccount, storeID uuid.UUID) *entity.StoreMember {
	accountID := account.ID

	return &entity.StoreMember{
		StoreID:        storeID,
		OwnerAccountID: &accountID,
		FullName:       account.FullName,
		Email:          account.Email,
		Phone:          account.Phone,
		PasswordHash:   account.PasswordHash,
		Role:           entity.RoleAdmin,
		Permissions:    entity.Permissions{entity.PermissionAll.String()},
	}
}
