package postgres

import (
	"context"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/infra/persistence/model"
	"warranty/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the repository.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// CreateAccount persists a new owner account. The email is stored lowercased.
func (repo *accountRepository) CreateAccount(ctx context.Context, account *entity.OwnerAccount) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if violatesUnique(err, constraintOwnerEmail) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create owner account")
	}

	account.ID = accountM.ID
	account.Email = accountM.Email
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindAccountByID retrieves an owner account by its unique ID.
func (repo *accountRepository) FindAccountByID(ctx context.Context, id uuid.UUID) (*entity.OwnerAccount, error) {
	var accountM model.OwnerAccountModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find owner account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindAccountByEmail retrieves an owner account by email, ignoring case.
func (repo *accountRepository) FindAccountByEmail(ctx context.Context, email string) (*entity.OwnerAccount, error) {
	var accountM model.OwnerAccountModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", util.NormalizeEmail(email)).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find owner account by email")
	}

	return toAccountDomain(&accountM), nil
}

func toAccountDomain(data *model.OwnerAccountModel) *entity.OwnerAccount {
	if data == nil {
		return nil
	}

	return &entity.OwnerAccount{
		ID:               data.ID,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		FullName:         data.FullName,
		Phone:            data.Phone,
		BusinessName:     data.BusinessName,
		BusinessWhatsApp: data.BusinessWhatsApp,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromAccountDomain(data *entity.OwnerAccount) *model.OwnerAccountModel {
	return &model.OwnerAccountModel{
		ID:               data.ID,
		Email:            util.NormalizeEmail(data.Email),
		PasswordHash:     data.PasswordHash,
		FullName:         data.FullName,
		Phone:            data.Phone,
		BusinessName:     data.BusinessName,
		BusinessWhatsApp: data.BusinessWhatsApp,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
