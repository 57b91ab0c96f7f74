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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// storeMemberRepository implements the repository.StoreMemberRepository interface.
type storeMemberRepository struct {
	db *gorm.DB
}

// NewStoreMemberRepository is the constructor for storeMemberRepository.
func NewStoreMemberRepository(db *gorm.DB) repository.StoreMemberRepository {
	return &storeMemberRepository{
		db: db,
	}
}

// CreateMember persists a new store member.
func (repo *storeMemberRepository) CreateMember(ctx context.Context, member *entity.StoreMember) error {
	memberM := fromStoreMemberDomain(member)

	if err := repo.db.WithContext(ctx).Create(memberM).Error; err != nil {
		if violatesUnique(err, constraintMemberEmail) || violatesUnique(err, constraintMemberOwner) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required store user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store member")
	}

	member.ID = memberM.ID
	member.Email = memberM.Email
	member.CreatedAt = memberM.CreatedAt
	member.UpdatedAt = memberM.UpdatedAt

	return nil
}

// FindMemberByID retrieves a store member by its unique ID.
func (repo *storeMemberRepository) FindMemberByID(ctx context.Context, id uuid.UUID) (*entity.StoreMember, error) {
	var memberM model.StoreMemberModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&memberM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find store member by id")
	}

	return toStoreMemberDomain(&memberM), nil
}

// FindMemberByAccount retrieves the member row linked to an owner account.
func (repo *storeMemberRepository) FindMemberByAccount(ctx context.Context, accountID, storeID uuid.UUID) (*entity.StoreMember, error) {
	var memberM model.StoreMemberModel

	query := repo.db.WithContext(ctx).Where("owner_account_id = ?", accountID)
	if storeID != uuid.Nil {
		query = query.Where("store_id = ?", storeID)
	}

	if err := query.Order("created_at ASC").First(&memberM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find store member by account")
	}

	return toStoreMemberDomain(&memberM), nil
}

// FindMemberByEmail retrieves a member by email, ignoring case.
func (repo *storeMemberRepository) FindMemberByEmail(ctx context.Context, email string, storeID uuid.UUID) (*entity.StoreMember, error) {
	var memberM model.StoreMemberModel

	query := repo.db.WithContext(ctx).Where("email = ?", util.NormalizeEmail(email))
	if storeID != uuid.Nil {
		query = query.Where("store_id = ?", storeID)
	}

	if err := query.Order("created_at ASC").First(&memberM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreMemberNotFound
		}

		return nil, errors.Wrap(err, "failed to find store member by email")
	}

	return toStoreMemberDomain(&memberM), nil
}

// FindMembersByStore retrieves every member of a store, newest first.
func (repo *storeMemberRepository) FindMembersByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.StoreMember, error) {
	var memberModels []*model.StoreMemberModel

	if err := repo.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&memberModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find store members")
	}

	members := make([]*entity.StoreMember, 0, len(memberModels))
	for _, memberM := range memberModels {
		members = append(members, toStoreMemberDomain(memberM))
	}

	return members, nil
}

// UpdateMember saves every column of the member.
func (repo *storeMemberRepository) UpdateMember(ctx context.Context, member *entity.StoreMember) error {
	memberM := fromStoreMemberDomain(member)

	if err := repo.db.WithContext(ctx).Save(memberM).Error; err != nil {
		if violatesUnique(err, constraintMemberEmail) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update store member")
	}

	member.UpdatedAt = memberM.UpdatedAt

	return nil
}

// DeleteMember removes a member row.
func (repo *storeMemberRepository) DeleteMember(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.StoreMemberModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete store member")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreMemberNotFound
	}

	return nil
}

func toStoreMemberDomain(data *model.StoreMemberModel) *entity.StoreMember {
	if data == nil {
		return nil
	}

	permissions := entity.Permissions(data.Permissions)
	if permissions == nil {
		permissions = entity.Permissions{}
	}

	return &entity.StoreMember{
		ID:             data.ID,
		StoreID:        data.StoreID,
		OwnerAccountID: data.OwnerAccountID,
		FullName:       data.FullName,
		Email:          data.Email,
		Phone:          data.Phone,
		PasswordHash:   data.PasswordHash,
		Role:           entity.Role(data.Role),
		Permissions:    permissions,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromStoreMemberDomain(data *entity.StoreMember) *model.StoreMemberModel {
	permissions := datatypes.JSONSlice[string](data.Permissions)
	if permissions == nil {
		permissions = datatypes.JSONSlice[string]{}
	}

	return &model.StoreMemberModel{
		ID:             data.ID,
		StoreID:        data.StoreID,
		OwnerAccountID: data.OwnerAccountID,
		FullName:       data.FullName,
		Email:          util.NormalizeEmail(data.Email),
		Phone:          data.Phone,
		PasswordHash:   data.PasswordHash,
		Role:           data.Role.String(),
		Permissions:    permissions,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
