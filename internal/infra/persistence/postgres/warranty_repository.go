package postgres

import (
	"context"

	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// warrantyRepository implements the repository.WarrantyRepository interface.
type warrantyRepository struct {
	db *gorm.DB
}

// NewWarrantyRepository is the constructor for warrantyRepository.
func NewWarrantyRepository(db *gorm.DB) repository.WarrantyRepository {
	return &warrantyRepository{
		db: db,
	}
}

func (repo *warrantyRepository) CreateWarranty(ctx context.Context, warranty *entity.Warranty) error {
	warrantyM := fromWarrantyDomain(warranty)

	if err := repo.db.WithContext(ctx).Omit("Product", "Customer").Create(warrantyM).Error; err != nil {
		if violatesUnique(err, constraintWarrantyTriplet) {
			return repository.ErrDuplicateWarranty
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required warranty information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create warranty")
	}

	warranty.ID = warrantyM.ID
	warranty.CreatedAt = warrantyM.CreatedAt
	warranty.UpdatedAt = warrantyM.UpdatedAt

	return nil
}

func (repo *warrantyRepository) FindWarrantyByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Warranty, error) {
	return repo.findWarranty(repo.db.WithContext(ctx).Scopes(inStore(storeID)), id)
}

func (repo *warrantyRepository) FindWarrantyByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.Warranty, error) {
	return repo.findWarranty(repo.db.WithContext(ctx), id)
}

func (repo *warrantyRepository) findWarranty(tx *gorm.DB, id uuid.UUID) (*entity.Warranty, error) {
	var warrantyM model.WarrantyModel

	if err := tx.
		Preload("Product.Template").
		Preload("Customer").
		Where("id = ?", id).
		First(&warrantyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWarrantyNotFound
		}

		return nil, errors.Wrap(err, "failed to find warranty by id")
	}

	return toWarrantyDomain(&warrantyM), nil
}

func (repo *warrantyRepository) FindWarrantyByTriple(ctx context.Context, productItemID, customerID, storeID uuid.UUID) (*entity.Warranty, error) {
	var warrantyM model.WarrantyModel

	if err := repo.db.WithContext(ctx).
		Where("product_id = ? AND customer_id = ? AND store_id = ?", productItemID, customerID, storeID).
		First(&warrantyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWarrantyNotFound
		}

		return nil, errors.Wrap(err, "failed to find warranty by product and customer")
	}

	return toWarrantyDomain(&warrantyM), nil
}

func (repo *warrantyRepository) FindWarrantiesByProduct(ctx context.Context, storeID, productItemID uuid.UUID) ([]*entity.Warranty, error) {
	var warrantyModels []*model.WarrantyModel

	if err := repo.db.WithContext(ctx).
		Preload("Customer").
		Where("product_id = ? AND store_id = ?", productItemID, storeID).
		Order("created_at DESC").
		Find(&warrantyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find warranties by product")
	}

	return lo.Map(warrantyModels, func(m *model.WarrantyModel, _ int) *entity.Warranty {
		return toWarrantyDomain(m)
	}), nil
}

func (repo *warrantyRepository) ListWarranties(ctx context.Context, storeID uuid.UUID, filter repository.WarrantyFilter, page entity.PageRequest) ([]*entity.Warranty, int64, error) {
	var (
		warrantyModels []*model.WarrantyModel
		total          int64
	)

	query := repo.db.WithContext(ctx).
		Model(&model.WarrantyModel{}).
		Where("store_id = ?", storeID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count warranties")
	}

	if err := query.
		Preload("Product.Template").
		Preload("Customer").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&warrantyModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list warranties")
	}

	return lo.Map(warrantyModels, func(m *model.WarrantyModel, _ int) *entity.Warranty {
		return toWarrantyDomain(m)
	}), total, nil
}

func (repo *warrantyRepository) UpdateWarranty(ctx context.Context, warranty *entity.Warranty) error {
	result := repo.db.WithContext(ctx).
		Model(&model.WarrantyModel{}).
		Where("id = ? AND store_id = ?", warranty.ID, warranty.StoreID).
		Updates(map[string]any{
			"warranty_start": warranty.WarrantyStart,
			"warranty_end":   warranty.WarrantyEnd,
			"status":         warranty.Status.String(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update warranty")
	}
	if result.RowsAffected == 0 {
		return repository.ErrWarrantyNotFound
	}

	return nil
}

func (repo *warrantyRepository) UpdateArtifacts(ctx context.Context, id uuid.UUID, qrCodeURL, pdfURL string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.WarrantyModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"qr_code_url":      qrCodeURL,
			"warranty_pdf_url": pdfURL,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update warranty artifacts")
	}
	if result.RowsAffected == 0 {
		return repository.ErrWarrantyNotFound
	}

	return nil
}

func toWarrantyDomain(data *model.WarrantyModel) *entity.Warranty {
	if data == nil {
		return nil
	}

	return &entity.Warranty{
		ID:             data.ID,
		ProductItemID:  data.ProductItemID,
		CustomerID:     data.CustomerID,
		StoreID:        data.StoreID,
		CreatedBy:      data.CreatedBy,
		WarrantyStart:  data.WarrantyStart,
		WarrantyEnd:    data.WarrantyEnd,
		Status:         entity.WarrantyStatus(data.Status),
		QRCodeURL:      data.QRCodeURL,
		WarrantyPDFURL: data.WarrantyPDFURL,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
		Product:        toItemDomain(data.Product),
		Customer:       toCustomerDomain(data.Customer),
	}
}

func fromWarrantyDomain(data *entity.Warranty) *model.WarrantyModel {
	return &model.WarrantyModel{
		ID:             data.ID,
		ProductItemID:  data.ProductItemID,
		CustomerID:     data.CustomerID,
		StoreID:        data.StoreID,
		CreatedBy:      data.CreatedBy,
		WarrantyStart:  data.WarrantyStart,
		WarrantyEnd:    data.WarrantyEnd,
		Status:         data.Status.String(),
		QRCodeURL:      data.QRCodeURL,
		WarrantyPDFURL: data.WarrantyPDFURL,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
