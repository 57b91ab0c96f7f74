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
	"gorm.io/plugin/dbresolver"
)

// itemInsertBatchSize bounds the rows of one INSERT statement.
const itemInsertBatchSize = 500

// productTemplateRepository implements the repository.ProductTemplateRepository interface.
type productTemplateRepository struct {
	db *gorm.DB
}

// NewProductTemplateRepository is the constructor for productTemplateRepository.
func NewProductTemplateRepository(db *gorm.DB) repository.ProductTemplateRepository {
	return &productTemplateRepository{
		db: db,
	}
}

func (repo *productTemplateRepository) CreateTemplate(ctx context.Context, template *entity.ProductTemplate) error {
	templateM := fromTemplateDomain(template)

	if err := repo.db.WithContext(ctx).Create(templateM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required product template information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product template")
	}

	template.ID = templateM.ID
	template.CreatedAt = templateM.CreatedAt
	template.UpdatedAt = templateM.UpdatedAt

	return nil
}

func (repo *productTemplateRepository) FindTemplateByID(ctx context.Context, storeID, id uuid.UUID) (*entity.ProductTemplate, error) {
	var templateM model.ProductTemplateModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&templateM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTemplateNotFound
		}

		return nil, errors.Wrap(err, "failed to find product template by id")
	}

	return toTemplateDomain(&templateM), nil
}

func (repo *productTemplateRepository) ListTemplates(ctx context.Context, storeID uuid.UUID, page entity.PageRequest) ([]*entity.ProductTemplate, int64, error) {
	var (
		templateModels []*model.ProductTemplateModel
		total          int64
	)

	query := repo.db.WithContext(ctx).
		Model(&model.ProductTemplateModel{}).
		Where("store_id = ?", storeID)

	query = query.Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count product templates")
	}

	if err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&templateModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list product templates")
	}

	return lo.Map(templateModels, func(m *model.ProductTemplateModel, _ int) *entity.ProductTemplate {
		return toTemplateDomain(m)
	}), total, nil
}

func (repo *productTemplateRepository) UpdateTemplate(ctx context.Context, template *entity.ProductTemplate) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductTemplateModel{}).
		Where("id = ? AND store_id = ?", template.ID, template.StoreID).
		Updates(map[string]any{
			"brand":         template.Brand,
			"product_model": template.ProductModel,
			"category":      template.Category,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product template")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTemplateNotFound
	}

	return nil
}

func (repo *productTemplateRepository) DeleteTemplate(ctx context.Context, storeID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&model.ProductTemplateModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product template")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTemplateNotFound
	}

	return nil
}

// batchRepository implements the repository.BatchRepository interface.
type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository is the constructor for batchRepository.
func NewBatchRepository(db *gorm.DB) repository.BatchRepository {
	return &batchRepository{
		db: db,
	}
}

func (repo *batchRepository) CreateBatch(ctx context.Context, batch *entity.Batch) error {
	batchM := fromBatchDomain(batch)

	if err := repo.db.WithContext(ctx).Omit("Template").Create(batchM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required batch information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create batch")
	}

	batch.ID = batchM.ID
	batch.CreatedAt = batchM.CreatedAt
	batch.UpdatedAt = batchM.UpdatedAt

	return nil
}

func (repo *batchRepository) FindBatchByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Batch, error) {
	var batchM model.BatchModel

	if err := repo.db.WithContext(ctx).
		Preload("Template").
		Where("id = ? AND store_id = ?", id, storeID).
		First(&batchM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBatchNotFound
		}

		return nil, errors.Wrap(err, "failed to find batch by id")
	}

	return toBatchDomain(&batchM), nil
}

func (repo *batchRepository) FindBatchesByTemplate(ctx context.Context, storeID, templateID uuid.UUID) ([]*entity.Batch, error) {
	var batchModels []*model.BatchModel

	if err := repo.db.WithContext(ctx).
		Where("product_template_id = ? AND store_id = ?", templateID, storeID).
		Order("created_at DESC").
		Find(&batchModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find batches by template")
	}

	return lo.Map(batchModels, func(m *model.BatchModel, _ int) *entity.Batch {
		return toBatchDomain(m)
	}), nil
}

func (repo *batchRepository) UpdateBatchQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BatchModel{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update batch quantity")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBatchNotFound
	}

	return nil
}

func (repo *batchRepository) DeleteBatch(ctx context.Context, storeID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&model.BatchModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete batch")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBatchNotFound
	}

	return nil
}

func (repo *batchRepository) DeleteBatchesByTemplate(ctx context.Context, storeID, templateID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("product_template_id = ? AND store_id = ?", templateID, storeID).
		Delete(&model.BatchModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete batches by template")
	}

	return result.RowsAffected, nil
}

func (repo *batchRepository) DeleteOrphanBatches(ctx context.Context, storeID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Where("NOT EXISTS (SELECT 1 FROM product_templates t WHERE t.id = batches.product_template_id)").
		Delete(&model.BatchModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete orphan batches")
	}

	return result.RowsAffected, nil
}

func (repo *batchRepository) DeleteEmptyBatches(ctx context.Context, storeID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Where("NOT EXISTS (SELECT 1 FROM product_items i WHERE i.batch_id = batches.id)").
		Delete(&model.BatchModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete empty batches")
	}

	return result.RowsAffected, nil
}

// productItemRepository implements the repository.ProductItemRepository interface.
type productItemRepository struct {
	db *gorm.DB
}

// NewProductItemRepository is the constructor for productItemRepository.
func NewProductItemRepository(db *gorm.DB) repository.ProductItemRepository {
	return &productItemRepository{
		db: db,
	}
}

// CreateItems inserts the items in chunks of itemInsertBatchSize.
func (repo *productItemRepository) CreateItems(ctx context.Context, items []*entity.ProductItem) error {
	if len(items) == 0 {
		return nil
	}

	itemModels := lo.Map(items, func(item *entity.ProductItem, _ int) *model.ProductItemModel {
		return fromItemDomain(item)
	})

	if err := repo.db.WithContext(ctx).
		Omit("Batch", "Template").
		CreateInBatches(itemModels, itemInsertBatchSize).Error; err != nil {
		if violatesUnique(err, constraintSerialNumber) {
			return repository.ErrDuplicateSerial
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product items")
	}

	for i, itemM := range itemModels {
		items[i].ID = itemM.ID
		items[i].CreatedAt = itemM.CreatedAt
		items[i].UpdatedAt = itemM.UpdatedAt
	}

	return nil
}

// ExistingSerials reads from the primary so a serial committed a moment ago
// is never reported as free.
func (repo *productItemRepository) ExistingSerials(ctx context.Context, serials []string) ([]string, error) {
	if len(serials) == 0 {
		return nil, nil
	}

	var existing []string
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.ProductItemModel{}).
		Where("serial_number IN ?", serials).
		Pluck("serial_number", &existing).Error; err != nil {
		return nil, errors.Wrap(err, "failed to check existing serial numbers")
	}

	return existing, nil
}

func (repo *productItemRepository) FindItemByID(ctx context.Context, storeID, id uuid.UUID) (*entity.ProductItem, error) {
	return repo.findItem(repo.db.WithContext(ctx).Scopes(inStore(storeID)), id)
}

func (repo *productItemRepository) FindItemByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.ProductItem, error) {
	return repo.findItem(repo.db.WithContext(ctx), id)
}

func (repo *productItemRepository) findItem(tx *gorm.DB, id uuid.UUID) (*entity.ProductItem, error) {
	var itemM model.ProductItemModel

	if err := tx.
		Preload("Batch").
		Preload("Template").
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find product item by id")
	}

	return toItemDomain(&itemM), nil
}

func (repo *productItemRepository) FindItemBySerial(ctx context.Context, serial string) (*entity.ProductItem, error) {
	var itemM model.ProductItemModel

	if err := repo.db.WithContext(ctx).
		Preload("Batch").
		Preload("Template").
		Where("serial_number = ?", serial).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find product item by serial")
	}

	return toItemDomain(&itemM), nil
}

func (repo *productItemRepository) ListItems(ctx context.Context, storeID uuid.UUID, filter repository.ItemFilter, page entity.PageRequest) ([]*entity.ProductItem, int64, error) {
	var (
		itemModels []*model.ProductItemModel
		total      int64
	)

	query := repo.db.WithContext(ctx).
		Model(&model.ProductItemModel{}).
		Where("store_id = ?", storeID)
	if filter.Serial != "" {
		query = query.Where("serial_number ILIKE ?", "%"+filter.Serial+"%")
	}
	if filter.BatchID != nil {
		query = query.Where("batch_id = ?", *filter.BatchID)
	}

	query = query.Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count product items")
	}

	if err := query.
		Preload("Batch").
		Preload("Template").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&itemModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list product items")
	}

	return lo.Map(itemModels, func(m *model.ProductItemModel, _ int) *entity.ProductItem {
		return toItemDomain(m)
	}), total, nil
}

func (repo *productItemRepository) FindItemsByBatch(ctx context.Context, storeID, batchID uuid.UUID) ([]*entity.ProductItem, error) {
	var itemModels []*model.ProductItemModel

	if err := repo.db.WithContext(ctx).
		Where("batch_id = ? AND store_id = ?", batchID, storeID).
		Order("created_at ASC, serial_number ASC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find product items by batch")
	}

	return lo.Map(itemModels, func(m *model.ProductItemModel, _ int) *entity.ProductItem {
		return toItemDomain(m)
	}), nil
}

// CountItemsByBatch counts on the primary so it sees the caller's own deletes.
func (repo *productItemRepository) CountItemsByBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.ProductItemModel{}).
		Where("batch_id = ?", batchID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count product items by batch")
	}

	return count, nil
}

func (repo *productItemRepository) DeleteItem(ctx context.Context, storeID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&model.ProductItemModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductItemNotFound
	}

	return nil
}

func (repo *productItemRepository) DeleteItemsByBatch(ctx context.Context, storeID, batchID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("batch_id = ? AND store_id = ?", batchID, storeID).
		Delete(&model.ProductItemModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product items by batch")
	}

	return result.RowsAffected, nil
}

func (repo *productItemRepository) DeleteItemsByTemplate(ctx context.Context, storeID, templateID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("product_template_id = ? AND store_id = ?", templateID, storeID).
		Delete(&model.ProductItemModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product items by template")
	}

	return result.RowsAffected, nil
}

func (repo *productItemRepository) DeleteOrphanItems(ctx context.Context, storeID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Where("NOT EXISTS (SELECT 1 FROM batches b WHERE b.id = product_items.batch_id)").
		Delete(&model.ProductItemModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete orphan product items")
	}

	return result.RowsAffected, nil
}

func toTemplateDomain(data *model.ProductTemplateModel) *entity.ProductTemplate {
	if data == nil {
		return nil
	}

	return &entity.ProductTemplate{
		ID:           data.ID,
		StoreID:      data.StoreID,
		CreatedBy:    data.CreatedBy,
		Brand:        data.Brand,
		ProductModel: data.ProductModel,
		Category:     data.Category,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromTemplateDomain(data *entity.ProductTemplate) *model.ProductTemplateModel {
	return &model.ProductTemplateModel{
		ID:           data.ID,
		StoreID:      data.StoreID,
		CreatedBy:    data.CreatedBy,
		Brand:        data.Brand,
		ProductModel: data.ProductModel,
		Category:     data.Category,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toBatchDomain(data *model.BatchModel) *entity.Batch {
	if data == nil {
		return nil
	}

	return &entity.Batch{
		ID:                   data.ID,
		ProductTemplateID:    data.ProductTemplateID,
		StoreID:              data.StoreID,
		CreatedBy:            data.CreatedBy,
		ManufacturingDate:    data.ManufacturingDate,
		WarrantyPeriodMonths: data.WarrantyPeriodMonths,
		Quantity:             data.Quantity,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
		Template:             toTemplateDomain(data.Template),
	}
}

func fromBatchDomain(data *entity.Batch) *model.BatchModel {
	return &model.BatchModel{
		ID:                   data.ID,
		ProductTemplateID:    data.ProductTemplateID,
		StoreID:              data.StoreID,
		CreatedBy:            data.CreatedBy,
		ManufacturingDate:    data.ManufacturingDate,
		WarrantyPeriodMonths: data.WarrantyPeriodMonths,
		Quantity:             data.Quantity,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

func toItemDomain(data *model.ProductItemModel) *entity.ProductItem {
	if data == nil {
		return nil
	}

	return &entity.ProductItem{
		ID:                data.ID,
		BatchID:           data.BatchID,
		ProductTemplateID: data.ProductTemplateID,
		StoreID:           data.StoreID,
		CreatedBy:         data.CreatedBy,
		SerialNumber:      data.SerialNumber,
		SerialPrefixUsed:  data.SerialPrefixUsed,
		SerialSuffixUsed:  data.SerialSuffixUsed,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
		Batch:             toBatchDomain(data.Batch),
		Template:          toTemplateDomain(data.Template),
	}
}

func fromItemDomain(data *entity.ProductItem) *model.ProductItemModel {
	return &model.ProductItemModel{
		ID:                data.ID,
		BatchID:           data.BatchID,
		ProductTemplateID: data.ProductTemplateID,
		StoreID:           data.StoreID,
		CreatedBy:         data.CreatedBy,
		SerialNumber:      data.SerialNumber,
		SerialPrefixUsed:  data.SerialPrefixUsed,
		SerialSuffixUsed:  data.SerialSuffixUsed,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
