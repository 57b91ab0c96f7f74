package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"warranty/config"
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

// createBatchAttempts bounds re-allocation after a serial lost an insert race.
const createBatchAttempts = 3

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager        repository.TransactionManager
	storeRepo        repository.StoreRepository
	templateRepo     repository.ProductTemplateRepository
	batchRepo        repository.BatchRepository
	itemRepo         repository.ProductItemRepository
	allocator        usecase.SerialAllocator
	identity         usecase.IdentityUsecase
	certificates     service.CertificateGenerator
	auditLogger      service.AuditLogger
	maxBatchQuantity int
	logger           *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	StoreRepo    repository.StoreRepository
	TemplateRepo repository.ProductTemplateRepository
	BatchRepo    repository.BatchRepository
	ItemRepo     repository.ProductItemRepository
	Allocator    usecase.SerialAllocator
	Identity     usecase.IdentityUsecase
	Certificates service.CertificateGenerator
	AuditLogger  service.AuditLogger
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	maxQuantity := DefaultMaxBatchQuantity
	if params.Config != nil && params.Config.Serial != nil && params.Config.Serial.MaxBatchQuantity > 0 {
		maxQuantity = params.Config.Serial.MaxBatchQuantity
	}

	return &catalogService{
		txManager:        params.TxManager,
		storeRepo:        params.StoreRepo,
		templateRepo:     params.TemplateRepo,
		batchRepo:        params.BatchRepo,
		itemRepo:         params.ItemRepo,
		allocator:        params.Allocator,
		identity:         params.Identity,
		certificates:     params.Certificates,
		auditLogger:      params.AuditLogger,
		maxBatchQuantity: maxQuantity,
		logger:           params.Logger,
	}
}

// --- Templates ---

func (srv *catalogService) CreateTemplate(ctx context.Context, principal entity.Principal, input *usecase.TemplateInput) (*entity.ProductTemplate, error) {
	storeID, err := requirePermission(principal, entity.PermissionProducts)
	if err != nil {
		return nil, err
	}

	template := &entity.ProductTemplate{StoreID: storeID, CreatedBy: principal.ActorID()}
	if err := applyTemplateInput(template, input); err != nil {
		return nil, err
	}

	if err := srv.templateRepo.CreateTemplate(ctx, template); err != nil {
		return nil, errors.Wrap(err, "failed to create product template")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityProductTemplate, template.ID.String(), entity.AuditActionCreate, nil, template))

	return template, nil
}

func (srv *catalogService) ListTemplates(ctx context.Context, principal entity.Principal, page entity.PageRequest) (*entity.Page[*entity.ProductTemplate], error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	templates, total, err := srv.templateRepo.ListTemplates(ctx, storeID, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product templates")
	}

	return entity.NewPage(templates, total, page), nil
}

// GetTemplate returns the template with its batches.
func (srv *catalogService) GetTemplate(ctx context.Context, principal entity.Principal, templateID uuid.UUID) (*entity.ProductTemplate, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	template, err := srv.findTemplate(ctx, storeID, templateID)
	if err != nil {
		return nil, err
	}

	batches, err := srv.batchRepo.FindBatchesByTemplate(ctx, storeID, templateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load template batches")
	}
	template.Batches = batches

	return template, nil
}

func (srv *catalogService) UpdateTemplate(ctx context.Context, principal entity.Principal, templateID uuid.UUID, input *usecase.TemplateInput) (*entity.ProductTemplate, error) {
	storeID, err := requirePermission(principal, entity.PermissionProducts)
	if err != nil {
		return nil, err
	}

	template, err := srv.findTemplate(ctx, storeID, templateID)
	if err != nil {
		return nil, err
	}
	before := *template

	if err := applyTemplateInput(template, input); err != nil {
		return nil, err
	}

	if err := srv.templateRepo.UpdateTemplate(ctx, template); err != nil {
		return nil, translateNotFound(err, repository.ErrTemplateNotFound, domainerrors.ErrTemplateNotFound, "failed to update product template")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityProductTemplate, template.ID.String(), entity.AuditActionUpdate, before, template))

	return template, nil
}

// DeleteTemplate removes the template, its batches and their items in one transaction.
func (srv *catalogService) DeleteTemplate(ctx context.Context, principal entity.Principal, templateID uuid.UUID) (*entity.TemplateDeletionResult, error) {
	storeID, err := requirePermission(principal, entity.PermissionProducts)
	if err != nil {
		return nil, err
	}

	template, err := srv.findTemplate(ctx, storeID, templateID)
	if err != nil {
		return nil, err
	}

	result := &entity.TemplateDeletionResult{TemplateID: templateID}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		if result.ItemsDeleted, err = repoFactory.NewProductItemRepository().DeleteItemsByTemplate(ctx, storeID, templateID); err != nil {
			return errors.Wrap(err, "failed to delete template items")
		}
		if result.BatchesDeleted, err = repoFactory.NewBatchRepository().DeleteBatchesByTemplate(ctx, storeID, templateID); err != nil {
			return errors.Wrap(err, "failed to delete template batches")
		}

		return repoFactory.NewProductTemplateRepository().DeleteTemplate(ctx, storeID, templateID)
	})
	if err != nil {
		return nil, translateNotFound(err, repository.ErrTemplateNotFound, domainerrors.ErrTemplateNotFound, "failed to delete product template")
	}

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityProductTemplate, templateID.String(), entity.AuditActionDelete, template, result))
	requestLogger(ctx, srv.logger).Info("Product template deleted",
		slog.String("template_id", templateID.String()),
		slog.Int64("batches_deleted", result.BatchesDeleted),
		slog.Int64("items_deleted", result.ItemsDeleted),
	)

	return result, nil
}

// --- Batches ---

// CreateBatch allocates serials and stores the batch with its items. A
// serial that lost an insert race triggers a fresh allocation.
func (srv *catalogService) CreateBatch(ctx context.Context, principal entity.Principal, input *usecase.CreateBatchInput) (*usecase.CreateBatchOutput, error) {
	storeID, err := requirePermission(principal, entity.PermissionProducts)
	if err != nil {
		return nil, err
	}

	if input.Quantity < 1 || input.Quantity > srv.maxBatchQuantity {
		return nil, domainerrors.ErrInvalidQuantity.WithDetails(fmt.Sprintf("quantity must be between 1 and %d", srv.maxBatchQuantity))
	}
	months := input.WarrantyPeriodMonths
	if months == 0 {
		months = entity.DefaultWarrantyPeriodMonths
	}
	if months < 0 {
		return nil, domainerrors.ErrValidation.WithDetails("warranty_period_months must be positive")
	}
	manufactured := input.ManufacturingDate
	if manufactured.IsZero() {
		manufactured = time.Now()
	}

	template, err := srv.findTemplate(ctx, storeID, input.TemplateID)
	if err != nil {
		return nil, err
	}

	var (
		batch *entity.Batch
		items []*entity.ProductItem
	)
	for attempt := 1; ; attempt++ {
		records, err := srv.allocateSerials(ctx, storeID, input.Quantity)
		if err != nil {
			return nil, err
		}

		batch = &entity.Batch{
			ProductTemplateID:    template.ID,
			StoreID:              storeID,
			CreatedBy:            principal.ActorID(),
			ManufacturingDate:    manufactured,
			WarrantyPeriodMonths: months,
			Quantity:             len(records),
		}
		items = lo.Map(records, func(r *entity.SerialRecord, _ int) *entity.ProductItem {
			return &entity.ProductItem{
				ProductTemplateID: template.ID,
				StoreID:           storeID,
				CreatedBy:         principal.ActorID(),
				SerialNumber:      r.SerialNumber,
				SerialPrefixUsed:  r.PrefixUsed,
				SerialSuffixUsed:  r.SuffixUsed,
			}
		})

		err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			if err := repoFactory.NewBatchRepository().CreateBatch(ctx, batch); err != nil {
				return errors.Wrap(err, "failed to create batch")
			}
			for _, item := range items {
				item.BatchID = batch.ID
			}

			return repoFactory.NewProductItemRepository().CreateItems(ctx, items)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateSerial) {
			return nil, errors.Wrap(err, "failed to store batch")
		}
		if attempt >= createBatchAttempts {
			requestLogger(ctx, srv.logger).Error("Batch creation kept colliding on serial numbers",
				slog.String("store_id", storeID.String()),
				slog.Int("attempts", attempt),
			)

			return nil, domainerrors.ErrDuplicateSerial
		}
		requestLogger(ctx, srv.logger).Warn("Serial collision on batch insert, reallocating", slog.Int("attempt", attempt))
	}

	batch.Template = template
	serials := lo.Map(items, func(item *entity.ProductItem, _ int) string { return item.SerialNumber })

	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityBatch, batch.ID.String(), entity.AuditActionCreate, nil, map[string]any{
		"product_template_id":    batch.ProductTemplateID,
		"manufacturing_date":     batch.ManufacturingDate,
		"warranty_period_months": batch.WarrantyPeriodMonths,
		"items_count":            len(items),
	}))
	requestLogger(ctx, srv.logger).Info("Batch created",
		slog.String("batch_id", batch.ID.String()),
		slog.Int("quantity", len(items)),
	)

	return &usecase.CreateBatchOutput{
		Batch:         batch,
		Items:         items,
		SerialNumbers: serials,
		Quantity:      len(items),
	}, nil
}

// allocateSerials draws a single serial directly and larger batches in
// checked chunks.
func (srv *catalogService) allocateSerials(ctx context.Context, storeID uuid.UUID, quantity int) ([]*entity.SerialRecord, error) {
	if quantity == 1 {
		record, err := srv.allocator.AllocateOne(ctx, storeID)
		if err != nil {
			return nil, err
		}

		return []*entity.SerialRecord{record}, nil
	}

	return srv.allocator.AllocateBulk(ctx, storeID, quantity)
}

func (srv *catalogService) ListBatches(ctx context.Context, principal entity.Principal, templateID uuid.UUID) ([]*entity.Batch, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	if _, err := srv.findTemplate(ctx, storeID, templateID); err != nil {
		return nil, err
	}

	batches, err := srv.batchRepo.FindBatchesByTemplate(ctx, storeID, templateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list batches")
	}

	return batches, nil
}

// GetBatch returns the batch with its template and items in creation order.
func (srv *catalogService) GetBatch(ctx context.Context, principal entity.Principal, batchID uuid.UUID) (*entity.Batch, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	batch, err := srv.findBatch(ctx, storeID, batchID)
	if err != nil {
		return nil, err
	}

	items, err := srv.itemRepo.FindItemsByBatch(ctx, storeID, batchID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load batch items")
	}
	batch.Items = items

	return batch, nil
}

// DeleteBatch removes the batch and its items in one transaction.
func (srv *catalogService) DeleteBatch(ctx context.Context, principal entity.Principal, batchID uuid.UUID) (*entity.BatchDeletionResult, error) {
	storeID, err := requirePermission(principal, entity.PermissionProducts)
	if err != nil {
		return nil, err
	}

	batch, err := srv.findBatch(ctx, storeID, batchID)
	if err != nil {
		return nil, err
	}

	result := &entity.BatchDeletionResult{BatchID: batchID}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		if result.ItemsDeleted, err = repoFactory.NewProductItemRepository().DeleteItemsByBatch(ctx, storeID, batchID); err != nil {
			return errors.Wrap(err, "failed to delete batch items")
		}

		return repoFactory.NewBatchRepository().DeleteBatch(ctx, storeID, batchID)
	})
	if err != nil {
		return nil, translateNotFound(err, repository.ErrBatchNotFound, domainerrors.ErrBatchNotFound, "failed to delete batch")
	}

	batch.Template = nil
	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityBatch, batchID.String(), entity.AuditActionDelete, batch, result))

	return result, nil
}

// RenderBatchSerialSheet renders the batch serial list as a PDF.
func (srv *catalogService) RenderBatchSerialSheet(ctx context.Context, principal entity.Principal, batchID uuid.UUID) (*usecase.SerialSheet, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	batch, err := srv.findBatch(ctx, storeID, batchID)
	if err != nil {
		return nil, err
	}

	items, err := srv.itemRepo.FindItemsByBatch(ctx, storeID, batchID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load batch items")
	}

	store, err := srv.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrStoreNotFound, domainerrors.ErrStoreNotFound, "failed to load store")
	}

	pdf, err := srv.certificates.GenerateSerialSheet(ctx, &service.SerialSheetData{
		Store:       store,
		Template:    batch.Template,
		Batch:       batch,
		Items:       items,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render serial sheet")
	}

	name := batchID.String()
	if batch.Template != nil {
		name = util.SafeKeySegment(batch.Template.ProductModel) + "-" + batch.ManufacturingDate.Format("2006-01-02")
	}

	return &usecase.SerialSheet{
		Filename: fmt.Sprintf("batch-%s-serials.pdf", name),
		PDF:      pdf,
	}, nil
}

// --- Items ---

func (srv *catalogService) ListItems(ctx context.Context, principal entity.Principal, filter repository.ItemFilter, page entity.PageRequest) (*entity.Page[*entity.ProductItem], error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	filter.Serial = strings.TrimSpace(filter.Serial)
	items, total, err := srv.itemRepo.ListItems(ctx, storeID, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list product items")
	}

	return entity.NewPage(items, total, page), nil
}

// GetItemBySerial finds an item of the caller's store. Other stores' serials
// are reported as missing.
func (srv *catalogService) GetItemBySerial(ctx context.Context, principal entity.Principal, serial string) (*entity.ProductItem, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}

	item, err := srv.itemRepo.FindItemBySerial(ctx, strings.TrimSpace(serial))
	if err != nil {
		return nil, translateNotFound(err, repository.ErrProductItemNotFound, domainerrors.ErrProductNotFound, "failed to load product item")
	}
	if item.StoreID != storeID {
		return nil, domainerrors.ErrProductNotFound
	}

	return item, nil
}

// DeleteProductItem removes one item and recounts its batch. The batch goes
// with its last item.
func (srv *catalogService) DeleteProductItem(ctx context.Context, principal entity.Principal, itemID uuid.UUID) (*entity.ItemDeletionResult, error) {
	storeID, err := requirePermission(principal, entity.PermissionProducts)
	if err != nil {
		return nil, err
	}

	var (
		item   *entity.ProductItem
		result *entity.ItemDeletionResult
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		itemRepo := repoFactory.NewProductItemRepository()
		batchRepo := repoFactory.NewBatchRepository()

		var err error
		if item, err = itemRepo.FindItemByID(ctx, storeID, itemID); err != nil {
			return err
		}
		if err := itemRepo.DeleteItem(ctx, storeID, itemID); err != nil {
			return err
		}

		remaining, err := itemRepo.CountItemsByBatch(ctx, item.BatchID)
		if err != nil {
			return errors.Wrap(err, "failed to count batch items")
		}

		result = &entity.ItemDeletionResult{
			ItemID:           itemID,
			BatchID:          item.BatchID,
			RemainingInBatch: int(remaining),
		}
		if remaining == 0 {
			result.BatchDeleted = true
			if err := batchRepo.DeleteBatch(ctx, storeID, item.BatchID); err != nil && !errors.Is(err, repository.ErrBatchNotFound) {
				return errors.Wrap(err, "failed to delete empty batch")
			}

			return nil
		}

		if err := batchRepo.UpdateBatchQuantity(ctx, item.BatchID, int(remaining)); err != nil && !errors.Is(err, repository.ErrBatchNotFound) {
			return errors.Wrap(err, "failed to update batch quantity")
		}

		return nil
	})
	if err != nil {
		return nil, translateNotFound(err, repository.ErrProductItemNotFound, domainerrors.ErrProductNotFound, "failed to delete product item")
	}

	item.Batch, item.Template = nil, nil
	srv.auditLogger.Record(ctx, newAuditEntry(actorRef(principal), storeID, entity.AuditEntityProductItem, itemID.String(), entity.AuditActionDelete, item, result))

	return result, nil
}

// Reconcile removes batches without a template, items without a batch and
// batches left without items. Only store admins may call it.
func (srv *catalogService) Reconcile(ctx context.Context, principal entity.Principal) (*entity.ReconcileResult, error) {
	storeID, err := storeScope(principal)
	if err != nil {
		return nil, err
	}
	if err := srv.identity.AuthorizeStoreAdmin(ctx, principal, storeID); err != nil {
		return nil, err
	}

	result := &entity.ReconcileResult{}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		batchRepo := repoFactory.NewBatchRepository()
		itemRepo := repoFactory.NewProductItemRepository()

		var err error
		if result.OrphanBatchesDeleted, err = batchRepo.DeleteOrphanBatches(ctx, storeID); err != nil {
			return errors.Wrap(err, "failed to delete orphan batches")
		}
		if result.OrphanItemsDeleted, err = itemRepo.DeleteOrphanItems(ctx, storeID); err != nil {
			return errors.Wrap(err, "failed to delete orphan items")
		}
		if result.EmptyBatchesDeleted, err = batchRepo.DeleteEmptyBatches(ctx, storeID); err != nil {
			return errors.Wrap(err, "failed to delete empty batches")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	requestLogger(ctx, srv.logger).Info("Catalog reconciled",
		slog.String("store_id", storeID.String()),
		slog.Int64("orphan_batches", result.OrphanBatchesDeleted),
		slog.Int64("orphan_items", result.OrphanItemsDeleted),
		slog.Int64("empty_batches", result.EmptyBatchesDeleted),
	)

	return result, nil
}

func (srv *catalogService) findTemplate(ctx context.Context, storeID, templateID uuid.UUID) (*entity.ProductTemplate, error) {
	template, err := srv.templateRepo.FindTemplateByID(ctx, storeID, templateID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrTemplateNotFound, domainerrors.ErrTemplateNotFound, "failed to load product template")
	}

	return template, nil
}

func (srv *catalogService) findBatch(ctx context.Context, storeID, batchID uuid.UUID) (*entity.Batch, error) {
	batch, err := srv.batchRepo.FindBatchByID(ctx, storeID, batchID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrBatchNotFound, domainerrors.ErrBatchNotFound, "failed to load batch")
	}

	return batch, nil
}

func applyTemplateInput(template *entity.ProductTemplate, input *usecase.TemplateInput) error {
	template.Brand = strings.TrimSpace(input.Brand)
	template.ProductModel = strings.TrimSpace(input.ProductModel)
	template.Category = strings.TrimSpace(input.Category)

	if template.Brand == "" || template.ProductModel == "" {
		return domainerrors.ErrValidation.WithDetails("brand and product_model are required")
	}

	return nil
}
