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
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// customerRepository implements the repository.CustomerRepository interface.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{
		db: db,
	}
}

func (repo *customerRepository) CreateCustomer(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)

	if err := repo.db.WithContext(ctx).Create(customerM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required customer information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create customer")
	}

	customer.ID = customerM.ID
	customer.Email = customerM.Email
	customer.CreatedAt = customerM.CreatedAt
	customer.UpdatedAt = customerM.UpdatedAt

	return nil
}

func (repo *customerRepository) FindCustomerByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Customer, error) {
	return repo.findCustomer(repo.db.WithContext(ctx).Scopes(inStore(storeID)), id)
}

func (repo *customerRepository) FindCustomerByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return repo.findCustomer(repo.db.WithContext(ctx), id)
}

func (repo *customerRepository) findCustomer(tx *gorm.DB, id uuid.UUID) (*entity.Customer, error) {
	var customerM model.CustomerModel

	if err := tx.
		Where("id = ?", id).
		First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by id")
	}

	return toCustomerDomain(&customerM), nil
}

// FindCustomerByContact prefers a phone match over an email match.
func (repo *customerRepository) FindCustomerByContact(ctx context.Context, storeID uuid.UUID, phone, email string) (*entity.Customer, error) {
	phone = util.NormalizePhone(phone)
	email = util.NormalizeEmail(email)
	if phone == "" && email == "" {
		return nil, repository.ErrCustomerNotFound
	}

	var customerM model.CustomerModel

	query := repo.db.WithContext(ctx).Where("store_id = ?", storeID)
	switch {
	case phone != "" && email != "":
		query = query.
			Where("phone_normalized = ? OR email = ?", phone, email).
			Order(gorm.Expr("CASE WHEN phone_normalized = ? THEN 0 ELSE 1 END", phone))
	case phone != "":
		query = query.Where("phone_normalized = ?", phone)
	default:
		query = query.Where("email = ?", email)
	}

	if err := query.Order("created_at ASC").First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by contact")
	}

	return toCustomerDomain(&customerM), nil
}

func (repo *customerRepository) ListCustomers(ctx context.Context, storeID uuid.UUID, page entity.PageRequest) ([]*entity.Customer, int64, error) {
	var (
		customerModels []*model.CustomerModel
		total          int64
	)

	query := repo.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Where("store_id = ?", storeID).
		Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count customers")
	}

	if err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&customerModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list customers")
	}

	return lo.Map(customerModels, func(m *model.CustomerModel, _ int) *entity.Customer {
		return toCustomerDomain(m)
	}), total, nil
}

func (repo *customerRepository) UpdateCustomer(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)

	result := repo.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Where("id = ? AND store_id = ?", customer.ID, customer.StoreID).
		Updates(map[string]any{
			"customer_name":    customerM.CustomerName,
			"phone":            customerM.Phone,
			"phone_normalized": customerM.PhoneNormalized,
			"email":            customerM.Email,
			"address":          customerM.Address,
			"gst_number":       customerM.GSTNumber,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update customer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

func toCustomerDomain(data *model.CustomerModel) *entity.Customer {
	if data == nil {
		return nil
	}

	return &entity.Customer{
		ID:           data.ID,
		StoreID:      data.StoreID,
		CreatedBy:    data.CreatedBy,
		CustomerName: data.CustomerName,
		Phone:        data.Phone,
		Email:        data.Email,
		Address:      data.Address,
		GSTNumber:    data.GSTNumber,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromCustomerDomain(data *entity.Customer) *model.CustomerModel {
	return &model.CustomerModel{
		ID:              data.ID,
		StoreID:         data.StoreID,
		CreatedBy:       data.CreatedBy,
		CustomerName:    data.CustomerName,
		Phone:           data.Phone,
		PhoneNormalized: util.NormalizePhone(data.Phone),
		Email:           util.NormalizeEmail(data.Email),
		Address:         data.Address,
		GSTNumber:       data.GSTNumber,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
