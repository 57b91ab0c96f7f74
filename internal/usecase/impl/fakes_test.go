package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"warranty/config"
	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"
	"warranty/internal/domain/service"
	"warranty/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memDB is an in-memory stand-in for every repository and the transaction
// manager. Transactions run inline without rollback.
type memDB struct {
	mu sync.Mutex

	clock      time.Time
	accounts   map[uuid.UUID]*entity.OwnerAccount
	stores     map[uuid.UUID]*entity.Store
	members    map[uuid.UUID]*entity.StoreMember
	apiKeys    map[uuid.UUID]*entity.APIKey
	templates  map[uuid.UUID]*entity.ProductTemplate
	batches    map[uuid.UUID]*entity.Batch
	items      map[uuid.UUID]*entity.ProductItem
	customers  map[uuid.UUID]*entity.Customer
	warranties map[uuid.UUID]*entity.Warranty
	claims     map[uuid.UUID]*entity.Claim
	auditLogs  []*entity.AuditLogEntry

	// createItemsErrs is consumed one error per CreateItems call.
	createItemsErrs []error
	existsQueries   int
}

func newMemDB() *memDB {
	return &memDB{
		clock:      time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC),
		accounts:   map[uuid.UUID]*entity.OwnerAccount{},
		stores:     map[uuid.UUID]*entity.Store{},
		members:    map[uuid.UUID]*entity.StoreMember{},
		apiKeys:    map[uuid.UUID]*entity.APIKey{},
		templates:  map[uuid.UUID]*entity.ProductTemplate{},
		batches:    map[uuid.UUID]*entity.Batch{},
		items:      map[uuid.UUID]*entity.ProductItem{},
		customers:  map[uuid.UUID]*entity.Customer{},
		warranties: map[uuid.UUID]*entity.Warranty{},
		claims:     map[uuid.UUID]*entity.Claim{},
	}
}

// tick returns a strictly increasing timestamp so "newest first" is stable.
func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)

	return db.clock
}

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func newestFirst[T any](values []T, createdAt func(T) time.Time) []T {
	slices.SortFunc(values, func(a, b T) int { return createdAt(b).Compare(createdAt(a)) })

	return values
}

func paginate[T any](values []T, page entity.PageRequest) ([]T, int64) {
	total := int64(len(values))
	start := min(page.Offset(), len(values))
	end := len(values)
	if page.Limit > 0 {
		end = min(start+page.Limit, len(values))
	}

	return values[start:end], total
}

func inScope(recordStore, storeID uuid.UUID) bool {
	return storeID == uuid.Nil || recordStore == storeID
}

// --- TransactionManager / RepositoryFactory ---

func (db *memDB) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(db)
}

func (db *memDB) NewAccountRepository() repository.AccountRepository                 { return db }
func (db *memDB) NewStoreRepository() repository.StoreRepository                     { return db }
func (db *memDB) NewStoreMemberRepository() repository.StoreMemberRepository         { return db }
func (db *memDB) NewProductTemplateRepository() repository.ProductTemplateRepository { return db }
func (db *memDB) NewBatchRepository() repository.BatchRepository                     { return db }
func (db *memDB) NewProductItemRepository() repository.ProductItemRepository         { return db }

// --- Accounts ---

func (db *memDB) CreateAccount(ctx context.Context, account *entity.OwnerAccount) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, existing := range db.accounts {
		if existing.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
	}
	assignID(&account.ID)
	account.CreatedAt = db.tick()
	copied := *account
	db.accounts[account.ID] = &copied

	return nil
}

func (db *memDB) FindAccountByID(ctx context.Context, id uuid.UUID) (*entity.OwnerAccount, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	account, ok := db.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account

	return &copied, nil
}

func (db *memDB) FindAccountByEmail(ctx context.Context, email string) (*entity.OwnerAccount, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, account := range db.accounts {
		if account.Email == util.NormalizeEmail(email) {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

// --- Stores ---

func (db *memDB) CreateStore(ctx context.Context, store *entity.Store) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	assignID(&store.ID)
	store.CreatedAt = db.tick()
	copied := *store
	db.stores[store.ID] = &copied

	return nil
}

func (db *memDB) FindStoreByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	store, ok := db.stores[id]
	if !ok {
		return nil, repository.ErrStoreNotFound
	}
	copied := *store

	return &copied, nil
}

func (db *memDB) FindStoresByOwner(ctx context.Context, ownerAccountID uuid.UUID) ([]*entity.Store, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	stores := lo.Filter(lo.Values(db.stores), func(s *entity.Store, _ int) bool { return s.OwnerAccountID == ownerAccountID })
	slices.SortFunc(stores, func(a, b *entity.Store) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return stores, nil
}

func (db *memDB) UpdateStore(ctx context.Context, store *entity.Store) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.stores[store.ID]; !ok {
		return repository.ErrStoreNotFound
	}
	copied := *store
	db.stores[store.ID] = &copied

	return nil
}

func (db *memDB) DeleteStore(ctx context.Context, id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.stores[id]; !ok {
		return repository.ErrStoreNotFound
	}
	delete(db.stores, id)

	return nil
}

// --- Store members ---

func (db *memDB) CreateMember(ctx context.Context, member *entity.StoreMember) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, existing := range db.members {
		if existing.StoreID == member.StoreID && existing.Email == member.Email {
			return repository.ErrDuplicateEmail
		}
	}
	assignID(&member.ID)
	member.CreatedAt = db.tick()
	copied := *member
	db.members[member.ID] = &copied

	return nil
}

func (db *memDB) FindMemberByID(ctx context.Context, id uuid.UUID) (*entity.StoreMember, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	member, ok := db.members[id]
	if !ok {
		return nil, repository.ErrStoreMemberNotFound
	}
	copied := *member

	return &copied, nil
}

func (db *memDB) oldestMember(match func(*entity.StoreMember) bool) (*entity.StoreMember, error) {
	found := lo.Filter(lo.Values(db.members), func(m *entity.StoreMember, _ int) bool { return match(m) })
	if len(found) == 0 {
		return nil, repository.ErrStoreMemberNotFound
	}
	copied := *slices.MinFunc(found, func(a, b *entity.StoreMember) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return &copied, nil
}

func (db *memDB) FindMemberByAccount(ctx context.Context, accountID, storeID uuid.UUID) (*entity.StoreMember, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.oldestMember(func(m *entity.StoreMember) bool {
		return m.IsLinkedTo(accountID) && inScope(m.StoreID, storeID)
	})
}

func (db *memDB) FindMemberByEmail(ctx context.Context, email string, storeID uuid.UUID) (*entity.StoreMember, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.oldestMember(func(m *entity.StoreMember) bool {
		return m.Email == util.NormalizeEmail(email) && inScope(m.StoreID, storeID)
	})
}

func (db *memDB) FindMembersByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.StoreMember, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	members := lo.Filter(lo.Values(db.members), func(m *entity.StoreMember, _ int) bool { return m.StoreID == storeID })

	return newestFirst(members, func(m *entity.StoreMember) time.Time { return m.CreatedAt }), nil
}

func (db *memDB) UpdateMember(ctx context.Context, member *entity.StoreMember) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, existing := range db.members {
		if existing.ID != member.ID && existing.StoreID == member.StoreID && existing.Email == member.Email {
			return repository.ErrDuplicateEmail
		}
	}
	copied := *member
	db.members[member.ID] = &copied

	return nil
}

func (db *memDB) DeleteMember(ctx context.Context, id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.members[id]; !ok {
		return repository.ErrStoreMemberNotFound
	}
	delete(db.members, id)

	return nil
}

// --- API keys ---

func (db *memDB) CreateAPIKey(ctx context.Context, key *entity.APIKey) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	assignID(&key.ID)
	key.CreatedAt = db.tick()
	copied := *key
	db.apiKeys[key.ID] = &copied

	return nil
}

func (db *memDB) FindAPIKeyByID(ctx context.Context, id uuid.UUID) (*entity.APIKey, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	key, ok := db.apiKeys[id]
	if !ok {
		return nil, repository.ErrAPIKeyNotFound
	}
	copied := *key

	return &copied, nil
}

func (db *memDB) FindAPIKeysByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.APIKey, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	keys := lo.Filter(lo.Values(db.apiKeys), func(k *entity.APIKey, _ int) bool { return k.StoreID == storeID })

	return newestFirst(keys, func(k *entity.APIKey) time.Time { return k.CreatedAt }), nil
}

func (db *memDB) UpdateAPIKey(ctx context.Context, key *entity.APIKey) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.apiKeys[key.ID]; !ok {
		return repository.ErrAPIKeyNotFound
	}
	copied := *key
	db.apiKeys[key.ID] = &copied

	return nil
}

func (db *memDB) DeleteAPIKey(ctx context.Context, id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.apiKeys[id]; !ok {
		return repository.ErrAPIKeyNotFound
	}
	delete(db.apiKeys, id)

	return nil
}

// --- Audit ---

func (db *memDB) CreateAuditLog(ctx context.Context, entry *entity.AuditLogEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	assignID(&entry.ID)
	entry.CreatedAt = db.tick()
	db.auditLogs = append(db.auditLogs, entry)

	return nil
}

func (db *memDB) ListAuditLogs(ctx context.Context, filter entity.AuditFilter, page entity.PageRequest) ([]*entity.AuditLogEntry, int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	entries := lo.Filter(db.auditLogs, func(e *entity.AuditLogEntry, _ int) bool {
		return e.StoreID != nil && *e.StoreID == filter.StoreID &&
			(filter.Entity == "" || e.Entity == filter.Entity) &&
			(filter.EntityID == "" || e.EntityID == filter.EntityID) &&
			(filter.ActorID == nil || (e.ActorID != nil && *e.ActorID == *filter.ActorID))
	})
	entries = newestFirst(entries, func(e *entity.AuditLogEntry) time.Time { return e.CreatedAt })
	pageItems, total := paginate(entries, page)

	return pageItems, total, nil
}

// --- Templates ---

func (db *memDB) CreateTemplate(ctx context.Context, template *entity.ProductTemplate) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	assignID(&template.ID)
	template.CreatedAt = db.tick()
	copied := *template
	db.templates[template.ID] = &copied

	return nil
}

func (db *memDB) FindTemplateByID(ctx context.Context, storeID, id uuid.UUID) (*entity.ProductTemplate, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	template, ok := db.templates[id]
	if !ok || template.StoreID != storeID {
		return nil, repository.ErrTemplateNotFound
	}
	copied := *template

	return &copied, nil
}

func (db *memDB) ListTemplates(ctx context.Context, storeID uuid.UUID, page entity.PageRequest) ([]*entity.ProductTemplate, int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	templates := lo.Filter(lo.Values(db.templates), func(t *entity.ProductTemplate, _ int) bool { return t.StoreID == storeID })
	templates = newestFirst(templates, func(t *entity.ProductTemplate) time.Time { return t.CreatedAt })
	pageItems, total := paginate(templates, page)

	return pageItems, total, nil
}

func (db *memDB) UpdateTemplate(ctx context.Context, template *entity.ProductTemplate) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.templates[template.ID]; !ok {
		return repository.ErrTemplateNotFound
	}
	copied := *template
	db.templates[template.ID] = &copied

	return nil
}

func (db *memDB) DeleteTemplate(ctx context.Context, storeID, id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	template, ok := db.templates[id]
	if !ok || template.StoreID != storeID {
		return repository.ErrTemplateNotFound
	}
	delete(db.templates, id)

	return nil
}

// --- Batches ---

func (db *memDB) CreateBatch(ctx context.Context, batch *entity.Batch) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	assignID(&batch.ID)
	batch.CreatedAt = db.tick()
	copied := *batch
	copied.Template, copied.Items = nil, nil
	db.batches[batch.ID] = &copied

	return nil
}

func (db *memDB) FindBatchByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Batch, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	batch, ok := db.batches[id]
	if !ok || batch.StoreID != storeID {
		return nil, repository.ErrBatchNotFound
	}
	copied := *batch
	if template, ok := db.templates[batch.ProductTemplateID]; ok {
		t := *template
		copied.Template = &t
	}

	return &copied, nil
}

func (db *memDB) FindBatchesByTemplate(ctx context.Context, storeID, templateID uuid.UUID) ([]*entity.Batch, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	batches := lo.Filter(lo.Values(db.batches), func(b *entity.Batch, _ int) bool {
		return b.StoreID == storeID && b.ProductTemplateID == templateID
	})

	return newestFirst(batches, func(b *entity.Batch) time.Time { return b.CreatedAt }), nil
}

func (db *memDB) UpdateBatchQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	batch, ok := db.batches[id]
	if !ok {
		return repository.ErrBatchNotFound
	}
	batch.Quantity = quantity

	return nil
}

func (db *memDB) DeleteBatch(ctx context.Context, storeID, id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	batch, ok := db.batches[id]
	if !ok || batch.StoreID != storeID {
		return repository.ErrBatchNotFound
	}
	delete(db.batches, id)

	return nil
}

func (db *memDB) deleteBatchesWhere(match func(*entity.Batch) bool) int64 {
	var n int64
	for id, batch := range db.batches {
		if match(batch) {
			delete(db.batches, id)
			n++
		}
	}

	return n
}

func (db *memDB) DeleteBatchesByTemplate(ctx context.Context, storeID, templateID uuid.UUID) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.deleteBatchesWhere(func(b *entity.Batch) bool {
		return b.StoreID == storeID && b.ProductTemplateID == templateID
	}), nil
}

func (db *memDB) DeleteOrphanBatches(ctx context.Context, storeID uuid.UUID) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.deleteBatchesWhere(func(b *entity.Batch) bool {
		_, ok := db.templates[b.ProductTemplateID]

		return b.StoreID == storeID && !ok
	}), nil
}

func (db *memDB) DeleteEmptyBatches(ctx context.Context, storeID uuid.UUID) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.deleteBatchesWhere(func(b *entity.Batch) bool {
		return b.StoreID == storeID && !lo.SomeBy(lo.Values(db.items), func(i *entity.ProductItem) bool { return i.BatchID == b.ID })
	}), nil
}

// --- Product items ---

func (db *memDB) CreateItems(ctx context.Context, items []*entity.ProductItem) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if len(db.createItemsErrs) > 0 {
		err := db.createItemsErrs[0]
		db.createItemsErrs = db.createItemsErrs[1:]

		return err
	}
	for _, item := range items {
		if lo.SomeBy(lo.Values(db.items), func(i *entity.ProductItem) bool { return i.SerialNumber == item.SerialNumber }) {
			return repository.ErrDuplicateSerial
		}
	}
	for _, item := range items {
		assignID(&item.ID)
		item.CreatedAt = db.tick()
		copied := *item
		copied.Batch, copied.Template = nil, nil
		db.items[item.ID] = &copied
	}

	return nil
}

func (db *memDB) ExistingSerials(ctx context.Context, serials []string) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.existsQueries++
	stored := lo.SliceToMap(lo.Values(db.items), func(i *entity.ProductItem) (string, bool) { return i.SerialNumber, true })

	return lo.Filter(serials, func(s string, _ int) bool { return stored[s] }), nil
}

func (db *memDB) withRelations(item *entity.ProductItem) *entity.ProductItem {
	copied := *item
	if batch, ok := db.batches[item.BatchID]; ok {
		b := *batch
		copied.Batch = &b
	}
	if template, ok := db.templates[item.ProductTemplateID]; ok {
		t := *template
		copied.Template = &t
	}

	return &copied
}

func (db *memDB) FindItemByID(ctx context.Context, storeID, id uuid.UUID) (*entity.ProductItem, error) {
	item, err := db.FindItemByIDAnyStore(ctx, id)
	if err != nil || item.StoreID != storeID {
		return nil, repository.ErrProductItemNotFound
	}

	return item, nil
}

func (db *memDB) FindItemByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.ProductItem, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	item, ok := db.items[id]
	if !ok {
		return nil, repository.ErrProductItemNotFound
	}

	return db.withRelations(item), nil
}

func (db *memDB) FindItemBySerial(ctx context.Context, serial string) (*entity.ProductItem, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	item, ok := lo.Find(lo.Values(db.items), func(i *entity.ProductItem) bool { return i.SerialNumber == serial })
	if !ok {
		return nil, repository.ErrProductItemNotFound
	}

	return db.withRelations(item), nil
}

func (db *memDB) ListItems(ctx context.Context, storeID uuid.UUID, filter repository.ItemFilter, page entity.PageRequest) ([]*entity.ProductItem, int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	items := lo.Filter(lo.Values(db.items), func(i *entity.ProductItem, _ int) bool {
		return i.StoreID == storeID &&
			(filter.Serial == "" || strings.Contains(strings.ToLower(i.SerialNumber), strings.ToLower(filter.Serial))) &&
			(filter.BatchID == nil || i.BatchID == *filter.BatchID)
	})
	items = newestFirst(items, func(i *entity.ProductItem) time.Time { return i.CreatedAt })
	pageItems, total := paginate(items, page)

	return lo.Map(pageItems, func(i *entity.ProductItem, _ int) *entity.ProductItem { return db.withRelations(i) }), total, nil
}

func (db *memDB) FindItemsByBatch(ctx context.Context, storeID, batchID uuid.UUID) ([]*entity.ProductItem, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	items := lo.Filter(lo.Values(db.items), func(i *entity.ProductItem, _ int) bool {
		return i.StoreID == storeID && i.BatchID == batchID
	})
	slices.SortFunc(items, func(a, b *entity.ProductItem) int { return a.CreatedAt.Compare(b.CreatedAt) })

	return items, nil
}

func (db *memDB) CountItemsByBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return int64(lo.CountBy(lo.Values(db.items), func(i *entity.ProductItem) bool { return i.BatchID == batchID })), nil
}

func (db *memDB) DeleteItem(ctx context.Context, storeID, id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	item, ok := db.items[id]
	if !ok || item.StoreID != storeID {
		return repository.ErrProductItemNotFound
	}
	delete(db.items, id)

	return nil
}

func (db *memDB) deleteItemsWhere(match func(*entity.ProductItem) bool) int64 {
	var n int64
	for id, item := range db.items {
		if match(item) {
			delete(db.items, id)
			n++
		}
	}

	return n
}

func (db *memDB) DeleteItemsByBatch(ctx context.Context, storeID, batchID uuid.UUID) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.deleteItemsWhere(func(i *entity.ProductItem) bool { return i.StoreID == storeID && i.BatchID == batchID }), nil
}

func (db *memDB) DeleteItemsByTemplate(ctx context.Context, storeID, templateID uuid.UUID) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.deleteItemsWhere(func(i *entity.ProductItem) bool {
		return i.StoreID == storeID && i.ProductTemplateID == templateID
	}), nil
}

func (db *memDB) DeleteOrphanItems(ctx context.Context, storeID uuid.UUID) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.deleteItemsWhere(func(i *entity.ProductItem) bool {
		_, ok := db.batches[i.BatchID]

		return i.StoreID == storeID && !ok
	}), nil
}

// --- Customers ---

func (db *memDB) CreateCustomer(ctx context.Context, customer *entity.Customer) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	assignID(&customer.ID)
	customer.CreatedAt = db.tick()
	copied := *customer
	db.customers[customer.ID] = &copied

	return nil
}

func (db *memDB) FindCustomerByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Customer, error) {
	customer, err := db.FindCustomerByIDAnyStore(ctx, id)
	if err != nil || customer.StoreID != storeID {
		return nil, repository.ErrCustomerNotFound
	}

	return customer, nil
}

func (db *memDB) FindCustomerByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	customer, ok := db.customers[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	copied := *customer

	return &copied, nil
}

func (db *memDB) FindCustomerByContact(ctx context.Context, storeID uuid.UUID, phone, email string) (*entity.Customer, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	phone, email = util.NormalizePhone(phone), util.NormalizeEmail(email)
	candidates := lo.Filter(lo.Values(db.customers), func(c *entity.Customer, _ int) bool { return c.StoreID == storeID })
	slices.SortFunc(candidates, func(a, b *entity.Customer) int { return a.CreatedAt.Compare(b.CreatedAt) })

	if phone != "" {
		if c, ok := lo.Find(candidates, func(c *entity.Customer) bool { return util.NormalizePhone(c.Phone) == phone }); ok {
			copied := *c

			return &copied, nil
		}
	}
	if email != "" {
		if c, ok := lo.Find(candidates, func(c *entity.Customer) bool { return c.Email == email }); ok {
			copied := *c

			return &copied, nil
		}
	}

	return nil, repository.ErrCustomerNotFound
}

func (db *memDB) ListCustomers(ctx context.Context, storeID uuid.UUID, page entity.PageRequest) ([]*entity.Customer, int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	customers := lo.Filter(lo.Values(db.customers), func(c *entity.Customer, _ int) bool { return c.StoreID == storeID })
	customers = newestFirst(customers, func(c *entity.Customer) time.Time { return c.CreatedAt })
	pageItems, total := paginate(customers, page)

	return pageItems, total, nil
}

func (db *memDB) UpdateCustomer(ctx context.Context, customer *entity.Customer) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.customers[customer.ID]; !ok {
		return repository.ErrCustomerNotFound
	}
	copied := *customer
	db.customers[customer.ID] = &copied

	return nil
}

// --- Warranties ---

func (db *memDB) CreateWarranty(ctx context.Context, warranty *entity.Warranty) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if lo.SomeBy(lo.Values(db.warranties), func(w *entity.Warranty) bool {
		return w.ProductItemID == warranty.ProductItemID && w.CustomerID == warranty.CustomerID && w.StoreID == warranty.StoreID
	}) {
		return repository.ErrDuplicateWarranty
	}
	assignID(&warranty.ID)
	warranty.CreatedAt = db.tick()
	copied := *warranty
	copied.Product, copied.Customer = nil, nil
	db.warranties[warranty.ID] = &copied

	return nil
}

func (db *memDB) warrantyWithRelations(w *entity.Warranty) *entity.Warranty {
	copied := *w
	if item, ok := db.items[w.ProductItemID]; ok {
		copied.Product = db.withRelations(item)
	}
	if customer, ok := db.customers[w.CustomerID]; ok {
		c := *customer
		copied.Customer = &c
	}

	return &copied
}

func (db *memDB) FindWarrantyByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Warranty, error) {
	warranty, err := db.FindWarrantyByIDAnyStore(ctx, id)
	if err != nil || warranty.StoreID != storeID {
		return nil, repository.ErrWarrantyNotFound
	}

	return warranty, nil
}

func (db *memDB) FindWarrantyByIDAnyStore(ctx context.Context, id uuid.UUID) (*entity.Warranty, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	warranty, ok := db.warranties[id]
	if !ok {
		return nil, repository.ErrWarrantyNotFound
	}

	return db.warrantyWithRelations(warranty), nil
}

func (db *memDB) FindWarrantyByTriple(ctx context.Context, productItemID, customerID, storeID uuid.UUID) (*entity.Warranty, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	warranty, ok := lo.Find(lo.Values(db.warranties), func(w *entity.Warranty) bool {
		return w.ProductItemID == productItemID && w.CustomerID == customerID && w.StoreID == storeID
	})
	if !ok {
		return nil, repository.ErrWarrantyNotFound
	}
	copied := *warranty

	return &copied, nil
}

func (db *memDB) FindWarrantiesByProduct(ctx context.Context, storeID, productItemID uuid.UUID) ([]*entity.Warranty, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	warranties := lo.Filter(lo.Values(db.warranties), func(w *entity.Warranty, _ int) bool {
		return w.StoreID == storeID && w.ProductItemID == productItemID
	})
	warranties = newestFirst(warranties, func(w *entity.Warranty) time.Time { return w.CreatedAt })

	return lo.Map(warranties, func(w *entity.Warranty, _ int) *entity.Warranty {
		copied := *w
		if customer, ok := db.customers[w.CustomerID]; ok {
			c := *customer
			copied.Customer = &c
		}

		return &copied
	}), nil
}

func (db *memDB) ListWarranties(ctx context.Context, storeID uuid.UUID, filter repository.WarrantyFilter, page entity.PageRequest) ([]*entity.Warranty, int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	warranties := lo.Filter(lo.Values(db.warranties), func(w *entity.Warranty, _ int) bool {
		return w.StoreID == storeID && (filter.Status == "" || w.Status == filter.Status)
	})
	warranties = newestFirst(warranties, func(w *entity.Warranty) time.Time { return w.CreatedAt })
	pageItems, total := paginate(warranties, page)

	return pageItems, total, nil
}

func (db *memDB) UpdateWarranty(ctx context.Context, warranty *entity.Warranty) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.warranties[warranty.ID]; !ok {
		return repository.ErrWarrantyNotFound
	}
	copied := *warranty
	copied.Product, copied.Customer = nil, nil
	db.warranties[warranty.ID] = &copied

	return nil
}

func (db *memDB) UpdateArtifacts(ctx context.Context, id uuid.UUID, qrCodeURL, pdfURL string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	warranty, ok := db.warranties[id]
	if !ok {
		return repository.ErrWarrantyNotFound
	}
	warranty.QRCodeURL, warranty.WarrantyPDFURL = qrCodeURL, pdfURL

	return nil
}

// --- Claims ---

func (db *memDB) CreateClaim(ctx context.Context, claim *entity.Claim) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	assignID(&claim.ID)
	claim.CreatedAt = db.tick()
	copied := *claim
	copied.Timeline = slices.Clone(claim.Timeline)
	copied.Warranty = nil
	db.claims[claim.ID] = &copied

	return nil
}

func (db *memDB) FindClaimByID(ctx context.Context, storeID, id uuid.UUID) (*entity.Claim, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	claim, ok := db.claims[id]
	if !ok || claim.StoreID != storeID {
		return nil, repository.ErrClaimNotFound
	}
	copied := *claim
	copied.Timeline = slices.Clone(claim.Timeline)

	return &copied, nil
}

func (db *memDB) ListClaims(ctx context.Context, storeID uuid.UUID, filter repository.ClaimFilter, page entity.PageRequest) ([]*entity.Claim, int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	claims := lo.Filter(lo.Values(db.claims), func(c *entity.Claim, _ int) bool {
		return c.StoreID == storeID &&
			(filter.Status == "" || c.Status == filter.Status) &&
			(filter.WarrantyID == nil || c.WarrantyID == *filter.WarrantyID)
	})
	claims = newestFirst(claims, func(c *entity.Claim) time.Time { return c.CreatedAt })
	pageItems, total := paginate(claims, page)

	return pageItems, total, nil
}

func (db *memDB) FindClaimsByWarranties(ctx context.Context, storeID uuid.UUID, warrantyIDs []uuid.UUID) ([]*entity.Claim, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	claims := lo.Filter(lo.Values(db.claims), func(c *entity.Claim, _ int) bool {
		return c.StoreID == storeID && lo.Contains(warrantyIDs, c.WarrantyID)
	})

	return newestFirst(claims, func(c *entity.Claim) time.Time { return c.CreatedAt }), nil
}

func (db *memDB) UpdateClaimStatus(ctx context.Context, id uuid.UUID, from, to entity.ClaimStatus, event entity.TimelineEvent) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	claim, ok := db.claims[id]
	if !ok {
		return repository.ErrClaimNotFound
	}
	if claim.Status != from {
		return repository.ErrClaimStatusConflict
	}
	claim.Status = to
	claim.Timeline = append(claim.Timeline, event)

	return nil
}

func (db *memDB) AppendTimelineEvent(ctx context.Context, id uuid.UUID, event entity.TimelineEvent) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	claim, ok := db.claims[id]
	if !ok {
		return repository.ErrClaimNotFound
	}
	claim.Timeline = append(claim.Timeline, event)

	return nil
}

// --- Services ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

// fakeTokens encodes the subject as the token itself.
type fakeTokens struct{}

func (fakeTokens) GenerateToken(subject service.TokenSubject) (string, error) {
	return "token:" + subject.String(), nil
}

func (fakeTokens) ValidateToken(token string) (*service.Claims, error) {
	sub, ok := strings.CutPrefix(token, "token:")
	if !ok {
		return nil, errors.New("bad token")
	}
	subject, err := service.ParseTokenSubject(sub)
	if err != nil {
		return nil, err
	}

	return &service.Claims{Subject: subject}, nil
}

func (fakeTokens) TokenTTL() time.Duration { return time.Hour }

type recordingAudit struct {
	mu      sync.Mutex
	entries []*entity.AuditLogEntry
}

func (a *recordingAudit) Record(ctx context.Context, entry *entity.AuditLogEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *recordingAudit) find(entityName string, action entity.AuditAction) []*entity.AuditLogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	return lo.Filter(a.entries, func(e *entity.AuditLogEntry, _ int) bool {
		return e.Entity == entityName && e.Action == action
	})
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	if urlFor, ok := args.Get(0).(func(string) string); ok {
		return urlFor(key), args.Error(1)
	}

	return args.String(0), args.Error(1)
}

func (m *mockStorage) Get(ctx context.Context, key string) (*service.Artifact, error) {
	args := m.Called(ctx, key)
	artifact, _ := args.Get(0).(*service.Artifact)

	return artifact, args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, "https://cdn.test/")

	return key, ok
}

type fakeQRCode struct{ err error }

func (f fakeQRCode) VerificationURL(serial string) string {
	return "https://verify.test/verify/" + serial
}

func (f fakeQRCode) GenerateVerificationQR(serial string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}

	return []byte("png:" + serial), nil
}

type fakeCertificates struct{ err error }

func (f fakeCertificates) GenerateWarrantyCertificate(ctx context.Context, data *service.WarrantyCertificateData) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}

	return []byte("%PDF certificate " + data.Item.SerialNumber), nil
}

func (f fakeCertificates) GenerateSerialSheet(ctx context.Context, data *service.SerialSheetData) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}

	return []byte("%PDF sheet"), nil
}

// sequenceBodies returns the bodies in order, then falls back to random ones.
func sequenceBodies(bodies ...string) BodyGenerator {
	var mu sync.Mutex

	return func(length int) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(bodies) == 0 {
			return RandomBody(length)
		}
		next := bodies[0]
		bodies = bodies[1:]

		return next, nil
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Fixture ---

type fixture struct {
	db        *memDB
	audit     *recordingAudit
	storage   *mockStorage
	qrcode    fakeQRCode
	certs     fakeCertificates
	generator BodyGenerator
	cfg       *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{Serial: &config.SerialConfig{BodyLength: 8, MaxRetries: 50, ChunkSize: 100, MaxBatchQuantity: 10000}}

	return &fixture{
		db:      newMemDB(),
		audit:   &recordingAudit{},
		storage: &mockStorage{},
		cfg:     cfg,
	}
}

func (f *fixture) identity() *identityService {
	return NewIdentityService(IdentityServiceParams{
		AccountRepo:  f.db,
		StoreRepo:    f.db,
		MemberRepo:   f.db,
		TokenService: fakeTokens{},
		Logger:       discardLogger(),
	}).(*identityService)
}

func (f *fixture) auth() *authService {
	return NewAuthService(AuthServiceParams{
		TxManager:    f.db,
		AccountRepo:  f.db,
		StoreRepo:    f.db,
		MemberRepo:   f.db,
		Hasher:       fakeHasher{},
		TokenService: fakeTokens{},
		AuditLogger:  f.audit,
		Logger:       discardLogger(),
	}).(*authService)
}

func (f *fixture) stores() *storeService {
	return NewStoreService(StoreServiceParams{
		TxManager:   f.db,
		StoreRepo:   f.db,
		Identity:    f.identity(),
		Storage:     f.storage,
		AuditLogger: f.audit,
		Logger:      discardLogger(),
	}).(*storeService)
}

func (f *fixture) members() *storeMemberService {
	return NewStoreMemberService(StoreMemberServiceParams{
		MemberRepo:  f.db,
		Identity:    f.identity(),
		Hasher:      fakeHasher{},
		AuditLogger: f.audit,
		Logger:      discardLogger(),
	}).(*storeMemberService)
}

func (f *fixture) apiKeys() *apiKeyService {
	return NewAPIKeyService(APIKeyServiceParams{
		KeyRepo:     f.db,
		Identity:    f.identity(),
		AuditLogger: f.audit,
		Logger:      discardLogger(),
	}).(*apiKeyService)
}

func (f *fixture) allocator() *serialAllocator {
	return NewSerialAllocator(SerialAllocatorParams{
		StoreRepo: f.db,
		ItemRepo:  f.db,
		Config:    f.cfg,
		Logger:    discardLogger(),
		Generator: f.generator,
	}).(*serialAllocator)
}

func (f *fixture) catalog() *catalogService {
	return NewCatalogService(CatalogServiceParams{
		TxManager:    f.db,
		StoreRepo:    f.db,
		TemplateRepo: f.db,
		BatchRepo:    f.db,
		ItemRepo:     f.db,
		Allocator:    f.allocator(),
		Identity:     f.identity(),
		Certificates: f.certs,
		AuditLogger:  f.audit,
		Config:       f.cfg,
		Logger:       discardLogger(),
	}).(*catalogService)
}

func (f *fixture) customers() *customerService {
	return NewCustomerService(CustomerServiceParams{
		CustomerRepo: f.db,
		AuditLogger:  f.audit,
		Logger:       discardLogger(),
	}).(*customerService)
}

func (f *fixture) artifactParams() WarrantyArtifactsParams {
	return WarrantyArtifactsParams{
		QRCode:       f.qrcode,
		Certificates: f.certs,
		Storage:      f.storage,
		StoreRepo:    f.db,
		WarrantyRepo: f.db,
		Logger:       discardLogger(),
	}
}

func (f *fixture) warranties() *warrantyService {
	return NewWarrantyService(WarrantyServiceParams{
		WarrantyArtifactsParams: f.artifactParams(),
		ItemRepo:                f.db,
		CustomerRepo:            f.db,
		AuditLogger:             f.audit,
	}).(*warrantyService)
}

func (f *fixture) claims() *claimService {
	return NewClaimService(ClaimServiceParams{
		ClaimRepo:    f.db,
		WarrantyRepo: f.db,
		AuditLogger:  f.audit,
		Logger:       discardLogger(),
	}).(*claimService)
}

func (f *fixture) partner() *partnerService {
	return NewPartnerService(PartnerServiceParams{
		WarrantyArtifactsParams: f.artifactParams(),
		ItemRepo:                f.db,
		CustomerRepo:            f.db,
		ClaimRepo:               f.db,
		AuditLogger:             f.audit,
	}).(*partnerService)
}

// acceptUploads makes every Put succeed with a CDN URL for its key.
func (f *fixture) acceptUploads() {
	f.storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(func(key string) string { return "https://cdn.test/" + key }, nil).
		Maybe()
}

// tenant is one signed-up owner with its store and admin member row.
type tenant struct {
	owner  *entity.OwnerAccount
	store  *entity.Store
	admin  *entity.StoreMember
	prefix string
}

func (f *fixture) newTenant(t *testing.T, email string) *tenant {
	t.Helper()
	ctx := context.Background()

	account := &entity.OwnerAccount{Email: email, PasswordHash: "hashed:secret123", FullName: "Owner " + email}
	require.NoError(t, f.db.CreateAccount(ctx, account))

	store := &entity.Store{StoreName: "Store of " + email, OwnerAccountID: account.ID, SerialPrefix: entity.DefaultSerialPrefix}
	require.NoError(t, f.db.CreateStore(ctx, store))

	admin := newOwnerAdminMember(account, store.ID)
	require.NoError(t, f.db.CreateMember(ctx, admin))

	return &tenant{owner: account, store: store, admin: admin, prefix: store.SerialPrefix}
}

// ownerPrincipal is the owner acting in its store through its admin row.
func (tn *tenant) ownerPrincipal() *entity.OwnerPrincipal {
	return &entity.OwnerPrincipal{Account: tn.owner, Member: tn.admin, StoreID: tn.store.ID, OwnsStore: true}
}

func (f *fixture) addMember(t *testing.T, tn *tenant, email string, role entity.Role, perms ...string) *entity.MemberPrincipal {
	t.Helper()
	if perms == nil {
		perms = []string{}
	}
	member := &entity.StoreMember{
		StoreID:      tn.store.ID,
		FullName:     "Member " + email,
		Email:        email,
		PasswordHash: "hashed:secret123",
		Role:         role,
		Permissions:  perms,
	}
	require.NoError(t, f.db.CreateMember(context.Background(), member))

	return &entity.MemberPrincipal{Member: member}
}
