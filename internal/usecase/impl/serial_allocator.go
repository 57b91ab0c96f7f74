package impl

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"

	"warranty/config"
	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/repository"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/fx"
)

const serialAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Allocator defaults, used when the serial config leaves a value at zero.
const (
	DefaultSerialBodyLength  = 8
	DefaultSerialMaxRetries  = 50
	DefaultSerialChunkSize   = 100
	DefaultMaxBatchQuantity  = 10000
	maxSerialsPerExistsQuery = 1000
)

// BodyGenerator returns a random serial body of the given length.
type BodyGenerator func(length int) (string, error)

// RandomBody draws each character uniformly from A-Z0-9 with crypto/rand.
func RandomBody(length int) (string, error) {
	limit := big.NewInt(int64(len(serialAlphabet)))
	body := make([]byte, length)
	for i := range body {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", errors.Wrap(err, "failed to read random source")
		}
		body[i] = serialAlphabet[n.Int64()]
	}

	return string(body), nil
}

// serialAllocator implements the SerialAllocator interface.
type serialAllocator struct {
	storeRepo  repository.StoreRepository
	itemRepo   repository.ProductItemRepository
	generate   BodyGenerator
	bodyLength int
	maxRetries int
	chunkSize  int
	logger     *slog.Logger
}

// SerialAllocatorParams holds dependencies for the serial allocator, injected by Fx.
type SerialAllocatorParams struct {
	fx.In

	StoreRepo repository.StoreRepository
	ItemRepo  repository.ProductItemRepository
	Config    *config.Config
	Logger    *slog.Logger
	Generator BodyGenerator `optional:"true"`
}

// NewSerialAllocator is the constructor for serialAllocator.
func NewSerialAllocator(params SerialAllocatorParams) usecase.SerialAllocator {
	alloc := &serialAllocator{
		storeRepo:  params.StoreRepo,
		itemRepo:   params.ItemRepo,
		generate:   params.Generator,
		bodyLength: DefaultSerialBodyLength,
		maxRetries: DefaultSerialMaxRetries,
		chunkSize:  DefaultSerialChunkSize,
		logger:     params.Logger,
	}
	if alloc.generate == nil {
		alloc.generate = RandomBody
	}
	if cfg := params.Config; cfg != nil && cfg.Serial != nil {
		if cfg.Serial.BodyLength > 0 {
			alloc.bodyLength = cfg.Serial.BodyLength
		}
		if cfg.Serial.MaxRetries > 0 {
			alloc.maxRetries = cfg.Serial.MaxRetries
		}
		if cfg.Serial.ChunkSize > 0 {
			alloc.chunkSize = cfg.Serial.ChunkSize
		}
	}

	return alloc
}

// AllocateOne generates serials until one is unused, within the retry budget.
func (a *serialAllocator) AllocateOne(ctx context.Context, storeID uuid.UUID) (*entity.SerialRecord, error) {
	store, err := a.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < a.maxRetries; attempt++ {
		record, err := a.candidate(store)
		if err != nil {
			return nil, err
		}

		existing, err := a.itemRepo.ExistingSerials(ctx, []string{record.SerialNumber})
		if err != nil {
			return nil, errors.Wrap(err, "failed to check serial number")
		}
		if len(existing) == 0 {
			return record, nil
		}
	}

	return nil, a.exhausted(ctx, storeID, 1)
}

// AllocateBulk fills chunks of candidates, checks each chunk with one query
// and tops up the collisions. Returned serials are pairwise distinct.
func (a *serialAllocator) AllocateBulk(ctx context.Context, storeID uuid.UUID, quantity int) ([]*entity.SerialRecord, error) {
	if quantity < 1 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	store, err := a.loadStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	accepted := make([]*entity.SerialRecord, 0, quantity)
	seen := make(map[string]struct{}, quantity)

	for len(accepted) < quantity {
		want := min(a.chunkSize, quantity-len(accepted))
		chunk := make([]*entity.SerialRecord, 0, want)

		for attempt := 0; len(chunk) < want; attempt++ {
			if attempt > a.maxRetries {
				return nil, a.exhausted(ctx, storeID, quantity)
			}

			fresh, err := a.fill(store, seen, want-len(chunk))
			if err != nil {
				return nil, err
			}

			taken, err := a.existing(ctx, fresh)
			if err != nil {
				return nil, err
			}
			for _, record := range fresh {
				if _, collides := taken[record.SerialNumber]; collides {
					// Stays in seen so it is never proposed again.
					continue
				}
				chunk = append(chunk, record)
			}
		}

		accepted = append(accepted, chunk...)
	}

	return accepted, nil
}

// fill proposes n candidates unseen in this allocation and marks them seen.
func (a *serialAllocator) fill(store *entity.Store, seen map[string]struct{}, n int) ([]*entity.SerialRecord, error) {
	fresh := make([]*entity.SerialRecord, 0, n)
	for misses := 0; len(fresh) < n; {
		record, err := a.candidate(store)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[record.SerialNumber]; dup {
			misses++
			if misses > a.maxRetries*n {
				break
			}
			continue
		}
		seen[record.SerialNumber] = struct{}{}
		fresh = append(fresh, record)
	}

	return fresh, nil
}

func (a *serialAllocator) existing(ctx context.Context, records []*entity.SerialRecord) (map[string]struct{}, error) {
	taken := make(map[string]struct{})
	serials := lo.Map(records, func(r *entity.SerialRecord, _ int) string { return r.SerialNumber })

	for _, part := range lo.Chunk(serials, maxSerialsPerExistsQuery) {
		found, err := a.itemRepo.ExistingSerials(ctx, part)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check serial numbers")
		}
		for _, serial := range found {
			taken[serial] = struct{}{}
		}
	}

	return taken, nil
}

func (a *serialAllocator) candidate(store *entity.Store) (*entity.SerialRecord, error) {
	body, err := a.generate(a.bodyLength)
	if err != nil {
		return nil, err
	}

	return &entity.SerialRecord{
		SerialNumber: store.SerialPrefix + body + store.SerialSuffix,
		PrefixUsed:   store.SerialPrefix,
		SuffixUsed:   store.SerialSuffix,
	}, nil
}

func (a *serialAllocator) loadStore(ctx context.Context, storeID uuid.UUID) (*entity.Store, error) {
	store, err := a.storeRepo.FindStoreByID(ctx, storeID)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrStoreNotFound, domainerrors.ErrStoreNotFound, "failed to load store for serial allocation")
	}

	return store, nil
}

func (a *serialAllocator) exhausted(ctx context.Context, storeID uuid.UUID, quantity int) error {
	requestLogger(ctx, a.logger).Error("Serial number space exhausted",
		slog.String("store_id", storeID.String()),
		slog.Int("quantity", quantity),
		slog.Int("body_length", a.bodyLength),
		slog.Int("max_retries", a.maxRetries),
	)

	return domainerrors.ErrSerialExhausted
}
