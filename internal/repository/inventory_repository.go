package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"frigo-service/internal/domain"
	"frigo-service/internal/storage"

	"go.uber.org/zap"
)

// InventoryRepository defines the interface for inventory persistence
type InventoryRepository interface {
	ListAll(ctx context.Context) (*ListResult, error)
	Get(ctx context.Context, id string) (*domain.InventoryRecord, error)
	Save(ctx context.Context, record *domain.InventoryRecord) (*domain.InventoryRecord, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) (QuantityUpdate, error)
	UpdateFields(ctx context.Context, id string, update domain.FieldUpdate) (*domain.InventoryRecord, error)
	Delete(ctx context.Context, id string) error
}

// ListResult holds every decodable record plus the entries that were skipped
type ListResult struct {
	Records []domain.InventoryRecord
	Skipped []SkippedRecord
}

// SkippedRecord is a stored value that could not be decoded
type SkippedRecord struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// QuantityUpdate is the outcome of UpdateQuantity. Record is nil when the
// record was deleted.
type QuantityUpdate struct {
	Record  *domain.InventoryRecord
	Deleted bool
}

// StoreInventoryRepository keeps one JSON value per record in a key-value
// store, keyed by barcode.
type StoreInventoryRepository struct {
	store  storage.Store
	logger *zap.Logger
}

func NewInventoryRepository(store storage.Store, logger *zap.Logger) *StoreInventoryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreInventoryRepository{
		store:  store,
		logger: logger,
	}
}

// ListAll returns every record in storage order. Values that fail to decode
// are reported in Skipped and never fail the call.
func (r *StoreInventoryRepository) ListAll(ctx context.Context) (*ListResult, error) {
	keys, err := r.store.Keys(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "keys", Err: err}
	}

	entries, err := r.store.MultiGet(ctx, keys)
	if err != nil {
		return nil, &domain.StorageError{Op: "multiget", Err: err}
	}

	result := &ListResult{
		Records: make([]domain.InventoryRecord, 0, len(entries)),
		Skipped: make([]SkippedRecord, 0),
	}

	for _, entry := range entries {
		record, err := decodeRecord(entry.Key, entry.Value)
		if err != nil {
			r.logger.Warn("Skipping undecodable record",
				zap.String("key", entry.Key),
				zap.Error(err),
			)
			result.Skipped = append(result.Skipped, SkippedRecord{Key: entry.Key, Reason: err.Error()})
			continue
		}
		result.Records = append(result.Records, *record)
	}

	r.logger.Debug("Listed records",
		zap.Int("records", len(result.Records)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (r *StoreInventoryRepository) Get(ctx context.Context, id string) (*domain.InventoryRecord, error) {
	value, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, &domain.StorageError{Op: "get", Key: id, Err: err}
	}

	record, err := decodeRecord(id, value)
	if err != nil {
		return nil, &domain.StorageError{Op: "decode", Key: id, Err: err}
	}
	return record, nil
}

// Save normalizes and validates record, then writes it under its id,
// replacing any previous record with the same id. A record without an id
// gets a manual id.
func (r *StoreInventoryRepository) Save(ctx context.Context, record *domain.InventoryRecord) (*domain.InventoryRecord, error) {
	if record == nil {
		return nil, &domain.ValidationError{Field: "record", Message: "is required"}
	}

	saved := *record
	saved.Normalize()
	if err := domain.Validate(&saved); err != nil {
		return nil, err
	}
	if saved.ID == "" {
		saved.ID = domain.NewManualID()
	}

	if err := r.write(ctx, &saved); err != nil {
		return nil, err
	}

	r.logger.Debug("Record saved",
		zap.String("id", saved.ID),
		zap.Int("quantity", saved.Quantity.Int()),
	)
	return &saved, nil
}

// UpdateQuantity sets the quantity of id. A quantity of zero or less removes
// the record, whether or not it exists.
func (r *StoreInventoryRepository) UpdateQuantity(ctx context.Context, id string, quantity int) (QuantityUpdate, error) {
	if domain.WouldDelete(quantity) {
		if err := r.Delete(ctx, id); err != nil {
			return QuantityUpdate{}, err
		}
		return QuantityUpdate{Deleted: true}, nil
	}

	record, err := r.Get(ctx, id)
	if err != nil {
		return QuantityUpdate{}, err
	}

	record.Quantity = domain.Quantity(quantity)
	if err := r.write(ctx, record); err != nil {
		return QuantityUpdate{}, err
	}

	r.logger.Debug("Quantity updated",
		zap.String("id", id),
		zap.Int("quantity", quantity),
	)
	return QuantityUpdate{Record: record}, nil
}

// UpdateFields merges the editable fields into the stored record. The merged
// record is validated before anything is written.
func (r *StoreInventoryRepository) UpdateFields(ctx context.Context, id string, update domain.FieldUpdate) (*domain.InventoryRecord, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := update.Apply(*current)
	updated.Normalize()
	if err := domain.Validate(&updated); err != nil {
		return nil, err
	}

	if err := r.write(ctx, &updated); err != nil {
		return nil, err
	}

	r.logger.Debug("Record fields updated", zap.String("id", id))
	return &updated, nil
}

// Delete removes id. Deleting an absent id succeeds.
func (r *StoreInventoryRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return &domain.StorageError{Op: "delete", Key: id, Err: err}
	}
	r.logger.Debug("Record deleted", zap.String("id", id))
	return nil
}

func (r *StoreInventoryRepository) write(ctx context.Context, record *domain.InventoryRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		return &domain.StorageError{Op: "encode", Key: record.ID, Err: err}
	}
	if err := r.store.Set(ctx, record.ID, string(value)); err != nil {
		return &domain.StorageError{Op: "set", Key: record.ID, Err: err}
	}
	return nil
}

func decodeRecord(key, value string) (*domain.InventoryRecord, error) {
	var record domain.InventoryRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	record.ID = key
	return &record, nil
}
