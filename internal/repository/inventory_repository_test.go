package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"frigo-service/internal/domain"
	"frigo-service/internal/freshness"
	"frigo-service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStore is a mock implementation of storage.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStore) MultiGet(ctx context.Context, keys []string) ([]storage.Entry, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Entry), args.Error(1)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func newTestRepository() (*StoreInventoryRepository, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewInventoryRepository(store, zap.NewNop()), store
}

func TestSave_UpsertIsIdempotent(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()
	record := &domain.InventoryRecord{ID: "3017620422003", ProductName: "Nutella", Quantity: 2}

	_, err := repo.Save(ctx, record)
	require.NoError(t, err)
	_, err = repo.Save(ctx, record)
	require.NoError(t, err)

	result, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "3017620422003", result.Records[0].ID)
	assert.Equal(t, 2, result.Records[0].Quantity.Int())
}

func TestSave_OverwritesExistingID(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.InventoryRecord{ID: "111", ProductName: "Lait", Quantity: 1})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &domain.InventoryRecord{ID: "111", ProductName: "Lait entier", Quantity: 3})
	require.NoError(t, err)

	record, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "Lait entier", record.ProductName)
	assert.Equal(t, 3, record.Quantity.Int())
}

func TestSave_GeneratesManualID(t *testing.T) {
	repo, _ := newTestRepository()

	saved, err := repo.Save(context.Background(), &domain.InventoryRecord{ProductName: "Tarte maison", Quantity: 1})

	require.NoError(t, err)
	assert.True(t, saved.IsManual())
}

func TestSave_NormalizesInput(t *testing.T) {
	repo, _ := newTestRepository()

	saved, err := repo.Save(context.Background(), &domain.InventoryRecord{
		ID:             " 111 ",
		ProductName:    "  Lait ",
		Quantity:       1,
		ExpirationDate: " 2024-05-01 ",
	})

	require.NoError(t, err)
	assert.Equal(t, "111", saved.ID)
	assert.Equal(t, "Lait", saved.ProductName)
	assert.Equal(t, "2024-05-01", saved.ExpirationDate)
}

func TestSave_ValidationErrorWritesNothing(t *testing.T) {
	tests := []struct {
		name   string
		record *domain.InventoryRecord
		field  string
	}{
		{"nil record", nil, "record"},
		{"blank name", &domain.InventoryRecord{ID: "1", ProductName: "   ", Quantity: 1}, "product_name"},
		{"zero quantity", &domain.InventoryRecord{ID: "1", ProductName: "Lait", Quantity: 0}, "quantity"},
		{"impossible date", &domain.InventoryRecord{ID: "1", ProductName: "Lait", Quantity: 1, ExpirationDate: "2024-02-30"}, "expiration_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, store := newTestRepository()

			_, err := repo.Save(context.Background(), tt.record)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)

			keys, _ := store.Keys(context.Background())
			assert.Empty(t, keys)
		})
	}
}

func TestSave_RoundTripIsByteIdentical(t *testing.T) {
	repo, store := newTestRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.InventoryRecord{
		ID:             "111",
		ProductName:    "Lait",
		Description:    "demi-écrémé",
		ImageURL:       "https://images.openfoodfacts.org/lait.jpg",
		Brands:         "Lactel",
		Quantity:       2,
		ExpirationDate: "2024-05-01",
	})
	require.NoError(t, err)
	before, err := store.Get(ctx, "111")
	require.NoError(t, err)

	result, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	_, err = repo.Save(ctx, &result.Records[0])
	require.NoError(t, err)
	after, err := store.Get(ctx, "111")
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestListAll_ReadsValuesWrittenByMobileApp(t *testing.T) {
	repo, store := newTestRepository()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "3017620422003", `{"product_name":"Nutella","image_url":"https://img/nutella.jpg","quantity":"3"}`))

	result, err := repo.ListAll(ctx)

	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "3017620422003", result.Records[0].ID)
	assert.Equal(t, 3, result.Records[0].Quantity.Int())
	assert.Equal(t, "https://img/nutella.jpg", result.Records[0].ImageURL)
}

func TestListAll_SkipsUndecodableValues(t *testing.T) {
	repo, store := newTestRepository()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "a", `{"product_name":"Pommes","quantity":6}`))
	require.NoError(t, store.Set(ctx, "b", `not json`))
	require.NoError(t, store.Set(ctx, "c", `{"product_name":"Lait","quantity":"beaucoup"}`))
	require.NoError(t, store.Set(ctx, "d", `{"product_name":"Beurre","quantity":1}`))

	result, err := repo.ListAll(ctx)

	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "a", result.Records[0].ID)
	assert.Equal(t, "d", result.Records[1].ID)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, "b", result.Skipped[0].Key)
	assert.Equal(t, "c", result.Skipped[1].Key)
	assert.NotEmpty(t, result.Skipped[0].Reason)
}

func TestListAll_EmptyStore(t *testing.T) {
	repo, _ := newTestRepository()

	result, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Skipped)
}

func TestListAll_StorageFailure(t *testing.T) {
	store := new(MockStore)
	store.On("Keys", mock.Anything).Return(nil, errors.New("disk unavailable"))
	repo := NewInventoryRepository(store, zap.NewNop())

	_, err := repo.ListAll(context.Background())

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "keys", storageErr.Op)
	store.AssertExpectations(t)
}

func TestListAll_MultiGetFailure(t *testing.T) {
	store := new(MockStore)
	store.On("Keys", mock.Anything).Return([]string{"111"}, nil)
	store.On("MultiGet", mock.Anything, []string{"111"}).Return(nil, errors.New("connection reset"))
	repo := NewInventoryRepository(store, zap.NewNop())

	_, err := repo.ListAll(context.Background())

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "multiget", storageErr.Op)
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepository()

	_, err := repo.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestUpdateQuantity_ChangesOnlyQuantity(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, &domain.InventoryRecord{ID: "111", ProductName: "Lait", Description: "bio", Quantity: 1, ExpirationDate: "2024-05-01"})
	require.NoError(t, err)

	update, err := repo.UpdateQuantity(ctx, "111", 4)

	require.NoError(t, err)
	assert.False(t, update.Deleted)
	require.NotNil(t, update.Record)
	assert.Equal(t, 4, update.Record.Quantity.Int())

	stored, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryRecord{ID: "111", ProductName: "Lait", Description: "bio", Quantity: 4, ExpirationDate: "2024-05-01"}, *stored)
}

func TestUpdateQuantity_ZeroRemovesRecord(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, &domain.InventoryRecord{ID: "111", ProductName: "Lait", Quantity: 1})
	require.NoError(t, err)

	update, err := repo.UpdateQuantity(ctx, "111", 0)

	require.NoError(t, err)
	assert.True(t, update.Deleted)
	assert.Nil(t, update.Record)

	result, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestUpdateQuantity_NegativeOnAbsentIDSucceeds(t *testing.T) {
	repo, _ := newTestRepository()

	update, err := repo.UpdateQuantity(context.Background(), "missing", -1)

	require.NoError(t, err)
	assert.True(t, update.Deleted)
}

func TestUpdateQuantity_AbsentIDIsNotFound(t *testing.T) {
	repo, store := newTestRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, &domain.InventoryRecord{ID: "111", ProductName: "Lait", Quantity: 1})
	require.NoError(t, err)
	before, _ := store.MultiGet(ctx, []string{"111"})

	_, err = repo.UpdateQuantity(ctx, "999", 5)

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "999", notFound.ID)

	keys, _ := store.Keys(ctx)
	assert.Equal(t, []string{"111"}, keys)
	after, _ := store.MultiGet(ctx, []string{"111"})
	assert.Equal(t, before, after)
}

func TestUpdateQuantity_StorageFailureOnWrite(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, "111").Return(`{"product_name":"Lait","description":"","quantity":1}`, nil)
	store.On("Set", mock.Anything, "111", mock.Anything).Return(errors.New("read-only filesystem"))
	repo := NewInventoryRepository(store, zap.NewNop())

	_, err := repo.UpdateQuantity(context.Background(), "111", 2)

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "set", storageErr.Op)
	assert.Equal(t, "111", storageErr.Key)
	store.AssertExpectations(t)
}

func TestUpdateFields_MergesAndClearsDate(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, &domain.InventoryRecord{ID: "111", ProductName: "Lait", Quantity: 2, ExpirationDate: "2024-05-01"})
	require.NoError(t, err)

	name := "Lait entier"
	cleared := ""
	updated, err := repo.UpdateFields(ctx, "111", domain.FieldUpdate{ProductName: &name, ExpirationDate: &cleared})

	require.NoError(t, err)
	assert.Equal(t, "Lait entier", updated.ProductName)
	assert.Equal(t, "", updated.ExpirationDate)
	assert.Equal(t, 2, updated.Quantity.Int())

	stored, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, *updated, *stored)
}

func TestUpdateFields_InvalidDateLeavesRecord(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, &domain.InventoryRecord{ID: "111", ProductName: "Lait", Quantity: 2, ExpirationDate: "2024-05-01"})
	require.NoError(t, err)

	bad := "2024-13-01"
	_, err = repo.UpdateFields(ctx, "111", domain.FieldUpdate{ExpirationDate: &bad})

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "expiration_date", validationErr.Field)

	stored, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", stored.ExpirationDate)
}

func TestUpdateFields_AbsentID(t *testing.T) {
	repo, _ := newTestRepository()
	name := "Lait"

	_, err := repo.UpdateFields(context.Background(), "missing", domain.FieldUpdate{ProductName: &name})

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestDelete_IsIdempotent(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "never-existed"))
	require.NoError(t, repo.Delete(ctx, "never-existed"))
}

func TestDelete_StorageFailure(t *testing.T) {
	store := new(MockStore)
	store.On("Delete", mock.Anything, "111").Return(errors.New("locked"))
	repo := NewInventoryRepository(store, zap.NewNop())

	err := repo.Delete(context.Background(), "111")

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "delete", storageErr.Op)
}

func TestSavedMilkIsRankedOrangeInFiveDays(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()
	now := time.Date(2024, 4, 26, 18, 30, 0, 0, time.UTC)

	_, err := repo.Save(ctx, &domain.InventoryRecord{
		ID:             "111",
		ProductName:    "Lait",
		Quantity:       1,
		ExpirationDate: now.AddDate(0, 0, 5).Format(domain.DateLayout),
	})
	require.NoError(t, err)

	result, err := repo.ListAll(ctx)
	require.NoError(t, err)

	ranked := freshness.ExpiringSoon(result.Records, now, freshness.Options{})
	require.Len(t, ranked, 1)
	assert.Equal(t, 5, ranked[0].DaysUntilExpiration)
	assert.Equal(t, freshness.Orange, ranked[0].UrgencyColor)
}
