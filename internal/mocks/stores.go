package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/store"
)

// WithTx on every testify store mock returns the mock itself, so expectations
// set on it also cover calls made inside a transaction.

// MockPropertyStore is a testify mock of store.PropertyStore
type MockPropertyStore struct {
	mock.Mock
}

var _ store.PropertyStore = (*MockPropertyStore)(nil)

func (m *MockPropertyStore) Create(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Property)
	return p, args.Error(1)
}

func (m *MockPropertyStore) GetListing(ctx context.Context, id uuid.UUID) (*domain.PropertyListing, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*domain.PropertyListing)
	return l, args.Error(1)
}

func (m *MockPropertyStore) Update(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPropertyStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *MockPropertyStore) Search(
	ctx context.Context,
	filter domain.PropertyFilter,
) ([]domain.PropertyListing, int, error) {
	args := m.Called(ctx, filter)
	l, _ := args.Get(0).([]domain.PropertyListing)
	return l, args.Int(1), args.Error(2)
}

func (m *MockPropertyStore) WithTx(tx *sqlx.Tx) store.PropertyStore {
	return m
}

// MockPropertyImageStore is a testify mock of store.PropertyImageStore
type MockPropertyImageStore struct {
	mock.Mock
}

var _ store.PropertyImageStore = (*MockPropertyImageStore)(nil)

func (m *MockPropertyImageStore) Create(ctx context.Context, img *domain.PropertyImage) error {
	return m.Called(ctx, img).Error(0)
}

func (m *MockPropertyImageStore) ListByProperty(
	ctx context.Context,
	propertyID uuid.UUID,
) ([]domain.PropertyImage, error) {
	args := m.Called(ctx, propertyID)
	l, _ := args.Get(0).([]domain.PropertyImage)
	return l, args.Error(1)
}

func (m *MockPropertyImageStore) Get(
	ctx context.Context,
	propertyID, imageID uuid.UUID,
) (*domain.PropertyImage, error) {
	args := m.Called(ctx, propertyID, imageID)
	img, _ := args.Get(0).(*domain.PropertyImage)
	return img, args.Error(1)
}

func (m *MockPropertyImageStore) Delete(ctx context.Context, propertyID, imageID uuid.UUID) error {
	return m.Called(ctx, propertyID, imageID).Error(0)
}

func (m *MockPropertyImageStore) PromoteOldest(ctx context.Context, propertyID uuid.UUID) error {
	return m.Called(ctx, propertyID).Error(0)
}

func (m *MockPropertyImageStore) NextSortOrder(ctx context.Context, propertyID uuid.UUID) (int, bool, error) {
	args := m.Called(ctx, propertyID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockPropertyImageStore) WithTx(tx *sqlx.Tx) store.PropertyImageStore {
	return m
}

// MockFavoriteStore is a testify mock of store.FavoriteStore
type MockFavoriteStore struct {
	mock.Mock
}

var _ store.FavoriteStore = (*MockFavoriteStore)(nil)

func (m *MockFavoriteStore) Add(ctx context.Context, f *domain.Favorite) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFavoriteStore) AddIfAbsent(ctx context.Context, f *domain.Favorite) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFavoriteStore) Remove(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteStore) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error) {
	args := m.Called(ctx, userID)
	l, _ := args.Get(0).([]domain.FavoriteProperty)
	return l, args.Error(1)
}

func (m *MockFavoriteStore) WithTx(tx *sqlx.Tx) store.FavoriteStore {
	return m
}

// MockMessageStore is a testify mock of store.MessageStore
type MockMessageStore struct {
	mock.Mock
}

var _ store.MessageStore = (*MockMessageStore)(nil)

func (m *MockMessageStore) Create(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*domain.MessageView)
	return v, args.Error(1)
}

func (m *MockMessageStore) ListForUser(
	ctx context.Context,
	filter domain.MessageFilter,
) ([]domain.MessageView, int, error) {
	args := m.Called(ctx, filter)
	l, _ := args.Get(0).([]domain.MessageView)
	return l, args.Int(1), args.Error(2)
}

func (m *MockMessageStore) ListConversation(
	ctx context.Context,
	propertyID, userID, otherID uuid.UUID,
) ([]domain.MessageView, error) {
	args := m.Called(ctx, propertyID, userID, otherID)
	l, _ := args.Get(0).([]domain.MessageView)
	return l, args.Error(1)
}

func (m *MockMessageStore) MarkRead(ctx context.Context, id, receiverID uuid.UUID) error {
	return m.Called(ctx, id, receiverID).Error(0)
}

func (m *MockMessageStore) Delete(ctx context.Context, id, senderID uuid.UUID) error {
	return m.Called(ctx, id, senderID).Error(0)
}

func (m *MockMessageStore) WithTx(tx *sqlx.Tx) store.MessageStore {
	return m
}

// MockReviewStore is a testify mock of store.ReviewStore
type MockReviewStore struct {
	mock.Mock
}

var _ store.ReviewStore = (*MockReviewStore)(nil)

func (m *MockReviewStore) Create(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Review)
	return r, args.Error(1)
}

func (m *MockReviewStore) Update(ctx context.Context, r *domain.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReviewStore) Delete(ctx context.Context, id, reviewerID uuid.UUID) error {
	return m.Called(ctx, id, reviewerID).Error(0)
}

func (m *MockReviewStore) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.ReviewView, error) {
	args := m.Called(ctx, propertyID)
	l, _ := args.Get(0).([]domain.ReviewView)
	return l, args.Error(1)
}

func (m *MockReviewStore) ListByReviewer(ctx context.Context, reviewerID uuid.UUID) ([]domain.ReviewView, error) {
	args := m.Called(ctx, reviewerID)
	l, _ := args.Get(0).([]domain.ReviewView)
	return l, args.Error(1)
}

func (m *MockReviewStore) Summary(ctx context.Context, propertyID uuid.UUID) (domain.RatingSummary, error) {
	args := m.Called(ctx, propertyID)
	s, _ := args.Get(0).(domain.RatingSummary)
	return s, args.Error(1)
}

func (m *MockReviewStore) WithTx(tx *sqlx.Tx) store.ReviewStore {
	return m
}
