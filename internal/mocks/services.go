package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/casafind/casafind-api/internal/domain"
	"github.com/casafind/casafind-api/internal/service"
)

// MockUserService is a testify mock of service.UserService
type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

// MockPropertyService is a testify mock of service.PropertyService
type MockPropertyService struct {
	mock.Mock
}

var _ service.PropertyService = (*MockPropertyService)(nil)

func (m *MockPropertyService) Search(
	ctx context.Context,
	params domain.PropertySearchParams,
) (*service.PropertyPage, error) {
	args := m.Called(ctx, params)
	p, _ := args.Get(0).(*service.PropertyPage)
	return p, args.Error(1)
}

func (m *MockPropertyService) ListOwned(
	ctx context.Context,
	ownerID uuid.UUID,
	rawPage, rawLimit string,
) (*service.PropertyPage, error) {
	args := m.Called(ctx, ownerID, rawPage, rawLimit)
	p, _ := args.Get(0).(*service.PropertyPage)
	return p, args.Error(1)
}

func (m *MockPropertyService) Get(ctx context.Context, id uuid.UUID) (*domain.PropertyDetail, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*domain.PropertyDetail)
	return d, args.Error(1)
}

func (m *MockPropertyService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	in domain.PropertyInput,
) (*domain.Property, error) {
	args := m.Called(ctx, ownerID, in)
	p, _ := args.Get(0).(*domain.Property)
	return p, args.Error(1)
}

func (m *MockPropertyService) Update(ctx context.Context, ownerID, id uuid.UUID, in domain.PropertyInput) error {
	return m.Called(ctx, ownerID, id, in).Error(0)
}

func (m *MockPropertyService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockPropertyService) AddImage(
	ctx context.Context,
	ownerID, propertyID uuid.UUID,
	upload service.ImageUpload,
) (*domain.PropertyImage, error) {
	args := m.Called(ctx, ownerID, propertyID, upload)
	img, _ := args.Get(0).(*domain.PropertyImage)
	return img, args.Error(1)
}

func (m *MockPropertyService) RemoveImage(ctx context.Context, ownerID, propertyID, imageID uuid.UUID) error {
	return m.Called(ctx, ownerID, propertyID, imageID).Error(0)
}

// MockFavoriteService is a testify mock of service.FavoriteService
type MockFavoriteService struct {
	mock.Mock
}

var _ service.FavoriteService = (*MockFavoriteService)(nil)

func (m *MockFavoriteService) List(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error) {
	args := m.Called(ctx, userID)
	l, _ := args.Get(0).([]domain.FavoriteProperty)
	return l, args.Error(1)
}

func (m *MockFavoriteService) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	return m.Called(ctx, userID, propertyID).Error(0)
}

func (m *MockFavoriteService) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	return m.Called(ctx, userID, propertyID).Error(0)
}

func (m *MockFavoriteService) Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}

// MockMessageService is a testify mock of service.MessageService
type MockMessageService struct {
	mock.Mock
}

var _ service.MessageService = (*MockMessageService)(nil)

func (m *MockMessageService) List(
	ctx context.Context,
	userID uuid.UUID,
	unreadOnly bool,
	rawPage, rawLimit string,
) (*service.MessagePage, error) {
	args := m.Called(ctx, userID, unreadOnly, rawPage, rawLimit)
	p, _ := args.Get(0).(*service.MessagePage)
	return p, args.Error(1)
}

func (m *MockMessageService) Conversation(
	ctx context.Context,
	userID, propertyID, otherID uuid.UUID,
) ([]domain.MessageView, error) {
	args := m.Called(ctx, userID, propertyID, otherID)
	l, _ := args.Get(0).([]domain.MessageView)
	return l, args.Error(1)
}

func (m *MockMessageService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.MessageView, error) {
	args := m.Called(ctx, userID, id)
	v, _ := args.Get(0).(*domain.MessageView)
	return v, args.Error(1)
}

func (m *MockMessageService) Send(
	ctx context.Context,
	senderID uuid.UUID,
	in service.SendMessageInput,
) (*domain.Message, error) {
	args := m.Called(ctx, senderID, in)
	msg, _ := args.Get(0).(*domain.Message)
	return msg, args.Error(1)
}

func (m *MockMessageService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockMessageService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

// MockReviewService is a testify mock of service.ReviewService
type MockReviewService struct {
	mock.Mock
}

var _ service.ReviewService = (*MockReviewService)(nil)

func (m *MockReviewService) ListByProperty(
	ctx context.Context,
	propertyID uuid.UUID,
) (*service.PropertyReviews, error) {
	args := m.Called(ctx, propertyID)
	r, _ := args.Get(0).(*service.PropertyReviews)
	return r, args.Error(1)
}

func (m *MockReviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ReviewView, error) {
	args := m.Called(ctx, userID)
	l, _ := args.Get(0).([]domain.ReviewView)
	return l, args.Error(1)
}

func (m *MockReviewService) Create(
	ctx context.Context,
	reviewerID, propertyID uuid.UUID,
	in service.ReviewInput,
) (*domain.Review, error) {
	args := m.Called(ctx, reviewerID, propertyID, in)
	r, _ := args.Get(0).(*domain.Review)
	return r, args.Error(1)
}

func (m *MockReviewService) Update(
	ctx context.Context,
	reviewerID, id uuid.UUID,
	in service.ReviewInput,
) (*domain.Review, error) {
	args := m.Called(ctx, reviewerID, id, in)
	r, _ := args.Get(0).(*domain.Review)
	return r, args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, reviewerID, id uuid.UUID) error {
	return m.Called(ctx, reviewerID, id).Error(0)
}

// MockObjectStorage implements service.ObjectStorage in memory.
type MockObjectStorage struct {
	PutErr    error
	RemoveErr error

	Objects map[string][]byte
	Removed []string
}

var _ service.ObjectStorage = (*MockObjectStorage)(nil)

// NewMockObjectStorage creates an empty in-memory object store.
func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{Objects: make(map[string][]byte)}
}

func (m *MockObjectStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.Objects[key] = data
	return nil
}

func (m *MockObjectStorage) Remove(ctx context.Context, key string) error {
	m.Removed = append(m.Removed, key)
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.Objects, key)
	return nil
}

func (m *MockObjectStorage) URL(key string) string {
	return "http://objects.test/" + key
}
