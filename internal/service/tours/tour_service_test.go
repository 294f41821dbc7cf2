package tours

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vuhd/tourbooking/internal/domain"
	"github.com/vuhd/tourbooking/internal/repository"
)

type MockTourRepository struct {
	mock.Mock
}

func (m *MockTourRepository) List(ctx context.Context) ([]domain.Tour, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tour), args.Error(1)
}

func (m *MockTourRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockTourRepository) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetTours(ctx context.Context) ([]domain.Tour, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tour), args.Error(1)
}

func (m *MockCache) SetTours(ctx context.Context, tours []domain.Tour) error {
	args := m.Called(ctx, tours)
	return args.Error(0)
}

func (m *MockCache) GetTour(ctx context.Context, slug string) (*domain.Tour, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockCache) SetTour(ctx context.Context, tour *domain.Tour) error {
	args := m.Called(ctx, tour)
	return args.Error(0)
}

func TestTourService_List_CacheHit(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockCache{}
	service := NewTourService(mockRepo, mockCache)

	ctx := context.Background()
	cached := []domain.Tour{{ID: "tour-1", Slug: "da-nang-3n2d"}}

	mockCache.On("GetTours", ctx).Return(cached, nil).Once()

	got, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	mockRepo.AssertNotCalled(t, "List")
	mockCache.AssertExpectations(t)
}

func TestTourService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockCache{}
	service := NewTourService(mockRepo, mockCache)

	ctx := context.Background()
	tours := []domain.Tour{{ID: "tour-1"}, {ID: "tour-2"}}

	mockCache.On("GetTours", ctx).Return(nil, errors.New("redis: nil")).Once()
	mockRepo.On("List", ctx).Return(tours, nil).Once()
	mockCache.On("SetTours", ctx, tours).Return(nil).Once()

	got, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestTourService_List_NoCache(t *testing.T) {
	mockRepo := &MockTourRepository{}
	service := NewTourService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("List", ctx).Return([]domain.Tour{{ID: "tour-1"}}, nil).Once()

	got, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	mockRepo.AssertExpectations(t)
}

func TestTourService_GetBySlug_CacheHit(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockCache{}
	service := NewTourService(mockRepo, mockCache)

	ctx := context.Background()
	tour := &domain.Tour{ID: "tour-1", Slug: "da-nang-3n2d"}

	mockCache.On("GetTour", ctx, "da-nang-3n2d").Return(tour, nil).Once()

	got, err := service.GetBySlug(ctx, "da-nang-3n2d")

	assert.NoError(t, err)
	assert.Same(t, tour, got)
	mockRepo.AssertNotCalled(t, "GetBySlug")
}

func TestTourService_GetBySlug_CacheMissThenStore(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockCache{}
	service := NewTourService(mockRepo, mockCache)

	ctx := context.Background()
	tour := &domain.Tour{ID: "tour-1", Slug: "da-nang-3n2d"}

	mockCache.On("GetTour", ctx, "da-nang-3n2d").Return(nil, errors.New("redis: nil")).Once()
	mockRepo.On("GetBySlug", ctx, "da-nang-3n2d").Return(tour, nil).Once()
	mockCache.On("SetTour", ctx, tour).Return(nil).Once()

	got, err := service.GetBySlug(ctx, "da-nang-3n2d")

	assert.NoError(t, err)
	assert.Same(t, tour, got)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestTourService_GetBySlug_NotFound(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockCache{}
	service := NewTourService(mockRepo, mockCache)

	ctx := context.Background()
	mockCache.On("GetTour", ctx, "missing").Return(nil, errors.New("redis: nil")).Once()
	mockRepo.On("GetBySlug", ctx, "missing").Return(nil, repository.ErrTourNotFound).Once()

	got, err := service.GetBySlug(ctx, "missing")

	assert.ErrorIs(t, err, repository.ErrTourNotFound)
	assert.Nil(t, got)
	mockCache.AssertNotCalled(t, "SetTour")
}

func TestTourService_GetByID_BypassesCache(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockCache{}
	service := NewTourService(mockRepo, mockCache)

	ctx := context.Background()
	tour := &domain.Tour{ID: "tour-1"}

	mockRepo.On("GetByID", ctx, "tour-1").Return(tour, nil).Once()

	got, err := service.GetByID(ctx, "tour-1")

	assert.NoError(t, err)
	assert.Same(t, tour, got)
	mockCache.AssertNotCalled(t, "GetTour")
	mockRepo.AssertExpectations(t)
}
