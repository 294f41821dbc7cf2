package tours

import (
	"context"

	"github.com/vuhd/tourbooking/internal/domain"
	"github.com/vuhd/tourbooking/internal/repository"
)

type TourUseCase interface {
	List(ctx context.Context) ([]domain.Tour, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tour, error)
	GetByID(ctx context.Context, id string) (*domain.Tour, error)
}

type Cache interface {
	GetTours(ctx context.Context) ([]domain.Tour, error)
	SetTours(ctx context.Context, tours []domain.Tour) error
	GetTour(ctx context.Context, slug string) (*domain.Tour, error)
	SetTour(ctx context.Context, tour *domain.Tour) error
}

type TourService struct {
	repo  repository.TourRepository
	cache Cache
}

func NewTourService(repo repository.TourRepository, cache Cache) *TourService {
	return &TourService{repo: repo, cache: cache}
}

func (s *TourService) List(ctx context.Context) ([]domain.Tour, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTours(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	tours, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTours(ctx, tours)
	}
	return tours, nil
}

func (s *TourService) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTour(ctx, slug); err == nil && cached != nil {
			return cached, nil
		}
	}

	tour, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTour(ctx, tour)
	}
	return tour, nil
}

func (s *TourService) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	return s.repo.GetByID(ctx, id)
}

var _ TourUseCase = (*TourService)(nil)
