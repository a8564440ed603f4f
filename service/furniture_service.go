// file: service/furniture_service.go

package service

import (
	"context"
	"encoding/json"
	"go-furniture-api/model"
	"go-furniture-api/repository"
	"time"
)

// catalogCacheKey caches the public catalog listing. The catalog is read
// far more often than it changes, so a cache-aside on the list pays off.
const catalogCacheKey = "furnitures:all"

const catalogCacheTTL = 10 * time.Minute

// FurnitureService handles catalog business logic with a cache-aside
// strategy on the public listing.
type FurnitureService struct {
	repo  repository.IFurnitureRepository
	cache ICacheClient
}

func NewFurnitureService(repo repository.IFurnitureRepository, cache ICacheClient) *FurnitureService {
	return &FurnitureService{repo: repo, cache: cache}
}

// ListFurnitures returns the whole catalog, serving from Redis when the
// cached copy is still fresh. Cache failures fall through to the database.
func (s *FurnitureService) ListFurnitures() ([]*model.Furniture, error) {
	ctx := context.Background()

	cached, err := s.cache.Get(ctx, catalogCacheKey).Result()
	if err == nil {
		var furnitures []*model.Furniture
		if err := json.Unmarshal([]byte(cached), &furnitures); err == nil {
			return furnitures, nil
		}
	}

	furnitures, err := s.repo.GetAllFurnitures()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(furnitures); err == nil {
		s.cache.Set(ctx, catalogCacheKey, data, catalogCacheTTL)
	}

	return furnitures, nil
}

func (s *FurnitureService) GetFurniture(id int) (*model.Furniture, error) {
	return s.repo.GetFurnitureByID(id)
}

func (s *FurnitureService) CreateFurniture(f *model.Furniture) error {
	if err := s.repo.CreateFurniture(f); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

func (s *FurnitureService) UpdateFurniture(f *model.Furniture) error {
	if err := s.repo.UpdateFurniture(f); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

func (s *FurnitureService) DeleteFurniture(id int) error {
	if err := s.repo.DeleteFurniture(id); err != nil {
		return err
	}
	s.invalidateCatalog()
	return nil
}

func (s *FurnitureService) invalidateCatalog() {
	s.cache.Del(context.Background(), catalogCacheKey)
}
