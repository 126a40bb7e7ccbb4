package catalog

import (
	"context"
	"fmt"
)

type apiClient interface {
	Get(ctx context.Context, path string, out any) error
}

// Service is a read-through accessor over the catalog endpoints; no caching,
// no retries, payloads pass through untouched beyond type coercion.
type Service struct {
	api apiClient
}

func NewService(api apiClient) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Service{api: api}, nil
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.api.Get(ctx, "/categorias", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Service) CategoryByID(ctx context.Context, id int) (*Category, error) {
	var category Category
	if err := s.api.Get(ctx, fmt.Sprintf("/categorias/%d", id), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Service) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.api.Get(ctx, "/productos", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Service) ProductByID(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := s.api.Get(ctx, fmt.Sprintf("/productos/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) ProductsByCategory(ctx context.Context, categoryID int) ([]Product, error) {
	var products []Product
	if err := s.api.Get(ctx, fmt.Sprintf("/productos/categoria/%d", categoryID), &products); err != nil {
		return nil, err
	}
	return products, nil
}
