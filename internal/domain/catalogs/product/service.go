package product

import (
	"context"
	"time"

	"retailcore/internal/core/apperror"
	"retailcore/internal/core/id"
	"retailcore/internal/core/types"
	"retailcore/pkg/logger"
)

// Service implements catalog operations over products.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds fields for creating a product. Stock is the opening
// balance; subsequent changes go through sales, purchase receipts or
// inventory adjustments.
type CreateInput struct {
	Name  string
	SKU   string
	Price types.Money
	Stock int
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		ID:        id.New(),
		Name:      input.Name,
		SKU:       input.SKU,
		Price:     input.Price.Round(2),
		Stock:     input.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetBySKU(ctx, p.SKU); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("product", "sku", p.SKU)
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Info(ctx, "product created", "product_id", p.ID, "sku", p.SKU)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// UpdateInput holds the updatable catalog fields. Stock is deliberately
// absent: stock moves only through the ledger.
type UpdateInput struct {
	Name  *string
	SKU   *string
	Price *types.Money
}

func (s *Service) Update(ctx context.Context, productID id.ID, input UpdateInput) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.SKU != nil && *input.SKU != p.SKU {
		if existing, err := s.repo.GetBySKU(ctx, *input.SKU); err == nil && existing != nil {
			return nil, apperror.NewDuplicate("product", "sku", *input.SKU)
		} else if err != nil && !apperror.IsNotFound(err) {
			return nil, err
		}
		p.SKU = *input.SKU
	}
	if input.Price != nil {
		p.Price = input.Price.Round(2)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}
	logger.Info(ctx, "product deleted", "product_id", productID)
	return nil
}
