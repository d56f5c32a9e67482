package supplier

import (
	"context"
	"time"

	"retailcore/internal/core/id"
	"retailcore/pkg/logger"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name         string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Address      string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Supplier, error) {
	now := time.Now().UTC()
	sup := &Supplier{
		ID:           id.New(),
		Name:         input.Name,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := sup.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	logger.Info(ctx, "supplier created", "supplier_id", sup.ID, "name", sup.Name)
	return sup, nil
}

func (s *Service) GetByID(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	return s.repo.GetByID(ctx, supplierID)
}

func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Name         *string
	ContactName  *string
	ContactEmail *string
	ContactPhone *string
	Address      *string
}

func (s *Service) Update(ctx context.Context, supplierID id.ID, input UpdateInput) (*Supplier, error) {
	sup, err := s.repo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		sup.Name = *input.Name
	}
	if input.ContactName != nil {
		sup.ContactName = *input.ContactName
	}
	if input.ContactEmail != nil {
		sup.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		sup.ContactPhone = *input.ContactPhone
	}
	if input.Address != nil {
		sup.Address = *input.Address
	}
	sup.UpdatedAt = time.Now().UTC()

	if err := sup.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *Service) Delete(ctx context.Context, supplierID id.ID) error {
	if _, err := s.repo.GetByID(ctx, supplierID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, supplierID)
}
