package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/validation"
)

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, in models.NewProduct) (*models.Product, error)
	Update(ctx context.Context, id int, in models.NewProduct) error
	Delete(ctx context.Context, id int) error
}

type ProductService struct {
	store ProductStore
	pub   publisher
}

func NewProductService(store ProductStore, events EventPublisher, topic string) *ProductService {
	return &ProductService{store: store, pub: newPublisher(events, topic)}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.store.List(ctx)
}

func (s *ProductService) Create(ctx context.Context, f validation.ProductForm) (*models.Product, error) {
	in, err := validation.ValidateProduct(f)
	if err != nil {
		return nil, err
	}
	p, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.pub.publish(ctx, "product_created", p.ID, p)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id int, f validation.ProductForm) error {
	in, err := validation.ValidateProduct(f)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, id, in); err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	s.pub.publish(ctx, "product_updated", id, in)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	s.pub.publish(ctx, "product_deleted", id, nil)
	return nil
}
