package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/validation"
)

type CustomerStore interface {
	List(ctx context.Context) ([]models.Customer, error)
	Create(ctx context.Context, in models.NewCustomer) (*models.Customer, error)
	Update(ctx context.Context, id int, in models.NewCustomer) error
	Delete(ctx context.Context, id int) error
}

type CustomerService struct {
	store CustomerStore
	pub   publisher
}

// NewCustomerService builds the service. events may be nil.
func NewCustomerService(store CustomerStore, events EventPublisher, topic string) *CustomerService {
	return &CustomerService{store: store, pub: newPublisher(events, topic)}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.store.List(ctx)
}

func (s *CustomerService) Create(ctx context.Context, f validation.CustomerForm) (*models.Customer, error) {
	in, err := validation.ValidateCustomer(f)
	if err != nil {
		return nil, err
	}
	c, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	s.pub.publish(ctx, "customer_created", c.ID, c)
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id int, f validation.CustomerForm) error {
	in, err := validation.ValidateCustomer(f)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, id, in); err != nil {
		return fmt.Errorf("update customer %d: %w", id, err)
	}
	s.pub.publish(ctx, "customer_updated", id, in)
	return nil
}

func (s *CustomerService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	s.pub.publish(ctx, "customer_deleted", id, nil)
	return nil
}
