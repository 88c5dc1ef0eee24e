package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/validation"
)

type fakeCustomers struct {
	created []models.NewCustomer
	err     error
}

func (f *fakeCustomers) List(ctx context.Context) ([]models.Customer, error) { return nil, nil }

func (f *fakeCustomers) Create(ctx context.Context, in models.NewCustomer) (*models.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return &models.Customer{ID: 1, Name: in.Name, Email: in.Email}, nil
}

func (f *fakeCustomers) Update(ctx context.Context, id int, in models.NewCustomer) error { return f.err }
func (f *fakeCustomers) Delete(ctx context.Context, id int) error                      { return f.err }

func TestCustomerService_Create(t *testing.T) {
	store := &fakeCustomers{}
	pub := &fakePublisher{}
	svc := NewCustomerService(store, pub, "")

	c, err := svc.Create(context.Background(), validation.CustomerForm{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)
	assert.Equal(t, []string{"customer_created"}, pub.types())

	_, err = svc.Create(context.Background(), validation.CustomerForm{Name: "Ann", Email: "nope"})
	require.ErrorIs(t, err, validation.ErrValidation)
	assert.Len(t, store.created, 1)
}

func TestCustomerService_WrapsStoreErrors(t *testing.T) {
	sentinel := errors.New("down")
	svc := NewCustomerService(&fakeCustomers{err: sentinel}, nil, "")

	err := svc.Delete(context.Background(), 3)
	require.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "delete customer 3")
}

type fakeProducts struct{ err error }

func (f *fakeProducts) List(ctx context.Context) ([]models.Product, error) { return nil, nil }
func (f *fakeProducts) Create(ctx context.Context, in models.NewProduct) (*models.Product, error) {
	return &models.Product{ID: 2, SKU: in.SKU}, f.err
}
func (f *fakeProducts) Update(ctx context.Context, id int, in models.NewProduct) error { return f.err }
func (f *fakeProducts) Delete(ctx context.Context, id int) error                     { return f.err }

func TestProductService_Update(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewProductService(&fakeProducts{}, pub, "")

	err := svc.Update(context.Background(), 2, validation.ProductForm{SKU: "A", Name: "B", UnitPrice: "10.5", StockLevel: "1"})
	require.ErrorIs(t, err, validation.ErrValidation)
	assert.Empty(t, pub.types())

	require.NoError(t, svc.Update(context.Background(), 2, validation.ProductForm{SKU: "A", Name: "B", UnitPrice: "10.50", StockLevel: "1"}))
	assert.Equal(t, []string{"product_updated"}, pub.types())
}
