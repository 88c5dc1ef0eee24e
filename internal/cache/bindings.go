package cache

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/Skotchmaster/orders_admin/internal/models"
)

type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, in models.NewCustomer) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int, in models.NewCustomer) error
	DeleteCustomer(ctx context.Context, id int) error
}

type ProductAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in models.NewProduct) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int, in models.NewProduct) error
	DeleteProduct(ctx context.Context, id int) error
}

type OrderAPI interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	CreateOrder(ctx context.Context, in models.NewOrder) (*models.Order, error)
	UpdateOrder(ctx context.Context, id int, in models.NewOrder) error
	DeleteOrder(ctx context.Context, id int) error
}

type OrderItemAPI interface {
	ListOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error)
	CreateOrderItem(ctx context.Context, in models.NewOrderItem) (*models.OrderItem, error)
	UpdateOrderItem(ctx context.Context, id int, in models.NewOrderItem) error
	DeleteOrderItem(ctx context.Context, id int) error
}

type API interface {
	CustomerAPI
	ProductAPI
	OrderAPI
	OrderItemAPI
}

type Bindings struct {
	Customers  *Customers
	Products   *Products
	Orders     *Orders
	OrderItems *OrderItems
}

// New wires one binding per collection. store may be nil.
func New(api API, stale time.Duration, store Store) *Bindings {
	customers := NewQuery("customers", stale, store, sortedByID(api.ListCustomers, func(c models.Customer) int { return c.ID }))
	products := NewQuery("products", stale, store, sortedByID(api.ListProducts, func(p models.Product) int { return p.ID }))
	orders := NewQuery("orders", stale, store, sortedByID(api.ListOrders, func(o models.Order) int { return o.ID }))
	items := NewQuery("order-items", stale, store, sortedByID(func(ctx context.Context) ([]models.OrderItem, error) {
		return api.ListOrderItems(ctx, 0)
	}, func(i models.OrderItem) int { return i.ID }))

	return &Bindings{
		Customers:  &Customers{api: api, list: customers, orders: orders},
		Products:   &Products{api: api, list: products},
		Orders:     &Orders{api: api, list: orders, items: items},
		OrderItems: &OrderItems{api: api, list: items, orders: orders},
	}
}

func sortedByID[T any](fetch func(context.Context) ([]T, error), id func(T) int) func(context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		out, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
		return out, nil
	}
}

type invalidator interface {
	Invalidate(ctx context.Context)
}

// mutate runs fn and, only when it succeeds, invalidates targets.
func mutate(ctx context.Context, m *mutations, fn func() error, targets ...invalidator) error {
	m.begin()
	err := fn()
	m.end(err)
	if err != nil {
		return err
	}
	for _, t := range targets {
		t.Invalidate(ctx)
	}
	return nil
}

type Customers struct {
	api    CustomerAPI
	list   *Query[[]models.Customer]
	orders *Query[[]models.Order]
	m      mutations
}

func (b *Customers) List(ctx context.Context) ([]models.Customer, error) { return b.list.Get(ctx) }

func (b *Customers) Create(ctx context.Context, in models.NewCustomer) (*models.Customer, error) {
	var out *models.Customer
	err := mutate(ctx, &b.m, func() (err error) {
		out, err = b.api.CreateCustomer(ctx, in)
		return err
	}, b.list, b.orders)
	return out, err
}

func (b *Customers) Update(ctx context.Context, id int, in models.NewCustomer) error {
	return mutate(ctx, &b.m, func() error { return b.api.UpdateCustomer(ctx, id, in) }, b.list, b.orders)
}

func (b *Customers) Delete(ctx context.Context, id int) error {
	return mutate(ctx, &b.m, func() error { return b.api.DeleteCustomer(ctx, id) }, b.list, b.orders)
}

func (b *Customers) Status() MutationStatus { return b.m.snapshot() }

type Products struct {
	api  ProductAPI
	list *Query[[]models.Product]
	m    mutations
}

func (b *Products) List(ctx context.Context) ([]models.Product, error) { return b.list.Get(ctx) }

func (b *Products) Create(ctx context.Context, in models.NewProduct) (*models.Product, error) {
	var out *models.Product
	err := mutate(ctx, &b.m, func() (err error) {
		out, err = b.api.CreateProduct(ctx, in)
		return err
	}, b.list)
	return out, err
}

func (b *Products) Update(ctx context.Context, id int, in models.NewProduct) error {
	return mutate(ctx, &b.m, func() error { return b.api.UpdateProduct(ctx, id, in) }, b.list)
}

func (b *Products) Delete(ctx context.Context, id int) error {
	return mutate(ctx, &b.m, func() error { return b.api.DeleteProduct(ctx, id) }, b.list)
}

func (b *Products) Status() MutationStatus { return b.m.snapshot() }

type Orders struct {
	api   OrderAPI
	list  *Query[[]models.Order]
	items *Query[[]models.OrderItem]
	m     mutations
}

func (b *Orders) List(ctx context.Context) ([]models.Order, error) { return b.list.Get(ctx) }

func (b *Orders) Create(ctx context.Context, in models.NewOrder) (*models.Order, error) {
	var out *models.Order
	err := mutate(ctx, &b.m, func() (err error) {
		out, err = b.api.CreateOrder(ctx, in)
		return err
	}, b.list)
	return out, err
}

func (b *Orders) Update(ctx context.Context, id int, in models.NewOrder) error {
	return mutate(ctx, &b.m, func() error { return b.api.UpdateOrder(ctx, id, in) }, b.list)
}

// Delete also drops the item snapshot since the API cascades the delete.
func (b *Orders) Delete(ctx context.Context, id int) error {
	return mutate(ctx, &b.m, func() error { return b.api.DeleteOrder(ctx, id) }, b.list, b.items)
}

func (b *Orders) Status() MutationStatus { return b.m.snapshot() }

type OrderItems struct {
	api    OrderItemAPI
	list   *Query[[]models.OrderItem]
	orders *Query[[]models.Order]
	m      mutations
}

func (b *OrderItems) List(ctx context.Context) ([]models.OrderItem, error) { return b.list.Get(ctx) }

// ForOrder reads one order's items straight from the API.
func (b *OrderItems) ForOrder(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	return b.api.ListOrderItems(ctx, orderID)
}

func (b *OrderItems) Create(ctx context.Context, in models.NewOrderItem) (*models.OrderItem, error) {
	var out *models.OrderItem
	err := mutate(ctx, &b.m, func() (err error) {
		out, err = b.api.CreateOrderItem(ctx, in)
		return err
	}, b.list, b.orders)
	return out, err
}

func (b *OrderItems) Update(ctx context.Context, id int, in models.NewOrderItem) error {
	return mutate(ctx, &b.m, func() error { return b.api.UpdateOrderItem(ctx, id, in) }, b.list, b.orders)
}

func (b *OrderItems) Delete(ctx context.Context, id int) error {
	return mutate(ctx, &b.m, func() error { return b.api.DeleteOrderItem(ctx, id) }, b.list, b.orders)
}

func (b *OrderItems) Status() MutationStatus { return b.m.snapshot() }
