package uistate

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/validation"
)

var ErrLineIndex = errors.New("line index out of range")

const dateInputLayout = "2006-01-02T15:04"

// DraftHeader is the order header as edited in the form.
type DraftHeader struct {
	Number         string `json:"number"`
	DateAndTime    string `json:"date_and_time"`
	CustomerID     int    `json:"customer"`
	ShippingMethod string `json:"shipping_method"`
	ShippingCost   string `json:"shipping_cost"`
	Status         string `json:"status"`
}

type LinePatch struct {
	ProductID *int    `json:"product"`
	Quantity  *string `json:"quantity"`
	UnitPrice *string `json:"unit_price"`
}

// DraftView is a copy of the draft safe to serialize.
type DraftView struct {
	EditingID int `json:"editing_id"`
	validation.OrderForm
}

// OrderDraft is the order being composed in one session. EditingID 0
// means a new order.
type OrderDraft struct {
	now func() time.Time
	loc *time.Location

	mu        sync.Mutex
	editingID int
	form      validation.OrderForm
}

func newOrderDraft(now func() time.Time, loc *time.Location) *OrderDraft {
	d := &OrderDraft{now: now, loc: loc}
	d.form = d.blank()
	return d
}

func (d *OrderDraft) blank() validation.OrderForm {
	return validation.OrderForm{
		DateAndTime:    d.now().In(d.loc).Format(dateInputLayout),
		ShippingMethod: string(models.ShippingStandard),
		Status:         string(models.OrderStatusPending),
		Items:          []models.DraftLineItem{},
	}
}

func (d *OrderDraft) View() DraftView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DraftView{EditingID: d.editingID, OrderForm: d.formLocked()}
}

// Form returns the draft as submitted to validation.
func (d *OrderDraft) Form() validation.OrderForm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.formLocked()
}

func (d *OrderDraft) formLocked() validation.OrderForm {
	f := d.form
	f.Items = append([]models.DraftLineItem{}, d.form.Items...)
	return f
}

func (d *OrderDraft) EditingOrderID() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editingID
}

// SetEditing points the draft at an order that already exists, keeping the
// form as it is. A retry after a partly failed create then edits that order
// instead of creating another one.
func (d *OrderDraft) SetEditing(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editingID = id
}

// Load replaces the draft with a persisted order for editing.
func (d *OrderDraft) Load(o models.Order) {
	items := make([]models.DraftLineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, models.DraftLineItem{
			ProductID: it.ProductID,
			Quantity:  strconv.Itoa(it.Quantity),
			UnitPrice: it.UnitPrice.StringFixed(2),
		})
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.editingID = o.ID
	d.form = validation.OrderForm{
		Number:         o.Number,
		DateAndTime:    o.DateAndTime.In(d.loc).Format(dateInputLayout),
		CustomerID:     o.CustomerID,
		ShippingMethod: string(o.ShippingMethod),
		ShippingCost:   o.ShippingCost.StringFixed(2),
		Status:         string(o.Status),
		Items:          items,
	}
}

func (d *OrderDraft) SetHeader(h DraftHeader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form.Number = h.Number
	d.form.DateAndTime = h.DateAndTime
	d.form.CustomerID = h.CustomerID
	d.form.ShippingMethod = h.ShippingMethod
	d.form.ShippingCost = h.ShippingCost
	d.form.Status = h.Status
}

// SetCustomer stores a picked customer id; the customer itself is untouched.
func (d *OrderDraft) SetCustomer(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form.CustomerID = id
}

// AddProduct appends a line for a picked product with quantity 1 at the
// product's current price.
func (d *OrderDraft) AddProduct(p models.ProductOption) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form.Items = append(d.form.Items, models.DraftLineItem{
		ProductID: p.ID,
		Quantity:  "1",
		UnitPrice: p.UnitPrice.StringFixed(2),
	})
	return len(d.form.Items) - 1
}

func (d *OrderDraft) UpdateLine(i int, p LinePatch) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.form.Items) {
		return ErrLineIndex
	}
	line := &d.form.Items[i]
	if p.ProductID != nil {
		line.ProductID = *p.ProductID
	}
	if p.Quantity != nil {
		line.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		line.UnitPrice = *p.UnitPrice
	}
	return nil
}

func (d *OrderDraft) RemoveLine(i int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.form.Items) {
		return ErrLineIndex
	}
	d.form.Items = append(d.form.Items[:i], d.form.Items[i+1:]...)
	return nil
}

// Clear resets the draft to a blank new order.
func (d *OrderDraft) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editingID = 0
	d.form = d.blank()
}
