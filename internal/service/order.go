package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/submissionlog"
	"github.com/Skotchmaster/orders_admin/internal/validation"
	"github.com/Skotchmaster/orders_admin/pkg/logging"
)

const DefaultConcurrency = 8

type OrderStore interface {
	List(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, in models.NewOrder) (*models.Order, error)
	Update(ctx context.Context, id int, in models.NewOrder) error
	Delete(ctx context.Context, id int) error
}

type OrderItemStore interface {
	ForOrder(ctx context.Context, orderID int) ([]models.OrderItem, error)
	Create(ctx context.Context, in models.NewOrderItem) (*models.OrderItem, error)
	Delete(ctx context.Context, id int) error
}

type SubmissionRecorder interface {
	Record(ctx context.Context, e *submissionlog.Entry) error
	ListByOrder(ctx context.Context, orderID, limit int) ([]submissionlog.Entry, error)
}

type OrderOptions struct {
	Recorder    SubmissionRecorder
	Events      EventPublisher
	Topic       string
	Location    *time.Location
	Concurrency int
}

type OrderService struct {
	orders      OrderStore
	items       OrderItemStore
	recorder    SubmissionRecorder
	pub         publisher
	loc         *time.Location
	concurrency int
}

func NewOrderService(orders OrderStore, items OrderItemStore, opts OrderOptions) *OrderService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &OrderService{
		orders:      orders,
		items:       items,
		recorder:    opts.Recorder,
		pub:         newPublisher(opts.Events, opts.Topic),
		loc:         opts.Location,
		concurrency: opts.Concurrency,
	}
}

type SubmitResult struct {
	OrderID int                   `json:"order_id"`
	Created bool                  `json:"created"`
	Items   []models.NewOrderItem `json:"items"`
	Deleted int                   `json:"deleted"`
	Ops     []OpResult            `json:"ops"`
}

// Submit saves an order and replaces its items with the merged draft lines.
// orderID 0 creates a new order. The header is written before any item
// request; on edit every existing item is deleted before any is created.
func (s *OrderService) Submit(ctx context.Context, orderID int, f validation.OrderForm) (*SubmitResult, error) {
	header, lines, err := validation.ValidateOrder(f, s.loc)
	if err != nil {
		return nil, err
	}

	// A client disconnect must not abort a half-written batch.
	ctx = logging.Detach(ctx)
	l := logging.FromContext(ctx).With("service", "order")

	entry := &submissionlog.Entry{OrderID: orderID, Mode: submissionlog.ModeCreate}
	if payload, err := json.Marshal(f); err == nil {
		entry.Payload = string(payload)
	}

	id := orderID
	if orderID > 0 {
		entry.Mode = submissionlog.ModeEdit
		if err := s.orders.Update(ctx, orderID, header); err != nil {
			s.finish(ctx, l, entry, submissionlog.StatusFailed, nil)
			return nil, fmt.Errorf("update order %d: %w", orderID, err)
		}
	} else {
		o, err := s.orders.Create(ctx, header)
		if err != nil {
			s.finish(ctx, l, entry, submissionlog.StatusFailed, nil)
			return nil, fmt.Errorf("create order: %w", err)
		}
		id = o.ID
	}
	entry.OrderID = id
	l = l.With("order_id", id, "mode", entry.Mode)

	res := &SubmitResult{
		OrderID: id,
		Created: orderID == 0,
		Items:   MergeLines(id, lines),
	}

	if orderID > 0 {
		existing, err := s.items.ForOrder(ctx, id)
		if err != nil {
			op := OpResult{Kind: OpListItems}
			op.fail(err)
			res.Ops = append(res.Ops, op)
			return nil, s.partial(ctx, l, entry, res, PhaseList)
		}

		ops := make([]OpResult, len(existing))
		for i, it := range existing {
			ops[i] = OpResult{Kind: OpDeleteItem, ItemID: it.ID, ProductID: it.ProductID}
		}
		s.runAll(ctx, ops, func(ctx context.Context, i int) error {
			return s.items.Delete(ctx, ops[i].ItemID)
		})
		res.Ops = append(res.Ops, ops...)
		for _, op := range ops {
			if op.OK() {
				res.Deleted++
			}
		}
		entry.ItemsDeleted = res.Deleted
		if res.Deleted < len(ops) {
			return nil, s.partial(ctx, l, entry, res, PhaseDelete)
		}
	}

	ops := make([]OpResult, len(res.Items))
	for i, it := range res.Items {
		ops[i] = OpResult{Kind: OpCreateItem, ProductID: it.ProductID}
	}
	s.runAll(ctx, ops, func(ctx context.Context, i int) error {
		created, err := s.items.Create(ctx, res.Items[i])
		if err != nil {
			return err
		}
		ops[i].ItemID = created.ID
		return nil
	})
	res.Ops = append(res.Ops, ops...)
	for _, op := range ops {
		if op.OK() {
			entry.ItemsCreated++
		}
	}
	if entry.ItemsCreated < len(ops) {
		return nil, s.partial(ctx, l, entry, res, PhaseCreate)
	}

	s.finish(ctx, l, entry, submissionlog.StatusCompleted, nil)
	s.pub.publish(ctx, "order_submitted", id, res)
	l.Info("order_submitted", "items", len(res.Items), "deleted", res.Deleted)
	return res, nil
}

// runAll issues every op concurrently, bounded by the service's limit, and
// waits for all of them. fn gets the op's index; failures are stored on
// the op.
func (s *OrderService) runAll(ctx context.Context, ops []OpResult, fn func(ctx context.Context, i int) error) {
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range ops {
		g.Go(func() error {
			if err := fn(ctx, i); err != nil {
				ops[i].fail(err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *OrderService) partial(ctx context.Context, l *slog.Logger, entry *submissionlog.Entry, res *SubmitResult, phase Phase) error {
	perr := &PartialFailureError{OrderID: res.OrderID, Phase: phase, Ops: res.Ops}
	failed := perr.Failed()
	l.Warn("order_submit_partial", "phase", phase, "failed", len(failed), "ops", len(res.Ops))
	s.finish(ctx, l, entry, submissionlog.StatusPartial, failed)
	s.pub.publish(ctx, "order_submit_failed", res.OrderID, map[string]any{"phase": phase, "failed": failed})
	return perr
}

func (s *OrderService) finish(ctx context.Context, l *slog.Logger, entry *submissionlog.Entry, status submissionlog.Status, failed []OpResult) {
	if s.recorder == nil {
		return
	}
	entry.Status = status
	msgs := make([]string, 0, len(failed))
	for _, op := range failed {
		msgs = append(msgs, op.String()+": "+op.Error)
	}
	b, _ := json.Marshal(msgs)
	entry.Failures = string(b)

	if err := s.recorder.Record(ctx, entry); err != nil {
		l.Warn("submission_log_error", "error", err)
	}
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) Items(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	items, err := s.items.ForOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list items of order %d: %w", orderID, err)
	}
	return items, nil
}

func (s *OrderService) Delete(ctx context.Context, id int) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	s.pub.publish(ctx, "order_deleted", id, nil)
	return nil
}

// Submissions returns the recorded submissions of an order, newest first.
func (s *OrderService) Submissions(ctx context.Context, orderID, limit int) ([]submissionlog.Entry, error) {
	if s.recorder == nil {
		return []submissionlog.Entry{}, nil
	}
	return s.recorder.ListByOrder(ctx, orderID, limit)
}
