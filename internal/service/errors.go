package service

import (
	"fmt"
)

type Phase string

const (
	PhaseList   Phase = "list"
	PhaseDelete Phase = "delete"
	PhaseCreate Phase = "create"
)

type OpKind string

const (
	OpListItems  OpKind = "list_items"
	OpDeleteItem OpKind = "delete_item"
	OpCreateItem OpKind = "create_item"
)

// OpResult is the outcome of one item request within a submission.
type OpResult struct {
	Kind      OpKind `json:"kind"`
	ItemID    int    `json:"item_id,omitempty"`
	ProductID int    `json:"product_id,omitempty"`
	Error     string `json:"error,omitempty"`
	Err       error  `json:"-"`
}

func (o OpResult) OK() bool { return o.Err == nil }

func (o *OpResult) fail(err error) {
	o.Err = err
	o.Error = err.Error()
}

func (o OpResult) String() string {
	switch o.Kind {
	case OpDeleteItem:
		return fmt.Sprintf("%s %d", o.Kind, o.ItemID)
	case OpCreateItem:
		return fmt.Sprintf("%s product %d", o.Kind, o.ProductID)
	}
	return string(o.Kind)
}

// PartialFailureError reports a submission whose header was saved but whose
// item requests did not all succeed. Ops holds every request issued so far.
// Nothing is rolled back.
type PartialFailureError struct {
	OrderID int
	Phase   Phase
	Ops     []OpResult
}

func (e *PartialFailureError) Error() string {
	failed := e.Failed()
	return fmt.Sprintf("order %d: %d of %d item operations failed in %s phase", e.OrderID, len(failed), len(e.Ops), e.Phase)
}

func (e *PartialFailureError) Failed() []OpResult {
	var out []OpResult
	for _, o := range e.Ops {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

func (e *PartialFailureError) Succeeded() []OpResult {
	var out []OpResult
	for _, o := range e.Ops {
		if o.OK() {
			out = append(out, o)
		}
	}
	return out
}

func (e *PartialFailureError) Unwrap() []error {
	var errs []error
	for _, o := range e.Ops {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errs
}
