package handlers

import (
	"github.com/Skotchmaster/orders_admin/internal/cache"
)

type listMeta struct {
	Total int `json:"total"`
}

// listResponse carries a whole cached collection, already sorted by id.
type listResponse[T any] struct {
	Data     []T                   `json:"data"`
	Meta     listMeta              `json:"meta"`
	Mutation *cache.MutationStatus `json:"mutation,omitempty"`
}

func newListResponse[T any](items []T, status func() cache.MutationStatus) listResponse[T] {
	resp := listResponse[T]{Data: nonNil(items), Meta: listMeta{Total: len(items)}}
	if status != nil {
		st := status()
		resp.Mutation = &st
	}
	return resp
}
