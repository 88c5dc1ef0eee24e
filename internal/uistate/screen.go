// Package uistate holds per-session console state: list screens, the order
// draft and the pickers. Nothing here is shared between sessions or with
// the server cache.
package uistate

type Entity string

const (
	EntityCustomers Entity = "customers"
	EntityProducts  Entity = "products"
	EntityOrders    Entity = "orders"
)

func ParseEntity(s string) (Entity, bool) {
	switch e := Entity(s); e {
	case EntityCustomers, EntityProducts, EntityOrders:
		return e, true
	}
	return "", false
}

// Screen is the list/form state of one entity. EditID 0 means no row is
// being edited.
type Screen struct {
	ShowAddForm bool   `json:"show_add_form"`
	EditID      int    `json:"edit_id"`
	Search      string `json:"search"`
}

type ScreenPatch struct {
	ShowAddForm *bool   `json:"show_add_form"`
	EditID      *int    `json:"edit_id"`
	Search      *string `json:"search"`
}

func (s Screen) apply(p ScreenPatch) Screen {
	if p.ShowAddForm != nil {
		s.ShowAddForm = *p.ShowAddForm
	}
	if p.EditID != nil {
		s.EditID = max(*p.EditID, 0)
	}
	if p.Search != nil {
		s.Search = *p.Search
	}
	return s
}
