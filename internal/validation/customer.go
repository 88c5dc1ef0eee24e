package validation

import (
	"strings"

	"github.com/Skotchmaster/orders_admin/internal/models"
)

type CustomerForm struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

var customerMessages = map[string]string{
	"name.required":  "Name is required",
	"email.required": "Email is required",
	"email.email":    "Enter a valid email",
}

func ValidateCustomer(f CustomerForm) (models.NewCustomer, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)

	if err := check(f, customerMessages); err != nil {
		return models.NewCustomer{}, err
	}
	return models.NewCustomer{Name: f.Name, Email: f.Email}, nil
}
