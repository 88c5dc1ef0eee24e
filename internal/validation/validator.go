package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	str := func(fn func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool { return fn(fl.Field().String()) }
	}
	rules := map[string]validator.Func{
		"price":    str(priceRe.MatchString),
		"amount":   str(amountRe.MatchString),
		"digits":   str(digitsRe.MatchString),
		"nonneg":   str(func(s string) bool { return !strings.HasPrefix(s, "-") }),
		"posint":   str(isPositiveInt),
		"maxqty":   str(fitsInt32),
		"int32":    str(fitsInt32),
		"formdate": str(isFormDate),
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

// check validates s and translates failures into field errors. messages is
// keyed by "<field>.<tag>", with list indexes written as "*".
func check(s any, messages map[string]string) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var failed validator.ValidationErrors
	if !errors.As(err, &failed) {
		return err
	}

	errs := make(Errors, 0, len(failed))
	for _, fe := range failed {
		field := fieldPath(fe.Namespace())
		msg, ok := messages[messageKey(field)+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		errs.add(field, msg)
	}
	return errs
}

// fieldPath turns "orderRules.items[1].quantity" into "items.1.quantity".
func fieldPath(ns string) string {
	_, rest, ok := strings.Cut(ns, ".")
	if !ok {
		rest = ns
	}
	rest = strings.ReplaceAll(rest, "[", ".")
	return strings.ReplaceAll(rest, "]", "")
}

func messageKey(field string) string {
	parts := strings.Split(field, ".")
	for i, p := range parts {
		if p != "" && digitsRe.MatchString(p) {
			parts[i] = "*"
		}
	}
	return strings.Join(parts, ".")
}
