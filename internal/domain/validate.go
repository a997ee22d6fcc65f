package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxPrice is the first value that no longer fits decimal(10,2).
var maxPrice = decimal.New(1, 8)

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		return f.Interface().(decimal.Decimal).String()
	}, decimal.Decimal{})

	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && ValidPrice(d)
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return OrderStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("product_kind", func(fl validator.FieldLevel) bool {
		_, err := ParseProductKind(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})
	return v
}

// ValidPrice reports whether d is non-negative and fits decimal(10,2)
// without rounding.
func ValidPrice(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThan(maxPrice) && d.Equal(d.Round(2))
}

// ValidationError lists the fields that failed type, length or range
// checks.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, rule := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s failed %s", field, rule))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate runs the field rules declared on a record's struct tags.
func Validate(record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		ve.Fields[fe.Field()] = fe.Tag()
	}
	return ve
}
