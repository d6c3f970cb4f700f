// Package validate checks catalog records before they are sent to the backend.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"catalogadmin/internal/types"
)

// ValidationError carries one message per offending field, keyed by the
// field's JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+" "+e.Fields[key])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Field(key string) string {
	if e == nil {
		return ""
	}
	return e.Fields[key]
}

func (e *ValidationError) add(key, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[key]; !exists {
		e.Fields[key] = msg
	}
}

func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

var skuPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

func structValidator() *validator.Validate {
	engineOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
			value, err := types.Decimal(fl.Field().String()).Float()
			return err == nil && value > 0
		})
		_ = v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
			return skuPattern.MatchString(fl.Field().String())
		})
		engine = v
	})
	return engine
}

type collectionForm struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=4000"`
	Position    int    `json:"position" validate:"gte=0"`
}

type categoryForm struct {
	Name         string `json:"name" validate:"required,max=120"`
	CollectionID string `json:"collection_id" validate:"omitempty,max=64"`
	Position     int    `json:"position" validate:"gte=0"`
}

type productForm struct {
	Name        string `json:"name" validate:"required,max=200"`
	SKU         string `json:"sku" validate:"required,max=64,sku"`
	Description string `json:"description" validate:"max=20000"`
	Price       string `json:"price" validate:"required,positive_decimal"`
	Currency    string `json:"currency" validate:"omitempty,len=3,uppercase"`
	CategoryID  string `json:"category_id" validate:"omitempty,max=64"`
}

type vendorSKUForm struct {
	Vendor     string `json:"vendor" validate:"required,max=120"`
	VendorSKU  string `json:"vendor_sku" validate:"required,max=64,sku"`
	ProductID  string `json:"product_id" validate:"required,max=64"`
	ProductSKU string `json:"product_sku" validate:"omitempty,max=64,sku"`
}

func Collection(c *types.Collection) error {
	if c == nil {
		return &ValidationError{Fields: map[string]string{"name": "is required"}}
	}
	return check(collectionForm{
		Name:        strings.TrimSpace(c.Name),
		Description: c.Description,
		Position:    c.Position,
	})
}

func Category(c *types.Category) error {
	if c == nil {
		return &ValidationError{Fields: map[string]string{"name": "is required"}}
	}
	return check(categoryForm{
		Name:         strings.TrimSpace(c.Name),
		CollectionID: c.CollectionID.String(),
		Position:     c.Position,
	})
}

func Product(p *types.Product) error {
	if p == nil {
		return &ValidationError{Fields: map[string]string{"name": "is required"}}
	}
	return check(productForm{
		Name:        strings.TrimSpace(p.Name),
		SKU:         strings.TrimSpace(p.SKU),
		Description: p.Description,
		Price:       strings.TrimSpace(p.Price.String()),
		Currency:    p.Currency,
		CategoryID:  p.CategoryID.String(),
	})
}

func VendorSKU(v *types.VendorSKU) error {
	if v == nil {
		return &ValidationError{Fields: map[string]string{"vendor": "is required"}}
	}
	return check(vendorSKUForm{
		Vendor:     strings.TrimSpace(v.Vendor),
		VendorSKU:  strings.TrimSpace(v.VendorSKU),
		ProductID:  v.ProductID.String(),
		ProductSKU: strings.TrimSpace(v.ProductSKU),
	})
}

// Record validates any catalog record by its dynamic type.
func Record(record any) error {
	switch r := record.(type) {
	case *types.Collection:
		return Collection(r)
	case *types.Category:
		return Category(r)
	case *types.Product:
		return Product(r)
	case *types.VendorSKU:
		return VendorSKU(r)
	default:
		return fmt.Errorf("validate: unsupported record %T", record)
	}
}

func check(form any) error {
	err := structValidator().Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range fieldErrs {
		out.add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "uppercase":
		return "must be uppercase"
	case "positive_decimal":
		return "must be a positive amount"
	case "sku":
		return "may only contain letters, digits, dots, dashes and underscores"
	default:
		return "is invalid"
	}
}
