package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-console/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar los campos con su nombre JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate valida un request antes de enviarlo. Los fallos envuelven domain.ErrInvalidInput.
func Validate(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
	}
	switch r := req.(type) {
	case CreateProductRequest:
		return checkPrice(&r.Price)
	case *CreateProductRequest:
		return checkPrice(&r.Price)
	case UpdateProductRequest:
		return checkPrice(r.Price)
	case *UpdateProductRequest:
		return checkPrice(r.Price)
	}
	return nil
}

// decimal.Decimal no es comparable por el validador: el mínimo se revisa a mano.
func checkPrice(price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return fmt.Errorf("%w: price debe ser >= 0", domain.ErrInvalidInput)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " es obligatorio"
	case "email":
		return fe.Field() + " debe ser un email válido"
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s admite como máximo %s caracteres", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser >= %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", fe.Field(), fe.Param())
	default:
		return fe.Field() + " inválido"
	}
}
