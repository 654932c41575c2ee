package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"taskhub/internal/errs"
	"taskhub/internal/models"
	"taskhub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// newValidator reports field errors under their JSON (or form) names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	// Tags on an Optional field apply to its value; an absent or null value counts as empty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		switch o := field.Interface().(type) {
		case models.Optional[string]:
			return o.Value
		case models.Optional[uint]:
			return o.Value
		}
		return nil
	}, models.Optional[string]{}, models.Optional[uint]{})
	return v
}

// bindBody decodes the request body into out and validates it. Any failure is a
// validation error; the store is never touched.
func bindBody(c *fiber.Ctx, v *validator.Validate, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errs.Validation("Invalid request body", map[string]string{"body": err.Error()})
	}
	if err := v.Struct(out); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Validation("Validation failed", nil)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return errs.Validation("Validation failed", fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}

// parseID reads the :id path parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, errs.FieldValidation("id", "must be a non-negative integer")
	}
	return uint(id), nil
}

// parsePage reads ?offset= and ?limit=, defaulting to the first page.
func parsePage(c *fiber.Ctx) (services.Page, error) {
	page := services.DefaultPage()
	for _, q := range []struct {
		name string
		dst  *int
	}{{"offset", &page.Offset}, {"limit", &page.Limit}} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, errs.FieldValidation(q.name, "must be an integer")
		}
		*q.dst = n
	}
	return page, page.Validate()
}
