package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the layout of every date field in the forms.
const DateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their form names so messages match the page.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate performs validation on a struct.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// FormatValidationError formats validation errors into a readable string.
func FormatValidationError(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		field := strings.ReplaceAll(e.Field(), "_", " ")
		switch e.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, field+" must be a valid email address")
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of %s", field, e.Param()))
		case "datetime":
			messages = append(messages, field+" must be a date like 1990-01-31")
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return strings.Join(messages, ", ")
}

// BindAndValidate binds the submitted form into obj and validates it.
// The returned error is safe to show on the page.
func BindAndValidate(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBind(obj); err != nil {
		return errors.New("invalid form submission")
	}
	if err := Validate(obj); err != nil {
		return errors.New(FormatValidationError(err))
	}
	return nil
}

// ParseDate turns an optional form date into a model value.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return &t, nil
}

// FormatDate renders an optional date for a form input.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
