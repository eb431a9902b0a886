package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// Register installs the project's tags on v: `phone`, JSON field names in
// errors, and decimal values compared as numbers by gt/gte/lt/lte.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// New returns a validator reading `binding` struct tags, like gin's
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	// only fails on a malformed tag name
	_ = Register(v)
	return v
}

// FieldErrors converts a validator error into field -> message pairs.
// It returns nil when err is not a validation error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		field := e.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if msgs := CustomMessage(field); msgs != nil {
			if msg, ok := msgs[e.Tag()]; ok {
				out[field] = msg
				continue
			}
		}
		out[field] = DefaultMessage(field, e.Tag(), e.Param())
	}
	return out
}
