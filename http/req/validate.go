package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/trailhead"
	"golang.org/x/text/language"
)

type validator struct {
	valid *v10.Validate
}

// newValidator constructs a validator that names fields the way clients send them
// and knows the "enum" and "locale" rules.
func newValidator() validator {
	v := v10.New()
	v.RegisterTagNameFunc(fieldName)
	v.RegisterValidation("enum", validateEnumerable)
	v.RegisterValidation("locale", validateLocale)

	return validator{v}
}

// fieldName prefers a field's json name, then its schema name.
// A field hidden from both reports no name.
func fieldName(field reflect.StructField) string {
	for _, key := range []string{"json", "schema"} {
		name, _, _ := strings.Cut(field.Tag.Get(key), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}

	return ""
}

// validate checks structPtr against its "validate" struct tags,
// collecting every broken rule into ValidationErrors.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	validateErrs := make(ValidationErrors, len(errs))
	for i, fe := range errs {
		validateErrs[i] = toValidationError(fe)
	}

	return validateErrs
}

// toValidationError drops the struct name from fe's namespace
// and spells the rule as tag[=param]; type.
func toValidationError(fe v10.FieldError) ValidationError {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}

	return ValidationError{
		Field: field,
		Got:   fe.Value(),
		Rule:  rule + "; " + fe.Type().String(),
	}
}

// validateEnumerable checks a field is a valid Enumerable, or a non-empty slice of them.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return checkEnums(field)
	}

	vals := make([]reflect.Value, field.Len())
	for i := range vals {
		vals[i] = field.Index(i)
	}

	return checkEnums(vals...)
}

func checkEnums(items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		if !item.CanInterface() {
			return false
		}

		enum, ok := item.Interface().(trailhead.Enumerable)
		if !ok || enum.Valid() != nil {
			return false
		}
	}

	return true
}

// validateLocale checks a string field holds a well-formed BCP 47 language tag.
func validateLocale(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	_, err := language.Parse(field.String())
	return err == nil
}
