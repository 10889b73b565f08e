package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// reservedSlugs are path segments the public directory routes already use.
var reservedSlugs = map[string]bool{
	"search": true,
}

// IsReservedSlug reports whether slug would collide with a directory route.
func IsReservedSlug(slug string) bool {
	return reservedSlugs[slug]
}

// VerificationAnswer is the expected answer to the "What is 3 + 4?" check on
// the public forms.
const VerificationAnswer = "7"

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		slug := fl.Field().String()
		return slugPattern.MatchString(slug) && !IsReservedSlug(slug)
	})
	_ = v.RegisterValidation("verification", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == VerificationAnswer
	})

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs
	}

	for _, e := range validationErrors {
		field := e.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		switch e.Tag() {
		case "required", "notblank":
			errs[field] = field + " is required"
		case "email":
			errs[field] = field + " must be a valid email address"
		case "min":
			errs[field] = field + " must be at least " + e.Param() + " characters"
		case "max":
			errs[field] = field + " must be at most " + e.Param() + " characters"
		case "gte":
			errs[field] = field + " must be greater than or equal to " + e.Param()
		case "lte":
			errs[field] = field + " must be less than or equal to " + e.Param()
		case "oneof":
			errs[field] = field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
		case "slug":
			if value, _ := e.Value().(string); IsReservedSlug(value) {
				errs[field] = field + " \"" + value + "\" is reserved"
				break
			}
			errs[field] = field + " may only contain lowercase letters, digits and single hyphens"
		case "verification":
			errs[field] = "Incorrect answer to verification question"
		default:
			errs[field] = field + " is invalid"
		}
	}

	return errs
}
