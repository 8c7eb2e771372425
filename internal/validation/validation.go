package validation

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxMediaIDLength = 128
	MaxPathLength    = 255
)

var (
	validate *validator.Validate

	mediaIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.:\-]+$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// JSON tag as the field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("media_id", func(fl validator.FieldLevel) bool {
		return IsMediaID(fl.Field().String())
	})
	_ = validate.RegisterValidation("canonical_path", func(fl validator.FieldLevel) bool {
		return IsCanonicalPath(fl.Field().String())
	})
}

// IsMediaID reports whether s looks like an identifier issued by the media service.
func IsMediaID(s string) bool {
	return len(s) > 0 && len(s) <= MaxMediaIDLength && mediaIDPattern.MatchString(s)
}

// IsCanonicalPath reports whether s is a rooted path without query or fragment.
func IsCanonicalPath(s string) bool {
	return strings.HasPrefix(s, "/") && len(s) <= MaxPathLength && !strings.ContainsAny(s, "?# \t\n")
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ErrorsToJson(validationErrs error) (string, error) {
	errsMap := make(map[string]string)
	var vErrs validator.ValidationErrors
	if ok := asValidationErrors(validationErrs, &vErrs); !ok {
		errsMap["_"] = validationErrs.Error()
	}
	for _, fieldErr := range vErrs {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	errsJson, err := json.Marshal(errsMap)
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	v, ok := err.(validator.ValidationErrors)
	if ok {
		*target = v
	}
	return ok
}
