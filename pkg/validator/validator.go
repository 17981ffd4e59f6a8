// Package validator binds JSON request bodies and query structs and reports
// field failures keyed by their JSON names.
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ghuser/qrcodeapp/pkg/httpx"
)

// ValidationFailed is the "error" value of every 400 carrying field messages.
const ValidationFailed = "Validation failed"

// gidPattern matches Admin API global ids: gid://shopify/<Type>/<numeric id>.
var gidPattern = regexp.MustCompile(`^gid://shopify/([A-Za-z]+)/[0-9]+$`)

var validate = newValidate()

// IsGID reports whether s is a global id. An empty typ accepts any resource type.
func IsGID(s, typ string) bool {
	m := gidPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	return typ == "" || m[1] == typ
}

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// gid=Product accepts only product ids; a bare gid accepts any resource type.
	_ = v.RegisterValidation("gid", func(fl validator.FieldLevel) bool {
		return IsGID(fl.Field().String(), fl.Param())
	})
	return v
}

// FieldErrors maps JSON field names to messages.
type FieldErrors map[string]string

// FieldErrors lets errhttp render f as a field-level 400.
func (f FieldErrors) FieldErrors() map[string]string { return f }

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+": "+v)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate runs the struct's validate tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors flattens validator errors into FieldErrors. Any
// other error yields an empty map.
func FormatValidationErrors(err error) FieldErrors {
	out := FieldErrors{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	p := fe.Param()
	switch fe.Tag() {
	case "required", "required_if":
		return "This field is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Minimum length is %s", p)
		}
		return fmt.Sprintf("Must be at least %s", p)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Maximum length is %s", p)
		}
		return fmt.Sprintf("Must be at most %s", p)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", p)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", p)
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(p), ", ")
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "url":
		return "Must be a valid URL"
	case "numeric":
		return "Must be a numeric value"
	case "startswith":
		return fmt.Sprintf("Must start with %q", p)
	case "gid":
		if p == "" {
			return "Must be a Shopify global id"
		}
		return fmt.Sprintf("Must be a %s id (gid://shopify/%s/...)", p, p)
	default:
		return fmt.Sprintf("Validation failed on '%s'", fe.Tag())
	}
}

// WriteFieldErrors answers 400 with {"error": "Validation failed", "fields": ...}.
func WriteFieldErrors(w http.ResponseWriter, fields FieldErrors) {
	httpx.JSON(w, http.StatusBadRequest, map[string]any{
		"error":  ValidationFailed,
		"fields": fields,
	})
}

// ValidateRequest decodes the JSON body into T and validates it. On failure
// the response is already written and ok is false.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (req *T, ok bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		status, msg := httpx.DecodeStatus(err)
		httpx.JSONError(w, status, msg)
		return nil, false
	}
	if err := Validate(&v); err != nil {
		WriteFieldErrors(w, FormatValidationErrors(err))
		return nil, false
	}
	return &v, true
}
