package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/upb/healthedu-backend/models"
)

// maxBodyBytes bounds request bodies read by DecodeAndValidate
const maxBodyBytes = 1 << 20

var (
	// validate is the singleton validator instance
	validate *validator.Validate
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).IsValid()
	})
	_ = validate.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return models.Language(fl.Field().String()).IsValid()
	})
	_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).IsValid()
	})
	// media_url accepts an http(s) URL, or "" to clear an optional link
	_ = validate.RegisterValidation("media_url", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return v == "" || validate.Var(v, "http_url") == nil
	})
}

// Normalizer is implemented by request payloads that clean themselves up
// (trim, lowercase) before validation
type Normalizer interface {
	Normalize()
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewValidationError(validationErrors)
		}
		return err
	}
	return nil
}

// DecodeAndValidate decodes a JSON body into dst, normalizes it and validates it.
// Empty bodies, malformed JSON, unknown fields and trailing data are validation errors.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &ValidationError{Message: "Request body must contain a single JSON object"}
	}

	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}

	return ValidateStruct(dst)
}

func decodeError(err error) *ValidationError {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)

	switch {
	case errors.Is(err, io.EOF):
		return &ValidationError{Message: "Request body is required"}
	case errors.As(err, &typeErr):
		return &ValidationError{
			Message: "Validation failed",
			Fields:  map[string]string{typeErr.Field: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)},
		}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return &ValidationError{
			Message: "Validation failed",
			Fields:  map[string]string{field: fmt.Sprintf("%s is not allowed", field)},
		}
	case errors.As(err, &maxErr):
		return &ValidationError{Message: "Request body is too large"}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &ValidationError{Message: "Request body contains malformed JSON"}
	default:
		return &ValidationError{Message: "Invalid request body"}
	}
}

// ValidationError wraps validation errors with structured details
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError from validator.ValidationErrors
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		tag := err.Tag()

		switch tag {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", field)
		case "email":
			fields[field] = fmt.Sprintf("%s must be a valid email", field)
		case "url":
			fields[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "http_url", "media_url":
			fields[field] = fmt.Sprintf("%s must be a valid http or https URL", field)
		case "min":
			fields[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			fields[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "gte":
			fields[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
		case "category":
			fields[field] = fmt.Sprintf("%s must be one of: %s", field, joinValues(models.Categories))
		case "language":
			fields[field] = fmt.Sprintf("%s must be one of: %s", field, joinValues(models.Languages))
		case "role":
			fields[field] = fmt.Sprintf("%s must be one of: %s", field, joinValues(models.ValidRoles))
		default:
			fields[field] = fmt.Sprintf("%s validation failed on '%s' tag", field, tag)
		}
	}

	return &ValidationError{
		Message: "Validation failed",
		Fields:  fields,
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
