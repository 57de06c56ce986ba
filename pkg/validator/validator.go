package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ghuser/boundedstr/pkg/bounded"
	"github.com/ghuser/boundedstr/pkg/httpx"
	"github.com/ghuser/boundedstr/pkg/telemetry"
)

// lengthChecker is satisfied by every bounded.String instantiation.
type lengthChecker interface {
	Validate() error
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := validate.RegisterValidation("bounded", validateBounded); err != nil {
		panic(fmt.Sprintf("validator: register bounded: %v", err))
	}
}

// validateBounded implements the "bounded" tag. Decoded bounded fields always
// pass; the tag catches fields that were absent from the payload and kept
// their zero value.
func validateBounded(fl validator.FieldLevel) bool {
	v, ok := fl.Field().Interface().(lengthChecker)
	if !ok {
		return false
	}
	return v.Validate() == nil
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors converts validator.ValidationErrors into a map of
// field name → human-readable message.
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "bounded":
		if v, ok := e.Value().(lengthChecker); ok {
			if err := v.Validate(); err != nil {
				return "Invalid length: " + err.Error()
			}
		}
		return "Invalid length"
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "min":
		return fmt.Sprintf("Minimum length is %s", e.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "email":
		return "Must be a valid email address"
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// RequestOption configures ValidateRequest.
type RequestOption func(*requestConfig)

type requestConfig struct {
	rejections *telemetry.LengthRejections
}

// WithRejections counts every bounded field the request is refused for.
func WithRejections(m *telemetry.LengthRejections) RequestOption {
	return func(c *requestConfig) { c.rejections = m }
}

// ValidateRequest decodes the JSON request body into T, validates it, and
// writes an error response if either step fails:
//   - malformed JSON or a non-string value for a bounded field → 400
//   - a bounded field outside its length range → 422 with the length message
//   - a failing validate tag → 422 with per-field messages
//
// Returns (parsedStruct, true) on success or (nil, false) on failure.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request, opts ...RequestOption) (*T, bool) {
	var cfg requestConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cfg.rejections.Record(r.Context(), decodeField(err), err)
		var de *bounded.DecodeError
		if errors.As(err, &de) {
			httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "Validation failed",
				"detail": de.Err.Error(),
			})
			return nil, false
		}
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if err := Validate(&req); err != nil {
		recordTagRejections(r.Context(), cfg.rejections, err)
		httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "Validation failed",
			"fields": FormatValidationErrors(err),
		})
		return nil, false
	}
	return &req, true
}

// decodeField names the JSON field a decode error belongs to when the decoder
// reports it, and "body" otherwise.
func decodeField(err error) string {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return te.Field
	}
	return "body"
}

// recordTagRejections counts bounded fields that failed the "bounded" tag,
// which happens when they were missing from the payload.
func recordTagRejections(ctx context.Context, m *telemetry.LengthRejections, err error) {
	var ve validator.ValidationErrors
	if m == nil || !errors.As(err, &ve) {
		return
	}
	for _, e := range ve {
		if v, ok := e.Value().(lengthChecker); ok && e.Tag() == "bounded" {
			m.Record(ctx, e.Field(), v.Validate())
		}
	}
}
