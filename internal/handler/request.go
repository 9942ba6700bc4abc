package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sakif/starwars-api/internal/apperror"
)

// maxBodyBytes caps request bodies. Every request type here is a couple of
// short strings.
const maxBodyBytes = 1 << 20

// validate reports field names by their json tag, so messages say
// "email is required" rather than "Email is required".
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody reads the JSON body into dst (a pointer to a request struct)
// and validates it.
//
// An absent, empty, null or unparseable body is reported as "body is null"
// before any field is looked at. Field errors come back in struct field
// order, and only the first one is reported.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, dst *T) error {
	var body *T

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil || body == nil {
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %v", apperror.ValidationFailed("body", "body is null"), err)
		}
		return apperror.ValidationFailed("body", "body is null")
	}

	if err := validate.Struct(body); err != nil {
		return validationError(err)
	}

	*dst = *body
	return nil
}

// validationError turns the first validator failure into an apperror with a
// field-specific message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.ValidationFailed("body", err.Error())
	}

	fe := verrs[0]
	field := fe.Field()

	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "email":
		msg = field + " must be a valid email address"
	case "max":
		msg = fmt.Sprintf("%s must be %s characters or less", field, fe.Param())
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
	return apperror.ValidationFailed(field, msg)
}
