// Package validation registers the board's enum tags on the validator used by
// gin binding and turns binding failures into field-level messages.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/cuongbtq/jobboard/internal/board/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Tag names usable in `binding` struct tags
const (
	TagCity            = "city"
	TagSector          = "sector"
	TagJobType         = "jobtype"
	TagExperienceLevel = "experience"
	TagCompanyType     = "companytype"

	// TagWebsite accepts a URL or an empty string, which clears the field
	TagWebsite = "website"
)

var enumValues = map[string][]string{
	TagCity:            domain.Cities,
	TagSector:          domain.Sectors,
	TagJobType:         domain.JobTypes,
	TagExperienceLevel: domain.ExperienceLevels,
	TagCompanyType:     domain.CompanyTypes,
}

// Register installs the enum tags and reports fields by their json/form name
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)

	for tag, allowed := range enumValues {
		allowed := allowed
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for _, a := range allowed {
				if value == a {
					return true
				}
			}
			return false
		})
		if err != nil {
			return fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}

	err := v.RegisterValidation(TagWebsite, func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || v.Var(value, "url") == nil
	})
	if err != nil {
		return fmt.Errorf("failed to register %q validation: %w", TagWebsite, err)
	}

	return nil
}

// RegisterWithGin installs the tags on gin's default binding engine
func RegisterWithGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	return Register(v)
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// FieldError describes one rejected field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a failed binding, ready to be rendered as a 400
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		if f.Field == "" {
			parts[i] = f.Message
			continue
		}
		parts[i] = f.Field + " " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewFieldError builds an Error for a single field
func NewFieldError(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}}
}

// Translate converts a binding error into an *Error with readable messages
func Translate(err error) *Error {
	var already *Error
	if errors.As(err, &already) {
		return already
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &Error{Fields: make([]FieldError, 0, len(verrs))}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: describe(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return NewFieldError(typeErr.Field, fmt.Sprintf("must be a %s", jsonKind(typeErr.Type)))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return NewFieldError("", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return NewFieldError("", "request body must be a JSON object")
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return NewFieldError("", fmt.Sprintf("%q is not a valid number", numErr.Num))
	}

	return NewFieldError("", "malformed request")
}

func describe(fe validator.FieldError) string {
	if allowed, ok := enumValues[fe.Tag()]; ok {
		return "must be one of: " + strings.Join(allowed, ", ")
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "url", TagWebsite:
		return "must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String {
			return "must not be empty"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	default:
		return "failed the " + fe.Tag() + " check"
	}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Ptr:
		return jsonKind(t.Elem())
	default:
		return t.Kind().String()
	}
}
