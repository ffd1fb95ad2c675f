package orchestrator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCredentials = errors.New("please enter valid credentials")
	ErrMissingField       = errors.New("please fill all required fields")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidDomain      = errors.New("please provide a valid educational institution email address (.ac.ke, .edu, etc.)")
	ErrUnsupportedType    = errors.New("unsupported file type")
	ErrTooLarge           = errors.New("file size must be less than 10MB")
)

// ValidationError reports a rejected form. It unwraps to one of the
// sentinel errors above.
type ValidationError struct {
	Err    error
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	return e.Err.Error() + " (" + strings.Join(e.Fields, ", ") + ")"
}

func (e *ValidationError) Unwrap() error { return e.Err }

// FileError reports a rejected file selection.
type FileError struct {
	Err  error
	Name string
	Mime string
	Size int64
}

func (e *FileError) Error() string {
	return e.Name + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("name"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// checkRequired validates form against its `validate` tags and reports
// every failing field as missing, using the form's `name` tags.
func checkRequired(form any, sentinel error) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Err: sentinel}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Err: sentinel, Fields: fields}
}
