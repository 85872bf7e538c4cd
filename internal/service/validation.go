package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/devconnector/devconnector-go/internal/model"
)

// ValidationError carries every failed field check of a request.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func fieldError(param, msg string) *ValidationError {
	return &ValidationError{Fields: []model.FieldError{{Msg: msg, Param: param, Location: "body"}}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest checks req against its validate tags. messages maps a JSON field
// name to the message reported when that field fails.
func validateRequest(req any, messages map[string]string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		f := model.FieldError{
			Msg:      messages[fe.Field()],
			Param:    fe.Field(),
			Location: "body",
		}
		if s, ok := fe.Value().(string); ok {
			f.Value = s
		}
		if f.Msg == "" {
			f.Msg = "Invalid value"
		}
		fields = append(fields, f)
	}
	return &ValidationError{Fields: fields}
}
