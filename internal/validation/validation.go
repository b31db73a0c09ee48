// Package validation checks required request fields before any database work.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"asistencia-api/api"
	"asistencia-api/internal/apperr"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Struct validates the `validate` tags of a request and lists every missing
// field in a single error.
func (val *Validator) Struct(req any) error {
	err := val.v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal(err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}

	return apperr.Validation(fields...)
}

// TeacherUpdate requires at least one updatable field to be present.
func (val *Validator) TeacherUpdate(req *api.TeacherUpdateRequest) error {
	if req == nil || (req.Name == nil && req.ContractHours == nil && req.Status == nil) {
		return &apperr.Error{
			Kind:    apperr.KindValidation,
			Message: "at least one field is required",
			Fields:  []string{"nombre", "horas_segun_contrato", "estado"},
		}
	}
	return nil
}

// SearchTerm requires a non-blank search term.
func (val *Validator) SearchTerm(q string) error {
	if strings.TrimSpace(q) == "" {
		return &apperr.Error{
			Kind:    apperr.KindValidation,
			Message: "search term is required",
			Fields:  []string{"q"},
		}
	}
	return nil
}
