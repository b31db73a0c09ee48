package response

import (
	"errors"
	"io"
	"net/http"

	"asistencia-api/internal/apperr"

	"github.com/go-chi/render"
)

type Response struct {
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message"`
	Detail  string   `json:"error,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// Error Codes
type ErrCode string

var (
	VALIDATION_FAILED   ErrCode = "VALIDATION_FAILED"
	REFERENCE_NOT_FOUND ErrCode = "REFERENCE_NOT_FOUND"
	NOT_FOUND           ErrCode = "NOT_FOUND"
	CONFLICT            ErrCode = "CONFLICT"
	UNAVAILABLE         ErrCode = "SERVICE_UNAVAILABLE"
	INTERNAL            ErrCode = "INTERNAL"
)

func Error(code ErrCode, msg string) Response {
	return Response{
		Code:    string(code),
		Message: msg,
	}
}

// Status maps an error kind to its HTTP status.
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindReferential:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func Code(kind apperr.Kind) ErrCode {
	switch kind {
	case apperr.KindValidation:
		return VALIDATION_FAILED
	case apperr.KindReferential:
		return REFERENCE_NOT_FOUND
	case apperr.KindConflict:
		return CONFLICT
	case apperr.KindNotFound:
		return NOT_FOUND
	case apperr.KindUnavailable:
		return UNAVAILABLE
	default:
		return INTERNAL
	}
}

// FromError builds the status and body for any error. Unclassified errors
// become 500.
func FromError(err error) (int, Response) {
	e := apperr.As(err)

	resp := Response{
		Code:    string(Code(e.Kind)),
		Message: e.Text(),
		Fields:  e.Fields,
	}

	// driver message as diagnostic detail
	if cause := errors.Unwrap(e); cause != nil {
		resp.Detail = cause.Error()
	}

	return Status(e.Kind), resp
}

func Fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := FromError(err)
	render.Status(r, status)
	render.JSON(w, r, body)
}

// DecodeJSON reads a JSON request body into v. An empty body leaves v at its
// zero value so required-field validation reports what is missing; any other
// decode failure is a validation error.
func DecodeJSON(r *http.Request, v any) error {
	err := render.DecodeJSON(r.Body, v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperr.Validationf("invalid request body: %v", err)
}
