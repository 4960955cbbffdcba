package response

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"hospital-management/pkg/validator"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Envelope is the body of every JSON reply.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta fills TotalPages from total and limit.
func NewMeta(page, limit int, total int64) *Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// SuccessMessage derives the default success message from an operation name,
// e.g. "create_patient" -> "Create-Patient Successful.".
func SuccessMessage(operation string) string {
	return titleWords(strings.ReplaceAll(operation, "_", "-")) + " Successful."
}

// titleWords title-cases every run of letters, so a letter following a digit
// or an apostrophe starts a new word ("patient2fa" -> "Patient2Fa").
func titleWords(s string) string {
	// A Caser keeps state and must not be shared between goroutines.
	titleCaser := cases.Title(language.Und)
	var b strings.Builder
	start := -1
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) && start < 0:
			start = i
		case !unicode.IsLetter(r) && start >= 0:
			b.WriteString(titleCaser.String(s[start:i]))
			start = -1
			b.WriteRune(r)
		case !unicode.IsLetter(r):
			b.WriteRune(r)
		}
	}
	if start >= 0 {
		b.WriteString(titleCaser.String(s[start:]))
	}
	return b.String()
}

// NewSuccess builds a success envelope. An empty message is derived from operation.
func NewSuccess(operation, message string, data interface{}) Envelope {
	if message == "" {
		message = SuccessMessage(operation)
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	return Envelope{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewFailure builds a failure envelope carrying errs verbatim. Empty maps and
// slices are dropped like nil.
func NewFailure(errs interface{}, message string) Envelope {
	if isEmpty(errs) {
		errs = nil
	}
	return Envelope{
		Success: false,
		Message: message,
		Data:    map[string]interface{}{},
		Errors:  errs,
	}
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// NewFieldFailure builds a failure envelope whose message is the first
// message of the first field.
func NewFieldFailure(errs validator.FieldErrors) Envelope {
	var payload interface{}
	if len(errs) > 0 {
		payload = errs
	}
	return NewFailure(payload, errs.First())
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, operation string, data interface{}) {
	JSON(w, http.StatusOK, NewSuccess(operation, "", data))
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, NewSuccess("", message, data))
}

func SuccessWithMeta(w http.ResponseWriter, operation string, data interface{}, meta *Meta) {
	env := NewSuccess(operation, "", data)
	env.Meta = meta
	JSON(w, http.StatusOK, env)
}

func Fail(w http.ResponseWriter, statusCode int, errs interface{}, message string) {
	JSON(w, statusCode, NewFailure(errs, message))
}

func FailFields(w http.ResponseWriter, statusCode int, errs validator.FieldErrors) {
	JSON(w, statusCode, NewFieldFailure(errs))
}

func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bad request"
	}
	Fail(w, http.StatusBadRequest, nil, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Fail(w, http.StatusUnauthorized, nil, message)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Fail(w, http.StatusNotFound, nil, message)
}

func Conflict(w http.ResponseWriter, message string) {
	Fail(w, http.StatusConflict, nil, message)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Fail(w, http.StatusInternalServerError, nil, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Fail(w, http.StatusForbidden, nil, message)
}
