package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"paytrack/internal/constants"
)

// jsonResponse is the standard API response envelope.
type jsonResponse struct {
	Status  string      `json:"status"` // "success" or "error"
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// fieldError is one entry in a validation failure's per-field error list,
// carried in the error envelope's data.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

// newValidator builds the shared validator instance with error messages keyed
// by the JSON field name rather than the Go struct field.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(jsonResponse{Status: "error", Message: message})
}

func writeJSONErrorData(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(jsonResponse{Status: "error", Message: message, Data: data})
}

func writeJSONSuccess(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(jsonResponse{Status: "success", Message: message, Data: data})
}

func writeJSONCreated(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(jsonResponse{Status: "success", Message: message, Data: data})
}

// decodeAndValidate parses the JSON body into dst and runs struct validation.
// On failure it writes the 400 response itself and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, formatDecodeError(err))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			fields := make([]fieldError, 0, len(ve))
			messages := make([]string, 0, len(ve))
			for _, fe := range ve {
				msg := formatFieldError(fe)
				fields = append(fields, fieldError{Field: fe.Field(), Message: msg})
				messages = append(messages, msg)
			}
			writeJSONErrorData(w, http.StatusBadRequest, strings.Join(messages, ", "), fields)
			return false
		}
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func formatDecodeError(err error) string {
	if err == io.EOF {
		return "Request body is empty"
	}
	if syntaxErr, ok := err.(*json.SyntaxError); ok {
		return fmt.Sprintf("Invalid JSON at byte offset %d", syntaxErr.Offset)
	}
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		return fmt.Sprintf("Field '%s' should be of type %s", typeErr.Field, typeErr.Type.String())
	}
	return "Invalid request body"
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", fe.Field())
	case "email":
		return fmt.Sprintf("Field '%s' must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("Field '%s' must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("Field '%s' must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("Field '%s' must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("Field '%s' must not be negative", fe.Field())
	case "oneof":
		return fmt.Sprintf("Field '%s' must be one of: %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("Field '%s' must be exactly %s characters", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("Field '%s' is invalid", fe.Field())
}

// idParam extracts the {id} URL parameter. Writes the 400 response itself on
// a non-numeric value and returns false.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// dateQuery parses an optional ?name=YYYY-MM-DD query parameter. A missing
// parameter yields the zero time; a malformed one reports an error.
func dateQuery(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("query parameter '%s' must be YYYY-MM-DD", name)
	}
	return parsed, nil
}

// NotFoundHandler is the catch-all for unmatched routes, keeping 404s inside
// the JSON envelope.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, http.StatusNotFound, "Resource not found")
}

// normalizeStatusOrReject maps a request's attendance status to canonical
// form, writing the 400 response itself when unrecognized.
func normalizeStatusOrReject(w http.ResponseWriter, raw string) (string, bool) {
	status := constants.NormalizeAttendanceStatus(raw)
	if status == "" {
		writeJSONError(w, http.StatusBadRequest,
			"Field 'status' must be one of: present, absent, half-day, leave")
		return "", false
	}
	return status, true
}
