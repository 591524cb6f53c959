package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{Success: true, Message: message, Data: data})
}

func Error(w http.ResponseWriter, statusCode int, message string, detail interface{}) {
	JSON(w, statusCode, Response{Success: false, Message: message, Error: detail})
}

func ValidationError(w http.ResponseWriter, fields interface{}) {
	Error(w, http.StatusBadRequest, "Validation failed", fields)
}

// fail writes a detail-less error, falling back to the status default
// when message is empty.
func fail(w http.ResponseWriter, statusCode int, message, fallback string) {
	if message == "" {
		message = fallback
	}
	Error(w, statusCode, message, nil)
}

func BadRequest(w http.ResponseWriter, message string) {
	fail(w, http.StatusBadRequest, message, "Bad request")
}

func Unauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, message, "Unauthorized")
}

func Forbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, message, "Forbidden")
}

func NotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, message, "Resource not found")
}

func Conflict(w http.ResponseWriter, message string) {
	fail(w, http.StatusConflict, message, "Conflict")
}

func InternalServerError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, message, "Internal server error")
}
