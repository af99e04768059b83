package utils

import (
	"encoding/json"
	"net/http"
)

// Response status values
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// ErrorResponse is the single error body shape returned to clients
type ErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse wraps a collection with its size
type ListResponse struct {
	Status string      `json:"status"`
	Count  int         `json:"count"`
	Data   interface{} `json:"data"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response with data
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Status: StatusSuccess, Data: data})
}

// WriteList writes a 200 OK response for a collection of count items
func WriteList(w http.ResponseWriter, count int, data interface{}) error {
	return WriteJSON(w, http.StatusOK, ListResponse{Status: StatusSuccess, Count: count, Data: data})
}

// WriteCreated writes a 201 Created response with data and an optional message
func WriteCreated(w http.ResponseWriter, message string, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Status: StatusSuccess, Message: message, Data: data})
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError writes an error body. 4xx responses are "fail", everything else "error".
func WriteError(w http.ResponseWriter, status int, message string, fields map[string]string) error {
	bodyStatus := StatusError
	if status >= 400 && status < 500 {
		bodyStatus = StatusFail
	}

	return WriteJSON(w, status, ErrorResponse{
		Status:  bodyStatus,
		Message: message,
		Errors:  fields,
	})
}
