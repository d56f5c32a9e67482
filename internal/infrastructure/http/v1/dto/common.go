// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// Response is the success envelope every endpoint returns.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewResponse wraps data in the standard envelope.
func NewResponse(message string, data any) Response {
	return Response{Message: message, Data: data}
}

// ErrorResponse is the error body produced by the error middleware.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
