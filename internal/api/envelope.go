package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the standard API response envelope.
type Response struct {
	Result  interface{} `json:"result"`
	Success bool        `json:"success"`
	Errors  []APIError  `json:"errors"`
}

// APIError represents a single error in the response envelope.
type APIError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Reasons []string `json:"reasons,omitempty"`
}

// ResultInfo carries pagination metadata for list endpoints.
type ResultInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Count      int `json:"count"`
	TotalCount int `json:"total_count"`
}

// SuccessResponse builds a successful envelope.
func SuccessResponse(result interface{}) Response {
	return Response{Result: result, Success: true, Errors: []APIError{}}
}

// ErrorResponse builds an error envelope.
func ErrorResponse(code int, message string, reasons ...string) Response {
	return Response{
		Result:  nil,
		Success: false,
		Errors:  []APIError{{Code: code, Message: message, Reasons: reasons}},
	}
}

// PaginatedResponse builds a successful envelope that includes result_info.
func PaginatedResponse(result interface{}, info ResultInfo) map[string]interface{} {
	return map[string]interface{}{
		"result":      result,
		"success":     true,
		"errors":      []APIError{},
		"result_info": info,
	}
}

// WriteJSON serialises resp as JSON and writes it to w with the given HTTP
// status code.
func WriteJSON(w http.ResponseWriter, status int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
