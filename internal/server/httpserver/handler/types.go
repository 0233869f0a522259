package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses the
// Prometheus exposition format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"` // Additional error details
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// StatusResponse is the response body for GET /api/status.
type StatusResponse struct {
	Version        string `json:"version"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	AuthMode       string `json:"auth_mode"`
	SessionsActive int    `json:"sessions_active"`
	Workspaces     int    `json:"workspaces"`
}

// SessionResponse represents a session in API responses. The token hash
// is deliberately absent.
type SessionResponse struct {
	ID           string    `json:"id"`
	IPAddress    string    `json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	LastAccessIP string    `json:"last_access_ip,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	LastActive   time.Time `json:"last_active"`
}

// ListSessionsResponse is the response body for GET /api/sessions.
type ListSessionsResponse struct {
	Items    []SessionResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// RevokeSessionResponse is the response body for DELETE /api/sessions/{id}.
type RevokeSessionResponse struct {
	Revoked bool `json:"revoked"`
}
