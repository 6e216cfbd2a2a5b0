package dto

import "time"

// PaginationInfo describes one page of a list. CurrentPage is always within
// [1, TotalPages].
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"27"`
}

// APIResponse is the envelope of every successful response.
type APIResponse struct {
	Success    bool            `json:"success" example:"true"`
	Message    string          `json:"message" example:"Operation completed successfully"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Timestamp  time.Time       `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful envelope.
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewPaginatedResponse wraps a page of items.
func NewPaginatedResponse(items interface{}, pagination PaginationInfo, message string) APIResponse {
	resp := NewSuccessResponse(items, message)
	resp.Pagination = &pagination
	return resp
}
