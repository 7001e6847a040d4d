package models

// Response is the common JSON envelope for all endpoints
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MissingFieldsResponse is returned when signup validation fails
type MissingFieldsResponse struct {
	MissingFields []string `json:"missing_fields"`
}
