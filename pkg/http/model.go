package http

// APIResponse represents the standard API envelope consumed by the
// signage front-end: {success, data} on the happy path, {success,
// message} on failure.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"domain"`
	Message string                 `json:"message,omitempty" example:"Domain is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
