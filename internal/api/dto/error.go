package dto

// Error is the management API error body. Code is set when the failure maps
// to a known service error.
type Error struct {
	Error string `json:"error" example:"installation not found"`
	Code  string `json:"code,omitempty" example:"NOT_INSTALLED"`
}
