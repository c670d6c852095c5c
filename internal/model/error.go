package model

// ErrorResponse is the consistent JSON structure for all API error responses.
// Code is a stable machine-readable classifier so callers can decide whether
// to retry, prompt the user, or give up without parsing the message.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
