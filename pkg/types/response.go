// Package types defines the JSON envelopes shared by the contact and auth
// endpoints and by the page scripts that consume them.
package types

// SuccessEnvelope wraps every successful payload under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape; Details only appears for
// codes whose metadata allows it (validation field maps, mostly).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under "error".
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
