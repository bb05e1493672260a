// Package types holds the wire envelopes shared by every admin console
// endpoint.
package types

// SuccessEnvelope wraps all successful responses; Data carries the
// resource, page, or report being returned.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape. Code is one of the stable
// codes from pkg/errors; Details is only populated for codes that allow
// it, such as validation field maps and readiness check results.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps all failed responses.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
