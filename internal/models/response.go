package models

// Response is the uniform JSON envelope returned by every endpoint.
type Response struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}
