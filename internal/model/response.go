package model

// FieldError describes one failed validation check or a credential failure.
type FieldError struct {
	Value    string `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

// ErrorsResponse is the 400 body for validation and credential failures.
type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

// MessageResponse is the {msg} body used for informational and not-found replies.
type MessageResponse struct {
	Msg string `json:"msg"`
}
