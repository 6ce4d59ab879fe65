package errors

// ErrorBody is the inner error object of the wire envelope.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the JSON envelope returned to HTTP clients.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ToResponse converts the error into its wire envelope.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}
