package common

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

func NewCodedErrorResponse(code string, message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
		Code:    code,
	}
}
