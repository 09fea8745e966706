package transport

// UserResponse is the external shape of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

type DeletedResponse struct {
	Deleted string `json:"deleted"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func NewError(code, message, detail string) ErrorResponse {
	return ErrorResponse{Error: message, Code: code, Detail: detail}
}
