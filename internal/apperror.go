package internal

// AppError is the JSON error body sent to clients. The code is kept for
// logging and handler dispatch but never serialized; existing clients only
// expect the "error" field.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

func (e *AppError) Error() string {
	return e.Message
}
