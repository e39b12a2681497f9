package api

var (
	ErrUnauthorized = newError("Unauthorized")
	ErrBadRequest   = newError("Body invalid")
)

// HTTPError is the JSON error body of the local API.
type HTTPError struct {
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func newError(message string) *HTTPError {
	return &HTTPError{Message: message}
}
