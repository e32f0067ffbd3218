package httperr

// Error is an error that already knows the HTTP status it maps to.
// Handlers surface its message as-is; anything else becomes a generic 500.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}
