package eerror

import "fmt"

type EchoError struct {
	Err string
}

func New(format string, args ...any) *EchoError {
	return &EchoError{Err: fmt.Sprintf(format, args...)}
}

func (e *EchoError) Error() string {
	return e.Err
}
