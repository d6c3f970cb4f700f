package sandbox

import "fmt"

type ServiceErrorKind string

const (
	// ServiceErrorInvalid and ServiceErrorConflict are reported to clients as a
	// failure envelope on a 200 response, the way the catalog backend does.
	ServiceErrorInvalid  ServiceErrorKind = "invalid"
	ServiceErrorConflict ServiceErrorKind = "conflict"
	ServiceErrorNotFound ServiceErrorKind = "not_found"
	ServiceErrorInternal ServiceErrorKind = "internal"
)

type ServiceError struct {
	Kind     ServiceErrorKind
	Message  string
	Messages []string
	Err      error
}

func (e *ServiceError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *ServiceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func invalidError(messages ...string) *ServiceError {
	msg := "validation failed"
	if len(messages) == 1 {
		msg = messages[0]
	}
	return &ServiceError{Kind: ServiceErrorInvalid, Message: msg, Messages: messages}
}

func notFoundError(message string, err error) *ServiceError {
	return &ServiceError{Kind: ServiceErrorNotFound, Message: message, Err: err}
}

func conflictError(message string) *ServiceError {
	return &ServiceError{Kind: ServiceErrorConflict, Message: message, Messages: []string{message}}
}

func internalError(message string, err error) *ServiceError {
	return &ServiceError{Kind: ServiceErrorInternal, Message: message, Err: err}
}
