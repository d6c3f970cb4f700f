package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorKind int

const (
	// KindNetwork covers transport failures and non-2xx responses.
	KindNetwork ErrorKind = iota
	// KindApplication is a 2xx response whose body reports failure.
	KindApplication
)

func (k ErrorKind) String() string {
	switch k {
	case KindApplication:
		return "application"
	default:
		return "network"
	}
}

const applicationFallbackMessage = "Request failed"

// RequestError is returned for every failed backend call. Message is fit for
// showing to the user.
type RequestError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Errors     []string
	Err        error
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AsRequestError returns the *RequestError in err's chain, if any.
func AsRequestError(err error) *RequestError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	return nil
}

// IsNotFound reports a 404 from the backend.
func IsNotFound(err error) bool {
	reqErr := AsRequestError(err)
	return reqErr != nil && reqErr.StatusCode == http.StatusNotFound
}

// UserMessage picks the text to show in a notification for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if reqErr := AsRequestError(err); reqErr != nil && strings.TrimSpace(reqErr.Message) != "" {
		return reqErr.Message
	}
	return err.Error()
}

func networkMessage(status int) string {
	if status <= 0 {
		return "Network error"
	}
	return fmt.Sprintf("Network error (%d)", status)
}

func networkError(status int, cause error) *RequestError {
	return &RequestError{
		Kind:       KindNetwork,
		StatusCode: status,
		Message:    networkMessage(status),
		Err:        cause,
	}
}

type errorPayload struct {
	Status string            `json:"status"`
	Errors []json.RawMessage `json:"errors"`
	Error  string            `json:"error"`
}

func decodeStatusError(status int, body []byte) error {
	reqErr := networkError(status, nil)
	payload, ok := parseErrorPayload(body)
	if !ok {
		return reqErr
	}
	messages := payload.messages()
	if len(messages) > 0 {
		reqErr.Message = messages[0]
		reqErr.Errors = messages
	}
	return reqErr
}

func decodeFailureEnvelope(status int, body []byte) error {
	payload, ok := parseErrorPayload(body)
	if !ok || !strings.EqualFold(strings.TrimSpace(payload.Status), "failure") {
		return nil
	}
	messages := payload.messages()
	reqErr := &RequestError{
		Kind:       KindApplication,
		StatusCode: status,
		Message:    applicationFallbackMessage,
		Errors:     messages,
	}
	if len(messages) > 0 {
		reqErr.Message = messages[0]
	}
	return reqErr
}

func parseErrorPayload(body []byte) (errorPayload, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return errorPayload{}, false
	}
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return errorPayload{}, false
	}
	return payload, true
}

// messages flattens the error list. Entries may be plain strings or objects
// carrying a message field.
func (p errorPayload) messages() []string {
	out := make([]string, 0, len(p.Errors)+1)
	for _, raw := range p.Errors {
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			if text = strings.TrimSpace(text); text != "" {
				out = append(out, text)
			}
			continue
		}
		var obj struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			text = strings.TrimSpace(obj.Message)
			if text == "" {
				text = strings.TrimSpace(obj.Detail)
			}
			if text != "" {
				out = append(out, text)
			}
		}
	}
	if len(out) == 0 && strings.TrimSpace(p.Error) != "" {
		out = append(out, strings.TrimSpace(p.Error))
	}
	return out
}
