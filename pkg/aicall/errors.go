package aicall

import "fmt"

// Kind classifies a failed AI call. The distinction matters to the UI: a
// timeout gets a "server waking up" message, a configuration error an
// admin-facing one.
type Kind string

const (
	KindTimeout      Kind = "TIMEOUT"
	KindNetwork      Kind = "NETWORK_FAILURE"
	KindServerConfig Kind = "SERVER_CONFIGURATION_ERROR"
	KindServer       Kind = "SERVER_ERROR"
	KindUnknown      Kind = "UNKNOWN_ERROR"
)

// CallError is the classified failure returned by Invoke.
type CallError struct {
	Kind    Kind
	Message string
	Details string
}

func (e *CallError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// UserMessage returns the user-facing recovery text for the error kind.
func (e *CallError) UserMessage() string {
	switch e.Kind {
	case KindTimeout:
		return "The AI server did not respond in time. It may be waking up, please try again in a moment."
	case KindNetwork:
		return "Could not reach the AI server. Please check your connection and try again."
	case KindServerConfig:
		return "The AI service is not configured. Please contact the administrator."
	case KindServer:
		return "The AI service returned an error. Please try again."
	default:
		return "Something went wrong while talking to the AI service."
	}
}
