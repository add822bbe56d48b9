package genai

import "fmt"

// ErrorKind tags the failure modes of the AI path so the boundary layer
// can decide how to render each one.
type ErrorKind string

const (
	KindNotConfigured   ErrorKind = "not_configured"
	KindUnavailable     ErrorKind = "service_unavailable"
	KindNoCandidates    ErrorKind = "no_candidates"
	KindContentFiltered ErrorKind = "content_filtered"
	KindTimeout         ErrorKind = "timeout"
)

type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}
