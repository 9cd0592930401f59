package diag

import "fmt"

// Kind is the classification renderers use for formatting and exit codes.
type Kind uint8

const (
	KindTypeError Kind = iota
	KindParse
	KindInternal
	KindLint
	KindRecursionLimit
	KindDuplicateDefinition
	KindIO
	KindTimings
)

func (k Kind) String() string {
	switch k {
	case KindTypeError:
		return "type"
	case KindParse:
		return "parse"
	case KindInternal:
		return "internal"
	case KindLint:
		return "lint"
	case KindRecursionLimit:
		return "recursion-limit"
	case KindDuplicateDefinition:
		return "duplicate-definition"
	case KindIO:
		return "io"
	case KindTimings:
		return "timings"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Label is the word pretty output puts before the message.
func (k Kind) Label(sev Severity) string {
	switch k {
	case KindParse:
		return "parse error"
	case KindInternal:
		return "internal error"
	case KindIO:
		return "io error"
	case KindTimings:
		return "timings"
	case KindLint:
		if sev == SevError {
			return "lint error"
		}
		return "lint warning"
	default:
		return severityLabel(sev)
	}
}
