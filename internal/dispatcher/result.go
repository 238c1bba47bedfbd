package dispatcher

import "net/http"

// Kind classifies the outcome of handling one gesture
type Kind int

const (
	// KindSuccess means the action was injected
	KindSuccess Kind = iota
	// KindIgnored means the gesture is well-formed but has no mapping
	KindIgnored
	// KindValidationError means the request carried no usable gesture
	KindValidationError
	// KindExecutionError means the mapping resolved but injection failed
	KindExecutionError
)

// String returns the metric/log label for the kind
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindIgnored:
		return "ignored"
	case KindValidationError:
		return "validation_error"
	case KindExecutionError:
		return "execution_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of Dispatcher.Handle. Exactly one of Action
// (for KindSuccess) or Reason (for every other kind) is meaningful.
type Result struct {
	Kind   Kind
	Action string
	Reason string
}

// Success builds a success result for action
func Success(action string) Result {
	return Result{Kind: KindSuccess, Action: action}
}

// Ignored builds an ignored result
func Ignored(reason string) Result {
	return Result{Kind: KindIgnored, Reason: reason}
}

// ValidationError builds a validation error result
func ValidationError(reason string) Result {
	return Result{Kind: KindValidationError, Reason: reason}
}

// ExecutionError builds an execution error result
func ExecutionError(reason string) Result {
	return Result{Kind: KindExecutionError, Reason: reason}
}

// Status returns the wire status string: "success", "ignored" or "error"
func (r Result) Status() string {
	switch r.Kind {
	case KindSuccess:
		return "success"
	case KindIgnored:
		return "ignored"
	default:
		return "error"
	}
}

// HTTPStatus returns the HTTP status code that carries this result
func (r Result) HTTPStatus() int {
	switch r.Kind {
	case KindSuccess, KindIgnored:
		return http.StatusOK
	case KindValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
