package domain

// ActionRequest is a single invocation of a catalog action on behalf of an account.
// It is built per call and discarded once the result is returned.
type ActionRequest struct {
	Action  string         `json:"action" yaml:"action" mapstructure:"action"`
	Params  map[string]any `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
	Account string         `json:"account" yaml:"account" mapstructure:"account"`
}

// ErrorKind classifies a failed invocation.
type ErrorKind string

const (
	// KindNone marks a successful result.
	KindNone ErrorKind = ""
	// KindConfig means the invoker is missing required configuration (e.g. the client key).
	KindConfig ErrorKind = "config"
	// KindValidation means the request was rejected before any network call.
	KindValidation ErrorKind = "validation"
	// KindRemote covers transport failures and non-2xx responses.
	KindRemote ErrorKind = "remote"
	// KindUnexpected covers construction and parsing failures.
	KindUnexpected ErrorKind = "unexpected"
)

// ActionResult is the outcome of an invocation.
// Its JSON form is the tool envelope {success, result?, error?}.
type ActionResult struct {
	Success bool           `json:"success"`
	Result  map[string]any `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
	Kind    ErrorKind      `json:"-"`
}

// NewSuccess wraps the parsed response payload.
func NewSuccess(payload map[string]any) ActionResult {
	return ActionResult{Success: true, Result: payload}
}

// NewFailure builds a failed result of the given kind.
func NewFailure(kind ErrorKind, message string) ActionResult {
	return ActionResult{Kind: kind, Error: message}
}

// Outcome returns a short label for metrics and logs: "success" or the error kind.
func (r ActionResult) Outcome() string {
	if r.Success {
		return "success"
	}
	if r.Kind == KindNone {
		return string(KindUnexpected)
	}
	return string(r.Kind)
}
