package catalog

// Kind classifies a service failure so callers can render it without
// inspecting concrete error values.
type Kind int

const (
	// KindValidation malformed input, always recoverable, user-facing
	KindValidation Kind = iota
	// KindNotFound book or borrow record absent
	KindNotFound
	// KindConflict valid input rejected by current state (no copies left,
	// duplicate ISBN, limit reached, nothing to return)
	KindConflict
	// KindUnexpected a collaborator failure that is a bug or outage signal,
	// not a normal user path
	KindUnexpected
)

// ServiceError a classified, user-presentable failure from the lending rules.
type ServiceError struct {
	Kind Kind
	Msg  string
}

func (e *ServiceError) Error() string {
	return e.Msg
}

// Validation builds a KindValidation error.
func Validation(msg string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Msg: msg}
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Msg: msg}
}

// Conflict builds a KindConflict error.
func Conflict(msg string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Msg: msg}
}

// Unexpected builds a KindUnexpected error.
func Unexpected(msg string) *ServiceError {
	return &ServiceError{Kind: KindUnexpected, Msg: msg}
}
