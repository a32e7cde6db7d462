package formskema

// ErrorState is the tri-state outcome tracked per field: no error (zero
// value), a bare flag, or a flag carrying a human-readable message. Messages
// come verbatim from the schema source and are never reformatted.
type ErrorState struct {
	Invalid bool
	Message string
}

// Failed reports whether the state represents an error.
func (s ErrorState) Failed() bool { return s.Invalid || s.Message != "" }

// Fail returns a flagged state carrying msg.
func Fail(msg string) ErrorState { return ErrorState{Invalid: true, Message: msg} }

// Errors maps a field name (or, for whole-form validation, a dotted path) to
// its error state.
type Errors map[string]ErrorState

// Valid reports whether no entry is failed.
func (e Errors) Valid() bool {
	for _, s := range e {
		if s.Failed() {
			return false
		}
	}
	return true
}
