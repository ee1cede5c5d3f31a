package cli

// Exit codes for the analyze and lint commands.
const (
	// ExitOK means the command succeeded.
	ExitOK = 0
	// ExitInputError means an input file was missing or unreadable.
	ExitInputError = 1
	// ExitValidationError means the schema failed structural validation.
	ExitValidationError = 2
)

// ExitError carries an exit code alongside an error so commands can
// signal precise failure classes to scripts.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps an error with an exit code.
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}
