package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure for the run result taxonomy.
type Kind string

const (
	KindStructural   Kind = "structural"
	KindSchema       Kind = "schema"
	KindContract     Kind = "contract"
	KindInputInvalid Kind = "input_invalid"
	KindRuntimeFault Kind = "runtime_fault"
)

// ParseError represents a JSON, YAML or TOML decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures settings validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ContractError reports a plugin that does not honour the entry-point contract:
// a missing function, an unsupported parameter, or a malformed return value.
type ContractError struct {
	// Code is the machine-classifiable marker, e.g. DMP_SOLVE_INVALID.
	Code    string
	Entry   string
	Message string
	Err     error
}

// NewContractError constructs a ContractError for the given entry point.
func NewContractError(code, entry, message string) error {
	return &ContractError{Code: code, Entry: entry, Message: message}
}

func (e *ContractError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Code != "" && e.Entry != "":
		return fmt.Sprintf("%s: %s() %s", e.Code, e.Entry, e.Message)
	case e.Code != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Entry != "":
		return fmt.Sprintf("contract error: %s() %s", e.Entry, e.Message)
	}
	return fmt.Sprintf("contract error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ContractError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PluginError indicates a plugin unit that could not be loaded or whose call failed.
type PluginError struct {
	Plugin  string
	Message string
	Err     error
}

// NewPluginError constructs a PluginError for the given unit.
func NewPluginError(plugin string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &PluginError{Plugin: plugin, Message: message, Err: err}
}

func (e *PluginError) Error() string {
	if e == nil {
		return ""
	}
	if e.Plugin != "" {
		return fmt.Sprintf("plugin error [%s]: %s", e.Plugin, e.Message)
	}
	return fmt.Sprintf("plugin error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *PluginError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PanicError carries a value recovered from a panicking plugin call.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if e == nil {
		return nil
	}
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// TypeName names the fault for diagnostics: the dynamic type of the innermost
// recognisable cause.
func TypeName(err error) string {
	if err == nil {
		return ""
	}
	var panicErr *PanicError
	if stderrors.As(err, &panicErr) {
		if inner, ok := panicErr.Value.(error); ok {
			return fmt.Sprintf("%T", inner)
		}
		return fmt.Sprintf("panic(%T)", panicErr.Value)
	}
	var pluginErr *PluginError
	if stderrors.As(err, &pluginErr) && pluginErr.Err != nil {
		return fmt.Sprintf("%T", pluginErr.Err)
	}
	return fmt.Sprintf("%T", err)
}

// IsContract reports whether err is, or wraps, a ContractError.
func IsContract(err error) bool {
	var contractErr *ContractError
	return stderrors.As(err, &contractErr)
}
