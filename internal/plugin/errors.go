package plugin

import (
	"fmt"
	"strings"
)

// ErrCodeContract prefixes violations caused by a plugin breaking the calling contract.
const ErrCodeContract = "DMP_CONTRACT_INVALID"

// ErrEntryPointNotFound is returned when a unit does not declare a required entry point.
type ErrEntryPointNotFound struct {
	Unit string
	Name string
}

func (e ErrEntryPointNotFound) Error() string {
	return fmt.Sprintf(
		"%s does not define top-level function %s()\nHint: declare func %s(...) at package level",
		e.Unit,
		e.Name,
		e.Name,
	)
}

// ErrNotFunction is returned when an entry point name resolves to something other than a function.
type ErrNotFunction struct {
	Unit string
	Name string
	Kind string
}

func (e ErrNotFunction) Error() string {
	return fmt.Sprintf("%s.%s is a %s, not a function", e.Unit, e.Name, e.Kind)
}

// ErrLoadFailed wraps an interpreter failure while loading a plugin unit.
type ErrLoadFailed struct {
	Unit string
	Err  error
}

func (e ErrLoadFailed) Error() string {
	message := strings.TrimSpace(e.Err.Error())
	return fmt.Sprintf("failed to load %s: %s", e.Unit, message)
}

func (e ErrLoadFailed) Unwrap() error {
	return e.Err
}
