package plugin

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	apperrors "github.com/alexisbeaulieu97/decisionhub/pkg/errors"
)

// Recognised argument names. A plugin parameter binds to one of these when
// its name matches after lower-casing and dropping underscores, so both
// solverConfig and solver_config bind to ArgSolverConfig.
const (
	ArgInstance     = "instance"
	ArgSolverConfig = "solver_config"
	ArgModel        = "model"
	ArgSolution     = "solution"
	ArgRuntime      = "runtime"
)

var canonicalArgs = map[string]string{
	"instance":     ArgInstance,
	"solverconfig": ArgSolverConfig,
	"model":        ArgModel,
	"solution":     ArgSolution,
	"runtime":      ArgRuntime,
}

var (
	durationType = reflect.TypeOf(time.Duration(0))
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// Args is the set of named values offered to one entry-point call.
type Args map[string]any

func (a Args) names() string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// canonicalArg maps a declared Go parameter name onto a recognised argument name.
func canonicalArg(param string) (string, bool) {
	key := strings.ToLower(strings.ReplaceAll(param, "_", ""))
	name, ok := canonicalArgs[key]
	return name, ok
}

// bind builds the positional argument list for fn from the declared parameter
// names. Every declared name must be recognised and offered for this entry
// point; the blank identifier receives its type's zero value.
func bind(entry string, decl Func, fnType reflect.Type, args Args) ([]reflect.Value, error) {
	if decl.Variadic || fnType.IsVariadic() {
		return nil, contractError(entry, "declares a variadic parameter; declare each accepted parameter by name")
	}
	if len(decl.Params) != fnType.NumIn() {
		return nil, contractError(entry, fmt.Sprintf("declares %d parameters but the interpreter reports %d", len(decl.Params), fnType.NumIn()))
	}

	values := make([]reflect.Value, len(decl.Params))
	for i, param := range decl.Params {
		paramType := fnType.In(i)
		if param == "" || param == "_" {
			values[i] = reflect.Zero(paramType)
			continue
		}

		name, ok := canonicalArg(param)
		if !ok {
			return nil, contractError(entry, fmt.Sprintf("declares unsupported parameter %q (supported: instance, solver_config, model, solution, runtime)", param))
		}
		value, offered := args[name]
		if !offered {
			return nil, contractError(entry, fmt.Sprintf("declares parameter %q which is not available here (available: %s)", param, args.names()))
		}

		coerced, err := coerce(value, paramType)
		if err != nil {
			return nil, contractError(entry, fmt.Sprintf("parameter %q: %v", param, err))
		}
		values[i] = coerced
	}
	return values, nil
}

// coerce adapts value to the declared parameter type.
func coerce(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		switch target.Kind() {
		case reflect.Interface, reflect.Map, reflect.Slice, reflect.Pointer, reflect.Func, reflect.Chan:
			return reflect.Zero(target), nil
		default:
			return reflect.Value{}, fmt.Errorf("cannot pass null as %s", target)
		}
	}

	if target == durationType {
		if seconds, ok := value.(float64); ok {
			return reflect.ValueOf(time.Duration(seconds * float64(time.Second))), nil
		}
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}
	if isNumeric(rv.Kind()) && isNumeric(target.Kind()) {
		return rv.Convert(target), nil
	}
	if rv.Kind() == target.Kind() && rv.Type().ConvertibleTo(target) {
		return rv.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot pass %T as %s", value, target)
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// unpack converts an entry point's return values into (value, error). A
// single result or a (result, error) pair is accepted.
func unpack(entry string, results []reflect.Value) (any, error) {
	switch len(results) {
	case 1:
		return interfaceOf(results[0]), nil
	case 2:
		if !results[1].Type().Implements(errorType) {
			return nil, contractError(entry, "second return value must be an error")
		}
		if errValue := interfaceOf(results[1]); errValue != nil {
			return nil, errValue.(error)
		}
		return interfaceOf(results[0]), nil
	default:
		return nil, contractError(entry, fmt.Sprintf("must return a value or (value, error), got %d results", len(results)))
	}
}

func interfaceOf(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Interface, reflect.Map, reflect.Slice, reflect.Pointer, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}

func contractError(entry, message string) error {
	return apperrors.NewContractError(ErrCodeContract, entry, message)
}
