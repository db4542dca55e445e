package plugin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"runtime/debug"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/alexisbeaulieu97/decisionhub/internal/logger"
	apperrors "github.com/alexisbeaulieu97/decisionhub/pkg/errors"
)

// Loader loads plugin source files into isolated interpreters.
type Loader struct {
	log    *logger.Logger
	output io.Writer
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithOutput redirects what plugin code writes to stdout and stderr.
func WithOutput(w io.Writer) LoaderOption {
	return func(l *Loader) {
		l.output = w
	}
}

// NewLoader creates a Loader. Plugin output goes to stderr unless overridden
// so it never mixes with a result written to stdout.
func NewLoader(log *logger.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{log: log, output: os.Stderr}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Unit is one loaded plugin source file. Each unit owns its interpreter, so
// two packages declaring the same names never observe each other.
type Unit struct {
	name   string
	source *Source
	interp *interp.Interpreter
}

// Load parses and evaluates the plugin source at path under a fresh interpreter.
func (l *Loader) Load(path string) (*Unit, error) {
	name := filepath.Base(path)

	source, err := Inspect(path)
	if err != nil {
		return nil, err
	}

	i := interp.New(interp.Options{
		Stdout: l.output,
		Stderr: l.output,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, apperrors.NewPluginError(name, fmt.Errorf("load stdlib symbols: %w", err))
	}

	if _, err := i.Eval(string(source.Code)); err != nil {
		return nil, ErrLoadFailed{Unit: name, Err: err}
	}

	l.log.WithFields(map[string]any{
		"unit":    name,
		"package": source.Package,
		"funcs":   len(source.Funcs),
	}).Debug("plugin unit loaded")

	return &Unit{name: name, source: source, interp: i}, nil
}

// LoadPackage loads model.go and evaluate.go from root.
func (l *Loader) LoadPackage(root, modelFile, evaluatorFile string) (*Package, error) {
	model, err := l.Load(filepath.Join(root, modelFile))
	if err != nil {
		return nil, err
	}
	evaluator, err := l.Load(filepath.Join(root, evaluatorFile))
	if err != nil {
		return nil, err
	}
	return &Package{Model: model, Evaluator: evaluator}, nil
}

// Name returns the unit's file name.
func (u *Unit) Name() string {
	return u.name
}

// Source returns the static description the unit was loaded from.
func (u *Unit) Source() *Source {
	return u.source
}

// Call invokes a top-level function by name, binding args to its declared
// parameters. A panic inside plugin code is returned as *errors.PanicError
// carrying the stack captured at the panic site.
func (u *Unit) Call(entry string, args Args) (result any, err error) {
	decl, ok := u.source.Funcs[entry]
	if !ok {
		return nil, ErrEntryPointNotFound{Unit: u.name, Name: entry}
	}

	fn, err := u.lookup(entry)
	if err != nil {
		return nil, err
	}

	values, err := bind(entry, decl, fn.Type(), args)
	if err != nil {
		return nil, err
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = &apperrors.PanicError{Value: recovered, Stack: debug.Stack()}
		}
	}()

	return unpack(entry, fn.Call(values))
}

func (u *Unit) lookup(entry string) (reflect.Value, error) {
	value, err := u.interp.Eval(fmt.Sprintf("%s.%s", u.source.Package, entry))
	if err != nil {
		return reflect.Value{}, ErrLoadFailed{Unit: u.name, Err: err}
	}
	if value.Kind() != reflect.Func {
		return reflect.Value{}, ErrNotFunction{Unit: u.name, Name: entry, Kind: value.Kind().String()}
	}
	return value, nil
}
