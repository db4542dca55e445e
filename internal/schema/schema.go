package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Dialect identifies a supported JSON-Schema draft.
type Dialect string

const (
	Draft07     Dialect = "draft-07"
	Draft202012 Dialect = "2020-12"
)

var (
	// ErrMissingDialect is returned when a schema document does not declare $schema.
	ErrMissingDialect = errors.New("must declare a $schema string")
	// ErrNotObject is returned when a schema document is not a JSON object.
	ErrNotObject = errors.New("must be a JSON object")
	// ErrUnsupportedDialect is returned when $schema names neither supported dialect.
	ErrUnsupportedDialect = errors.New("declares an unsupported $schema; supported: draft-07, draft 2020-12")
)

// dialects is ordered so detection is deterministic.
var dialects = []struct {
	dialect   Dialect
	marker    string
	canonical string
	draft     *jsonschema.Draft
}{
	{Draft07, "draft-07", "http://json-schema.org/draft-07/schema#", jsonschema.Draft7},
	{Draft202012, "2020-12", "https://json-schema.org/draft/2020-12/schema", jsonschema.Draft2020},
}

// DetectDialect reads the $schema marker of a schema document.
func DetectDialect(doc any) (Dialect, error) {
	mapping, ok := doc.(map[string]any)
	if !ok {
		return "", ErrNotObject
	}
	uri, ok := mapping["$schema"].(string)
	if !ok {
		return "", ErrMissingDialect
	}
	for _, entry := range dialects {
		if strings.Contains(uri, entry.marker) {
			return entry.dialect, nil
		}
	}
	return "", ErrUnsupportedDialect
}

// Violation is one failed assertion, located by JSON pointer into the validated document.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	location := v.Location
	if location == "" {
		location = "(root)"
	}
	return fmt.Sprintf("%s: %s", location, v.Message)
}

// Format prefixes each violation with the artifact it was found in.
func Format(artifact string, violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, violation := range violations {
		out = append(out, fmt.Sprintf("%s: %s", artifact, violation.String()))
	}
	return out
}

// InvalidSchemaError reports a schema document rejected by its dialect's meta-schema.
type InvalidSchemaError struct {
	Name       string
	Dialect    Dialect
	Violations []Violation
	Err        error
}

func (e *InvalidSchemaError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("%s is not valid JSON Schema: %v", e.Name, e.Err)
	}
	parts := make([]string, 0, len(e.Violations))
	for _, violation := range e.Violations {
		parts = append(parts, violation.String())
	}
	return fmt.Sprintf("%s is not valid JSON Schema: %s", e.Name, strings.Join(parts, "; "))
}

func (e *InvalidSchemaError) Unwrap() error {
	return e.Err
}

// Validator validates documents against one compiled schema.
type Validator struct {
	name    string
	dialect Dialect
	schema  *jsonschema.Schema
}

// Compile builds a Validator from a decoded schema document. The dialect is
// taken from the document's $schema marker; an unknown marker is an error and
// never falls back silently.
func Compile(name string, doc any) (*Validator, error) {
	dialect, err := DetectDialect(doc)
	if err != nil {
		return nil, fmt.Errorf("%s %w", name, err)
	}
	return compile(name, doc, dialect)
}

func compile(name string, doc any, dialect Dialect) (*Validator, error) {
	mapping, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s %w", name, ErrNotObject)
	}

	var draft *jsonschema.Draft
	canonical := ""
	for _, entry := range dialects {
		if entry.dialect == dialect {
			draft = entry.draft
			canonical = entry.canonical
		}
	}
	if draft == nil {
		return nil, fmt.Errorf("%s %w", name, ErrUnsupportedDialect)
	}

	// Rewrite $schema to the canonical URI so the compiler never tries to
	// fetch a near-miss marker such as ".../draft-07/schema" without '#'.
	patched := make(map[string]any, len(mapping))
	for key, value := range mapping {
		patched[key] = value
	}
	patched["$schema"] = canonical

	data, err := json.Marshal(patched)
	if err != nil {
		return nil, fmt.Errorf("%s: encode schema: %w", name, err)
	}

	url := "mem:///" + name
	compiler := jsonschema.NewCompiler()
	compiler.Draft = draft
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, &InvalidSchemaError{Name: name, Dialect: dialect, Err: err}
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		invalid := &InvalidSchemaError{Name: name, Dialect: dialect, Err: err}
		var schemaErr *jsonschema.SchemaError
		if errors.As(err, &schemaErr) {
			var validationErr *jsonschema.ValidationError
			if errors.As(schemaErr.Err, &validationErr) {
				invalid.Violations = flatten(validationErr)
			}
		}
		return nil, invalid
	}

	return &Validator{name: name, dialect: dialect, schema: compiled}, nil
}

// Dialect reports the dialect the schema was compiled with.
func (v *Validator) Dialect() Dialect {
	return v.dialect
}

// Validate checks a decoded document and returns every violation, ordered by
// location. An empty slice means the document is valid.
func (v *Validator) Validate(doc any) []Violation {
	normalized, err := normalize(doc)
	if err != nil {
		return []Violation{{Message: err.Error()}}
	}

	err = v.schema.Validate(normalized)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return flatten(validationErr)
	}
	return []Violation{{Message: err.Error()}}
}

// flatten collects the leaf causes of a validation error tree.
func flatten(root *jsonschema.ValidationError) []Violation {
	var out []Violation
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			out = append(out, Violation{Location: node.InstanceLocation, Message: node.Message})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(root)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location < out[j].Location
	})
	return out
}

// normalize converts arbitrary decoded data (e.g. YAML with int values) into
// the JSON value space the validator understands.
func normalize(doc any) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("document is not JSON-compatible: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("document is not JSON-compatible: %w", err)
	}
	return out, nil
}
