package dmp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/decisionhub/internal/model"
	apperrors "github.com/alexisbeaulieu97/decisionhub/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ReadJSON decodes a JSON document. Decoding failures are reported as
// *errors.ParseError with the offending line when it can be determined.
func ReadJSON(path string) (any, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, apperrors.NewParseError(filepath.Base(path), 0, err)
	}
	return DecodeJSON(filepath.Base(path), data)
}

// DecodeJSON decodes one JSON value from data. Trailing content is an error.
func DecodeJSON(name string, data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, apperrors.NewParseError(name, jsonErrorLine(data, err), err)
	}
	if decoder.More() {
		offset := int(decoder.InputOffset())
		return nil, apperrors.NewParseError(name, lineAt(data, offset), errors.New("unexpected content after top-level value"))
	}
	return out, nil
}

// ReadMapping decodes a JSON document that must be an object.
func ReadMapping(path string) (map[string]any, error) {
	doc, err := ReadJSON(path)
	if err != nil {
		return nil, err
	}
	mapping, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: must be a JSON object, got %s", filepath.Base(path), describe(doc))
	}
	return mapping, nil
}

// LoadSolverConfig reads the package's solver configuration and normalises it
// to JSON values so plugins observe the same types as in the instance.
func LoadSolverConfig(root string) (map[string]any, error) {
	path, err := NewLayout(root).SolverConfig()
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)

	data, err := readDocument(path)
	if err != nil {
		return nil, apperrors.NewParseError(name, 0, err)
	}

	var raw any
	if strings.HasSuffix(name, ".toml") {
		raw, err = decodeTOML(name, data)
	} else {
		raw, err = decodeYAML(name, data)
	}
	if err != nil {
		return nil, err
	}

	if raw == nil {
		return map[string]any{}, nil
	}
	mapping, ok := model.AsMapping(raw)
	if !ok {
		return nil, fmt.Errorf("%s: must be a mapping, got %s", name, describe(raw))
	}
	normalized, err := model.NormalizeMap(mapping)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return normalized, nil
}

func decodeYAML(name string, data []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, apperrors.NewParseError(name, extractLine(err), err)
	}
	return out, nil
}

func decodeTOML(name string, data []byte) (any, error) {
	var out map[string]any
	if err := toml.Unmarshal(data, &out); err != nil {
		line := 0
		var parseErr toml.ParseError
		var parseErrPtr *toml.ParseError
		switch {
		case errors.As(err, &parseErr):
			line = parseErr.Position.Line
		case errors.As(err, &parseErrPtr):
			line = parseErrPtr.Position.Line
		}
		return nil, apperrors.NewParseError(name, line, err)
	}
	return out, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}

func jsonErrorLine(data []byte, err error) int {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return lineAt(data, int(syntaxErr.Offset))
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return lineAt(data, int(typeErr.Offset))
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return lineAt(data, len(data))
	}
	return 0
}

func lineAt(data []byte, offset int) int {
	if offset > len(data) {
		offset = len(data)
	}
	if offset < 0 {
		offset = 0
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}
