package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrMappingsInvalid reports a legacy mapping document that failed schema
// validation.
var ErrMappingsInvalid = errors.New("routes: url mappings document is invalid")

// Mappings is the static legacy-URL table: public path -> content file id.
// Loaded once per build and read-only afterwards.
type Mappings struct {
	byPath map[string]string
	paths  []string
}

// mappingsSchema constrains the YAML document to a single string-to-string
// table under the "mappings" key.
var mappingsSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []any{"mappings"},
	"properties": map[string]any{
		"mappings": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
		},
	},
}

type mappingsDocument struct {
	Mappings map[string]string `yaml:"mappings"`
}

// LoadMappings reads and validates the legacy URL table from the given file.
// A missing file yields an empty table rather than an error.
func LoadMappings(filesystem fs.FS, path string) (*Mappings, error) {
	if strings.TrimSpace(path) == "" {
		return NewMappings(nil), nil
	}

	data, err := fs.ReadFile(filesystem, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewMappings(nil), nil
		}
		return nil, fmt.Errorf("routes: read mappings %s: %w", path, err)
	}

	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingsInvalid, err)
	}
	if err := validateMappingsDocument(generic); err != nil {
		return nil, err
	}

	var doc mappingsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingsInvalid, err)
	}

	return NewMappings(doc.Mappings), nil
}

// NewMappings builds a table from raw entries, normalizing public paths to
// the canonical "/segment/.../" form.
func NewMappings(entries map[string]string) *Mappings {
	byPath := make(map[string]string, len(entries))
	for rawPath, fileID := range entries {
		normalized := NormalizePath(rawPath)
		if normalized == "" || strings.TrimSpace(fileID) == "" {
			continue
		}
		byPath[normalized] = strings.TrimSpace(fileID)
	}

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return &Mappings{byPath: byPath, paths: paths}
}

// Lookup returns the content file id mapped to the public path, if any.
func (m *Mappings) Lookup(publicPath string) (string, bool) {
	if m == nil {
		return "", false
	}
	fileID, ok := m.byPath[NormalizePath(publicPath)]
	return fileID, ok
}

// Paths returns every mapped public path in sorted order.
func (m *Mappings) Paths() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.paths...)
}

// Len reports the number of mapped paths.
func (m *Mappings) Len() int {
	if m == nil {
		return 0
	}
	return len(m.byPath)
}

// NormalizePath canonicalizes a public path to "/a/b/" form. Empty or
// root-only input normalizes to "".
func NormalizePath(publicPath string) string {
	trimmed := strings.Trim(strings.TrimSpace(publicPath), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed + "/"
}

func validateMappingsDocument(doc map[string]any) error {
	compiled, err := compileSchema(mappingsSchema)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMappingsInvalid, err)
	}
	if err := compiled.Validate(normalizeForSchema(doc)); err != nil {
		return fmt.Errorf("%w: %v", ErrMappingsInvalid, err)
	}
	return nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("mappings.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("mappings.json")
}

// normalizeForSchema round-trips the YAML document through JSON so the
// validator sees plain map[string]any values.
func normalizeForSchema(doc map[string]any) any {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return doc
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return doc
	}
	return out
}
