// Package schema extracts field descriptors from OpenAPI component schemas.
//
// Schemas are assumed to be fully resolved: the loader inlines all local
// $refs, so cyclic reference graphs are out of scope here.
package schema

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/IlyaGulya/ansible-collection-remnawave-panel/core"
)

// Field describes a single schema property in module argument-spec terms.
// Field lists are rebuilt fresh per generation run and never mutated after
// extraction.
type Field struct {
	Name         string  // property name as it appears on the wire (camelCase)
	SnakeName    string  // snake_cased module option name
	Type         string  // one of str, int, float, bool, list, dict
	Required     bool
	Description  string
	Default      any
	NestedFields []Field // for object properties with their own properties
	Elements     string  // element type for array properties
	Format       string
	Min          *float64
	Max          *float64
	MinLength    *uint64
	MaxLength    *uint64
}

// NotFoundError is the fatal, named failure for a schema lookup that must
// succeed: it indicates a spec/config mismatch the user has to fix.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schema %q not found in components", e.Name)
}

// ByName returns the named component schema, or nil when it does not exist.
func ByName(doc *openapi3.T, name string) *openapi3.Schema {
	if doc.Components == nil {
		return nil
	}
	ref, ok := doc.Components.Schemas[name]
	if !ok || ref == nil {
		return nil
	}
	return ref.Value
}

// MustByName returns the named component schema or a NotFoundError.
func MustByName(doc *openapi3.T, name string) (*openapi3.Schema, error) {
	s := ByName(doc, name)
	if s == nil {
		return nil, &NotFoundError{Name: name}
	}
	return s, nil
}

// MapOpenAPIType maps an OpenAPI type to a module argument-spec type.
// Unknown types map to "str".
func MapOpenAPIType(openapiType string) string {
	switch openapiType {
	case "string":
		return "str"
	case "integer":
		return "int"
	case "number":
		return "float"
	case "boolean":
		return "bool"
	case "array":
		return "list"
	case "object":
		return "dict"
	default:
		return "str"
	}
}

// TypeOf returns the primary type string of a schema, or "" when unset.
func TypeOf(s *openapi3.Schema) string {
	if s == nil || s.Type == nil || len(*s.Type) == 0 {
		return ""
	}
	return (*s.Type)[0]
}

// ExtractFields walks the schema's properties into Field descriptors,
// excluding any property named in readOnlyFields. Properties are visited in
// sorted name order so the output is deterministic.
func ExtractFields(s *openapi3.Schema, readOnlyFields []string) []Field {
	if s == nil || len(s.Properties) == 0 {
		return nil
	}
	readOnly := make(map[string]struct{}, len(readOnlyFields))
	for _, name := range readOnlyFields {
		readOnly[name] = struct{}{}
	}
	required := make(map[string]struct{}, len(s.Required))
	for _, name := range s.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if _, skip := readOnly[name]; skip {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		prop := s.Properties[name].Value
		if prop == nil {
			continue
		}
		_, isRequired := required[name]
		field := Field{
			Name:        name,
			SnakeName:   core.ToSnakeCase(name),
			Type:        MapOpenAPIType(TypeOf(prop)),
			Required:    isRequired,
			Description: prop.Description,
			Default:     prop.Default,
		}
		if field.Description == "" {
			field.Description = fmt.Sprintf("The %s field", name)
		}
		if TypeOf(prop) == "object" && len(prop.Properties) > 0 {
			field.NestedFields = ExtractFields(prop, readOnlyFields)
		}
		if TypeOf(prop) == "array" && prop.Items != nil {
			field.Elements = MapOpenAPIType(TypeOf(prop.Items.Value))
		}
		if prop.Nullable {
			field.Required = false
		}
		field.Format = prop.Format
		if prop.Min != nil {
			v := *prop.Min
			field.Min = &v
		}
		if prop.Max != nil {
			v := *prop.Max
			field.Max = &v
		}
		if prop.MinLength != 0 {
			v := prop.MinLength
			field.MinLength = &v
		}
		if prop.MaxLength != nil {
			v := *prop.MaxLength
			field.MaxLength = &v
		}
		fields = append(fields, field)
	}
	return fields
}
