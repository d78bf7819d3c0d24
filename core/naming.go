package core

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	snakeFirstPass  = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	snakeSecondPass = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ToSnakeCase converts camelCase or PascalCase to snake_case.
// Acronym runs collapse: "HTTPResponse" -> "http_response". This is a lossy
// transform; ToCamelCase cannot reconstruct the original casing.
func ToSnakeCase(name string) string {
	s := snakeFirstPass.ReplaceAllString(name, "${1}_${2}")
	s = snakeSecondPass.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// ToCamelCase converts snake_case to camelCase. The first component is kept
// as-is; each subsequent component has its first letter upper-cased.
func ToCamelCase(name string) string {
	components := strings.Split(name, "_")
	var b strings.Builder
	b.WriteString(components[0])
	for _, c := range components[1:] {
		if c == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(c)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(c[size:])
	}
	return b.String()
}

// CamelToSnakeDict deep-copies a value, converting every map key from
// camelCase to snake_case. Maps and slices are walked recursively; any other
// value passes through unchanged.
func CamelToSnakeDict(data any) any {
	return convertKeys(data, ToSnakeCase)
}

// SnakeToCamelDict deep-copies a value, converting every map key from
// snake_case to camelCase. Maps and slices are walked recursively; any other
// value passes through unchanged.
func SnakeToCamelDict(data any) any {
	return convertKeys(data, ToCamelCase)
}

func convertKeys(data any, convert func(string) string) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[convert(key)] = convertKeys(value, convert)
		}
		return out
	case Record:
		out := make(Record, len(v))
		for key, value := range v {
			out[convert(key)] = convertKeys(value, convert)
		}
		return out
	case Params:
		out := make(Params, len(v))
		for key, value := range v {
			out[convert(key)] = convertKeys(value, convert)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = convertKeys(item, convert)
		}
		return out
	case RecordSet:
		out := make(RecordSet, len(v))
		for i, item := range v {
			out[i] = convertKeys(item, convert).(Record)
		}
		return out
	default:
		return data
	}
}
