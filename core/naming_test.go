package core

import (
	"reflect"
	"testing"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple camel case", "camelCase", "camel_case"},
		{"pascal case", "PascalCase", "pascal_case"},
		{"multiple words", "thisIsALongName", "this_is_a_long_name"},
		{"already snake case", "already_snake", "already_snake"},
		{"single word lowercase", "word", "word"},
		{"single word capitalized", "Word", "word"},
		{"acronym at start", "HTTPResponse", "http_response"},
		{"acronym in middle", "parseXMLParser", "parse_xml_parser"},
		{"consecutive capitals", "ABTest", "ab_test"},
		{"numbers preserved", "config2Profile", "config2_profile"},
		{"numbers at end", "version2", "version2"},
		{"uuid field", "uuid", "uuid"},
		{"created at field", "createdAt", "created_at"},
		{"is connected field", "isConnected", "is_connected"},
		{"api url", "apiUrl", "api_url"},
		{"empty string", "", ""},
		{"mixed case with numbers", "trafficLimitBytes2", "traffic_limit_bytes2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSnakeCase(tt.input); got != tt.expected {
				t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestToSnakeCaseStable(t *testing.T) {
	// Applying the conversion to its own output must be a no-op.
	inputs := []string{"camelCase", "HTTPResponse", "thisIsALongName", "config2Profile", "snake_case"}
	for _, input := range inputs {
		once := ToSnakeCase(input)
		if twice := ToSnakeCase(once); twice != once {
			t.Errorf("ToSnakeCase not stable for %q: %q -> %q", input, once, twice)
		}
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple snake case", "snake_case", "snakeCase"},
		{"multiple underscores", "this_is_long", "thisIsLong"},
		{"already camel case", "camelCase", "camelCase"},
		{"single word", "word", "word"},
		{"created at", "created_at", "createdAt"},
		{"is connected", "is_connected", "isConnected"},
		{"api url", "api_url", "apiUrl"},
		{"numbers preserved", "config2_profile", "config2Profile"},
		{"empty string", "", ""},
		{"trailing underscore", "name_", "name"},
		{"leading underscore", "_name", "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToCamelCase(tt.input); got != tt.expected {
				t.Errorf("ToCamelCase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCamelToSnakeDict(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{
			"simple dict",
			map[string]any{"camelKey": "value", "anotherKey": 1.0},
			map[string]any{"camel_key": "value", "another_key": 1.0},
		},
		{
			"nested dict",
			map[string]any{"outerKey": map[string]any{"innerKey": true}},
			map[string]any{"outer_key": map[string]any{"inner_key": true}},
		},
		{
			"list of dicts",
			[]any{map[string]any{"someKey": 1.0}, map[string]any{"otherKey": 2.0}},
			[]any{map[string]any{"some_key": 1.0}, map[string]any{"other_key": 2.0}},
		},
		{
			"dict with list values",
			map[string]any{"itemList": []any{"a", "b"}},
			map[string]any{"item_list": []any{"a", "b"}},
		},
		{
			"mixed list",
			[]any{"plain", map[string]any{"innerKey": nil}, 3.0},
			[]any{"plain", map[string]any{"inner_key": nil}, 3.0},
		},
		{"primitive passthrough", "justAString", "justAString"},
		{"empty dict", map[string]any{}, map[string]any{}},
		{"empty list", []any{}, []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CamelToSnakeDict(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("CamelToSnakeDict(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSnakeToCamelDict(t *testing.T) {
	input := map[string]any{
		"snake_key": "value",
		"nested_map": map[string]any{
			"inner_key": []any{map[string]any{"deep_key": 1.0}},
		},
	}
	expected := map[string]any{
		"snakeKey": "value",
		"nestedMap": map[string]any{
			"innerKey": []any{map[string]any{"deepKey": 1.0}},
		},
	}
	got := SnakeToCamelDict(input)
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("SnakeToCamelDict = %v, want %v", got, expected)
	}
}

func TestNamingRoundTrip(t *testing.T) {
	// snake -> camel -> snake survives for keys without acronym runs.
	input := map[string]any{
		"traffic_limit_bytes": 1.0,
		"is_connected":        true,
		"name":                "x",
	}
	roundTripped := CamelToSnakeDict(SnakeToCamelDict(input))
	if !reflect.DeepEqual(roundTripped, input) {
		t.Errorf("round trip = %v, want %v", roundTripped, input)
	}
}

func TestConvertKeysRecordTypes(t *testing.T) {
	record := Record{"createdAt": "now", "innerSet": RecordSet{{"isConnected": true}}}
	got, ok := CamelToSnakeDict(record).(Record)
	if !ok {
		t.Fatalf("expected Record, got %T", CamelToSnakeDict(record))
	}
	if _, ok := got["created_at"]; !ok {
		t.Errorf("expected created_at key, got %v", got)
	}
	inner, ok := got["inner_set"].(RecordSet)
	if !ok {
		t.Fatalf("expected RecordSet, got %T", got["inner_set"])
	}
	if _, ok := inner[0]["is_connected"]; !ok {
		t.Errorf("expected is_connected key, got %v", inner[0])
	}
}
