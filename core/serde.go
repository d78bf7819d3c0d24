package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"sort"

	"github.com/bndr/gotabulate"
)

var empty = struct{}{}

// printableAttrs are the record keys shown in PrettyTable output; everything
// else is collapsed into a single compact JSON cell.
var printableAttrs = map[string]struct{}{
	"uuid":        empty,
	"name":        empty,
	"tag":         empty,
	"address":     empty,
	"port":        empty,
	"type":        empty,
	"isConnected": empty,
	"isDisabled":  empty,
	"usersOnline": empty,
	"createdAt":   empty,
	"updatedAt":   empty,
}

//  ######################################################
//              FUNCTION PARAMS
//  ######################################################

// Params represents a generic set of key-value parameters,
// used for constructing query strings or request bodies.
type Params map[string]any

// ToQuery serializes the Params into a URL-encoded query string.
func (pr *Params) ToQuery() string {
	values := url.Values{}
	for k, v := range *pr {
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// ToBody serializes the Params into a JSON-encoded io.Reader,
// suitable for use as the body of an HTTP POST or PATCH request.
func (pr *Params) ToBody() (io.Reader, error) {
	buffer, err := json.Marshal(*pr)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(buffer), nil
}

// Update merges another Params map into the original Params.
// Existing keys are overwritten only when override is true.
func (pr *Params) Update(other Params, override bool) {
	for key, value := range other {
		if _, exists := (*pr)[key]; exists && !override {
			continue
		}
		(*pr)[key] = value
	}
}

// Without removes the specified keys from the Params map.
func (pr *Params) Without(keys ...string) {
	for _, key := range keys {
		delete(*pr, key)
	}
}

//  ######################################################
//              RETURN TYPES
//  ######################################################

// Renderable is an interface implemented by types that can render themselves
// into a human-readable string format, typically for CLI display or logging.
type Renderable interface {
	PrettyTable() string
	PrettyJson(indent ...string) string
}

// Record represents a single generic data object as a key-value map.
// It's commonly used to unmarshal a single JSON object from an API response.
type Record map[string]any

// RecordSet represents a list of Record objects.
type RecordSet []Record

// Fill populates the exported fields of the given struct pointer using values
// from the Record. It uses JSON marshaling and unmarshaling to map keys to
// struct fields based on their `json` tags.
func (r Record) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a struct")
	}
	if val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("container must point to a struct")
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, container)
}

// RecordUUID returns the UUID of the record as a string.
// It looks up the "uuid" field in the record map.
func (r Record) RecordUUID() (string, error) {
	val, ok := r["uuid"]
	if !ok {
		return "", fmt.Errorf("record has no uuid field: %s", r.PrettyJson())
	}
	return fmt.Sprintf("%v", val), nil
}

// RecordName returns the name of the record as a string.
// It looks up the "name" field in the record map.
func (r Record) RecordName() (string, error) {
	val, ok := r["name"]
	if !ok {
		return "", fmt.Errorf("record has no name field: %s", r.PrettyJson())
	}
	return fmt.Sprintf("%v", val), nil
}

// SetMissingValue sets the key to the provided value only if it is absent.
func (r Record) SetMissingValue(key string, value any) {
	if _, exists := r[key]; !exists {
		r[key] = value
	}
}

func (r Record) Empty() bool {
	return len(r) == 0
}

// getPrintableAttrs returns a sorted slice of keys to be printed from the Record.
func getPrintableAttrs(r Record) []string {
	var attrs []string
	for key := range r {
		if _, ok := printableAttrs[key]; ok {
			attrs = append(attrs, key)
		}
	}
	sort.Strings(attrs)
	return attrs
}

// PrettyTable prints a single Record as a table.
func (r Record) PrettyTable() string {
	if len(r) == 0 {
		return "<>"
	}
	headers := []string{"attr", "value"}
	var rows [][]any
	for _, key := range getPrintableAttrs(r) {
		if val, ok := r[key]; ok && val != nil {
			rows = append(rows, []any{key, fmt.Sprintf("%v", val)})
		}
	}
	remainingAttrs := make(map[string]any)
	for key, value := range r {
		if _, ok := printableAttrs[key]; !ok && value != nil {
			remainingAttrs[key] = value
		}
	}
	if len(remainingAttrs) > 0 {
		remainingJSON, _ := json.Marshal(remainingAttrs)
		rows = append(rows, []any{"<<remaining attrs>>", string(remainingJSON)})
	}
	t := gotabulate.Create(rows)
	t.SetHeaders(headers)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	return fmt.Sprintf("\n%s", t.Render("grid"))
}

// PrettyJson prints the Record as JSON, optionally indented.
func (r Record) PrettyJson(indent ...string) string {
	return prettyJson(r, indent...)
}

func (r Record) String() string {
	return r.PrettyTable()
}

// Fill populates the provided container slice with data from the RecordSet.
// The container must be a non-nil pointer to a slice of structs.
func (rs RecordSet) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a slice")
	}
	if val.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("container must point to a slice")
	}
	raw, err := json.Marshal(rs)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, container)
}

// PrettyTable prints every Record in the set as a table.
func (rs RecordSet) PrettyTable() string {
	var buf bytes.Buffer
	for _, record := range rs {
		buf.WriteString(record.PrettyTable())
		buf.WriteString("\n")
	}
	return buf.String()
}

// PrettyJson prints the RecordSet as JSON, optionally indented.
func (rs RecordSet) PrettyJson(indent ...string) string {
	return prettyJson(rs, indent...)
}

func (rs RecordSet) Empty() bool {
	return len(rs) == 0
}

func (rs RecordSet) String() string {
	return rs.PrettyTable()
}

func prettyJson(v any, indent ...string) string {
	var b []byte
	var err error
	if len(indent) > 0 {
		b, err = json.MarshalIndent(v, "", indent[0])
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

func toRecord(m map[string]any) Record {
	converted := Record{}
	for k, v := range m {
		converted[k] = v
	}
	return converted
}

func toRecordSet(list []any) (RecordSet, bool) {
	records := make(RecordSet, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		records = append(records, toRecord(m))
	}
	return records, true
}
