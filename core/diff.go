package core

import (
	"reflect"
)

// DiffLeaf is a terminal diff node: both values are present and differ.
type DiffLeaf struct {
	Desired any `json:"desired"`
	Current any `json:"current"`
}

// RecursiveDiff compares a desired state against the current state and returns
// the structural difference, or nil when there is none.
//
// The comparison is one-directional: only keys present in desired are
// examined, and keys listed in readOnlyFields are skipped at every nesting
// level regardless of value divergence. A mapping result is a map[string]any
// of non-nil sub-diffs; a terminal difference is a *DiffLeaf.
//
// The result is built fresh per call and is meant to be branched on (and
// optionally reported) by the caller, then discarded.
func RecursiveDiff(desired, current any, readOnlyFields []string) any {
	readOnly := make(map[string]struct{}, len(readOnlyFields))
	for _, f := range readOnlyFields {
		readOnly[f] = struct{}{}
	}
	return recursiveDiff(desired, current, readOnly)
}

func recursiveDiff(desired, current any, readOnly map[string]struct{}) any {
	if desired == nil {
		return nil
	}

	if desiredMap, ok := asMap(desired); ok {
		diff := make(map[string]any)
		currentMap, _ := asMap(current)
		for key, desiredVal := range desiredMap {
			if _, skip := readOnly[key]; skip {
				continue
			}
			var currentVal any
			if currentMap != nil {
				currentVal = currentMap[key]
			}
			if sub := recursiveDiff(desiredVal, currentVal, readOnly); sub != nil {
				diff[key] = sub
			}
		}
		if len(diff) == 0 {
			return nil
		}
		return diff
	}

	if desiredList, ok := asList(desired); ok {
		currentList, isList := asList(current)
		if isList && listsEqual(desiredList, currentList) {
			return nil
		}
		return &DiffLeaf{Desired: desired, Current: current}
	}

	if reflect.DeepEqual(desired, current) {
		return nil
	}
	return &DiffLeaf{Desired: desired, Current: current}
}

// listsEqual compares two lists, ignoring order when every element of both is
// hashable (usable as a map key). Lists containing maps or nested lists fall
// back to strict positional comparison. Lists of different length are never
// equal.
func listsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	allHashable := true
	for _, v := range a {
		if !isHashable(v) {
			allHashable = false
			break
		}
	}
	if allHashable {
		for _, v := range b {
			if !isHashable(v) {
				allHashable = false
				break
			}
		}
	}
	if allHashable {
		counts := make(map[any]int, len(a))
		for _, v := range a {
			counts[v]++
		}
		for _, v := range b {
			counts[v]--
			if counts[v] < 0 {
				return false
			}
		}
		return true
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func isHashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	case Params:
		return m, true
	default:
		return nil, false
	}
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case RecordSet:
		out := make([]any, len(l))
		for i, r := range l {
			out[i] = map[string]any(r)
		}
		return out, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
