package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestApiErrorMessage(t *testing.T) {
	err := &ApiError{Method: "GET", URL: "https://panel/api/nodes", StatusCode: 502, Body: "bad gateway"}
	msg := err.Error()
	for _, part := range []string{"GET", "https://panel/api/nodes", "502", "bad gateway"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q missing %q", msg, part)
		}
	}

	bodyOnly := &ApiError{Body: "oops"}
	if got := bodyOnly.Error(); got != "response body: oops" {
		t.Errorf("Error() = %q", got)
	}
}

func TestExpectStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		codes    []int
		expected bool
	}{
		{"matching code", &ApiError{StatusCode: 404}, []int{404}, true},
		{"one of several", &ApiError{StatusCode: 409}, []int{404, 409}, true},
		{"no match", &ApiError{StatusCode: 500}, []int{404}, false},
		{"wrapped", fmt.Errorf("request: %w", &ApiError{StatusCode: 404}), []int{404}, true},
		{"plain error", errors.New("404"), []int{404}, false},
		{"nil error", nil, []int{404}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpectStatusCodes(tt.err, tt.codes...); got != tt.expected {
				t.Errorf("ExpectStatusCodes = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsNotFoundErr(t *testing.T) {
	if !IsNotFoundErr(&NotFoundError{Resource: "node", Query: "name=x"}) {
		t.Error("typed NotFoundError not recognized")
	}
	if !IsNotFoundErr(fmt.Errorf("wrap: %w", &NotFoundError{})) {
		t.Error("wrapped NotFoundError not recognized")
	}
	if IsNotFoundErr(errors.New("not found")) {
		t.Error("plain error must not be recognized as typed NotFoundError")
	}
}

func TestIgnoreNotFound(t *testing.T) {
	record, err := IgnoreNotFound(nil, &NotFoundError{Resource: "node"})
	if err != nil || record != nil {
		t.Errorf("IgnoreNotFound = (%v, %v), want (nil, nil)", record, err)
	}

	boom := errors.New("boom")
	if _, err := IgnoreNotFound(nil, boom); !errors.Is(err, boom) {
		t.Errorf("unrelated error must propagate, got %v", err)
	}
}

func TestInboundNotFoundErrorMessage(t *testing.T) {
	err := &InboundNotFoundError{Tag: "vless-in", ProfileUUID: "prof-1"}
	expected := "Inbound 'vless-in' not found in config profile 'prof-1'"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestIndicatesAbsence(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"typed 404", &ApiError{StatusCode: 404}, true},
		{"typed 500", &ApiError{StatusCode: 500, Body: "boom"}, false},
		{"404 text", errors.New("request failed with 404"), true},
		{"not found text", errors.New("node not found"), true},
		{"typed not-found", &NotFoundError{Resource: "node"}, true},
		{"unrelated", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := indicatesAbsence(tt.err); got != tt.expected {
				t.Errorf("indicatesAbsence(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}
