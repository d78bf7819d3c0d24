package core

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func profilesSession(profiles []any) *fakeSession {
	return &fakeSession{response: map[string]any{"response": map[string]any{"configProfiles": profiles}}}
}

func TestResolveConfigProfileUUID(t *testing.T) {
	profiles := []any{
		map[string]any{"uuid": "uuid-1", "name": "profile-1"},
		map[string]any{"uuid": "uuid-2", "name": "profile-2"},
	}

	t.Run("found by name", func(t *testing.T) {
		client := NewClientWithSession(profilesSession(profiles))
		uuid, err := ResolveConfigProfileUUID(context.Background(), client, "profile-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uuid != "uuid-2" {
			t.Errorf("uuid = %q, want uuid-2", uuid)
		}
	})

	t.Run("not found", func(t *testing.T) {
		client := NewClientWithSession(profilesSession(profiles))
		uuid, err := ResolveConfigProfileUUID(context.Background(), client, "nonexistent")
		if err != nil {
			t.Fatalf("absence must not error, got %v", err)
		}
		if uuid != "" {
			t.Errorf("uuid = %q, want empty", uuid)
		}
	})

	t.Run("empty profile list", func(t *testing.T) {
		client := NewClientWithSession(profilesSession([]any{}))
		uuid, err := ResolveConfigProfileUUID(context.Background(), client, "any-name")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uuid != "" {
			t.Errorf("uuid = %q, want empty", uuid)
		}
	})

	t.Run("first match wins", func(t *testing.T) {
		duplicated := []any{
			map[string]any{"uuid": "uuid-a", "name": "dup"},
			map[string]any{"uuid": "uuid-b", "name": "dup"},
		}
		client := NewClientWithSession(profilesSession(duplicated))
		uuid, err := ResolveConfigProfileUUID(context.Background(), client, "dup")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uuid != "uuid-a" {
			t.Errorf("uuid = %q, want uuid-a", uuid)
		}
	})
}

func inboundsSession(inbounds []any) *fakeSession {
	return &fakeSession{response: map[string]any{"response": map[string]any{"inbounds": inbounds}}}
}

func TestResolveInboundUUIDs(t *testing.T) {
	inbounds := []any{
		map[string]any{"uuid": "inb-1", "tag": "vless-in"},
		map[string]any{"uuid": "inb-2", "tag": "vmess-in"},
		map[string]any{"uuid": "inb-3", "tag": "trojan-in"},
	}

	t.Run("caller order preserved", func(t *testing.T) {
		client := NewClientWithSession(inboundsSession(inbounds))
		uuids, err := ResolveInboundUUIDs(context.Background(), client, "prof-1", []string{"vmess-in", "vless-in"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(uuids, []string{"inb-2", "inb-1"}) {
			t.Errorf("uuids = %v, want [inb-2 inb-1]", uuids)
		}
	})

	t.Run("empty tags", func(t *testing.T) {
		client := NewClientWithSession(inboundsSession(inbounds))
		uuids, err := ResolveInboundUUIDs(context.Background(), client, "prof-1", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(uuids) != 0 {
			t.Errorf("uuids = %v, want empty", uuids)
		}
	})

	t.Run("missing tag is named", func(t *testing.T) {
		client := NewClientWithSession(inboundsSession(inbounds))
		_, err := ResolveInboundUUIDs(context.Background(), client, "prof-1", []string{"vless-in", "missing-tag"})
		if err == nil {
			t.Fatal("expected error, got none")
		}
		var notFound *InboundNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected InboundNotFoundError, got %T", err)
		}
		if notFound.Tag != "missing-tag" || notFound.ProfileUUID != "prof-1" {
			t.Errorf("error = %+v", notFound)
		}
	})

	t.Run("duplicate tags resolve to first occurrence", func(t *testing.T) {
		duplicated := []any{
			map[string]any{"uuid": "first", "tag": "dup"},
			map[string]any{"uuid": "second", "tag": "dup"},
		}
		client := NewClientWithSession(inboundsSession(duplicated))
		uuids, err := ResolveInboundUUIDs(context.Background(), client, "prof-1", []string{"dup", "dup"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(uuids, []string{"first", "first"}) {
			t.Errorf("uuids = %v, want [first first]", uuids)
		}
	})
}
