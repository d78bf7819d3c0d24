package core

import (
	"context"
	"fmt"
)

// ConfigProfilesPath is the collection path used for name/tag resolution.
const ConfigProfilesPath = "/api/config-profiles"

// ResolveConfigProfileUUID fetches all config profiles and returns the UUID of
// the first profile whose name matches exactly. Absence is not an error: an
// empty string is returned when no profile matches.
func ResolveConfigProfileUUID(ctx context.Context, client *Client, name string) (string, error) {
	result, err := client.GetAll(ctx, ConfigProfilesPath)
	if err != nil {
		return "", err
	}
	profiles, ok := result.(RecordSet)
	if !ok {
		return "", fmt.Errorf("unexpected config profiles payload: %T", result)
	}
	for _, profile := range profiles {
		if profile["name"] == name {
			return profile.RecordUUID()
		}
	}
	return "", nil
}

// ResolveInboundUUIDs resolves inbound tags to UUIDs within a config profile,
// preserving the caller-given tag order. The first tag that cannot be found
// fails with an InboundNotFoundError naming it.
func ResolveInboundUUIDs(ctx context.Context, client *Client, profileUUID string, tags []string) ([]string, error) {
	result, err := client.GetAll(ctx, fmt.Sprintf("%s/%s/inbounds", ConfigProfilesPath, profileUUID))
	if err != nil {
		return nil, err
	}
	inbounds, ok := result.(RecordSet)
	if !ok {
		return nil, fmt.Errorf("unexpected inbounds payload: %T", result)
	}
	byTag := make(map[string]Record, len(inbounds))
	for _, inbound := range inbounds {
		if tag, ok := inbound["tag"].(string); ok {
			if _, seen := byTag[tag]; !seen {
				byTag[tag] = inbound
			}
		}
	}
	uuids := make([]string, 0, len(tags))
	for _, tag := range tags {
		inbound, ok := byTag[tag]
		if !ok {
			return nil, &InboundNotFoundError{Tag: tag, ProfileUUID: profileUUID}
		}
		uuid, err := inbound.RecordUUID()
		if err != nil {
			return nil, err
		}
		uuids = append(uuids, uuid)
	}
	return uuids, nil
}
