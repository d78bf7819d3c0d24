package core

import (
	"context"
	"fmt"
	"regexp"
	"sort"
)

var pathParamRe = regexp.MustCompile(`\{[^}]+\}`)

// Client is the minimal REST access layer used by generated modules. It wraps
// a RESTSession and applies the panel's response envelope conventions:
// payloads are optionally wrapped as {"response": <payload>} and path
// templates use single {uuid}-style placeholders.
type Client struct {
	session RESTSession
}

// NewClient creates a Client over a fresh PanelSession for the given config.
func NewClient(config *PanelConfig) (*Client, error) {
	session, err := NewPanelSession(config)
	if err != nil {
		return nil, err
	}
	return &Client{session: session}, nil
}

// NewClientWithSession creates a Client over an existing session.
func NewClientWithSession(session RESTSession) *Client {
	return &Client{session: session}
}

// Session returns the underlying RESTSession.
func (c *Client) Session() RESTSession {
	return c.session
}

// GetAll retrieves the collection at path. The payload container is located as
// follows: a sequence container is returned directly; when listKey is given,
// that nested sequence is returned; otherwise the container's values are
// scanned in sorted key order for the first sequence. If no sequence is found
// the container mapping itself is returned as a best-effort fallback. A null
// response yields an empty RecordSet.
func (c *Client) GetAll(ctx context.Context, path string, listKey ...string) (any, error) {
	raw, err := c.session.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return RecordSet{}, nil
	}
	data := unwrapResponse(raw)
	switch container := data.(type) {
	case []any:
		return listToRecordSet(path, container)
	case map[string]any:
		if len(listKey) > 0 {
			nested, ok := container[listKey[0]]
			if !ok {
				return nil, fmt.Errorf("response from %s has no %q key", path, listKey[0])
			}
			list, ok := nested.([]any)
			if !ok {
				return nil, fmt.Errorf("response key %q from %s is not a list", listKey[0], path)
			}
			return listToRecordSet(path, list)
		}
		// Sorted keys keep the pick stable when a container holds more
		// than one list.
		keys := make([]string, 0, len(container))
		for key := range container {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if list, ok := container[key].([]any); ok {
				return listToRecordSet(path, list)
			}
		}
		return toRecord(container), nil
	default:
		return nil, fmt.Errorf("unexpected response type %T from %s", data, path)
	}
}

// GetOne retrieves a single resource, substituting the first path placeholder
// with id. A missing resource (404 or a "not found" failure) yields nil
// without error; any other failure propagates unchanged.
func (c *Client) GetOne(ctx context.Context, pathTemplate, id string) (Record, error) {
	raw, err := c.session.Get(ctx, fillPathParam(pathTemplate, id))
	if err != nil {
		if indicatesAbsence(err) {
			return nil, nil
		}
		return nil, err
	}
	return unwrapRecord(raw), nil
}

// Create issues a POST to path and returns the unwrapped resource.
func (c *Client) Create(ctx context.Context, path string, body Params) (Record, error) {
	raw, err := c.session.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	return unwrapRecord(raw), nil
}

// Update issues a PATCH and returns the unwrapped resource. When id is empty
// the path template is used unmodified; otherwise its placeholder is
// substituted.
func (c *Client) Update(ctx context.Context, pathTemplate string, body Params, id string) (Record, error) {
	path := pathTemplate
	if id != "" {
		path = fillPathParam(pathTemplate, id)
	}
	raw, err := c.session.Patch(ctx, path, body)
	if err != nil {
		return nil, err
	}
	return unwrapRecord(raw), nil
}

// Delete issues a DELETE after substituting the path placeholder.
func (c *Client) Delete(ctx context.Context, pathTemplate, id string) error {
	_, err := c.session.Delete(ctx, fillPathParam(pathTemplate, id))
	return err
}

// fillPathParam substitutes the first {...} placeholder in a path template.
func fillPathParam(pathTemplate, id string) string {
	replaced := false
	return pathParamRe.ReplaceAllStringFunc(pathTemplate, func(m string) string {
		if replaced {
			return m
		}
		replaced = true
		return id
	})
}

// unwrapResponse strips the {"response": <payload>} envelope when present.
func unwrapResponse(raw any) any {
	if m, ok := raw.(map[string]any); ok {
		if inner, ok := m["response"]; ok {
			return inner
		}
	}
	return raw
}

func unwrapRecord(raw any) Record {
	if m, ok := unwrapResponse(raw).(map[string]any); ok {
		return toRecord(m)
	}
	return nil
}

func listToRecordSet(path string, list []any) (RecordSet, error) {
	rs, ok := toRecordSet(list)
	if !ok {
		return nil, fmt.Errorf("response list from %s contains non-object elements", path)
	}
	return rs, nil
}
