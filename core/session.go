package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RESTSession issues one blocking HTTP call per method invocation and decodes
// the JSON payload. No batching, pooling, or retries; callers needing
// resilience wrap it externally.
type RESTSession interface {
	Get(ctx context.Context, path string) (any, error)
	Post(ctx context.Context, path string, body Params) (any, error)
	Patch(ctx context.Context, path string, body Params) (any, error)
	Delete(ctx context.Context, path string) (any, error)
	GetConfig() *PanelConfig
}

// PanelSession is the default RESTSession implementation over net/http.
type PanelSession struct {
	config *PanelConfig
	client *http.Client
}

// NewPanelSession validates the config and creates a new session.
func NewPanelSession(config *PanelConfig) (*PanelSession, error) {
	if err := config.Validate(
		WithBaseURL,
		WithAuth,
		WithUserAgent,
		WithTimeout(defaultTimeout),
	); err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !config.SslVerify}
	client := &http.Client{
		Transport: transport,
		Timeout:   *config.Timeout,
	}
	return &PanelSession{config: config, client: client}, nil
}

func (s *PanelSession) Get(ctx context.Context, path string) (any, error) {
	return s.doRequest(ctx, http.MethodGet, path, nil)
}

func (s *PanelSession) Post(ctx context.Context, path string, body Params) (any, error) {
	return s.doRequest(ctx, http.MethodPost, path, body)
}

func (s *PanelSession) Patch(ctx context.Context, path string, body Params) (any, error) {
	return s.doRequest(ctx, http.MethodPatch, path, body)
}

func (s *PanelSession) Delete(ctx context.Context, path string) (any, error) {
	return s.doRequest(ctx, http.MethodDelete, path, nil)
}

func (s *PanelSession) GetConfig() *PanelConfig {
	return s.config
}

// doRequest creates and processes a single HTTP request using the context.
func (s *PanelSession) doRequest(ctx context.Context, verb, path string, body Params) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var requestData io.Reader = bytes.NewReader(nil)
	if body != nil {
		var err error
		if requestData, err = body.ToBody(); err != nil {
			return nil, err
		}
	}
	url := s.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, verb, url, requestData)
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderAccept, ContentTypeJSON)
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	req.Header.Set(HeaderUserAgent, s.config.UserAgent)
	req.Header.Set(HeaderAuthorization, AuthTypeBearer+" "+s.config.ApiToken)

	response, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform %s request to %s: %w", verb, url, err)
	}
	defer response.Body.Close()
	if err = validateResponse(response); err != nil {
		return nil, err
	}
	return decodeBody(response)
}

// validateResponse checks the response for a 2xx status code and converts
// anything else into an ApiError carrying the response body.
func validateResponse(response *http.Response) error {
	if response.StatusCode >= 200 && response.StatusCode <= 299 {
		return nil
	}
	requestURL := "<unknown URL>"
	method := "<unknown method>"
	if response.Request != nil {
		if response.Request.URL != nil {
			requestURL = response.Request.URL.String()
		}
		method = response.Request.Method
	}
	return &ApiError{
		Method:     method,
		URL:        requestURL,
		StatusCode: response.StatusCode,
		Body:       responseBodyAsStr(response),
	}
}

// decodeBody parses the response body as JSON. An empty body (e.g. 204 No
// Content) yields nil.
func decodeBody(response *http.Response) (any, error) {
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return payload, nil
}

// responseBodyAsStr reads and returns the HTTP response body as a string,
// pretty-printed when it contains valid JSON.
func responseBodyAsStr(response *http.Response) string {
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return ""
	}
	var b bytes.Buffer
	if json.Indent(&b, body, "", "  ") == nil {
		return b.String()
	}
	return string(body)
}
