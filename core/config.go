package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// PanelConfig represents the configuration required to create a panel session.
type PanelConfig struct {
	BaseURL   string         // Base URL of the panel API, e.g. "https://panel.example.com". A trailing slash is stripped.
	ApiToken  string         // API token used as a bearer credential. Stored verbatim.
	SslVerify bool           // Whether to verify SSL certificates.
	Timeout   *time.Duration // HTTP client timeout. If nil, a default is applied by validators.
	UserAgent string         // Optional custom User-Agent header. If empty, a default is applied.
}

// PanelConfigFunc defines a function that can modify or validate a PanelConfig.
type PanelConfigFunc func(*PanelConfig) error

// Validate applies the given PanelConfigFunc validators to the config.
func (config *PanelConfig) Validate(validators ...PanelConfigFunc) error {
	for _, fn := range validators {
		if err := fn(config); err != nil {
			return err
		}
	}
	return nil
}

// WithBaseURL validates that BaseURL is set and strips any trailing slash.
func WithBaseURL(config *PanelConfig) error {
	if config.BaseURL == "" {
		return errors.New("base URL cannot be empty")
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return nil
}

// WithAuth validates that an API token is provided.
func WithAuth(config *PanelConfig) error {
	if config.ApiToken == "" {
		return errors.New("api token must be provided")
	}
	return nil
}

// WithTimeout returns a PanelConfigFunc that sets a default timeout if none is provided.
func WithTimeout(timeout time.Duration) PanelConfigFunc {
	return func(config *PanelConfig) error {
		if config.Timeout == nil {
			config.Timeout = &timeout
		}
		return nil
	}
}

// WithUserAgent sets a default User-Agent header if none is provided.
func WithUserAgent(config *PanelConfig) error {
	if config.UserAgent == "" {
		config.UserAgent = fmt.Sprintf(
			"remnawave-ansible-%s,os:%s,arch:%s",
			ClientVersion(), runtime.GOOS, runtime.GOARCH,
		)
	}
	return nil
}
