package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ApiError represents an error returned from a panel API request.
type ApiError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("response body: %s", e.Body)
	}
	return fmt.Sprintf(
		"%s request to %s returned status code %d: %s",
		e.Method, e.URL, e.StatusCode, e.Body,
	)
}

func IsApiError(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr)
}

// ExpectStatusCodes reports whether err is an ApiError carrying one of the
// given status codes.
func ExpectStatusCodes(err error, codes ...int) bool {
	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}
	return false
}

// NotFoundError signals that a resource lookup matched nothing.
type NotFoundError struct {
	Resource string
	Query    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource '%s' not found for params '%s'", e.Resource, e.Query)
}

// InboundNotFoundError names the specific inbound tag that could not be
// resolved to a UUID, so playbook authors can fix the bad tag directly.
type InboundNotFoundError struct {
	Tag         string
	ProfileUUID string
}

func (e *InboundNotFoundError) Error() string {
	return fmt.Sprintf("Inbound '%s' not found in config profile '%s'", e.Tag, e.ProfileUUID)
}

func IsNotFoundErr(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}

// IgnoreNotFound swallows NotFoundError, passing any other error through.
func IgnoreNotFound(val Record, err error) (Record, error) {
	if IsNotFoundErr(err) {
		return val, nil
	}
	return val, err
}

// indicatesAbsence reports whether err describes a missing resource. The panel
// surfaces absence either as a typed 404 ApiError or as a failure whose text
// carries the status code or the phrase "not found"; both shapes are matched.
func indicatesAbsence(err error) bool {
	if err == nil {
		return false
	}
	if ExpectStatusCodes(err, http.StatusNotFound) || IsNotFoundErr(err) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "404") || strings.Contains(msg, "not found")
}
