package waha

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"

	"github.com/samvad-hq/waha-client/pkg/httpclient"
)

var (
	// ErrUnexpectedStatus is matched by every StatusError and APIError.
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrPathParams is matched by PathParamsError.
	ErrPathParams = errors.New("path parameters mismatch")
	// ErrUnsupportedMethod is returned by ParseMethod and NewEndpoint.
	ErrUnsupportedMethod = errors.New("method not supported")
)

// StatusError reports a response whose status differed from the one the
// endpoint documents and which carried no decodable JSON.
type StatusError struct {
	URL            string
	StatusCode     int
	ExpectedStatus int
	// Body is the raw response body, possibly empty.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request to %s failed with status code %d", e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool { return target == ErrUnexpectedStatus }

// APIError is a StatusError whose response body decoded as JSON.
type APIError struct {
	StatusError
	Payload any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request to %s failed with status code %d and error description %v",
		e.URL, e.StatusCode, e.Payload)
}

// Unwrap exposes the embedded StatusError so errors.As matches both kinds.
func (e *APIError) Unwrap() error { return &e.StatusError }

// PathParamsError is a usage error: the supplied path arguments were not
// exactly the placeholders of the path template.
type PathParamsError struct {
	Path     string
	Expected []string
	Got      []string
}

func (e *PathParamsError) Error() string {
	return fmt.Sprintf("expected path params %v for %s, got %v", e.Expected, e.Path, e.Got)
}

func (e *PathParamsError) Is(target error) bool { return target == ErrPathParams }

// ValidationError wraps a failure to decode or validate a model.
type ValidationError struct {
	// Model is the Go type name that failed.
	Model string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %v", e.Model, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// HandleError builds the error for a response that did not carry the
// expected status. It returns *APIError when the body is JSON and
// *StatusError otherwise.
func HandleError(resp httpclient.Response, expected int, log Logger) error {
	log = ensureLogger(log)
	base := StatusError{
		URL:            resp.URL(),
		StatusCode:     resp.StatusCode(),
		ExpectedStatus: expected,
		Body:           resp.Body(),
	}

	payload, ok := decodeErrorBody(resp, log)
	if !ok {
		return &base
	}
	return &APIError{StatusError: base, Payload: payload}
}

func decodeErrorBody(resp httpclient.Response, log Logger) (any, bool) {
	if !isJSONContentType(resp.Header().Get("Content-Type")) {
		log.DebugObj("no JSON response from API", "waha_response", map[string]any{
			"url":    resp.URL(),
			"status": resp.StatusCode(),
		})
		return nil, false
	}

	body := resp.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		log.DebugObj("empty JSON response from API", "waha_response", map[string]any{
			"url":    resp.URL(),
			"status": resp.StatusCode(),
		})
		return nil, false
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		log.WarnObj("API response contained invalid json", "waha_response", map[string]any{
			"url":    resp.URL(),
			"status": resp.StatusCode(),
			"error":  err.Error(),
		})
		return nil, false
	}
	// A literal JSON null carries nothing to report.
	if payload == nil {
		return nil, false
	}
	return payload, true
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
