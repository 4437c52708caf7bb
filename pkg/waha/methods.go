package waha

import (
	"fmt"
	"strings"
)

// Method is an HTTP verb accepted by NewEndpoint.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

var allMethods = []Method{
	MethodGet, MethodHead, MethodPost, MethodPut, MethodDelete,
	MethodConnect, MethodOptions, MethodTrace, MethodPatch,
}

// ParseMethod resolves s case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range allMethods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q, allowed are %v", ErrUnsupportedMethod, s, allMethods)
}

func (m Method) String() string { return string(m) }
