package waha

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultSessionName is the session the gateway uses when none is given.
const DefaultSessionName = "default"

// SessionStatus is the lifecycle state the gateway reports for a session.
type SessionStatus string

const (
	StatusStopped    SessionStatus = "STOPPED"
	StatusStarting   SessionStatus = "STARTING"
	StatusScanQRCode SessionStatus = "SCAN_QR_CODE"
	StatusWorking    SessionStatus = "WORKING"
	StatusFailed     SessionStatus = "FAILED"
)

// Valid reports whether s is one of the documented statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case StatusStopped, StatusStarting, StatusScanQRCode, StatusWorking, StatusFailed:
		return true
	}
	return false
}

// ProxyConfig routes a session's traffic through an HTTP proxy.
type ProxyConfig struct {
	Server   string `json:"server"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// HMACConfig signs webhook deliveries.
type HMACConfig struct {
	Key string `json:"key,omitempty"`
}

// RetriesConfig controls webhook redelivery on the gateway side.
type RetriesConfig struct {
	DelaySeconds int    `json:"delaySeconds,omitempty"`
	Attempts     int    `json:"attempts,omitempty"`
	Policy       string `json:"policy,omitempty"`
}

// CustomHeader is an extra header sent with every webhook delivery.
type CustomHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WebhookConfig registers a webhook for a session.
type WebhookConfig struct {
	URL           string         `json:"url"`
	Events        []string       `json:"events"`
	HMAC          *HMACConfig    `json:"hmac,omitempty"`
	Retries       *RetriesConfig `json:"retries,omitempty"`
	CustomHeaders []CustomHeader `json:"customHeaders,omitempty"`
}

// SessionConfig is the optional per-session configuration.
type SessionConfig struct {
	Proxy    *ProxyConfig    `json:"proxy,omitempty"`
	Webhooks []WebhookConfig `json:"webhooks,omitempty"`
	Debug    bool            `json:"debug,omitempty"`
}

// Validate checks that every webhook has a URL.
func (c *SessionConfig) Validate() error {
	if c == nil {
		return nil
	}
	for i, w := range c.Webhooks {
		if strings.TrimSpace(w.URL) == "" {
			return fmt.Errorf("webhooks[%d]: url is required", i)
		}
	}
	if c.Proxy != nil && strings.TrimSpace(c.Proxy.Server) == "" {
		return errors.New("proxy.server is required")
	}
	return nil
}

// SessionStartRequest is the body of POST /api/sessions/start.
type SessionStartRequest struct {
	Name   string         `json:"name"`
	Config *SessionConfig `json:"config,omitempty"`
}

func (r *SessionStartRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return r.Config.Validate()
}

// SessionStopRequest is the body of POST /api/sessions/stop.
type SessionStopRequest struct {
	Name   string `json:"name"`
	Logout bool   `json:"logout"`
}

func (r *SessionStopRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// SessionLogoutRequest is the body of POST /api/sessions/logout.
type SessionLogoutRequest struct {
	Name string `json:"name"`
}

func (r *SessionLogoutRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// MeInfo identifies the account a session is logged in as.
type MeInfo struct {
	ID       string `json:"id"`
	PushName string `json:"pushName,omitempty"`
}

func (m *MeInfo) Validate() error {
	if m == nil {
		return nil
	}
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("me.id is required")
	}
	return nil
}

// SessionDTO is returned by session start.
type SessionDTO struct {
	Name   string         `json:"name"`
	Status SessionStatus  `json:"status"`
	Config *SessionConfig `json:"config,omitempty"`
}

func (s *SessionDTO) Validate() error {
	return validateSessionFields(s.Name, s.Status)
}

// SessionInfo is an entry of the session list.
type SessionInfo struct {
	Name   string         `json:"name"`
	Status SessionStatus  `json:"status"`
	Config *SessionConfig `json:"config,omitempty"`
	Me     *MeInfo        `json:"me,omitempty"`
}

func (s *SessionInfo) Validate() error {
	if err := validateSessionFields(s.Name, s.Status); err != nil {
		return err
	}
	return s.Me.Validate()
}

func validateSessionFields(name string, status SessionStatus) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if !status.Valid() {
		return fmt.Errorf("unknown session status %q", status)
	}
	return nil
}

// ListSessionsParams are the query parameters of GET /api/sessions/.
type ListSessionsParams struct {
	// All includes stopped sessions.
	All bool `json:"all"`
}

// QRFormat selects how the gateway renders the pairing QR code.
type QRFormat string

const (
	QRFormatImage QRFormat = "image"
	QRFormatRaw   QRFormat = "raw"
)

// QRParams are the query parameters of GET /api/{session}/auth/qr.
type QRParams struct {
	Format QRFormat `json:"format"`
}

func (p *QRParams) Validate() error {
	switch p.Format {
	case QRFormatImage, QRFormatRaw:
		return nil
	}
	return fmt.Errorf("unknown qr format %q", p.Format)
}

// RequestCodeRequest asks the gateway for a phone pairing code.
type RequestCodeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Method      string `json:"method,omitempty"`
}

func (r *RequestCodeRequest) Validate() error {
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return errors.New("phoneNumber is required")
	}
	return nil
}
