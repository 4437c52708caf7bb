package waha

import (
	"context"

	"github.com/samvad-hq/waha-client/pkg/httpclient"
)

// Client binds a Config, a transport and a logger to the session
// endpoints. The zero value is not usable; use NewClient.
type Client struct {
	cfg       Config
	transport httpclient.Client
	log       Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport shares one transport across calls. Without it every call
// creates its own.
func WithTransport(t httpclient.Client) Option {
	return func(c *Client) { c.transport = t }
}

// WithLogger sets the logger used for debug and warning output.
func WithLogger(l Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient returns a Client for cfg.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	c.log = ensureLogger(c.log)
	return c
}

// Config returns the client's configuration.
func (c *Client) Config() Config { return c.cfg }

// StartSession starts req.Name, or the default session when req is nil.
func (c *Client) StartSession(ctx context.Context, req *SessionStartRequest) (*SessionDTO, error) {
	dto, err := StartSessionEndpoint.Call(ctx, c.cfg, CallOptions[None, SessionStartRequest]{
		Body:   req,
		Client: c.transport,
		Logger: c.log,
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// StopSession stops req.Name, or the default session when req is nil.
func (c *Client) StopSession(ctx context.Context, req *SessionStopRequest) error {
	_, err := StopSessionEndpoint.Call(ctx, c.cfg, CallOptions[None, SessionStopRequest]{
		Body:   req,
		Client: c.transport,
		Logger: c.log,
	})
	return err
}

// LogoutSession logs req.Name out of its account.
func (c *Client) LogoutSession(ctx context.Context, req *SessionLogoutRequest) error {
	_, err := LogoutSessionEndpoint.Call(ctx, c.cfg, CallOptions[None, SessionLogoutRequest]{
		Body:   req,
		Client: c.transport,
		Logger: c.log,
	})
	return err
}

// ListSessions lists running sessions.
func (c *Client) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	return ListSessionsEndpoint.Call(ctx, c.cfg, CallOptions[None, None]{
		Client: c.transport,
		Logger: c.log,
	})
}

// ListAllSessions lists sessions with params, defaulting to all=true.
func (c *Client) ListAllSessions(ctx context.Context, params *ListSessionsParams) ([]SessionInfo, error) {
	return ListAllSessionsEndpoint.Call(ctx, c.cfg, CallOptions[ListSessionsParams, None]{
		Params: params,
		Client: c.transport,
		Logger: c.log,
	})
}

// GetSession fetches a single session by name.
func (c *Client) GetSession(ctx context.Context, name string) (*SessionInfo, error) {
	info, err := GetSessionEndpoint.Call(ctx, c.cfg, CallOptions[None, None]{
		PathArgs: sessionArgs(name),
		Client:   c.transport,
		Logger:   c.log,
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetMe returns the account the session is logged in as.
func (c *Client) GetMe(ctx context.Context, name string) (*MeInfo, error) {
	me, err := GetMeEndpoint.Call(ctx, c.cfg, CallOptions[None, None]{
		PathArgs: sessionArgs(name),
		Client:   c.transport,
		Logger:   c.log,
	})
	if err != nil {
		return nil, err
	}
	return &me, nil
}

// GetQR returns the pairing QR code body as sent by the gateway.
func (c *Client) GetQR(ctx context.Context, name string, params *QRParams) ([]byte, error) {
	raw, err := GetQREndpoint.Call(ctx, c.cfg, CallOptions[QRParams, None]{
		Params:   params,
		PathArgs: sessionArgs(name),
		Client:   c.transport,
		Logger:   c.log,
	})
	return raw, err
}

// RequestCode asks for a pairing code for req.PhoneNumber.
func (c *Client) RequestCode(ctx context.Context, name string, req *RequestCodeRequest) ([]byte, error) {
	raw, err := RequestCodeEndpoint.Call(ctx, c.cfg, CallOptions[None, RequestCodeRequest]{
		Body:     req,
		PathArgs: sessionArgs(name),
		Client:   c.transport,
		Logger:   c.log,
	})
	return raw, err
}
