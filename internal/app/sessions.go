package app

import (
	"context"

	"github.com/samvad-hq/waha-client/internal/storage"
	"github.com/samvad-hq/waha-client/pkg/publishers"
	"github.com/samvad-hq/waha-client/pkg/waha"
)

// StartSession starts a session and announces it.
func (c *Controller) StartSession(ctx context.Context, req *waha.SessionStartRequest) (*waha.SessionDTO, error) {
	if req != nil {
		if err := req.Validate(); err != nil {
			return nil, err
		}
	}
	dto, err := c.client.StartSession(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache(waha.SessionInfo{Name: dto.Name, Status: dto.Status, Config: dto.Config})
	c.publish(ctx, publishers.EventSessionStarted, dto.Name, dto.Status)
	return dto, nil
}

// StopSession stops a session, optionally logging it out as well.
func (c *Controller) StopSession(ctx context.Context, name string, logout bool) error {
	name = sessionName(name)
	if err := c.client.StopSession(ctx, &waha.SessionStopRequest{Name: name, Logout: logout}); err != nil {
		return err
	}
	if logout {
		c.uncache(name)
	} else {
		c.cache(waha.SessionInfo{Name: name, Status: waha.StatusStopped})
	}
	c.publish(ctx, publishers.EventSessionStopped, name, waha.StatusStopped)
	return nil
}

// LogoutSession logs a session out of its account.
func (c *Controller) LogoutSession(ctx context.Context, name string) error {
	name = sessionName(name)
	if err := c.client.LogoutSession(ctx, &waha.SessionLogoutRequest{Name: name}); err != nil {
		return err
	}
	c.uncache(name)
	c.publish(ctx, publishers.EventSessionLoggedOut, name, "")
	return nil
}

// ListSessions fetches sessions from the gateway and refreshes the cache.
// With all set, stopped sessions are included.
func (c *Controller) ListSessions(ctx context.Context, all bool) ([]waha.SessionInfo, error) {
	var (
		list []waha.SessionInfo
		err  error
	)
	if all {
		list, err = c.client.ListAllSessions(ctx, nil)
	} else {
		list, err = c.client.ListSessions(ctx)
	}
	if err != nil {
		return nil, err
	}
	for _, info := range list {
		c.cache(info)
	}
	return list, nil
}

// CachedSessions returns the snapshots recorded by earlier commands.
func (c *Controller) CachedSessions() ([]storage.Snapshot, error) {
	return c.store.ListSessions()
}

// GetSession fetches one session and refreshes its snapshot.
func (c *Controller) GetSession(ctx context.Context, name string) (*waha.SessionInfo, error) {
	info, err := c.client.GetSession(ctx, sessionName(name))
	if err != nil {
		return nil, err
	}
	c.cache(*info)
	return info, nil
}

// GetMe returns the account the session is paired with.
func (c *Controller) GetMe(ctx context.Context, name string) (*waha.MeInfo, error) {
	return c.client.GetMe(ctx, sessionName(name))
}

// GetQR returns the pairing QR code in the requested format.
func (c *Controller) GetQR(ctx context.Context, name string, format waha.QRFormat) ([]byte, error) {
	var params *waha.QRParams
	if format != "" {
		params = &waha.QRParams{Format: format}
		if err := params.Validate(); err != nil {
			return nil, err
		}
	}
	return c.client.GetQR(ctx, sessionName(name), params)
}

// RequestCode asks the gateway for a phone pairing code.
func (c *Controller) RequestCode(ctx context.Context, name, phone, method string) ([]byte, error) {
	req := &waha.RequestCodeRequest{PhoneNumber: phone, Method: method}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.client.RequestCode(ctx, sessionName(name), req)
}
