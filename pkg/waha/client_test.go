package waha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/waha-client/pkg/httpclient"
)

// fakeGateway serves a small subset of the gateway's session routes.
type fakeGateway struct {
	t        *testing.T
	lastBody map[string]any
	lastPath string
	lastQS   string
}

func (g *fakeGateway) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(g.t, json.NewEncoder(w).Encode(v))
	}
	record := func(r *http.Request) {
		g.lastPath = r.URL.EscapedPath()
		g.lastQS = r.URL.RawQuery
		g.lastBody = nil
		if r.ContentLength > 0 {
			require.NoError(g.t, json.NewDecoder(r.Body).Decode(&g.lastBody))
		}
	}

	mux.HandleFunc("POST /api/sessions/start", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusCreated, map[string]any{"name": g.lastBody["name"], "status": "STARTING"})
	})
	mux.HandleFunc("POST /api/sessions/stop", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("POST /api/sessions/logout", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /api/sessions/{$}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		list := []map[string]any{{"name": "default", "status": "WORKING", "me": map[string]any{"id": "1@c.us", "pushName": "Bot"}}}
		if r.URL.Query().Get("all") == "true" {
			list = append(list, map[string]any{"name": "old", "status": "STOPPED"})
		}
		writeJSON(w, http.StatusOK, list)
	})
	mux.HandleFunc("GET /api/sessions/{session}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.PathValue("session") == "missing" {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Session not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"name": r.PathValue("session"), "status": "WORKING"})
	})
	mux.HandleFunc("GET /api/sessions/{session}/me", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusOK, map[string]any{"id": "1@c.us", "pushName": "Bot"})
	})
	mux.HandleFunc("GET /api/{session}/auth/qr", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	})
	mux.HandleFunc("POST /api/{session}/auth/request-code", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, http.StatusCreated, map[string]any{"code": "ABCD-EFGH"})
	})
	return mux
}

func newTestClient(t *testing.T) (*Client, *fakeGateway) {
	t.Helper()
	gw := &fakeGateway{t: t}
	srv := httptest.NewServer(gw.handler())
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, WithTransport(httpclient.NewRestyClient(0))), gw
}

func TestClientStartSessionDefaultsName(t *testing.T) {
	c, gw := newTestClient(t)

	dto, err := c.StartSession(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "default", dto.Name)
	assert.Equal(t, StatusStarting, dto.Status)
	assert.Equal(t, map[string]any{"name": "default"}, gw.lastBody)

	dto, err = c.StartSession(context.Background(), &SessionStartRequest{Name: "sales"})
	require.NoError(t, err)
	assert.Equal(t, "sales", dto.Name)
}

func TestClientStopAndLogout(t *testing.T) {
	c, gw := newTestClient(t)

	require.NoError(t, c.StopSession(context.Background(), nil))
	assert.Equal(t, map[string]any{"name": "default", "logout": false}, gw.lastBody)

	require.NoError(t, c.StopSession(context.Background(), &SessionStopRequest{Name: "sales", Logout: true}))
	assert.Equal(t, map[string]any{"name": "sales", "logout": true}, gw.lastBody)

	require.NoError(t, c.LogoutSession(context.Background(), nil))
	assert.Equal(t, "/api/sessions/logout", gw.lastPath)
}

func TestClientListSessions(t *testing.T) {
	c, gw := newTestClient(t)

	list, err := c.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bot", list[0].Me.PushName)
	assert.Empty(t, gw.lastQS)

	list, err = c.ListAllSessions(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "all=true", gw.lastQS)

	list, err = c.ListAllSessions(context.Background(), &ListSessionsParams{All: false})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "all=false", gw.lastQS)
}

func TestClientGetSession(t *testing.T) {
	c, gw := newTestClient(t)

	info, err := c.GetSession(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "default", info.Name)
	assert.Equal(t, "/api/sessions/default", gw.lastPath)

	_, err = c.GetSession(context.Background(), "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, map[string]any{"message": "Session not found"}, apiErr.Payload)
}

func TestClientGetMe(t *testing.T) {
	c, gw := newTestClient(t)

	me, err := c.GetMe(context.Background(), "sales")
	require.NoError(t, err)
	assert.Equal(t, "1@c.us", me.ID)
	assert.Equal(t, "/api/sessions/sales/me", gw.lastPath)
}

func TestClientAuth(t *testing.T) {
	c, gw := newTestClient(t)

	qr, err := c.GetQR(context.Background(), "sales", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), qr)
	assert.Equal(t, "format=image", gw.lastQS)
	assert.Equal(t, "/api/sales/auth/qr", gw.lastPath)

	_, err = c.GetQR(context.Background(), "sales", &QRParams{Format: QRFormatRaw})
	require.NoError(t, err)
	assert.Equal(t, "format=raw", gw.lastQS)

	code, err := c.RequestCode(context.Background(), "sales", &RequestCodeRequest{PhoneNumber: "12132132130"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"ABCD-EFGH"}`, string(code))
	assert.Equal(t, map[string]any{"phoneNumber": "12132132130"}, gw.lastBody)
}

func TestClientRequestCodeRequiresPhoneNumber(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.RequestCode(context.Background(), "sales", nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestClientWithoutTransportCreatesOne(t *testing.T) {
	gw := &fakeGateway{t: t}
	srv := httptest.NewServer(gw.handler())
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.ListSessions(context.Background())
	require.NoError(t, err)
}
