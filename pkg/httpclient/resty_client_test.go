package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRestyClientDoAttachesRequestParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/default/auth" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("format"); got != "raw" {
			t.Fatalf("format query = %q", got)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Fatalf("missing header, got %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["name"] != "default" {
			t.Fatalf("body name = %q", body["name"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewRestyClient(0)
	resp, err := c.Do(context.Background(), &Request{
		Method:  "post",
		URL:     srv.URL + "/api/default/auth",
		Query:   map[string]string{"format": "raw"},
		Headers: map[string]string{"X-Test": "1"},
		Body:    map[string]string{"name": "default"},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"ok":true}` {
		t.Fatalf("body = %s", resp.Body())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestRestyClientDoWithoutBodySendsNoContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			t.Fatalf("unexpected content type %q", ct)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resp, err := NewRestyClient(0).Do(context.Background(), &Request{Method: http.MethodGet, URL: srv.URL})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode())
	}
}

func TestRestyClientDoRejectsNilRequest(t *testing.T) {
	if _, err := NewRestyClient(0).Do(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil request")
	}
}

func TestNewRestyClientFromKeepsClientSettings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "wahactl" {
			t.Errorf("User-Agent = %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	base := NewRestyHTTPClient(time.Second).SetHeader("User-Agent", "wahactl")
	resp, err := NewRestyClientFrom(base).Do(context.Background(), &Request{URL: srv.URL})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode())
	}

	if c := NewRestyClientFrom(nil); c.client == nil {
		t.Fatalf("expected a fresh resty client for nil input")
	}
}

type stubClient struct {
	status int
	err    error
}

type stubResponse struct{ status int }

func (s stubResponse) Body() []byte        { return nil }
func (s stubResponse) StatusCode() int     { return s.status }
func (s stubResponse) Header() http.Header { return http.Header{} }
func (s stubResponse) URL() string         { return "" }

func (s *stubClient) Do(context.Context, *Request) (Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return stubResponse{status: s.status}, nil
}

func TestInstrumentedCountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	inst, err := NewInstrumented(&stubClient{status: http.StatusCreated}, reg)
	if err != nil {
		t.Fatalf("NewInstrumented: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := inst.Do(context.Background(), &Request{Method: "post"}); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}

	if got := testutil.ToFloat64(inst.requests.WithLabelValues("POST", "201")); got != 2 {
		t.Fatalf("requests_total = %v, want 2", got)
	}
}

func TestInstrumentedDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewInstrumented(&stubClient{}, reg); err != nil {
		t.Fatalf("first NewInstrumented: %v", err)
	}
	if _, err := NewInstrumented(&stubClient{}, reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
