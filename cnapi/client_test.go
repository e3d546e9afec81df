package cnapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nwilkens/triton-go/client"
	"github.com/nwilkens/triton-go/discovery"
	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/resilience"
)

const serverUUID = "564d4d2c-f3b0-4e9d-a1c2-8b7a6c5d4e3f"

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := client.New(client.Config{
		DisableDiscovery: true,
		Discovery: discovery.Config{
			Fallback: []discovery.StaticEndpoint{{Service: "cnapi", URL: srv.URL}},
		},
		Retry: resilience.BackoffPolicy{
			MaxAttempts:  2,
			InitialDelay: time.Millisecond,
			MaxDelay:     time.Millisecond,
			Multiplier:   1,
		},
	})
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return New(c)
}

func TestListServersWithFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("setup") != "true" || q.Get("headnode") != "false" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("hostname") != "cn0" {
			t.Errorf("expected hostname=cn0, got %q", q.Get("hostname"))
		}
		_, _ = w.Write([]byte(`[{"uuid":"` + serverUUID + `","hostname":"cn0","status":"running","setup":true,"ram":262144}]`))
	}))
	defer srv.Close()

	yes, no := true, false
	servers, err := newTestClient(t, srv).ListServers(context.Background(), ListParams{
		Hostname: "cn0",
		Setup:    &yes,
		Headnode: &no,
	})
	if err != nil {
		t.Fatalf("ListServers: %v", err)
	}
	if len(servers) != 1 || servers[0].Hostname != "cn0" || servers[0].RAM != 262144 {
		t.Errorf("unexpected servers %+v", servers)
	}
}

func TestGetServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/servers/"+serverUUID {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"uuid":"` + serverUUID + `","hostname":"cn0","status":"running"}`))
	}))
	defer srv.Close()

	s, err := newTestClient(t, srv).GetServer(context.Background(), serverUUID)
	if err != nil {
		t.Fatalf("GetServer: %v", err)
	}
	if s.UUID != serverUUID || s.Status != "running" {
		t.Errorf("unexpected server %+v", s)
	}
}

func TestGetServerRejectsBadUUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).GetServer(context.Background(), "cn0")
	if errors.CodeOf(err) != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestUpdateServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/servers/"+serverUUID {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Reserved == nil || !*req.Reserved {
			t.Errorf("unexpected request %+v", req)
		}
		_, _ = w.Write([]byte(`{"uuid":"` + serverUUID + `","reserved":true}`))
	}))
	defer srv.Close()

	reserved := true
	s, err := newTestClient(t, srv).UpdateServer(context.Background(), serverUUID, UpdateRequest{Reserved: &reserved})
	if err != nil {
		t.Fatalf("UpdateServer: %v", err)
	}
	if !s.Reserved {
		t.Errorf("unexpected server %+v", s)
	}
}

func TestRebootServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/servers/"+serverUUID+"/reboot" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"9d3c29f2-0b1a-4f6e-b54a-2c8e7d6f5a4b"}`))
	}))
	defer srv.Close()

	task, err := newTestClient(t, srv).RebootServer(context.Background(), serverUUID)
	if err != nil {
		t.Fatalf("RebootServer: %v", err)
	}
	if task.ID == "" {
		t.Errorf("unexpected task %+v", task)
	}
}
