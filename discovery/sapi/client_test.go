package sapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nwilkens/triton-go/errors"
	"github.com/nwilkens/triton-go/triton"
)

const (
	vmapiServiceUUID = "7b4deeb0-9bb9-4c46-b05e-423aad75ea1f"
	ufdsServiceUUID  = "0969e937-3917-4c4c-bd97-b8b8bc11d5a4"
)

// sapiHandler fakes the two SAPI listings the discoverer uses.
func sapiHandler(t *testing.T, instancesByService map[string][]Instance) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/services", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		var out []map[string]any
		for uuid, insts := range instancesByService {
			if len(insts) > 0 && insts[0].ServiceName == name {
				out = append(out, map[string]any{
					"uuid":             uuid,
					"name":             name,
					"application_uuid": "e28724cd-888c-4e4e-a144-73092bb6f4e1",
				})
			}
		}
		writeJSON(t, w, out)
	})

	mux.HandleFunc("/instances", func(w http.ResponseWriter, r *http.Request) {
		uuid := r.URL.Query().Get("service_uuid")
		writeJSON(t, w, instancesByService[uuid])
	})

	return mux
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if v == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func rawString(s string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf("%q", s))
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(Config{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestDiscoverEndpointsFromMetadataURL(t *testing.T) {
	srv := httptest.NewServer(sapiHandler(t, map[string][]Instance{
		vmapiServiceUUID: {{
			ServiceName: "vmapi",
			Metadata:    map[string]json.RawMessage{"vmapi_url": rawString("http://10.0.0.10:80")},
		}},
	}))
	defer srv.Close()

	urls, err := newTestClient(t, srv).DiscoverEndpoints(context.Background(), triton.ServiceVMAPI)
	if err != nil {
		t.Fatalf("DiscoverEndpoints: %v", err)
	}
	if len(urls) != 1 || urls[0] != "http://10.0.0.10:80" {
		t.Errorf("unexpected urls %v", urls)
	}
}

func TestDiscoverEndpointsHostnameFallback(t *testing.T) {
	srv := httptest.NewServer(sapiHandler(t, map[string][]Instance{
		vmapiServiceUUID: {
			{ServiceName: "vmapi", Hostname: "vmapi0.local"},
			{ServiceName: "vmapi", Hostname: "vmapi1.local"},
		},
	}))
	defer srv.Close()

	urls, err := newTestClient(t, srv).DiscoverEndpoints(context.Background(), triton.ServiceVMAPI)
	if err != nil {
		t.Fatalf("DiscoverEndpoints: %v", err)
	}
	want := []string{"http://vmapi0.local:80", "http://vmapi1.local:80"}
	if len(urls) != 2 || urls[0] != want[0] || urls[1] != want[1] {
		t.Errorf("got %v, want %v", urls, want)
	}
}

func TestDiscoverEndpointsUFDSUsesLDAPS(t *testing.T) {
	srv := httptest.NewServer(sapiHandler(t, map[string][]Instance{
		ufdsServiceUUID: {{ServiceName: "ufds", Hostname: "ufds0.local"}},
	}))
	defer srv.Close()

	urls, err := newTestClient(t, srv).DiscoverEndpoints(context.Background(), triton.ServiceUFDS)
	if err != nil {
		t.Fatalf("DiscoverEndpoints: %v", err)
	}
	if len(urls) != 1 || urls[0] != "ldaps://ufds0.local:636" {
		t.Errorf("expected ldaps fallback, got %v", urls)
	}
}

func TestDiscoverEndpointsUnknownService(t *testing.T) {
	srv := httptest.NewServer(sapiHandler(t, nil))
	defer srv.Close()

	_, err := newTestClient(t, srv).DiscoverEndpoints(context.Background(), triton.ServiceFWAPI)
	if errors.CodeOf(err) != errors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND for unregistered service, got %v", err)
	}
}

func TestDiscoverEndpointsNoInstances(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/services", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{{
			"uuid":             vmapiServiceUUID,
			"name":             "vmapi",
			"application_uuid": "e28724cd-888c-4e4e-a144-73092bb6f4e1",
		}})
	})
	mux.HandleFunc("/instances", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTestClient(t, srv).DiscoverEndpoints(context.Background(), triton.ServiceVMAPI)
	if errors.CodeOf(err) != errors.ErrCodeDiscoveryUnavailable {
		t.Errorf("expected DISCOVERY_UNAVAILABLE for empty instance list, got %v", err)
	}
}

func TestClientSendsVersionAndKeyHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(headerAcceptVersion); got != "2.0.0" {
			t.Errorf("expected Accept-Version 2.0.0, got %q", got)
		}
		if got := r.Header.Get(headerAPIKey); got != "sapi-key" {
			t.Errorf("expected api key header, got %q", got)
		}
		writeJSON(t, w, []map[string]any{})
	}))
	defer srv.Close()

	c, err := NewClient(Config{URL: srv.URL, APIKey: "sapi-key"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.ListApplications(context.Background()); err != nil {
		t.Fatalf("ListApplications: %v", err)
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient(Config{}); errors.CodeOf(err) != errors.ErrCodeConfig {
		t.Errorf("expected CONFIG_ERROR, got %v", err)
	}
}

func TestDiscovererMapsToEndpoints(t *testing.T) {
	srv := httptest.NewServer(sapiHandler(t, map[string][]Instance{
		vmapiServiceUUID: {{
			ServiceName: "vmapi",
			Metadata:    map[string]json.RawMessage{"vmapi_url": rawString("http://10.0.0.10:80")},
		}},
	}))
	defer srv.Close()

	d := NewDiscoverer(newTestClient(t, srv), nil)
	eps, err := d.Discover(context.Background(), "vmapi")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(eps) != 1 || eps[0].URL != "http://10.0.0.10:80" || eps[0].Service != "vmapi" {
		t.Errorf("unexpected endpoints %v", eps)
	}
}

func TestDiscovererRejectsUnknownServiceName(t *testing.T) {
	d := NewDiscoverer(&Client{}, nil)
	if _, err := d.Discover(context.Background(), "nope"); errors.CodeOf(err) != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
