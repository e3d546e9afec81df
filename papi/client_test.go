package papi

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

const packageUUID = "7b17343c-94af-6266-e0e8-893a3b9993d0"

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := client.New(client.Config{
		DisableDiscovery: true,
		Discovery: discovery.Config{
			Fallback: []discovery.StaticEndpoint{{Service: "papi", URL: srv.URL}},
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

func TestListPackagesWithFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("name") != "sample-256M" || q.Get("active") != "true" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = w.Write([]byte(`[{"uuid":"` + packageUUID + `","name":"sample-256M","active":true,"max_physical_memory":256}]`))
	}))
	defer srv.Close()

	active := true
	pkgs, err := newTestClient(t, srv).ListPackages(context.Background(), ListParams{
		Name:   "sample-256M",
		Active: &active,
	})
	if err != nil {
		t.Fatalf("ListPackages: %v", err)
	}
	if len(pkgs) != 1 || pkgs[0].Max != 256 {
		t.Errorf("unexpected packages %+v", pkgs)
	}
}

func TestGetPackage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/packages/"+packageUUID {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"uuid":"` + packageUUID + `","name":"sample-256M","active":true}`))
	}))
	defer srv.Close()

	pkg, err := newTestClient(t, srv).GetPackage(context.Background(), packageUUID)
	if err != nil {
		t.Fatalf("GetPackage: %v", err)
	}
	if pkg.Name != "sample-256M" || !pkg.Active {
		t.Errorf("unexpected package %+v", pkg)
	}
}

func TestCreatePackageValidatesRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).CreatePackage(context.Background(), CreateRequest{Name: "sample-256M"})
	if errors.CodeOf(err) != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestCreatePackage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/packages" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Max != 256 || req.Quota != 10240 {
			t.Errorf("unexpected request %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"uuid":"` + packageUUID + `","name":"sample-256M","active":true}`))
	}))
	defer srv.Close()

	pkg, err := newTestClient(t, srv).CreatePackage(context.Background(), CreateRequest{
		Name:    "sample-256M",
		Version: "1.0.0",
		Active:  true,
		Max:     256,
		Quota:   10240,
		CPUCap:  100,
	})
	if err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}
	if pkg.UUID != packageUUID {
		t.Errorf("unexpected package %+v", pkg)
	}
}

func TestUpdateAndDeletePackage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/packages/"+packageUUID, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			var req UpdateRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Active == nil || *req.Active {
				t.Errorf("unexpected request %+v", req)
			}
			_, _ = w.Write([]byte(`{"uuid":"` + packageUUID + `","active":false}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	ctx := context.Background()

	inactive := false
	pkg, err := c.UpdatePackage(ctx, packageUUID, UpdateRequest{Active: &inactive})
	if err != nil {
		t.Fatalf("UpdatePackage: %v", err)
	}
	if pkg.Active {
		t.Errorf("unexpected package %+v", pkg)
	}

	if err := c.DeletePackage(ctx, packageUUID); err != nil {
		t.Fatalf("DeletePackage: %v", err)
	}
}
