package vmapi

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

const (
	ownerUUID = "930896af-bf8c-48d4-885c-6573a94b1853"
	imageUUID = "01b2c898-945f-11e1-a523-af1afbe22822"
	vmUUID    = "c4a8ea4a-9d7b-4c52-8c3f-7f2f3b4c5d6e"
)

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := client.New(client.Config{
		DisableDiscovery: true,
		Discovery: discovery.Config{
			Fallback: []discovery.StaticEndpoint{{Service: "vmapi", URL: srv.URL}},
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

func TestListVMsWithFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("owner_uuid") != ownerUUID || q.Get("state") != "running" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("limit") != "10" {
			t.Errorf("expected limit=10, got %q", q.Get("limit"))
		}
		_, _ = w.Write([]byte(`[{"uuid":"` + vmUUID + `","alias":"web0","state":"running","ram":256}]`))
	}))
	defer srv.Close()

	vms, err := newTestClient(t, srv).ListVMs(context.Background(), ListParams{
		OwnerUUID: ownerUUID,
		State:     "running",
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("ListVMs: %v", err)
	}
	if len(vms) != 1 || vms[0].Alias != "web0" || vms[0].RAM != 256 {
		t.Errorf("unexpected vms %+v", vms)
	}
}

func TestGetVM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vms/"+vmUUID {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"uuid":"` + vmUUID + `","state":"running"}`))
	}))
	defer srv.Close()

	vm, err := newTestClient(t, srv).GetVM(context.Background(), vmUUID)
	if err != nil {
		t.Fatalf("GetVM: %v", err)
	}
	if vm.UUID != vmUUID {
		t.Errorf("unexpected vm %+v", vm)
	}
}

func TestGetVMRejectsBadUUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).GetVM(context.Background(), "not-a-uuid")
	if errors.CodeOf(err) != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestCreateVMReturnsJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/vms" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Brand != "joyent" || req.RAM != 256 {
			t.Errorf("unexpected request %+v", req)
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"vm_uuid":"` + vmUUID + `","job_uuid":"b5fa38a0-1d94-4f2b-a087-a2d5bbeb2a4a"}`))
	}))
	defer srv.Close()

	job, err := newTestClient(t, srv).CreateVM(context.Background(), CreateRequest{
		Brand:     "joyent",
		OwnerUUID: ownerUUID,
		ImageUUID: imageUUID,
		RAM:       256,
		Networks:  []NetworkConfig{{UUID: "5c9e6c5a-1b3a-4b8c-9f7e-2d4a6b8c0e1f", Primary: true}},
	})
	if err != nil {
		t.Fatalf("CreateVM: %v", err)
	}
	if job.VMUUID != vmUUID || job.ID() == "" {
		t.Errorf("unexpected job %+v", job)
	}
}

func TestCreateVMValidatesRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).CreateVM(context.Background(), CreateRequest{Brand: "joyent"})
	if errors.CodeOf(err) != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestVMActions(t *testing.T) {
	var gotAction string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAction = r.URL.Query().Get("action")
		_, _ = w.Write([]byte(`{"vm_uuid":"` + vmUUID + `","job_uuid":"b5fa38a0-1d94-4f2b-a087-a2d5bbeb2a4a"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	ctx := context.Background()

	if _, err := c.StartVM(ctx, vmUUID); err != nil || gotAction != "start" {
		t.Errorf("StartVM: action=%q err=%v", gotAction, err)
	}
	if _, err := c.StopVM(ctx, vmUUID); err != nil || gotAction != "stop" {
		t.Errorf("StopVM: action=%q err=%v", gotAction, err)
	}
	if _, err := c.RebootVM(ctx, vmUUID); err != nil || gotAction != "reboot" {
		t.Errorf("RebootVM: action=%q err=%v", gotAction, err)
	}
}

func TestDeleteVMReturnsJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"vm_uuid":"` + vmUUID + `","job_uuid":"b5fa38a0-1d94-4f2b-a087-a2d5bbeb2a4a"}`))
	}))
	defer srv.Close()

	job, err := newTestClient(t, srv).DeleteVM(context.Background(), vmUUID)
	if err != nil {
		t.Fatalf("DeleteVM: %v", err)
	}
	if job.VMUUID != vmUUID {
		t.Errorf("unexpected job %+v", job)
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/vms/"+vmUUID+"/snapshots", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"name":"pre-upgrade","state":"created"}]`))
		case http.MethodPost:
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["name"] != "pre-upgrade" {
				t.Errorf("unexpected snapshot name %q", body["name"])
			}
			_, _ = w.Write([]byte(`{"vm_uuid":"` + vmUUID + `","job_uuid":"b5fa38a0-1d94-4f2b-a087-a2d5bbeb2a4a"}`))
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv)
	ctx := context.Background()

	if _, err := c.CreateSnapshot(ctx, vmUUID, "pre-upgrade"); err != nil {
		t.Fatalf("CreateSnapshot: %v", err)
	}
	snaps, err := c.ListSnapshots(ctx, vmUUID)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 1 || snaps[0].Name != "pre-upgrade" {
		t.Errorf("unexpected snapshots %+v", snaps)
	}
}

func TestListJobsFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("execution"); got != "running" {
			t.Errorf("expected execution=running, got %q", got)
		}
		_, _ = w.Write([]byte(`[{"uuid":"b5fa38a0-1d94-4f2b-a087-a2d5bbeb2a4a","name":"provision","execution":"running"}]`))
	}))
	defer srv.Close()

	jobs, err := newTestClient(t, srv).ListJobs(context.Background(), JobListParams{Execution: "running"})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].Name != "provision" || jobs[0].ID() == "" {
		t.Errorf("unexpected jobs %+v", jobs)
	}
}
