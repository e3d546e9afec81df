package vmapi

import (
	"context"
	"net/http"

	"github.com/nwilkens/triton-go/client"
	"github.com/nwilkens/triton-go/triton"
	"github.com/nwilkens/triton-go/validation"
)

// Client issues VMAPI requests through a datacenter client.
type Client struct {
	c *client.Client
}

// New creates a VMAPI client.
func New(c *client.Client) *Client {
	return &Client{c: c}
}

// ListVMs lists VMs matching the filter.
func (v *Client) ListVMs(ctx context.Context, params ListParams) ([]VM, error) {
	return client.Get[[]VM](ctx, v.c, triton.ServiceVMAPI, "/vms",
		client.WithQueryParams(params.query()))
}

// GetVM fetches one VM by UUID.
func (v *Client) GetVM(ctx context.Context, uuid string) (*VM, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	vm, err := client.Get[VM](ctx, v.c, triton.ServiceVMAPI, "/vms/"+uuid)
	if err != nil {
		return nil, err
	}
	return &vm, nil
}

// CreateVM provisions a VM and returns the provisioning job.
func (v *Client) CreateVM(ctx context.Context, req CreateRequest) (*Job, error) {
	err := validation.New().
		Required("brand", req.Brand).
		RequiredUUID("owner_uuid", req.OwnerUUID).
		RequiredUUID("image_uuid", req.ImageUUID).
		Positive("ram", int(req.RAM)).
		Validate()
	if err != nil {
		return nil, err
	}
	job, err := client.Post[Job](ctx, v.c, triton.ServiceVMAPI, "/vms", req)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateVM modifies a VM and returns the update job.
func (v *Client) UpdateVM(ctx context.Context, uuid string, req UpdateRequest) (*Job, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	job, err := client.Put[Job](ctx, v.c, triton.ServiceVMAPI, "/vms/"+uuid, req)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteVM destroys a VM and returns the destroy job.
func (v *Client) DeleteVM(ctx context.Context, uuid string) (*Job, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	job, err := client.Exchange[Job](ctx, v.c, triton.ServiceVMAPI, http.MethodDelete, "/vms/"+uuid, nil)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// StartVM starts a stopped VM.
func (v *Client) StartVM(ctx context.Context, uuid string) (*Job, error) {
	return v.action(ctx, uuid, "start")
}

// StopVM stops a running VM.
func (v *Client) StopVM(ctx context.Context, uuid string) (*Job, error) {
	return v.action(ctx, uuid, "stop")
}

// RebootVM reboots a running VM.
func (v *Client) RebootVM(ctx context.Context, uuid string) (*Job, error) {
	return v.action(ctx, uuid, "reboot")
}

func (v *Client) action(ctx context.Context, uuid, action string) (*Job, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	job, err := client.Post[Job](ctx, v.c, triton.ServiceVMAPI, "/vms/"+uuid, nil,
		client.WithQuery("action", action))
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListSnapshots lists snapshots of a VM.
func (v *Client) ListSnapshots(ctx context.Context, uuid string) ([]Snapshot, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	return client.Get[[]Snapshot](ctx, v.c, triton.ServiceVMAPI, "/vms/"+uuid+"/snapshots")
}

// CreateSnapshot snapshots a VM under the given name.
func (v *Client) CreateSnapshot(ctx context.Context, uuid, name string) (*Job, error) {
	err := validation.New().
		RequiredUUID("uuid", uuid).
		Required("name", name).
		Validate()
	if err != nil {
		return nil, err
	}
	job, err := client.Post[Job](ctx, v.c, triton.ServiceVMAPI, "/vms/"+uuid+"/snapshots",
		map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteSnapshot removes a snapshot by name.
func (v *Client) DeleteSnapshot(ctx context.Context, uuid, name string) (*Job, error) {
	err := validation.New().
		RequiredUUID("uuid", uuid).
		Required("name", name).
		Validate()
	if err != nil {
		return nil, err
	}
	job, err := client.Exchange[Job](ctx, v.c, triton.ServiceVMAPI, http.MethodDelete,
		"/vms/"+uuid+"/snapshots/"+name, nil)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs lists asynchronous jobs.
func (v *Client) ListJobs(ctx context.Context, params JobListParams) ([]Job, error) {
	return client.Get[[]Job](ctx, v.c, triton.ServiceVMAPI, "/jobs",
		client.WithQueryParams(params.query()))
}

// GetJob fetches one job by UUID.
func (v *Client) GetJob(ctx context.Context, uuid string) (*Job, error) {
	if err := validation.New().RequiredUUID("uuid", uuid).Validate(); err != nil {
		return nil, err
	}
	job, err := client.Get[Job](ctx, v.c, triton.ServiceVMAPI, "/jobs/"+uuid)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
