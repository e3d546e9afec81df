package vmapi

import "github.com/nwilkens/triton-go/triton"

// VM is a virtual machine as returned by VMAPI.
type VM struct {
	UUID             string            `json:"uuid"`
	Alias            string            `json:"alias,omitempty"`
	Brand            string            `json:"brand,omitempty"`
	State            string            `json:"state,omitempty"`
	RAM              int64             `json:"ram,omitempty"`
	Quota            int64             `json:"quota,omitempty"`
	CPUCap           int64             `json:"cpu_cap,omitempty"`
	CPUShares        int64             `json:"cpu_shares,omitempty"`
	VCPUs            int64             `json:"vcpus,omitempty"`
	OwnerUUID        string            `json:"owner_uuid,omitempty"`
	ServerUUID       string            `json:"server_uuid,omitempty"`
	ImageUUID        string            `json:"image_uuid,omitempty"`
	PackageUUID      string            `json:"billing_id,omitempty"`
	PackageName      string            `json:"package_name,omitempty"`
	FirewallEnabled  bool              `json:"firewall_enabled,omitempty"`
	Nics             []NIC             `json:"nics,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
	CustomerMetadata map[string]string `json:"customer_metadata,omitempty"`
	CreateTimestamp  string            `json:"create_timestamp,omitempty"`
	LastModified     string            `json:"last_modified,omitempty"`
}

// NIC is a network interface attached to a VM.
type NIC struct {
	MAC         string `json:"mac,omitempty"`
	IP          string `json:"ip,omitempty"`
	Netmask     string `json:"netmask,omitempty"`
	Gateway     string `json:"gateway,omitempty"`
	NetworkUUID string `json:"network_uuid,omitempty"`
	Primary     bool   `json:"primary,omitempty"`
	Interface   string `json:"interface,omitempty"`
}

// NetworkConfig selects a network for provisioning.
type NetworkConfig struct {
	UUID    string `json:"uuid"`
	Primary bool   `json:"primary,omitempty"`
	IP      string `json:"ip,omitempty"`
}

// CreateRequest is the payload for provisioning a VM.
type CreateRequest struct {
	Alias            string            `json:"alias,omitempty"`
	Brand            string            `json:"brand"`
	OwnerUUID        string            `json:"owner_uuid"`
	RAM              int64             `json:"ram"`
	Quota            int64             `json:"quota,omitempty"`
	CPUCap           int64             `json:"cpu_cap,omitempty"`
	CPUShares        int64             `json:"cpu_shares,omitempty"`
	VCPUs            int64             `json:"vcpus,omitempty"`
	ImageUUID        string            `json:"image_uuid"`
	ServerUUID       string            `json:"server_uuid,omitempty"`
	PackageUUID      string            `json:"billing_id,omitempty"`
	Networks         []NetworkConfig   `json:"networks"`
	Tags             map[string]string `json:"tags,omitempty"`
	CustomerMetadata map[string]string `json:"customer_metadata,omitempty"`
	FirewallEnabled  bool              `json:"firewall_enabled,omitempty"`
}

// UpdateRequest is the payload for updating a VM.
type UpdateRequest struct {
	Alias            string            `json:"alias,omitempty"`
	RAM              int64             `json:"ram,omitempty"`
	Quota            int64             `json:"quota,omitempty"`
	CPUCap           int64             `json:"cpu_cap,omitempty"`
	CPUShares        int64             `json:"cpu_shares,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
	CustomerMetadata map[string]string `json:"customer_metadata,omitempty"`
	FirewallEnabled  *bool             `json:"firewall_enabled,omitempty"`
}

// Snapshot is a point-in-time snapshot of a VM.
type Snapshot struct {
	Name      string `json:"name"`
	State     string `json:"state,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Job is an asynchronous VMAPI operation. Mutation responses name the
// job as job_uuid; the jobs listing names it uuid.
type Job struct {
	UUID      string `json:"uuid,omitempty"`
	JobUUID   string `json:"job_uuid,omitempty"`
	VMUUID    string `json:"vm_uuid,omitempty"`
	Name      string `json:"name,omitempty"`
	Execution string `json:"execution,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ID returns the job identifier regardless of response shape.
func (j Job) ID() string {
	if j.UUID != "" {
		return j.UUID
	}
	return j.JobUUID
}

// ListParams filters ListVMs.
type ListParams struct {
	OwnerUUID  string
	State      string
	Alias      string
	ServerUUID string
	ImageUUID  string
	Brand      string
	Limit      int
	Offset     int
	Fields     string
}

func (p ListParams) query() triton.Params {
	return triton.NewParams().
		Set("owner_uuid", p.OwnerUUID).
		Set("state", p.State).
		Set("alias", p.Alias).
		Set("server_uuid", p.ServerUUID).
		Set("image_uuid", p.ImageUUID).
		Set("brand", p.Brand).
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset).
		Set("fields", p.Fields)
}

// JobListParams filters ListJobs.
type JobListParams struct {
	VMUUID    string
	Execution string
	Task      string
	Limit     int
	Offset    int
}

func (p JobListParams) query() triton.Params {
	return triton.NewParams().
		Set("vm_uuid", p.VMUUID).
		Set("execution", p.Execution).
		Set("task", p.Task).
		SetInt("limit", p.Limit).
		SetInt("offset", p.Offset)
}
