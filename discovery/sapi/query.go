package sapi

// ServiceQuery filters ListServices.
type ServiceQuery struct {
	// Name filters by service name.
	Name string
	// ApplicationUUID filters by owning application.
	ApplicationUUID string
	// Type filters by service type.
	Type InstanceType
	// IncludeMaster includes master configuration in responses.
	IncludeMaster bool
}

func (q ServiceQuery) params() map[string]string {
	p := map[string]string{}
	if q.Name != "" {
		p["name"] = q.Name
	}
	if q.ApplicationUUID != "" {
		p["application_uuid"] = q.ApplicationUUID
	}
	if q.Type != "" {
		p["type"] = string(q.Type)
	}
	if q.IncludeMaster {
		p["include_master"] = "true"
	}
	return p
}

// InstanceQuery filters ListInstances.
type InstanceQuery struct {
	// ServiceUUID filters by parent service.
	ServiceUUID string
	// Type filters by instance type.
	Type InstanceType
	// IncludeMaster includes master configuration in responses.
	IncludeMaster bool
}

func (q InstanceQuery) params() map[string]string {
	p := map[string]string{}
	if q.ServiceUUID != "" {
		p["service_uuid"] = q.ServiceUUID
	}
	if q.Type != "" {
		p["type"] = string(q.Type)
	}
	if q.IncludeMaster {
		p["include_master"] = "true"
	}
	return p
}
