package triton

import (
	"fmt"
	"strings"
	"time"
)

// DiscoveryAppName is the SAPI application under which all datacenter
// services are registered.
const DiscoveryAppName = "sdc"

// Default ports.
const (
	DefaultHTTPPort  = 80
	DefaultHTTPSPort = 443
	DefaultLDAPSPort = 636
)

// Service identifies a datacenter service by its canonical name.
type Service string

// Known services.
const (
	ServiceVMAPI    Service = "vmapi"    // virtual machine API
	ServiceCNAPI    Service = "cnapi"    // compute node API
	ServiceNAPI     Service = "napi"     // network API
	ServiceIMGAPI   Service = "imgapi"   // image API
	ServicePAPI     Service = "papi"     // package API
	ServiceFWAPI    Service = "fwapi"    // firewall API
	ServiceSAPI     Service = "sapi"     // service API (discovery backend)
	ServiceUFDS     Service = "ufds"     // LDAP directory service
	ServiceAmon     Service = "amon"     // monitoring
	ServiceWorkflow Service = "workflow" // workflow API
)

// AllServices returns every known service.
func AllServices() []Service {
	return []Service{
		ServiceVMAPI, ServiceCNAPI, ServiceNAPI, ServiceIMGAPI, ServicePAPI,
		ServiceFWAPI, ServiceSAPI, ServiceUFDS, ServiceAmon, ServiceWorkflow,
	}
}

// ParseService converts a service name into a Service. Matching is
// case-insensitive.
func ParseService(s string) (Service, error) {
	svc := Service(strings.ToLower(s))
	for _, known := range AllServices() {
		if svc == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown service %q", s)
}

// String returns the canonical service name.
func (s Service) String() string { return string(s) }

// DefaultPort returns the port the service listens on when discovery
// metadata does not say otherwise.
func (s Service) DefaultPort() int {
	if s == ServiceUFDS {
		return DefaultLDAPSPort
	}
	return DefaultHTTPPort
}

// DefaultTimeout returns the per-request timeout appropriate for the
// service. Image operations move large payloads and get a longer budget;
// the directory service answers quickly or not at all.
func (s Service) DefaultTimeout() time.Duration {
	switch s {
	case ServiceVMAPI, ServiceCNAPI, ServiceWorkflow:
		return 30 * time.Second
	case ServiceIMGAPI:
		return 60 * time.Second
	case ServiceUFDS:
		return 15 * time.Second
	default:
		return 20 * time.Second
	}
}
