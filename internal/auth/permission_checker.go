package auth

import (
	"fmt"
	"sort"
)

// Capability is the access level a route demands.
type Capability string

const (
	CapabilityPublic        Capability = "public"
	CapabilityAuthenticated Capability = "authenticated"
	CapabilityAdmin         Capability = "admin"
)

func (c Capability) Valid() bool {
	switch c {
	case CapabilityPublic, CapabilityAuthenticated, CapabilityAdmin:
		return true
	}
	return false
}

// DefaultRoutes maps chi route patterns to the capability they require.
var DefaultRoutes = map[string]Capability{
	"/":                 CapabilityPublic,
	"/health":           CapabilityPublic,
	"/login":            CapabilityPublic,
	"/add-shift":        CapabilityAuthenticated,
	"/shifts/{user_id}": CapabilityAuthenticated,
	"/export":           CapabilityAdmin,
}

// Policy is the route to capability table consulted by the Guard.
type Policy struct {
	routes map[string]Capability
}

// NewPolicy starts from DefaultRoutes and applies overrides from configuration.
func NewPolicy(overrides map[string]string) (*Policy, error) {
	routes := make(map[string]Capability, len(DefaultRoutes)+len(overrides))
	for pattern, capability := range DefaultRoutes {
		routes[pattern] = capability
	}
	for pattern, raw := range overrides {
		capability := Capability(raw)
		if !capability.Valid() {
			return nil, fmt.Errorf("route %s: unknown capability %q", pattern, raw)
		}
		routes[pattern] = capability
	}
	return &Policy{routes: routes}, nil
}

// For returns the capability for a route pattern. Unlisted routes require a credential.
func (p *Policy) For(pattern string) Capability {
	if capability, ok := p.routes[pattern]; ok {
		return capability
	}
	return CapabilityAuthenticated
}

// Patterns lists the configured route patterns in lexical order.
func (p *Policy) Patterns() []string {
	patterns := make([]string, 0, len(p.routes))
	for pattern := range p.routes {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	return patterns
}
