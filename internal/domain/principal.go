package domain

import "strings"

// Principal is the authenticated identity attached to a single request.
// Roles always contains at least one authority string; it is never shared
// across requests.
type Principal struct {
	Email string
	Name  string
	Roles []string
}

// HasAuthority reports whether the principal carries the authority string
// verbatim (including the ROLE_ prefix).
func (p *Principal) HasAuthority(authority string) bool {
	if p == nil {
		return false
	}
	for _, role := range p.Roles {
		if role == authority {
			return true
		}
	}
	return false
}

// HasRole reports whether the principal holds the given role name, with or
// without the ROLE_ prefix, case-insensitively on the bare name.
func (p *Principal) HasRole(role string) bool {
	if strings.HasPrefix(role, "ROLE_") {
		return p.HasAuthority(role)
	}
	return p.HasAuthority("ROLE_" + strings.ToUpper(role))
}
