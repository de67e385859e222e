package auth

import "strings"

const (
	// RolePrefix is prepended to every authority string granted to a principal.
	RolePrefix = "ROLE_"
	// RoleUser is the default authority granted when nothing else applies.
	RoleUser = "ROLE_USER"
	// RoleAdmin gates user management endpoints.
	RoleAdmin = "ROLE_ADMIN"
)

// ClaimSet is a read-only view over the claims of an already verified token.
// Values are loosely typed (string, string list, or absent); the typed
// getters apply the defaulting rules so callers never see parse failures.
type ClaimSet map[string]any

// Has reports whether a claim is present.
func (cs ClaimSet) Has(name string) bool {
	_, ok := cs[name]
	return ok
}

// StringClaim returns the claim as a string, or "" when absent or not a string.
func (cs ClaimSet) StringClaim(name string) string {
	val, ok := cs[name]
	if !ok {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		return ""
	}
	return s
}

// StringListClaim returns the claim as a list of strings. Absent or
// malformed claims yield nil; non-string elements are skipped.
func (cs ClaimSet) StringListClaim(name string) []string {
	val, ok := cs[name]
	if !ok {
		return nil
	}
	switch typed := val.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Email derives the caller's email: the email claim when present and
// non-empty, then preferred_username whenever the claim exists (even
// empty), then sub. A token without sub yields "" rather than an error.
func Email(cs ClaimSet) string {
	if email := cs.StringClaim("email"); email != "" {
		return email
	}
	if cs.Has("preferred_username") {
		return cs.StringClaim("preferred_username")
	}
	return cs.StringClaim("sub")
}

// DisplayName derives a human-readable name: the name claim, then the
// given_name/family_name pair, then preferred_username.
func DisplayName(cs ClaimSet) string {
	if cs.Has("name") {
		return cs.StringClaim("name")
	}
	if cs.Has("given_name") {
		given := cs.StringClaim("given_name")
		family := cs.StringClaim("family_name")
		return strings.TrimSpace(given + " " + family)
	}
	return cs.StringClaim("preferred_username")
}

// RoleHints collects role authorities carried by the token itself: the
// roles list claim plus every scp scope uppercased and ROLE_-prefixed.
// Malformed claims are ignored. The result is never empty; it falls back to
// ROLE_USER. The resolver does not consult these when a stored user record
// exists; they are the token-only fallback path.
func RoleHints(cs ClaimSet) []string {
	seen := make(map[string]struct{})
	var hints []string

	add := func(role string) {
		if role == "" {
			return
		}
		if _, ok := seen[role]; ok {
			return
		}
		seen[role] = struct{}{}
		hints = append(hints, role)
	}

	for _, role := range cs.StringListClaim("roles") {
		add(role)
	}

	if scope := cs.StringClaim("scp"); scope != "" {
		for _, token := range strings.Split(scope, " ") {
			if token == "" {
				continue
			}
			add(RolePrefix + strings.ToUpper(token))
		}
	}

	if len(hints) == 0 {
		hints = append(hints, RoleUser)
	}
	return hints
}
