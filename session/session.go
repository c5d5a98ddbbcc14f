package session

import "github.com/viant/crmsession/identity"

// State represents session state
type State int

const (
	Unauthenticated State = iota
	// HydratedUnverified holds credential that was not verified yet
	HydratedUnverified
	// Authenticating has login or register call in flight
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case HydratedUnverified:
		return "hydrated-unverified"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	}
	return "unauthenticated"
}

// Session represents authentication state
type Session struct {
	Identity        *identity.Identity
	Credential      string
	IsAuthenticated bool
	IsLoading       bool
}

// State returns state derived from session fields
func (s Session) State() State {
	switch {
	case s.IsLoading:
		return Authenticating
	case s.IsAuthenticated:
		return Authenticated
	case s.Credential != "":
		return HydratedUnverified
	}
	return Unauthenticated
}

// Role returns identity role or empty role when identity is absent
func (s Session) Role() identity.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

func (s Session) clone() Session {
	s.Identity = s.Identity.Clone()
	return s
}
