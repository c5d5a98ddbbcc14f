package identity

import (
	"errors"
	"fmt"
)

// Identity represents authenticated principal
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Validate checks that identity carries the fields a session relies on
func (i *Identity) Validate() error {
	if i == nil {
		return errors.New("identity was empty")
	}
	if i.ID == "" {
		return errors.New("identity id was empty")
	}
	if i.Email == "" {
		return fmt.Errorf("identity %v: email was empty", i.ID)
	}
	if !i.Role.Valid() {
		return fmt.Errorf("identity %v: unsupported role: %q", i.ID, i.Role)
	}
	return nil
}

// Clone returns a copy of identity
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	ret := *i
	return &ret
}

// DisplayName returns full name or email when name is not set
func (i *Identity) DisplayName() string {
	if i == nil {
		return ""
	}
	if i.FullName != "" {
		return i.FullName
	}
	return i.Email
}
