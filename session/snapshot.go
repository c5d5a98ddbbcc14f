package session

import (
	"encoding/json"
	"fmt"

	"github.com/viant/crmsession/identity"
)

// snapshotVersion is the persisted snapshot format version
const snapshotVersion = 0

// Snapshot represents persisted subset of session
type Snapshot struct {
	Credential string
	Identity   *identity.Identity
}

type persistedState struct {
	Token *string            `json:"token"`
	User  *identity.Identity `json:"user"`
}

type persistedSnapshot struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}

// NewSnapshot returns persisted subset of session, loading flags are never persisted
func NewSnapshot(session Session) *Snapshot {
	return &Snapshot{Credential: session.Credential, Identity: session.Identity.Clone()}
}

// Encode encodes snapshot as {"state":{"token":...,"user":...},"version":0}
func (s *Snapshot) Encode() (string, error) {
	persisted := persistedSnapshot{Version: snapshotVersion}
	if s.Credential != "" {
		token := s.Credential
		persisted.State.Token = &token
	}
	persisted.State.User = s.Identity
	data, err := json.Marshal(persisted)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeSnapshot decodes persisted snapshot
func DecodeSnapshot(encoded string) (*Snapshot, error) {
	persisted := persistedSnapshot{}
	if err := json.Unmarshal([]byte(encoded), &persisted); err != nil {
		return nil, fmt.Errorf("invalid session snapshot: %w", err)
	}
	if persisted.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported session snapshot version: %v", persisted.Version)
	}
	ret := &Snapshot{Identity: persisted.State.User}
	if persisted.State.Token != nil {
		ret.Credential = *persisted.State.Token
	}
	return ret, nil
}
